package live

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	livehub "github.com/Black-And-White-Club/golf-stableford/app/modules/live/hub"
	livehandlers "github.com/Black-And-White-Club/golf-stableford/app/modules/live/infrastructure/handlers"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
)

// Module represents the live leaderboard module.
type Module struct {
	hub      *livehub.Hub
	handlers *livehandlers.LiveHandlers
}

// NewLiveModule creates the live module and subscribes it to round events.
func NewLiveModule(
	ctx context.Context,
	obs observability.Observability,
	source livehandlers.LeaderboardSource,
	allowedOrigins []string,
	consumers eventbus.ConsumerDeps,
) *Module {
	obs.Logger.InfoContext(ctx, "live.NewLiveModule initializing")

	hub := livehub.New(obs.Logger, obs.Metrics)
	handlers := livehandlers.NewLiveHandlers(hub, source, livehub.NewUpgrader(allowedOrigins), obs.Logger, obs.Tracer)

	eventbus.AddConsumer(consumers, "live."+eventbus.RoundScoreRecordedV1, eventbus.RoundScoreRecordedV1, handlers.HandleScoreRecorded)
	eventbus.AddConsumer(consumers, "live."+eventbus.RoundCompletedV1, eventbus.RoundCompletedV1, handlers.HandleRoundCompleted)

	return &Module{hub: hub, handlers: handlers}
}

// Run serves websocket clients until ctx is cancelled.
func (m *Module) Run(ctx context.Context) {
	m.hub.Run(ctx)
}

// Mount registers the websocket endpoint under /ws/rounds.
func (m *Module) Mount(r chi.Router) {
	r.Route("/ws/rounds", m.handlers.Routes)
}
