package round

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	roundservice "github.com/Black-And-White-Club/golf-stableford/app/modules/round/application"
	roundhandlers "github.com/Black-And-White-Club/golf-stableford/app/modules/round/infrastructure/handlers"
	rounddb "github.com/Black-And-White-Club/golf-stableford/app/modules/round/infrastructure/repositories"
	scoringdomain "github.com/Black-And-White-Club/golf-stableford/app/modules/scoring/domain"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
	"github.com/Black-And-White-Club/golf-stableford/config"
	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// Module represents the round module.
type Module struct {
	RoundService roundservice.Service
	handlers     *roundhandlers.RoundHandlers
}

// NewRoundModule creates the round module. Courses resolve setup course ids, finished
// rounds go to archiver and lifecycle events go to publisher.
func NewRoundModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	store kvstore.Store,
	courses roundservice.CourseLookup,
	archiver roundservice.Archiver,
	publisher eventbus.EventBus,
) *Module {
	obs.Logger.InfoContext(ctx, "round.NewRoundModule initializing")

	service := roundservice.NewRoundService(
		rounddb.NewRepository(store),
		courses,
		archiver,
		publisher,
		telemetry.Instrumentation{
			Logger:  obs.Logger,
			Metrics: obs.Metrics,
			Tracer:  obs.Tracer,
		},
		roundservice.Options{
			DefaultVariant: scoringdomain.PointsVariant(cfg.Scoring.DefaultVariant),
			MaxHandicap:    cfg.Scoring.MaxHandicap,
			MaxStrokes:     cfg.Scoring.MaxStrokes,
		},
	)

	return &Module{
		RoundService: service,
		handlers:     roundhandlers.NewRoundHandlers(service, obs.Logger, obs.Tracer, cfg.HTTP.PublicBaseURL),
	}
}

// Mount registers the round HTTP routes under /api/rounds.
func (m *Module) Mount(r chi.Router) {
	r.Route("/api/rounds", m.handlers.Routes)
}
