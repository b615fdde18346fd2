package archive

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	archiveservice "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/application"
	archivehandlers "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/handlers"
	archivedb "github.com/Black-And-White-Club/golf-stableford/app/modules/archive/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// Module represents the archive module.
type Module struct {
	ArchiveService archiveservice.Service
	handlers       *archivehandlers.ArchiveHandlers
}

// NewArchiveModule creates the archive module and subscribes it to round completion events.
func NewArchiveModule(ctx context.Context, obs observability.Observability, store kvstore.Store, consumers eventbus.ConsumerDeps) *Module {
	obs.Logger.InfoContext(ctx, "archive.NewArchiveModule initializing")

	service := archiveservice.NewArchiveService(archivedb.NewRepository(store), telemetry.Instrumentation{
		Logger:  obs.Logger,
		Metrics: obs.Metrics,
		Tracer:  obs.Tracer,
	})
	handlers := archivehandlers.NewArchiveHandlers(service, obs.Logger, obs.Tracer, obs.Metrics)

	eventbus.AddConsumer(consumers, "archive."+eventbus.RoundCompletedV1, eventbus.RoundCompletedV1, handlers.HandleRoundCompleted)

	return &Module{ArchiveService: service, handlers: handlers}
}

// Routes registers the archive HTTP routes on a router mounted at /api/archive.
func (m *Module) Routes(r chi.Router) {
	m.handlers.Routes(r)
}
