package course

import (
	"context"

	"github.com/go-chi/chi/v5"

	courseservice "github.com/Black-And-White-Club/golf-stableford/app/modules/course/application"
	coursehandlers "github.com/Black-And-White-Club/golf-stableford/app/modules/course/infrastructure/handlers"
	coursedb "github.com/Black-And-White-Club/golf-stableford/app/modules/course/infrastructure/repositories"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/telemetry"
	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// Module represents the course module.
type Module struct {
	CourseService courseservice.Service
	handlers      *coursehandlers.CourseHandlers
	observability observability.Observability
}

// NewCourseModule creates and initializes a new course module.
func NewCourseModule(ctx context.Context, obs observability.Observability, store kvstore.Store) *Module {
	obs.Logger.InfoContext(ctx, "course.NewCourseModule initializing")

	repo := coursedb.NewRepository(store)
	service := courseservice.NewCourseService(repo, telemetry.Instrumentation{
		Logger:  obs.Logger,
		Metrics: obs.Metrics,
		Tracer:  obs.Tracer,
	})

	return &Module{
		CourseService: service,
		handlers:      coursehandlers.NewCourseHandlers(service, obs.Logger, obs.Tracer),
		observability: obs,
	}
}

// Mount registers the course HTTP routes under /api/courses.
func (m *Module) Mount(r chi.Router) {
	r.Route("/api/courses", m.handlers.Routes)
}
