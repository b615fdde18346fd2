// Package app wires configuration, storage, events and modules into a runnable server.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Black-And-White-Club/golf-stableford/app/eventbus"
	"github.com/Black-And-White-Club/golf-stableford/app/modules/archive"
	"github.com/Black-And-White-Club/golf-stableford/app/modules/course"
	"github.com/Black-And-White-Club/golf-stableford/app/modules/live"
	"github.com/Black-And-White-Club/golf-stableford/app/modules/round"
	"github.com/Black-And-White-Club/golf-stableford/app/modules/scorecard"
	"github.com/Black-And-White-Club/golf-stableford/app/observability"
	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
	"github.com/Black-And-White-Club/golf-stableford/config"
	"github.com/Black-And-White-Club/golf-stableford/internal/kvstore"
)

// App holds every long-lived dependency of the server.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	Store         kvstore.Store
	EventBus      eventbus.EventBus
	Router        *message.Router
	Modules       Modules

	handler http.Handler
}

// Modules groups the feature modules.
type Modules struct {
	Course    *course.Module
	Round     *round.Module
	Archive   *archive.Module
	Scorecard *scorecard.Module
	Live      *live.Module
}

// NewApp initializes the application with the necessary services and configuration.
func NewApp(ctx context.Context, cfg *config.Config, logOutput io.Writer) (*App, error) {
	obs, err := observability.Init(cfg.Observability, logOutput)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Logger

	store, err := kvstore.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	bus, err := eventbus.NewEventBus(cfg.Events, logger)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	router, err := eventbus.NewRouter(logger)
	if err != nil {
		bus.Close()
		store.Close()
		return nil, err
	}

	app := &App{
		Config:        cfg,
		Observability: obs,
		Store:         store,
		EventBus:      bus,
		Router:        router,
	}
	app.initializeModules(ctx)
	app.handler = app.routes()

	logger.InfoContext(ctx, "Application initialized",
		attr.String("store", cfg.Store.Backend),
		attr.String("events", cfg.Events.Backend),
	)
	return app, nil
}

func (app *App) initializeModules(ctx context.Context) {
	obs := app.Observability
	consumers := eventbus.ConsumerDeps{
		Router:     app.Router,
		Subscriber: app.EventBus,
		Logger:     obs.Logger,
		Tracer:     obs.Tracer,
	}

	courses := course.NewCourseModule(ctx, obs, app.Store)
	archives := archive.NewArchiveModule(ctx, obs, app.Store, consumers)
	rounds := round.NewRoundModule(ctx, app.Config, obs, app.Store, courses.CourseService, archives.ArchiveService, app.EventBus)

	app.Modules = Modules{
		Course:    courses,
		Round:     rounds,
		Archive:   archives,
		Scorecard: scorecard.NewScorecardModule(obs, archives.ArchiveService),
		Live:      live.NewLiveModule(ctx, obs, rounds.RoundService, app.Config.HTTP.AllowedOrigins, consumers),
	}
}

// Handler returns the HTTP handler serving the API.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Close releases the event bus, the watermill router and the store.
func (app *App) Close() error {
	var errs []error
	if err := app.Router.Close(); err != nil {
		errs = append(errs, fmt.Errorf("router: %w", err))
	}
	if err := app.EventBus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus: %w", err))
	}
	if err := app.Store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("store: %w", err))
	}
	return errors.Join(errs...)
}
