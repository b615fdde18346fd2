package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Black-And-White-Club/golf-stableford/app/observability/attr"
)

const shutdownTimeout = 10 * time.Second

// Run serves HTTP, consumes events and runs the live hub until ctx is cancelled or one
// of them fails, then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Logger
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)

	go app.Modules.Live.Run(ctx)

	go func() {
		if err := app.Router.Run(ctx); err != nil {
			errCh <- fmt.Errorf("watermill router: %w", err)
		}
	}()
	// Subscriptions must exist before the first round event is published.
	select {
	case <-app.Router.Running():
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}

	srv := &http.Server{
		Addr:              app.Config.HTTP.Address,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("Starting HTTP server", attr.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down application...")
	case runErr = <-errCh:
		logger.Error("Application stopped unexpectedly", attr.Error(runErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", attr.Error(err))
	}
	cancel()

	logger.Info("Application shut down gracefully")
	return runErr
}
