package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpmw"
	"github.com/Black-And-White-Club/golf-stableford/app/shared/httpx"
)

func (app *App) routes() http.Handler {
	cfg := app.Config.HTTP
	obs := app.Observability

	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		httpmw.MetricsMiddleware(obs.Metrics),
		httpmw.CORSMiddleware(cfg.AllowedOrigins),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if obs.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(obs.Registry, promhttp.HandlerOpts{}))
	}

	limiter := httpmw.NewIPRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)
	r.Group(func(r chi.Router) {
		r.Use(httpmw.RateLimitMiddleware(limiter))

		app.Modules.Course.Mount(r)
		app.Modules.Round.Mount(r)
		r.Route("/api/archive", func(r chi.Router) {
			app.Modules.Archive.Routes(r)
			app.Modules.Scorecard.Routes(r)
		})
	})
	app.Modules.Live.Mount(r)

	return r
}
