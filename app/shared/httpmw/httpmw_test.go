package httpmw

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/Black-And-White-Club/golf-stableford/app/observability"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(0.001), 2)
	h := RateLimitMiddleware(limiter)(okHandler)

	do := func(method, addr string) int {
		req := httptest.NewRequest(method, "/api/rounds", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do(http.MethodPost, "10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do(http.MethodPut, "10.0.0.1:1002"))
	assert.Equal(t, http.StatusOK, do(http.MethodPost, "10.0.0.2:1000"), "other IPs have their own bucket")
	assert.Equal(t, http.StatusOK, do(http.MethodGet, "10.0.0.1:1003"), "reads are not limited")
}

func TestIPRateLimiterPrunesIdleEntries(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	base := time.Now()
	limiter.now = func() time.Time { return base }
	for i := 0; i <= cleanupThreshold; i++ {
		limiter.GetLimiter(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	assert.Equal(t, cleanupThreshold+1, limiter.size())

	limiter.now = func() time.Time { return base.Add(maxIdleAge + time.Minute) }
	limiter.GetLimiter("192.168.0.1")
	assert.Equal(t, 1, limiter.size())
}

func TestCORSMiddleware(t *testing.T) {
	h := CORSMiddleware([]string{"https://scores.example"})(okHandler)

	req := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	req.Header.Set("Origin", "https://scores.example")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "https://scores.example", rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/api/courses", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

type routeRecorder struct {
	observability.NoOpMetrics
	route  string
	status int
}

func (r *routeRecorder) ObserveHTTPRequest(_ string, route string, status int, _ time.Duration) {
	r.route = route
	r.status = status
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	rec := &routeRecorder{}
	router := chi.NewRouter()
	router.Use(MetricsMiddleware(rec))
	router.Get("/api/rounds/{roundID}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/rounds/abc", nil))
	assert.Equal(t, "/api/rounds/{roundID}", rec.route)
	assert.Equal(t, http.StatusTeapot, rec.status)
}
