package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/prometheus"
	"github.com/OLVCORE/smartimport/internal/interfaces/http/handlers"
	"github.com/OLVCORE/smartimport/internal/interfaces/http/middleware"
)

func newTestBenefitHandler() *handlers.BenefitHandler {
	catalog := benefit.NewCatalog()
	return handlers.NewBenefitHandler(catalog, benefit.NewAggregator(catalog, logging.NewNopLogger()))
}

func TestNewRouter_HealthEndpoints(t *testing.T) {
	router := NewRouter(RouterConfig{
		HealthHandler: handlers.NewHealthHandler("test", nil),
	})

	for _, path := range []string{"/healthz", "/readyz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestNewRouter_MetricsEndpoint(t *testing.T) {
	router := NewRouter(RouterConfig{Metrics: prometheus.NewMetrics()})

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "smartimport_")
}

func TestNewRouter_BenefitRoutesRegistered(t *testing.T) {
	router := NewRouter(RouterConfig{BenefitHandler: newTestBenefitHandler()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/benefits/regions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "AM")
}

func TestNewRouter_NilHandlersNoPanic(t *testing.T) {
	require.NotPanics(t, func() {
		router := NewRouter(RouterConfig{})
		req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestNewRouter_LoggingMiddlewareApplied(t *testing.T) {
	metrics := prometheus.NewMetrics()
	router := NewRouter(RouterConfig{
		BenefitHandler: newTestBenefitHandler(),
		LoggingMiddleware: middleware.NewLoggingMiddleware(
			logging.NewNopLogger(), metrics, middleware.DefaultLoggingConfig()),
		Metrics: metrics,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/benefits/regions", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The scrape output must carry the request counter the middleware recorded.
	scrape := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	scrapeRec := httptest.NewRecorder()
	router.ServeHTTP(scrapeRec, scrape)
	assert.Contains(t, scrapeRec.Body.String(), "smartimport_http_requests_total")
}

func TestNewRouter_CORSMiddlewareApplied(t *testing.T) {
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = []string{"https://app.example.com"}
	router := NewRouter(RouterConfig{
		BenefitHandler: newTestBenefitHandler(),
		CORSMiddleware: middleware.NewCORSMiddleware(corsCfg),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/benefits/regions", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

//Personal.AI order the ending
