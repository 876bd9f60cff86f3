package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/prometheus"
)

func newObservedLogger() (logging.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logging.NewLoggerFromCore(core), logs
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRequestLogging_LogsCompletedRequest(t *testing.T) {
	logger, logs := newObservedLogger()
	mw := RequestLogging(logger, nil, DefaultLoggingConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, "http request completed", entry.Message)
}

func TestRequestLogging_SkipsConfiguredPaths(t *testing.T) {
	logger, logs := newObservedLogger()
	mw := RequestLogging(logger, nil, DefaultLoggingConfig())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, logs.Len())
}

func TestRequestLogging_ServerErrorLoggedAsError(t *testing.T) {
	logger, logs := newObservedLogger()
	mw := RequestLogging(logger, nil, DefaultLoggingConfig())

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
	rec := httptest.NewRecorder()
	mw(failing).ServeHTTP(rec, req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.ErrorLevel, logs.All()[0].Level)
}

func TestRequestLogging_ClientErrorLoggedAsWarn(t *testing.T) {
	logger, logs := newObservedLogger()
	mw := RequestLogging(logger, nil, DefaultLoggingConfig())

	failing := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations/missing", nil)
	rec := httptest.NewRecorder()
	mw(failing).ServeHTTP(rec, req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestRequestLogging_SlowRequestLoggedAsWarn(t *testing.T) {
	logger, logs := newObservedLogger()
	cfg := DefaultLoggingConfig()
	cfg.SlowThreshold = time.Nanosecond
	mw := RequestLogging(logger, nil, cfg)

	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Millisecond)
		w.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
	rec := httptest.NewRecorder()
	mw(slow).ServeHTTP(rec, req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.WarnLevel, logs.All()[0].Level)
}

func TestRequestLogging_RecordsMetrics(t *testing.T) {
	logger, _ := newObservedLogger()
	metrics := prometheus.NewMetrics()
	mw := RequestLogging(logger, metrics, DefaultLoggingConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/simulations", nil)
	rec := httptest.NewRecorder()
	mw(okHandler()).ServeHTTP(rec, req)

	count := promtestutil.ToFloat64(metrics.HTTPRequestsTotal.WithLabelValues(
		"GET", "/api/v1/simulations", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRequestLogging_DefaultStatusWhenHandlerNeverWritesHeader(t *testing.T) {
	logger, logs := newObservedLogger()
	mw := RequestLogging(logger, nil, DefaultLoggingConfig())

	silent := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})
	req := httptest.NewRequest(http.MethodGet, "/api/v1/benefits/regions", nil)
	rec := httptest.NewRecorder()
	mw(silent).ServeHTTP(rec, req)

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, zapcore.InfoLevel, logs.All()[0].Level)
}

//Personal.AI order the ending
