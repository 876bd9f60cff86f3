package prometheus

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRegisterAndCount(t *testing.T) {
	m := NewMetrics()

	m.ExchangeResolutionsTotal.WithLabelValues("found").Inc()
	m.ExchangeResolutionsTotal.WithLabelValues("found").Inc()
	m.ExchangeResolutionsTotal.WithLabelValues("not_found").Inc()
	m.SimulationsTotal.Inc()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ExchangeResolutionsTotal.WithLabelValues("found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ExchangeResolutionsTotal.WithLabelValues("not_found")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationsTotal))
}

func TestMetricsDoubleConstructionIsIndependent(t *testing.T) {
	// Each Metrics owns its registry, so constructing twice must not panic
	// on duplicate registration.
	require.NotPanics(t, func() {
		_ = NewMetrics()
		_ = NewMetrics()
	})
}

func TestHandlerServesScrape(t *testing.T) {
	m := NewMetrics()
	m.TreatmentLookupsTotal.WithLabelValues("success").Inc()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "smartimport_treatment_lookups_total")
}

//Personal.AI order the ending
