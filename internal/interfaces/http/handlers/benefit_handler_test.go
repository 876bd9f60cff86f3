package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

func newBenefitHandler() *BenefitHandler {
	catalog := benefit.NewCatalog()
	return NewBenefitHandler(catalog, benefit.NewAggregator(catalog, logging.NewNopLogger()))
}

func TestBenefitHandler_Regions(t *testing.T) {
	h := newBenefitHandler()

	req := httptest.NewRequest(http.MethodGet, "/benefits/regions", nil)
	rec := httptest.NewRecorder()
	h.Regions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["regions"], "AM")
	assert.Contains(t, body["regions"], "SC")
}

func TestBenefitHandler_Catalog_NationalOnly(t *testing.T) {
	h := newBenefitHandler()

	req := httptest.NewRequest(http.MethodGet, "/benefits/catalog", nil)
	rec := httptest.NewRecorder()
	h.Catalog(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]catalogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["regimes"])
	assert.Empty(t, body["incentives"])
}

func TestBenefitHandler_Catalog_WithRegion(t *testing.T) {
	h := newBenefitHandler()

	req := httptest.NewRequest(http.MethodGet, "/benefits/catalog?region=AM", nil)
	rec := httptest.NewRecorder()
	h.Catalog(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string][]catalogEntry
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body["incentives"], 1)
	assert.Equal(t, "zona-franca-manaus", body["incentives"][0].Key)
}

func TestBenefitHandler_Estimate(t *testing.T) {
	h := newBenefitHandler()

	payload := `{
		"fob_value": "100000",
		"region_code": "AM",
		"incentive_keys": ["zona-franca-manaus"],
		"regime_keys": ["drawback"]
	}`
	req := httptest.NewRequest(http.MethodPost, "/benefits/estimate", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Estimate(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Total string `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "60000", body.Total)
}

func TestBenefitHandler_Estimate_BadFOB(t *testing.T) {
	h := newBenefitHandler()

	req := httptest.NewRequest(http.MethodPost, "/benefits/estimate",
		strings.NewReader(`{"fob_value": "not-a-number"}`))
	rec := httptest.NewRecorder()
	h.Estimate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBenefitHandler_Estimate_NegativeFOB(t *testing.T) {
	h := newBenefitHandler()

	req := httptest.NewRequest(http.MethodPost, "/benefits/estimate",
		strings.NewReader(`{"fob_value": "-1"}`))
	rec := httptest.NewRecorder()
	h.Estimate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

//Personal.AI order the ending
