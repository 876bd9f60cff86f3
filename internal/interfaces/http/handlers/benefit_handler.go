package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/domain/benefit"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// BenefitHandler serves the incentive/regime catalog and economy estimates.
type BenefitHandler struct {
	catalog    *benefit.Catalog
	aggregator *benefit.Aggregator
}

// NewBenefitHandler builds the handler.
func NewBenefitHandler(catalog *benefit.Catalog, aggregator *benefit.Aggregator) *BenefitHandler {
	return &BenefitHandler{catalog: catalog, aggregator: aggregator}
}

// catalogEntry is the API shape of one catalog row.
type catalogEntry struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Kind         string   `json:"kind"`
	Basis        string   `json:"basis"`
	PercentLabel string   `json:"percent_label"`
	Conditions   []string `json:"conditions"`
}

func toCatalogEntries(entries []benefit.Entry) []catalogEntry {
	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogEntry{
			Key:          e.Key,
			Name:         e.Name,
			Description:  e.Description,
			Kind:         string(e.Kind),
			Basis:        e.Basis,
			PercentLabel: e.PercentLabel,
			Conditions:   e.Conditions,
		})
	}
	return out
}

// Regions handles GET /benefits/regions.
func (h *BenefitHandler) Regions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"regions": h.catalog.Regions()})
}

// Catalog handles GET /benefits/catalog?region=AM.  Without a region only
// the national regimes are returned.
func (h *BenefitHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	resp := map[string][]catalogEntry{
		"regimes": toCatalogEntries(h.catalog.Regimes()),
	}
	if region := r.URL.Query().Get("region"); region != "" {
		resp["incentives"] = toCatalogEntries(h.catalog.IncentivesForRegion(region))
	}
	writeJSON(w, http.StatusOK, resp)
}

type estimateRequest struct {
	FOBValue      string   `json:"fob_value"`
	RegionCode    string   `json:"region_code"`
	IncentiveKeys []string `json:"incentive_keys"`
	RegimeKeys    []string `json:"regime_keys"`
}

// Estimate handles POST /benefits/estimate.
func (h *BenefitHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var body estimateRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	fob, err := decimal.NewFromString(body.FOBValue)
	if err != nil {
		writeAppError(w, errors.InvalidParam("fob_value must be a decimal number"))
		return
	}

	agg, err := h.aggregator.Compute(body.IncentiveKeys, body.RegimeKeys, body.RegionCode, fob)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, agg)
}

//Personal.AI order the ending
