package handlers

import (
	"net/http"
	"time"

	"github.com/OLVCORE/smartimport/internal/domain/treatment"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// TreatmentHandler serves official tax-treatment lookups.
type TreatmentHandler struct {
	client treatment.LookupClient
}

// NewTreatmentHandler builds the handler.
func NewTreatmentHandler(client treatment.LookupClient) *TreatmentHandler {
	return &TreatmentHandler{client: client}
}

type lookupRequest struct {
	ClassificationCode string `json:"classification_code"`
	CountryCode        string `json:"country_code"`
	OperationDate      string `json:"operation_date"`
	OperationType      string `json:"operation_type"`
}

// Lookup handles POST /treatments/lookup.
func (h *TreatmentHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	var body lookupRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	opDate, err := time.Parse(dateLayout, body.OperationDate)
	if err != nil {
		writeAppError(w, errors.InvalidParam("operation_date must be YYYY-MM-DD"))
		return
	}

	req := treatment.LookupRequest{
		ClassificationCode: body.ClassificationCode,
		CountryCode:        body.CountryCode,
		OperationDate:      opDate,
		OperationType:      treatment.OperationType(body.OperationType),
	}
	req.Normalize()

	tt, err := h.client.Lookup(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tt)
}

//Personal.AI order the ending
