package handlers

import (
	"context"
	"net/http"

	"github.com/OLVCORE/smartimport/internal/application/advisor"
)

// Suggester is the handler's view of the classification advisor.
type Suggester interface {
	Suggest(ctx context.Context, description string, specs map[string]string) (*advisor.Suggestion, error)
}

// ClassificationHandler serves classification-code suggestions.
type ClassificationHandler struct {
	advisor Suggester
}

// NewClassificationHandler builds the handler.
func NewClassificationHandler(suggester Suggester) *ClassificationHandler {
	return &ClassificationHandler{advisor: suggester}
}

type suggestRequest struct {
	Description string            `json:"description"`
	Specs       map[string]string `json:"specs,omitempty"`
}

// Suggest handles POST /classification/suggest.  A reply without a code is a
// 200 with found=false; the client treats it as "try a richer description".
func (h *ClassificationHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var body suggestRequest
	if err := decodeJSON(r, &body); err != nil {
		writeAppError(w, err)
		return
	}

	suggestion, err := h.advisor.Suggest(r.Context(), body.Description, body.Specs)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, suggestion)
}

//Personal.AI order the ending
