package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// QuoteResolver is the handler's view of the exchange-rate resolver.
type QuoteResolver interface {
	Resolve(ctx context.Context, currency string, requestedDate time.Time) (*exchange.Quote, error)
}

// ExchangeHandler serves exchange-rate resolution.
type ExchangeHandler struct {
	resolver QuoteResolver
}

// NewExchangeHandler builds the handler.
func NewExchangeHandler(resolver QuoteResolver) *ExchangeHandler {
	return &ExchangeHandler{resolver: resolver}
}

// GetQuote handles GET /exchange/quote?currency=USD&date=2025-01-15.
// The date defaults to today.  A not_found quote is a 200 with the status
// flag, never a 404.
func (h *ExchangeHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("currency")
	if currency == "" {
		writeAppError(w, errors.InvalidParam("currency query parameter is required"))
		return
	}

	date := time.Now().UTC()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse(dateLayout, raw)
		if err != nil {
			writeAppError(w, errors.InvalidParam("date must be YYYY-MM-DD"))
			return
		}
		date = parsed
	}

	quote, err := h.resolver.Resolve(r.Context(), currency, date)
	if err != nil {
		writeAppError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

//Personal.AI order the ending
