package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

type stubResolver struct {
	quote *exchange.Quote
	err   error

	lastCurrency string
	lastDate     time.Time
}

func (s *stubResolver) Resolve(_ context.Context, currency string, requestedDate time.Time) (*exchange.Quote, error) {
	s.lastCurrency = currency
	s.lastDate = requestedDate
	if s.err != nil {
		return nil, s.err
	}
	return s.quote, nil
}

func TestExchangeHandler_GetQuote(t *testing.T) {
	rate := decimal.RequireFromString("5.4321")
	resolver := &stubResolver{quote: &exchange.Quote{
		Currency: "USD",
		Status:   exchange.StatusFound,
		Rate:     &rate,
		Source:   "ptax",
		Attempts: 1,
	}}
	h := NewExchangeHandler(resolver)

	req := httptest.NewRequest(http.MethodGet, "/exchange/quote?currency=USD&date=2025-01-15", nil)
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "USD", resolver.lastCurrency)
	assert.Equal(t, 2025, resolver.lastDate.Year())

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "found", body["status"])
	assert.Equal(t, "5.4321", body["rate"])
}

func TestExchangeHandler_GetQuote_MissingCurrency(t *testing.T) {
	h := NewExchangeHandler(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/exchange/quote", nil)
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExchangeHandler_GetQuote_BadDate(t *testing.T) {
	h := NewExchangeHandler(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/exchange/quote?currency=USD&date=15-01-2025", nil)
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExchangeHandler_GetQuote_NotFoundIsOK(t *testing.T) {
	resolver := &stubResolver{quote: &exchange.Quote{
		Currency: "USD",
		Status:   exchange.StatusNotFound,
		Attempts: 7,
	}}
	h := NewExchangeHandler(resolver)

	req := httptest.NewRequest(http.MethodGet, "/exchange/quote?currency=USD&date=2025-01-15", nil)
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	// Exhausting the fallback window is an answer, not an error.
	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not_found", body["status"])
}

func TestExchangeHandler_GetQuote_ResolverError(t *testing.T) {
	resolver := &stubResolver{err: errors.New(errors.ErrCodeExchangeCurrencyInvalid, "currency must be a 3-letter code")}
	h := NewExchangeHandler(resolver)

	req := httptest.NewRequest(http.MethodGet, "/exchange/quote?currency=usd!", nil)
	rec := httptest.NewRecorder()
	h.GetQuote(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, errors.ErrCodeExchangeCurrencyInvalid.String(), body.Code)
}

//Personal.AI order the ending
