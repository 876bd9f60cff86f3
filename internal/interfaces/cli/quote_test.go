package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

type fakeResolver struct {
	quote *exchange.Quote
	err   error

	lastCurrency string
	lastDate     time.Time
}

func (f *fakeResolver) Resolve(_ context.Context, currency string, requestedDate time.Time) (*exchange.Quote, error) {
	f.lastCurrency = currency
	f.lastDate = requestedDate
	if f.err != nil {
		return nil, f.err
	}
	return f.quote, nil
}

func TestQuoteCommand(t *testing.T) {
	rate := decimal.RequireFromString("5.25")
	resolver := &fakeResolver{quote: &exchange.Quote{
		Currency: "USD",
		Status:   exchange.StatusFound,
		Rate:     &rate,
		Source:   "ptax",
		Attempts: 1,
	}}

	cmd := NewQuoteCmd(resolver, logging.NewNopLogger())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--currency", "USD", "--date", "2025-01-15"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "USD", resolver.lastCurrency)
	assert.Equal(t, 2025, resolver.lastDate.Year())
	assert.Contains(t, out.String(), "5.25")
	assert.Empty(t, errOut.String())
}

func TestQuoteCommand_WindowExhaustedWarns(t *testing.T) {
	resolver := &fakeResolver{quote: &exchange.Quote{
		Currency: "USD",
		Status:   exchange.StatusNotFound,
		Attempts: 7,
	}}

	cmd := NewQuoteCmd(resolver, logging.NewNopLogger())
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--currency", "USD", "--date", "2025-01-15"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), "fallback window")
	assert.Contains(t, out.String(), "not_found")
}

func TestQuoteCommand_BadDate(t *testing.T) {
	cmd := NewQuoteCmd(&fakeResolver{}, logging.NewNopLogger())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--currency", "USD", "--date", "15/01/2025"})

	assert.Error(t, cmd.Execute())
}

func TestQuoteCommand_RequiresCurrency(t *testing.T) {
	cmd := NewQuoteCmd(&fakeResolver{}, logging.NewNopLogger())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}

//Personal.AI order the ending
