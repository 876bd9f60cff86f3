// Package exchange implements the infrastructure side of exchange-rate
// resolution: the HTTP client for the official daily-quotation authority and
// a cache-backed decorator over it.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/config"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// wireDateLayout is the authority's query date format.  Bit-exact contract:
// month first.
const wireDateLayout = "01-02-2006"

// authorityName labels quotes resolved through this client.
const authorityName = "ptax"

// maxErrorBody caps how much of an upstream error body is kept for context.
const maxErrorBody = 512

// quotationResponse is the authority's envelope: a list of quotations for
// the requested day, possibly empty.
type quotationResponse struct {
	Value []struct {
		BuyQuotation  json.Number `json:"cotacaoCompra"`
		SellQuotation json.Number `json:"cotacaoVenda"`
		QuotedAt      string      `json:"dataHoraCotacao"`
	} `json:"value"`
}

// AuthorityClient queries the official daily-quotation service.  It
// implements the domain RateSource contract.
type AuthorityClient struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// NewAuthorityClient builds a client from configuration.  The per-request
// timeout guards against the third-party service stalling a resolution.
func NewAuthorityClient(cfg *config.ExchangeAuthorityConfig, logger logging.Logger) *AuthorityClient {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	timeout := cfg.RequestTimeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &AuthorityClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("exchange-authority"),
	}
}

// Name implements RateSource.
func (c *AuthorityClient) Name() string { return authorityName }

// DailyQuote fetches the sell quotation published for currency on day.
// An empty quotation list is a normal "no publication" answer (ok=false),
// not an error.
func (c *AuthorityClient) DailyQuote(ctx context.Context, currency string, day time.Time) (decimal.Decimal, bool, error) {
	endpoint := c.quoteURL(currency, day)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return decimal.Zero, false, errors.Wrap(err, errors.ErrCodeInternal, "failed to build authority request")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, false, errors.Wrap(err, errors.ErrCodeExchangeAuthorityUnavailable, "authority request failed").
			WithDetail("endpoint=" + endpoint)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return decimal.Zero, false, errors.New(errors.ErrCodeExchangeAuthorityUnavailable,
			fmt.Sprintf("authority returned status %d", resp.StatusCode)).
			WithDetail(string(body))
	}

	var parsed quotationResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return decimal.Zero, false, errors.Wrap(err, errors.ErrCodeExchangeResponseMalformed, "failed to decode authority response")
	}

	if len(parsed.Value) == 0 {
		return decimal.Zero, false, nil
	}

	// The sell quotation of the last entry for the day is the published rate.
	sell := parsed.Value[len(parsed.Value)-1].SellQuotation
	rate, err := decimal.NewFromString(sell.String())
	if err != nil {
		return decimal.Zero, false, errors.Wrap(err, errors.ErrCodeExchangeResponseMalformed, "sell quotation is not numeric").
			WithDetail("value=" + sell.String())
	}
	if !rate.IsPositive() {
		return decimal.Zero, false, errors.New(errors.ErrCodeExchangeResponseMalformed, "sell quotation must be positive").
			WithDetail("value=" + rate.String())
	}
	return rate, true, nil
}

// quoteURL builds the per-day quotation query.
func (c *AuthorityClient) quoteURL(currency string, day time.Time) string {
	params := url.Values{}
	params.Set("@moeda", fmt.Sprintf("'%s'", currency))
	params.Set("@dataCotacao", fmt.Sprintf("'%s'", day.Format(wireDateLayout)))
	params.Set("$format", "json")
	return c.baseURL + "/CotacaoMoedaDia(moeda=@moeda,dataCotacao=@dataCotacao)?" + params.Encode()
}

//Personal.AI order the ending
