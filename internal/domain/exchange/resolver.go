package exchange

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
	"github.com/OLVCORE/smartimport/pkg/errors"
)

// DefaultMaxAttempts is the size of the backward fallback window, inclusive of
// the requested date itself.  External callers depend on this exact bound.
const DefaultMaxAttempts = 7

// localSourceLabel tags quotes answered without consulting the authority.
const localSourceLabel = "local"

var currencyPattern = regexp.MustCompile(`^[A-Z]{3}$`)

// RateSource supplies the published quotation for a single calendar day.
// Implementations live in the infrastructure layer (HTTP authority client,
// cached decorator); the domain only sees this contract.
type RateSource interface {
	// DailyQuote returns the sell quotation published for currency on day.
	// ok is false when the authority has no publication for that day — this
	// is a normal condition, not an error.  err is reserved for transport
	// failures.
	DailyQuote(ctx context.Context, currency string, day time.Time) (rate decimal.Decimal, ok bool, err error)

	// Name identifies the source in quote provenance labels.
	Name() string
}

// Resolver resolves an official daily exchange rate for a currency, walking
// backward from the requested date until a publication is found or the window
// is exhausted.  It holds no mutable state and is safe for concurrent use.
type Resolver struct {
	source        RateSource
	localCurrency string
	maxAttempts   int
	logger        logging.Logger
}

// ResolverOption customises a Resolver.
type ResolverOption func(*Resolver)

// WithMaxAttempts overrides the fallback window size (inclusive of the first
// attempt).  Values below 1 are coerced to 1.
func WithMaxAttempts(n int) ResolverOption {
	return func(r *Resolver) {
		if n < 1 {
			n = 1
		}
		r.maxAttempts = n
	}
}

// WithLocalCurrency sets the currency that short-circuits to rate 1.0 with no
// network call.  Defaults to BRL.
func WithLocalCurrency(code string) ResolverOption {
	return func(r *Resolver) { r.localCurrency = strings.ToUpper(code) }
}

// NewResolver constructs a Resolver over the given source.
func NewResolver(source RateSource, logger logging.Logger, opts ...ResolverOption) *Resolver {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	r := &Resolver{
		source:        source,
		localCurrency: "BRL",
		maxAttempts:   DefaultMaxAttempts,
		logger:        logger.Named("exchange"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve finds the official rate for currency as of requestedDate.
//
// The local currency resolves immediately to 1.0 without touching the source.
// Otherwise each candidate day in the window is tried in order; a transport
// failure on an individual day is logged and treated as "no quote that day".
// Only context cancellation or deadline expiry aborts the search and surfaces
// as an error.  A fully exhausted window yields a StatusNotFound quote, not
// an error.
func (r *Resolver) Resolve(ctx context.Context, currency string, requestedDate time.Time) (*Quote, error) {
	currency = strings.ToUpper(strings.TrimSpace(currency))
	if !currencyPattern.MatchString(currency) {
		return nil, errors.New(errors.ErrCodeExchangeCurrencyInvalid, "currency must be a 3-letter code").
			WithDetail("got=" + currency)
	}

	requested := Day(requestedDate)

	if currency == r.localCurrency {
		one := decimal.NewFromInt(1)
		return &Quote{
			Currency:      currency,
			RequestedDate: requested,
			ResolvedDate:  requested,
			Rate:          &one,
			Source:        localSourceLabel,
			Status:        StatusFound,
			Attempts:      0,
		}, nil
	}

	attempts := 0
	for _, day := range searchWindow(requested, r.maxAttempts) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeTimeout, "exchange-rate resolution aborted").
				WithDetail("currency=" + currency)
		}

		attempts++
		rate, ok, err := r.source.DailyQuote(ctx, currency, day)
		switch {
		case err != nil:
			// Per-day transport failures do not stop the search.
			r.logger.Warn("rate attempt failed, stepping back one day",
				logging.String("currency", currency),
				logging.Time("day", day),
				logging.Int("attempt", attempts),
				logging.Err(err),
			)
		case !ok:
			r.logger.Debug("no publication for day",
				logging.String("currency", currency),
				logging.Time("day", day),
				logging.Int("attempt", attempts),
			)
		default:
			r.logger.Info("rate resolved",
				logging.String("currency", currency),
				logging.Time("requested", requested),
				logging.Time("resolved", day),
				logging.Int("attempts", attempts),
			)
			return &Quote{
				Currency:      currency,
				RequestedDate: requested,
				ResolvedDate:  day,
				Rate:          &rate,
				Source:        r.source.Name(),
				Status:        StatusFound,
				Attempts:      attempts,
			}, nil
		}
	}

	r.logger.Warn("fallback window exhausted",
		logging.String("currency", currency),
		logging.Time("requested", requested),
		logging.Int("attempts", attempts),
	)
	return &Quote{
		Currency:      currency,
		RequestedDate: requested,
		Source:        r.source.Name(),
		Status:        StatusNotFound,
		Attempts:      attempts,
	}, nil
}

//Personal.AI order the ending
