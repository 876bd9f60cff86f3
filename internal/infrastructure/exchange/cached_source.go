package exchange

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/OLVCORE/smartimport/internal/domain/exchange"
	"github.com/OLVCORE/smartimport/internal/infrastructure/database/redis"
	"github.com/OLVCORE/smartimport/internal/infrastructure/monitoring/logging"
)

// cachedDay is the cache record for one currency/day lookup.  Published
// false means the authority answered "no publication" — negative answers are
// cached too, since a past day with no quote will never gain one.
type cachedDay struct {
	Rate      decimal.Decimal `json:"rate"`
	Published bool            `json:"published"`
}

// CachedSource decorates a RateSource with a Redis read-through cache.
// Cache failures degrade to the underlying source; they never fail a
// resolution.
type CachedSource struct {
	next   domain.RateSource
	cache  redis.Cache
	ttl    time.Duration
	logger logging.Logger
}

// NewCachedSource wraps next with the given cache.
func NewCachedSource(next domain.RateSource, cache redis.Cache, ttl time.Duration, logger logging.Logger) *CachedSource {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	if ttl == 0 {
		ttl = 12 * time.Hour
	}
	return &CachedSource{next: next, cache: cache, ttl: ttl, logger: logger.Named("exchange-cache")}
}

// Name implements RateSource, delegating provenance to the wrapped source.
func (s *CachedSource) Name() string { return s.next.Name() }

// DailyQuote implements RateSource with a read-through cache per
// currency/day pair.
func (s *CachedSource) DailyQuote(ctx context.Context, currency string, day time.Time) (decimal.Decimal, bool, error) {
	key := quoteKey(currency, day)

	var cached cachedDay
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached.Rate, cached.Published, nil
	} else if err != redis.ErrCacheMiss {
		s.logger.Warn("quote cache read failed, falling through to authority",
			logging.String("key", key), logging.Err(err))
	}

	rate, ok, err := s.next.DailyQuote(ctx, currency, day)
	if err != nil {
		return decimal.Zero, false, err
	}

	if setErr := s.cache.Set(ctx, key, cachedDay{Rate: rate, Published: ok}, s.ttl); setErr != nil {
		s.logger.Warn("quote cache write failed",
			logging.String("key", key), logging.Err(setErr))
	}
	return rate, ok, nil
}

func quoteKey(currency string, day time.Time) string {
	return fmt.Sprintf("fx:%s:%s", currency, day.Format("2006-01-02"))
}

//Personal.AI order the ending
