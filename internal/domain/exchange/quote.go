// Package exchange implements official daily exchange-rate resolution with a
// bounded backward calendar-day fallback.  The resolver never treats "no
// published quote" as an error: weekends, holidays and late publications are
// normal conditions, answered by walking back one day at a time inside a fixed
// window.
package exchange

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the outcome of a quote resolution.
type Status string

const (
	// StatusFound means a published quote was located on or before the
	// requested date, inside the fallback window.
	StatusFound Status = "found"

	// StatusNotFound means every day in the fallback window was exhausted
	// without a published quote.
	StatusNotFound Status = "not_found"
)

// Quote is the result of one resolution call.  Quotes are created per call and
// never persisted by this package; callers may cache them.
//
// Invariants: ResolvedDate ≤ RequestedDate; Rate is nil iff Status is
// StatusNotFound.
type Quote struct {
	Currency      string           `json:"currency"`
	RequestedDate time.Time        `json:"requested_date"`
	ResolvedDate  time.Time        `json:"resolved_date,omitempty"`
	Rate          *decimal.Decimal `json:"rate,omitempty"`
	Source        string           `json:"source"`
	Status        Status           `json:"status"`
	Attempts      int              `json:"attempts"`
}

// Found reports whether the quote carries a usable rate.
func (q *Quote) Found() bool {
	return q != nil && q.Status == StatusFound && q.Rate != nil
}

// Day truncates t to a calendar date in UTC.  All resolver arithmetic is done
// on calendar days; wall-clock components are irrelevant to the authority.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// searchWindow materialises the finite, ordered sequence of candidate dates
// for a resolution: the requested day itself followed by maxAttempts−1 strictly
// earlier days.  Making the window an explicit value (rather than a loop
// counter buried in the resolver) keeps the bound independently testable.
func searchWindow(requested time.Time, maxAttempts int) []time.Time {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	days := make([]time.Time, 0, maxAttempts)
	d := Day(requested)
	for i := 0; i < maxAttempts; i++ {
		days = append(days, d.AddDate(0, 0, -i))
	}
	return days
}

//Personal.AI order the ending
