package fx

import (
	"math"
	"time"
)

// DefaultMaxAge is the freshness window of a cached quote: a non-forced
// refresh inside this window performs no network fetch.
const DefaultMaxAge = 5 * time.Minute

// Snapshot is the state of the single rate-cache slot. A failed fetch
// leaves Buy and Sell zeroed, which the validity checks treat as
// "rate unavailable" until a later refresh succeeds.
type Snapshot struct {
	Source       string
	Buy          float64
	Sell         float64
	UpdatedLabel string
	FetchedAt    time.Time
}

func validRate(r float64) bool {
	return r > 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}

// HasSellRate reports whether the snapshot carries a usable sell rate.
// Conversions to local currency always use the sell rate.
func (s Snapshot) HasSellRate() bool {
	return validRate(s.Sell)
}

// HasRates reports whether both rates of the snapshot are usable.
func (s Snapshot) HasRates() bool {
	return validRate(s.Buy) && validRate(s.Sell)
}

// IsFresh reports whether the slot can serve a non-forced refresh for
// the given source: same source, a usable sell rate from a successful
// fetch, and an age below maxAge.
func (s Snapshot) IsFresh(source string, now time.Time, maxAge time.Duration) bool {
	if s.Source != source || s.FetchedAt.IsZero() {
		return false
	}
	if !s.HasSellRate() {
		return false
	}
	return now.Sub(s.FetchedAt) < maxAge
}
