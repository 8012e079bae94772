package fx

import (
	"context"
	"sync"
	"time"

	appErrors "gastos/errors"
	"gastos/logging"
)

const DefaultSource = "oficial"

// Fetcher is the one network dependency of the cache.
type Fetcher interface {
	FetchQuote(ctx context.Context, source string) (Quote, error)
}

// Service owns the single cache slot, keyed by the currently selected
// source. The slot is mutex-guarded because the HTTP host is
// concurrent, but overlapping refreshes are not coalesced: each one
// fetches independently and the last fetch to complete overwrites the
// slot.
type Service struct {
	mu       sync.Mutex
	fetcher  Fetcher
	snapshot Snapshot
	maxAge   time.Duration
	now      func() time.Time
}

func NewService(fetcher Fetcher, maxAge time.Duration) *Service {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	return &Service{
		fetcher:  fetcher,
		snapshot: Snapshot{Source: DefaultSource},
		maxAge:   maxAge,
		now:      time.Now,
	}
}

// Snapshot returns the current cache state.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// SelectedSource returns the source key the cache slot is keyed by.
func (s *Service) SelectedSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot.Source
}

// Refresh serves the cached snapshot when it is fresh for source and
// force is false; otherwise it performs one fetch. On success the slot
// is replaced with the new quote. On failure the slot is replaced with
// an unavailable entry for source, wiping any previous rate, and a
// RATE_UNAVAILABLE error is returned next to that entry. An empty
// source means the currently selected one.
func (s *Service) Refresh(ctx context.Context, source string, force bool) (Snapshot, error) {
	s.mu.Lock()
	if source == "" {
		source = s.snapshot.Source
	}
	if !force && s.snapshot.IsFresh(source, s.now(), s.maxAge) {
		snap := s.snapshot
		s.mu.Unlock()
		return snap, nil
	}
	s.mu.Unlock()

	// The fetch runs outside the lock; with overlapping refreshes the
	// last one to complete wins.
	quote, err := s.fetcher.FetchQuote(ctx, source)
	fetchedAt := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		logging.Logger.Warnf("rate refresh failed for source '%s': %v", source, err)
		s.snapshot = Snapshot{Source: source, FetchedAt: fetchedAt}
		return s.snapshot, appErrors.ErrorResponse{
			Code:    appErrors.ErrRateUnavailable,
			Message: "Exchange rate is unavailable, try again later or use ARS.",
		}
	}

	s.snapshot = Snapshot{
		Source:       quote.Source,
		Buy:          quote.Buy,
		Sell:         quote.Sell,
		UpdatedLabel: quote.UpdatedLabel,
		FetchedAt:    fetchedAt,
	}
	logging.Logger.Debugf("rate refreshed: source=%s buy=%.2f sell=%.2f", s.snapshot.Source, s.snapshot.Buy, s.snapshot.Sell)
	return s.snapshot, nil
}
