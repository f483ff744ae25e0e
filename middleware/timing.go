package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/matchbox"
)

// TimingStats accumulates dispatch timing per clause.
type TimingStats struct {
	mu      sync.Mutex
	entries map[string]*timingEntry
}

type timingEntry struct {
	count int64
	total time.Duration
	last  time.Duration
}

// ClauseStats is a snapshot of one clause's accumulated timing.
type ClauseStats struct {
	Count   int64
	Total   time.Duration
	Last    time.Duration
	Average time.Duration
}

// NewTimingStats creates an empty stats accumulator.
func NewTimingStats() *TimingStats {
	return &TimingStats{entries: make(map[string]*timingEntry)}
}

func (s *TimingStats) record(name string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		e = &timingEntry{}
		s.entries[name] = e
	}
	e.count++
	e.total += d
	e.last = d
}

// Stats returns a snapshot for a clause.
func (s *TimingStats) Stats(name string) (ClauseStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[name]
	if !ok {
		return ClauseStats{}, false
	}
	cs := ClauseStats{
		Count: e.count,
		Total: e.total,
		Last:  e.last,
	}
	if e.count > 0 {
		cs.Average = e.total / time.Duration(e.count)
	}
	return cs, true
}

// TimingPredicate records predicate evaluation timing under name.
func TimingPredicate(name string, stats *TimingStats) PredicateMiddleware {
	return func(pred matchbox.Predicate) matchbox.Predicate {
		return func(ctx context.Context, subject any, preds matchbox.Predicates) (bool, error) {
			start := time.Now()
			matched, err := pred(ctx, subject, preds)
			stats.record(name, time.Since(start))
			return matched, err
		}
	}
}

// TimingHandler records handler dispatch timing under name.
func TimingHandler(name string, stats *TimingStats) HandlerMiddleware {
	return func(handler matchbox.Handler) matchbox.Handler {
		return func(ctx context.Context, subject any) (any, error) {
			start := time.Now()
			outcome, err := handler(ctx, subject)
			stats.record(name, time.Since(start))
			return outcome, err
		}
	}
}
