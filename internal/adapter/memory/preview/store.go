// Package preview implements an in-process bulk preview store. It suits
// single-instance deployments and tests; previews do not survive restarts.
package preview

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/freeup86/trainingpulse-sub004/internal/domain"
)

// Store keeps previews in a mutex-guarded map.
type Store struct {
	mu       sync.Mutex
	previews map[string]domain.PreviewRecord
}

// New creates an empty store.
func New() *Store {
	return &Store{previews: make(map[string]domain.PreviewRecord)}
}

func (s *Store) Create(_ context.Context, rec *domain.PreviewRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.previews[rec.Token]; ok {
		return fmt.Errorf("preview %s: %w", rec.Token, domain.ErrAlreadyExists)
	}
	s.previews[rec.Token] = clone(*rec)
	return nil
}

func (s *Store) Get(_ context.Context, token string) (*domain.PreviewRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.previews[token]
	if !ok {
		return nil, fmt.Errorf("preview %s: %w", token, domain.ErrNotFound)
	}
	out := clone(rec)
	return &out, nil
}

func (s *Store) Transition(_ context.Context, token string, from, to domain.PreviewState, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.previews[token]
	if !ok {
		return fmt.Errorf("preview %s: %w", token, domain.ErrNotFound)
	}
	if rec.State != from {
		return fmt.Errorf("preview %s is %s, not %s: %w", token, rec.State, from, domain.ErrConflict)
	}
	rec.State = to
	rec.UpdatedAt = at
	s.previews[token] = rec
	return nil
}

func (s *Store) ExpireBefore(_ context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for token, rec := range s.previews {
		if rec.State == domain.PreviewStatePending && rec.IsExpired(now) {
			rec.State = domain.PreviewStateExpired
			rec.UpdatedAt = now
			s.previews[token] = rec
			n++
		}
	}
	return n, nil
}

func (s *Store) PurgeBefore(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for token, rec := range s.previews {
		if rec.State.IsTerminal() && rec.UpdatedAt.Before(cutoff) {
			delete(s.previews, token)
			n++
		}
	}
	return n, nil
}

func clone(rec domain.PreviewRecord) domain.PreviewRecord {
	rec.MatchedIDs = slices.Clone(rec.MatchedIDs)
	rec.Criteria.IDs = slices.Clone(rec.Criteria.IDs)
	return rec
}
