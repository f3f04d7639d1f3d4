package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/sweetwater/pkg/domain"
)

// Store keeps the latest snapshot of each run in memory. It implements
// ports.Presenter so it can sit in the orchestrator fan-out.
// Safe for concurrent use.
type Store struct {
	data   map[string]domain.Snapshot
	latest string
	mu     sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]domain.Snapshot),
	}
}

// Present records snap as the latest snapshot of its run.
func (s *Store) Present(ctx context.Context, snap domain.Snapshot) error {
	copied := clone(snap)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[snap.RunID] = copied
	s.latest = snap.RunID
	return nil
}

// Load retrieves the latest snapshot of a run.
func (s *Store) Load(ctx context.Context, runID string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.data[runID]
	if !ok {
		return domain.Snapshot{}, domain.ErrRunNotFound
	}
	return clone(snap), nil
}

// Latest retrieves the most recently presented snapshot across all runs.
func (s *Store) Latest(ctx context.Context) (domain.Snapshot, error) {
	s.mu.RLock()
	id := s.latest
	s.mu.RUnlock()

	if id == "" {
		return domain.Snapshot{}, domain.ErrRunNotFound
	}
	return s.Load(ctx, id)
}

// Delete forgets a run.
func (s *Store) Delete(ctx context.Context, runID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, runID)
	if s.latest == runID {
		s.latest = ""
	}
	return nil
}

// List returns the known run IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]string, 0, len(s.data))
	for id := range s.data {
		runs = append(runs, id)
	}
	sort.Strings(runs)
	return runs, nil
}

// clone copies everything a snapshot points to so callers can't mutate stored
// snapshots through shared pointers.
func clone(snap domain.Snapshot) domain.Snapshot {
	if snap.Persona != nil {
		p := *snap.Persona
		p.Rewards = append([]string(nil), p.Rewards...)
		snap.Persona = &p
	}
	if snap.Card != nil {
		c := *snap.Card
		snap.Card = &c
	}
	if snap.Board != nil {
		b := *snap.Board
		b.Occupant = append([]domain.Cell(nil), b.Occupant...)
		if b.Pickup != nil {
			pk := *b.Pickup
			b.Pickup = &pk
		}
		snap.Board = &b
	}
	return snap
}
