package memstore

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/cognicore/synsim/pkg/synsim/internalerr"
	"github.com/cognicore/synsim/pkg/synsim/store"
)

// Store is an in-memory implementation of store.Store for tests.
type Store struct {
	mu   sync.RWMutex
	runs map[string]store.Run
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{runs: make(map[string]store.Run)}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveRun stores a deep copy of the run.
func (s *Store) SaveRun(ctx context.Context, r store.Run) error {
	if r.ID == "" {
		return fmt.Errorf("run id is empty: %w", internalerr.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[r.ID] = copyRun(r, true)
	return nil
}

// GetRun returns a run without its predictions.
func (s *Store) GetRun(ctx context.Context, id string) (store.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return store.Run{}, fmt.Errorf("run %s: %w", id, internalerr.ErrNotFound)
	}
	return copyRun(r, false), nil
}

// ListRuns returns runs newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]store.Run, error) {
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]store.Run, 0, len(s.runs))
	for _, r := range s.runs {
		runs = append(runs, copyRun(r, false))
	}
	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// Predictions returns one set's predictions ordered by position.
func (s *Store) Predictions(ctx context.Context, runID, set string) ([]store.Prediction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[runID]
	if !ok {
		return nil, nil
	}
	named, ok := r.Set(set)
	if !ok || len(named.Predictions) == 0 {
		return nil, nil
	}
	out := append([]store.Prediction(nil), named.Predictions...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func copyRun(r store.Run, withPredictions bool) store.Run {
	out := r
	out.Files = append([]string(nil), r.Files...)
	out.Sets = make([]store.Set, len(r.Sets))
	for i, set := range r.Sets {
		out.Sets[i] = set
		out.Sets[i].Predictions = nil
		if withPredictions {
			out.Sets[i].Predictions = append([]store.Prediction(nil), set.Predictions...)
		}
	}
	return out
}
