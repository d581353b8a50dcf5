package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/TheMathDoctor/random-walks/internal/walk"
)

// InMemoryRunStore implements RunStore with a map. It is used by tests
// and by one-shot commands that don't need persistence.
type InMemoryRunStore struct {
	mu   sync.RWMutex
	runs map[string]Run
}

// NewInMemoryRunStore creates an empty in-memory store.
func NewInMemoryRunStore() *InMemoryRunStore {
	return &InMemoryRunStore{runs: make(map[string]Run)}
}

// SaveRun stores a run, assigning an ID if empty.
func (s *InMemoryRunStore) SaveRun(ctx context.Context, run Run) (string, error) {
	if err := validateRun(&run); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs[run.ID] = cloneRun(run)
	return run.ID, nil
}

// GetRun returns the run with the given ID, or nil if absent.
func (s *InMemoryRunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, nil
	}
	out := cloneRun(run)
	return &out, nil
}

// ListRuns returns runs matching the filter, newest first.
func (s *InMemoryRunStore) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var runs []Run
	for _, run := range s.runs {
		if filter.Kind != "" && run.Kind != filter.Kind {
			continue
		}
		runs = append(runs, cloneRun(run))
	}

	sort.Slice(runs, func(i, j int) bool {
		if !runs[i].CreatedAt.Equal(runs[j].CreatedAt) {
			return runs[i].CreatedAt.After(runs[j].CreatedAt)
		}
		return runs[i].ID > runs[j].ID
	})

	if filter.Limit > 0 && len(runs) > filter.Limit {
		runs = runs[:filter.Limit]
	}
	return runs, nil
}

// DeleteRun removes the run with the given ID.
func (s *InMemoryRunStore) DeleteRun(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return fmt.Errorf("run not found: %s", id)
	}
	delete(s.runs, id)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *InMemoryRunStore) Close() error { return nil }

// cloneRun deep-copies a run so callers can't mutate stored state.
func cloneRun(run Run) Run {
	dist := walk.NewDistribution(run.Distribution.Nodes)
	for node, count := range run.Distribution.Counts {
		dist.Counts[node] = count
	}
	run.Distribution = dist
	return run
}
