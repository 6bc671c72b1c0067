package pipeline

import (
	"sort"
	"sync"

	"github.com/kaljuvee/postwave/pkg/models"
)

// Store is the in-memory registry of live run handles. Runs are transient:
// nothing survives a process restart.
type Store struct {
	mu   sync.RWMutex
	runs map[string]*models.RunState
}

func NewStore() *Store {
	return &Store{
		runs: make(map[string]*models.RunState),
	}
}

func (s *Store) Put(run *models.RunState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[run.ID] = run
}

// Get returns the live run handle. The engine keeps mutating it under its own
// lock; concurrent readers must use Engine.Snapshot instead of reading the
// returned state directly.
func (s *Store) Get(id string) (*models.RunState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	if !ok {
		return nil, ErrRunNotFound
	}

	return run, nil
}

// List returns all runs ordered by creation time, newest first.
func (s *Store) List() []*models.RunState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]*models.RunState, 0, len(s.runs))
	for _, run := range s.runs {
		runs = append(runs, run)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	return runs
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.runs[id]; !ok {
		return ErrRunNotFound
	}

	delete(s.runs, id)

	return nil
}
