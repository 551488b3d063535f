package store

import (
	"context"
	"fmt"
	"sync"

	"hrms-backend/internal/domain"
)

// Persister loads and saves the whole document graph. There is no partial
// write API: every save replaces the previous document.
type Persister interface {
	Load(ctx context.Context) (*domain.Graph, error)
	Save(ctx context.Context, g *domain.Graph) error
}

// Store owns the in-memory document graph. Reads run under a shared lock;
// mutations run under the write lock and flush the whole graph through the
// persister before returning, so a mutation and its duplicate checks are
// atomic with respect to other callers.
type Store struct {
	mu        sync.RWMutex
	graph     *domain.Graph
	persister Persister
}

// Open loads the graph through the persister and returns a ready store.
func Open(ctx context.Context, p Persister) (*Store, error) {
	g, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if g == nil {
		g = domain.NewGraph()
	}
	if g.Counters == nil {
		g.Counters = make(map[string]int)
	}
	return &Store{graph: g, persister: p}, nil
}

// View runs fn with read access to the graph. fn must not mutate it.
func (s *Store) View(fn func(g *domain.Graph) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(s.graph)
}

// Update runs fn with write access to the graph and flushes the whole
// document on success. If fn returns an error, nothing is flushed; fn must
// validate before mutating.
func (s *Store) Update(ctx context.Context, fn func(g *domain.Graph) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(s.graph); err != nil {
		return err
	}
	if err := s.persister.Save(ctx, s.graph); err != nil {
		return fmt.Errorf("flush store: %w", err)
	}
	return nil
}
