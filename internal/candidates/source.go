// internal/candidates/source.go

// Package candidates provides the candidate universes the ranking engine
// scores. Sources return records unscored and in storage order.
package candidates

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"intel-search-workers/internal/ranking"
)

var (
	ErrUnknownSource = errors.New("unknown candidate source")
	ErrMissingIndex  = errors.New("index name is required")
	ErrIndexNotFound = errors.New("index not found")
	ErrMissingTable  = errors.New("table name is required")
)

// Request narrows a fetch. Limit <= 0 means no limit.
type Request struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

type Source interface {
	Name() string
	Fetch(ctx context.Context, req Request) ([]ranking.Candidate, error)
}

// Registry maps source names to sources. Safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{sources: make(map[string]Source, len(sources))}
	for _, s := range sources {
		r.Register(s)
	}
	return r
}

// Register adds s, replacing any source with the same name.
func (r *Registry) Register(s Source) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[s.Name()] = s
}

func (r *Registry) Get(name string) (Source, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, name)
	}
	return s, nil
}

func (r *Registry) Has(name string) bool {
	_, err := r.Get(name)
	return err == nil
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.sources))
	for name := range r.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cloneCandidate(c ranking.Candidate) ranking.Candidate {
	c.Insights = append([]string(nil), c.Insights...)
	return c
}
