// internal/candidates/static.go
package candidates

import (
	"context"

	"intel-search-workers/internal/ranking"
)

const StaticSourceName = "static"

// StaticSource serves a fixed in-memory universe.
type StaticSource struct {
	name       string
	candidates []ranking.Candidate
}

func NewStaticSource(candidates []ranking.Candidate) *StaticSource {
	return NewNamedStaticSource(StaticSourceName, candidates)
}

func NewNamedStaticSource(name string, candidates []ranking.Candidate) *StaticSource {
	own := make([]ranking.Candidate, len(candidates))
	for i, c := range candidates {
		own[i] = cloneCandidate(c)
	}
	return &StaticSource{name: name, candidates: own}
}

func (s *StaticSource) Name() string { return s.name }

// Fetch returns copies so callers cannot alter the universe.
func (s *StaticSource) Fetch(ctx context.Context, req Request) ([]ranking.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n := len(s.candidates)
	if req.Limit > 0 && req.Limit < n {
		n = req.Limit
	}
	out := make([]ranking.Candidate, n)
	for i := 0; i < n; i++ {
		out[i] = cloneCandidate(s.candidates[i])
	}
	return out, nil
}
