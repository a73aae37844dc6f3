// internal/workers/search/rank-candidates/models.go
package rankcandidates

import "intel-search-workers/internal/ranking"

// Input carries the universe inline, or names a source to fetch it from when
// Candidates is absent.
type Input struct {
	Query       string               `json:"query"`
	StateFilter string               `json:"stateFilter"`
	Candidates  *[]ranking.Candidate `json:"candidates,omitempty"`
	Source      string               `json:"source,omitempty"`
	Limit       int                  `json:"limit,omitempty"`
}

type Output struct {
	SearchID string `json:"searchId"`
	ranking.SearchEngineResponse
}
