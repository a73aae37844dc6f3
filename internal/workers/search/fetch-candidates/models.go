// internal/workers/search/fetch-candidates/models.go
package fetchcandidates

import "intel-search-workers/internal/ranking"

type Input struct {
	Query  string `json:"query"`
	Limit  int    `json:"limit"`
	Source string `json:"source"`
}

type Output struct {
	Candidates     []ranking.Candidate `json:"candidates"`
	CandidateCount int                 `json:"candidateCount"`
	Source         string              `json:"source"`
}
