// internal/workers/search/rank-batch/models.go
package rankbatch

import "intel-search-workers/internal/ranking"

type Query struct {
	Query       string `json:"query"`
	StateFilter string `json:"stateFilter"`
}

type Input struct {
	Queries    []Query             `json:"queries"`
	Candidates []ranking.Candidate `json:"candidates"`
}

type Result struct {
	Query       string `json:"query"`
	StateFilter string `json:"stateFilter"`
	ranking.SearchEngineResponse
}

type Output struct {
	Results []Result `json:"results"`
	Count   int      `json:"count"`
}
