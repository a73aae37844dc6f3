// internal/fixtures/candidates.go
package fixtures

import "intel-search-workers/internal/ranking"

// Candidates returns a fresh copy of the demo universe used by local
// development and tests. Callers may modify the result freely.
func Candidates() []ranking.Candidate {
	return []ranking.Candidate{
		{
			ID:         "cand-1001",
			Name:       "John Smith",
			Location:   "Austin, TX USA",
			MatchScore: 92,
			Insights:   []string{"Court docket", "Business filing", "Social profile"},
			Status:     ranking.StatusLive,
			Updated:    "15m ago",
		},
		{
			ID:         "cand-1002",
			Name:       "Johnathan Smith",
			Location:   "Dallas, TX USA",
			MatchScore: 84,
			Insights:   []string{"Court docket", "Property record"},
			Status:     ranking.StatusLive,
			Updated:    "2h ago",
		},
		{
			ID:         "cand-1003",
			Name:       "Joanna Smith",
			Location:   "Nairobi, Nairobi County Kenya",
			MatchScore: 71,
			Insights:   []string{"Social profile"},
			Status:     ranking.StatusArchived,
			Updated:    "1d ago",
		},
		{
			ID:         "cand-1004",
			Name:       "Michael Johnson",
			Location:   "Houston, TX USA",
			MatchScore: 77,
			Insights:   []string{"Business filing", "Press mention"},
			Status:     ranking.StatusLive,
			Updated:    "5m ago",
		},
		{
			ID:         "cand-1005",
			Name:       "Emily Davis",
			Location:   "Chicago, IL USA",
			MatchScore: 68,
			Insights:   []string{"Press mention"},
			Status:     ranking.StatusArchived,
			Updated:    "3d ago",
		},
		{
			ID:         "cand-1006",
			Name:       "Robert Miles",
			Location:   "Phoenix, AZ USA",
			MatchScore: 63,
			Insights:   []string{"Property record", "Social profile"},
			Status:     ranking.StatusLive,
			Updated:    "45m ago",
		},
	}
}
