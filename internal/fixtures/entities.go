// internal/fixtures/entities.go
package fixtures

import (
	"intel-search-workers/internal/models"
	"intel-search-workers/internal/ranking"
)

func Organizations() []models.Organization {
	return []models.Organization{
		{ID: "org-201", Name: "Smith Holdings LLC", Headquarters: "Austin, TX USA", Sector: "Real estate",
			MatchScore: 88, Signals: []string{"Business filing", "Property record"}, Status: ranking.StatusLive, LastUpdated: "30m ago"},
		{ID: "org-202", Name: "Lone Star Logistics", Headquarters: "Houston, TX USA", Sector: "Freight",
			MatchScore: 74, Signals: []string{"Business filing"}, Status: ranking.StatusLive, LastUpdated: "3h ago"},
		{ID: "org-203", Name: "Lakeshore Analytics", Headquarters: "Chicago, IL USA", Sector: "Software",
			MatchScore: 69, Signals: []string{"Social profile"}, Status: ranking.StatusArchived, LastUpdated: "2d ago"},
	}
}

func Affiliates() []models.Affiliate {
	return []models.Affiliate{
		{ID: "aff-301", FullName: "John Smith", Location: "Austin, TX USA", OrganizationID: "org-201", Role: "Director",
			MatchScore: 90, Signals: []string{"Business filing"}, Status: ranking.StatusLive, LastUpdated: "15m ago"},
		{ID: "aff-302", FullName: "Maria Lopez", Location: "Houston, TX USA", OrganizationID: "org-202", Role: "Officer",
			MatchScore: 71, Signals: []string{"Court docket"}, Status: ranking.StatusLive, LastUpdated: "5h ago"},
	}
}
