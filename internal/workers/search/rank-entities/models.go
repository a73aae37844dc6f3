// internal/workers/search/rank-entities/models.go
package rankentities

import "intel-search-workers/internal/models"

type Input struct {
	Query         string                `json:"query"`
	StateFilter   string                `json:"stateFilter"`
	Organizations []models.Organization `json:"organizations"`
	Affiliates    []models.Affiliate    `json:"affiliates"`
}

type Output struct {
	SearchID string `json:"searchId"`
	models.SearchAPIResponse
}
