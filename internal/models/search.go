// internal/models/search.go
package models

import "intel-search-workers/internal/ranking"

type Organization struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Headquarters string         `json:"headquarters"`
	Sector       string         `json:"sector,omitempty"`
	MatchScore   float64        `json:"match_score"`
	Signals      []string       `json:"signals"`
	Status       ranking.Status `json:"status"`
	LastUpdated  string         `json:"last_updated"`
}

func (o Organization) Profile() ranking.Profile {
	return ranking.Profile{
		Name:      o.Name,
		Location:  o.Headquarters,
		BaseScore: o.MatchScore,
		Signals:   o.Signals,
		Status:    o.Status,
		Updated:   o.LastUpdated,
	}
}

type Affiliate struct {
	ID             string         `json:"id"`
	FullName       string         `json:"full_name"`
	Location       string         `json:"location"`
	OrganizationID string         `json:"organization_id,omitempty"`
	Role           string         `json:"role,omitempty"`
	MatchScore     float64        `json:"match_score"`
	Signals        []string       `json:"signals"`
	Status         ranking.Status `json:"status"`
	LastUpdated    string         `json:"last_updated"`
}

func (a Affiliate) Profile() ranking.Profile {
	return ranking.Profile{
		Name:      a.FullName,
		Location:  a.Location,
		BaseScore: a.MatchScore,
		Signals:   a.Signals,
		Status:    a.Status,
		Updated:   a.LastUpdated,
	}
}

// SearchAPIResponse is the shape returned to API consumers for a combined
// organization and affiliate search.
type SearchAPIResponse struct {
	QueryTimeMs               int64                          `json:"query_time_ms"`
	Query                     string                         `json:"query"`
	StateFilter               string                         `json:"state_filter"`
	Organizations             []ranking.Ranked[Organization] `json:"organizations"`
	RelatedOrganizations      []ranking.Ranked[Organization] `json:"related_organizations"`
	Affiliates                []ranking.Ranked[Affiliate]    `json:"affiliates"`
	RelatedAffiliates         []ranking.Ranked[Affiliate]    `json:"related_affiliates"`
	TotalMatchedOrganizations int                            `json:"total_matched_organizations"`
	TotalMatchedAffiliates    int                            `json:"total_matched_affiliates"`
	OrganizationMeta          ranking.Meta                   `json:"organization_meta"`
	AffiliateMeta             ranking.Meta                   `json:"affiliate_meta"`
}

// NewSearchAPIResponse assembles the API payload from two engine runs.
func NewSearchAPIResponse(query, stateFilter string, orgs ranking.EntityResponse[Organization], affs ranking.EntityResponse[Affiliate], queryTimeMs int64) SearchAPIResponse {
	return SearchAPIResponse{
		QueryTimeMs:               queryTimeMs,
		Query:                     query,
		StateFilter:               stateFilter,
		Organizations:             orgs.Primary,
		RelatedOrganizations:      orgs.Related,
		Affiliates:                affs.Primary,
		RelatedAffiliates:         affs.Related,
		TotalMatchedOrganizations: matched(orgs),
		TotalMatchedAffiliates:    matched(affs),
		OrganizationMeta:          orgs.Meta,
		AffiliateMeta:             affs.Meta,
	}
}

// matched is zero when the primary list is a fallback, whose entries are
// tagged direct but did not cover the query.
func matched[T ranking.Rankable](res ranking.EntityResponse[T]) int {
	if res.Meta.PrimaryFallback {
		return 0
	}
	return len(res.Primary)
}
