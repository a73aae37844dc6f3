// internal/ranking/models.go
package ranking

// AllStates is the state filter value that disables geographic alignment.
const AllStates = "All States"

type Status string

const (
	StatusLive     Status = "Live"
	StatusArchived Status = "Archived"
)

type MatchCategory string

const (
	MatchDirect   MatchCategory = "direct"
	MatchAdjacent MatchCategory = "adjacent"
)

// Profile is the view of an entity the scorer needs.
type Profile struct {
	Name      string
	Location  string
	BaseScore float64
	Signals   []string
	Status    Status
	Updated   string
}

// Rankable is implemented by every record shape the engine can rank.
type Rankable interface {
	Profile() Profile
}

// Candidate is a person or organization record eligible for matching.
type Candidate struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Location   string   `json:"location"`
	MatchScore float64  `json:"matchScore"`
	Insights   []string `json:"insights"`
	Status     Status   `json:"status"`
	Updated    string   `json:"updated"`
}

func (c Candidate) Profile() Profile {
	return Profile{
		Name:      c.Name,
		Location:  c.Location,
		BaseScore: c.MatchScore,
		Signals:   c.Insights,
		Status:    c.Status,
		Updated:   c.Updated,
	}
}

// Score holds the derived annotations attached to a ranked record.
type Score struct {
	RelevanceScore   int           `json:"relevanceScore"`
	CoverageRatio    float64       `json:"coverageRatio"`
	TokensMatched    int           `json:"tokensMatched"`
	FreshnessMinutes int           `json:"freshnessMinutes"`
	InsightFootprint int           `json:"insightFootprint"`
	StateAligned     bool          `json:"stateAligned"`
	MatchCategory    MatchCategory `json:"matchCategory"`
	Rank             int           `json:"rank"`
}

// Ranked pairs an entity with its score.
type Ranked[T Rankable] struct {
	Item T `json:"item"`
	Score
}

// RankedResult is a Candidate flattened together with its score.
type RankedResult struct {
	Candidate
	Score
}

type Meta struct {
	TotalCandidates    int            `json:"totalCandidates"`
	QueryTokens        []string       `json:"queryTokens"`
	StateFilter        string         `json:"stateFilter"`
	LiveCount          int            `json:"liveCount"`
	ArchivedCount      int            `json:"archivedCount"`
	LastRefreshMinutes int            `json:"lastRefreshMinutes"`
	SignalCoverage     map[string]int `json:"signalCoverage"`
	PrimaryFallback    bool           `json:"primaryFallback"`
	RelatedFallback    bool           `json:"relatedFallback"`
}

type EntityResponse[T Rankable] struct {
	Primary []Ranked[T] `json:"primary"`
	Related []Ranked[T] `json:"related"`
	Meta    Meta        `json:"meta"`
}

type SearchEngineResponse struct {
	Primary []RankedResult `json:"primary"`
	Related []RankedResult `json:"related"`
	Meta    Meta           `json:"meta"`
}
