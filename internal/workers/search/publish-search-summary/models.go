// internal/workers/search/publish-search-summary/models.go
package publishsearchsummary

import "intel-search-workers/internal/ranking"

type Input struct {
	SearchID    string                 `json:"searchId"`
	Query       string                 `json:"query"`
	StateFilter string                 `json:"stateFilter"`
	Meta        ranking.Meta           `json:"meta"`
	Primary     []ranking.RankedResult `json:"primary"`
}

// Summary is the message body published for downstream consumers.
type Summary struct {
	EventID     string       `json:"eventId"`
	SearchID    string       `json:"searchId"`
	Query       string       `json:"query"`
	StateFilter string       `json:"stateFilter"`
	Meta        ranking.Meta `json:"meta"`
	PrimaryIDs  []string     `json:"primaryIds"`
	PublishedAt string       `json:"publishedAt"`
}

type Output struct {
	Published bool   `json:"summaryPublished"`
	MessageID string `json:"summaryMessageId,omitempty"`
	EventID   string `json:"summaryEventId,omitempty"`
}
