// internal/workers/search/parse-search-request/models.go
package parsesearchrequest

type Input struct {
	Query       string `json:"query"`
	StateFilter string `json:"stateFilter"`
	Limit       *int   `json:"limit,omitempty"`
	Source      string `json:"source,omitempty"`
}

type Output struct {
	Query       string   `json:"query"`
	StateFilter string   `json:"stateFilter"`
	Limit       int      `json:"limit"`
	Source      string   `json:"source"`
	QueryTokens []string `json:"queryTokens"`
}

const inputSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string"},
		"stateFilter": {"type": "string"},
		"limit": {"type": "integer"},
		"source": {"type": "string"}
	}
}`
