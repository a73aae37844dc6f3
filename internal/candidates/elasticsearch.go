// internal/candidates/elasticsearch.go
package candidates

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"intel-search-workers/internal/ranking"
)

const (
	ElasticsearchSourceName = "elasticsearch"
	defaultSearchSize       = 100
)

// ElasticsearchSource reads the candidate universe from an index. The query
// never narrows the hits: the engine matches tokens as substrings and its
// fallbacks need the records that do not match.
type ElasticsearchSource struct {
	client *elasticsearch.Client
	index  string
}

func NewElasticsearchSource(client *elasticsearch.Client, index string) (*ElasticsearchSource, error) {
	if index == "" {
		return nil, ErrMissingIndex
	}
	return &ElasticsearchSource{client: client, index: index}, nil
}

func (s *ElasticsearchSource) Name() string { return ElasticsearchSourceName }

func (s *ElasticsearchSource) Fetch(ctx context.Context, req Request) ([]ranking.Candidate, error) {
	size := req.Limit
	if size <= 0 {
		size = defaultSearchSize
	}

	body, err := json.Marshal(UniverseQuery())
	if err != nil {
		return nil, err
	}

	search := esapi.SearchRequest{
		Index: []string{s.index},
		Body:  bytes.NewReader(body),
		Size:  &size,
	}

	res, err := search.Do(ctx, s.client)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, s.index)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]ranking.Candidate, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		c := hit.Source
		if c.ID == "" {
			c.ID = hit.ID
		}
		if c.Insights == nil {
			c.Insights = []string{}
		}
		out = append(out, c)
	}
	return out, nil
}

// UniverseQuery is match_all ordered by id; the request size bounds it.
func UniverseQuery() map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{"match_all": map[string]interface{}{}},
		"sort":  []interface{}{map[string]interface{}{"id": "asc"}},
	}
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID     string            `json:"_id"`
			Source ranking.Candidate `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}
