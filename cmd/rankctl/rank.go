// cmd/rankctl/rank.go
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"intel-search-workers/internal/fixtures"
	"intel-search-workers/internal/models"
	"intel-search-workers/internal/ranking"
)

func rankCommand(c *cli.Context) error {
	query := c.String("query")
	state := c.String("state")

	var result interface{}
	if c.Bool("entities") {
		start := time.Now()
		orgs := ranking.RankEntities(query, state, fixtures.Organizations())
		affs := ranking.RankEntities(query, state, fixtures.Affiliates())
		result = models.NewSearchAPIResponse(query, state, orgs, affs, time.Since(start).Milliseconds())
	} else {
		candidates, err := loadCandidates(c.String("file"))
		if err != nil {
			return err
		}
		result = ranking.Rank(query, state, candidates)
	}

	return writeJSON(c.App.Writer, result)
}

func loadCandidates(path string) ([]ranking.Candidate, error) {
	if path == "" {
		return fixtures.Candidates(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	var candidates []ranking.Candidate
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parse candidates %s: %w", path, err)
	}
	return candidates, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
