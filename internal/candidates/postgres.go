// internal/candidates/postgres.go
package candidates

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	"github.com/lib/pq"

	"intel-search-workers/internal/ranking"
)

const PostgresSourceName = "postgres"

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// PostgresSource reads candidates from a table with columns
// id, name, location, match_score, insights (text[]), status, updated.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) (*PostgresSource, error) {
	if table == "" {
		return nil, ErrMissingTable
	}
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &PostgresSource{db: db, table: table}, nil
}

func (s *PostgresSource) Name() string { return PostgresSourceName }

func (s *PostgresSource) Fetch(ctx context.Context, req Request) ([]ranking.Candidate, error) {
	query := fmt.Sprintf(`SELECT id, name, location, match_score, insights, status, updated FROM %s ORDER BY id`, s.table)
	args := []interface{}{}
	if req.Limit > 0 {
		query += ` LIMIT $1`
		args = append(args, req.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ranking.Candidate
	for rows.Next() {
		var (
			c        ranking.Candidate
			status   string
			insights []string
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Location, &c.MatchScore, pq.Array(&insights), &status, &c.Updated); err != nil {
			return nil, err
		}
		c.Status = ranking.Status(status)
		c.Insights = insights
		if c.Insights == nil {
			c.Insights = []string{}
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
