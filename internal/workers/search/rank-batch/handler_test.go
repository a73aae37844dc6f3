// internal/workers/search/rank-batch/handler_test.go
package rankbatch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/fixtures"
	"intel-search-workers/internal/ranking"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{Timeout: 5 * time.Second, PoolSize: 4, MaxBatchSize: 50}
}

func createTestHandler(t *testing.T) *Handler {
	h, err := NewHandler(createTestConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	t.Cleanup(h.Release)
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_PreservesOrder(t *testing.T) {
	h := createTestHandler(t)

	queries := make([]Query, 0, 50)
	terms := []string{"john smith", "nonexistent", "", "smith", "emily"}
	for i := 0; i < 50; i++ {
		queries = append(queries, Query{Query: terms[i%len(terms)], StateFilter: ranking.AllStates})
	}

	out, err := h.Execute(context.Background(), &Input{Queries: queries, Candidates: fixtures.Candidates()})
	require.NoError(t, err)
	require.Equal(t, 50, out.Count)

	for i, r := range out.Results {
		assert.Equal(t, queries[i].Query, r.Query, "result %d", i)
		expected := ranking.Rank(queries[i].Query, queries[i].StateFilter, fixtures.Candidates())
		assert.Equal(t, expected, r.SearchEngineResponse, "result %d", i)
	}
}

func TestHandler_Execute_IndependentResults(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Queries: []Query{
			{Query: "John Smith", StateFilter: ranking.AllStates},
			{Query: "zzz", StateFilter: "TX"},
		},
		Candidates: fixtures.Candidates(),
	})
	require.NoError(t, err)
	require.Len(t, out.Results, 2)

	assert.False(t, out.Results[0].Meta.PrimaryFallback)
	assert.Len(t, out.Results[0].Primary, 2)
	assert.True(t, out.Results[1].Meta.PrimaryFallback)
	assert.Equal(t, "TX", out.Results[1].Meta.StateFilter)
}

func TestHandler_Execute_EmptyBatch(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Candidates: fixtures.Candidates()})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Count)
	assert.Empty(t, out.Results)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_RejectsOversizedBatch(t *testing.T) {
	h := createTestHandler(t)

	queries := make([]Query, 51)
	for i := range queries {
		queries[i] = Query{Query: fmt.Sprintf("q%d", i)}
	}

	_, err := h.Execute(context.Background(), &Input{Queries: queries})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeInvalidSearchRequest, errors.Normalize(err).Code)
}

func TestHandler_Execute_ReleasedPool(t *testing.T) {
	h, err := NewHandler(createTestConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	h.Release()

	_, err = h.Execute(context.Background(), &Input{Queries: []Query{{Query: "john"}}})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeRankingFailed, errors.Normalize(err).Code)
}

func TestHandler_Execute_ExpiredContext(t *testing.T) {
	h := createTestHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{Queries: []Query{{Query: "john"}}, Candidates: fixtures.Candidates()})
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeTimeout, errors.Normalize(err).Code)
}
