// internal/workers/search/rank-entities/handler_test.go
package rankentities

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/fixtures"
	"intel-search-workers/internal/ranking"
)

func createTestHandler(t *testing.T) *Handler {
	return NewHandler(&Config{Timeout: time.Second}, logger.NewTestLogger(t))
}

func TestHandler_Execute_RanksBothShapes(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Query:         "smith",
		StateFilter:   "TX",
		Organizations: fixtures.Organizations(),
		Affiliates:    fixtures.Affiliates(),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, out.SearchID)
	assert.Equal(t, "smith", out.Query)
	assert.Equal(t, "TX", out.StateFilter)

	require.Len(t, out.Organizations, 1)
	assert.Equal(t, "Smith Holdings LLC", out.Organizations[0].Item.Name)
	assert.Equal(t, ranking.MatchDirect, out.Organizations[0].MatchCategory)
	assert.Len(t, out.RelatedOrganizations, 2)
	assert.True(t, out.OrganizationMeta.RelatedFallback)

	require.Len(t, out.Affiliates, 1)
	assert.Equal(t, "aff-301", out.Affiliates[0].Item.ID)

	assert.Equal(t, 1, out.TotalMatchedOrganizations)
	assert.Equal(t, 1, out.TotalMatchedAffiliates)
}

func TestHandler_Execute_NoMatchesReportsZeroTotals(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		Query:         "nobody",
		StateFilter:   ranking.AllStates,
		Organizations: fixtures.Organizations(),
		Affiliates:    fixtures.Affiliates(),
	})
	require.NoError(t, err)

	assert.Len(t, out.Organizations, 3)
	assert.Len(t, out.Affiliates, 2)
	assert.Equal(t, 0, out.TotalMatchedOrganizations)
	assert.Equal(t, 0, out.TotalMatchedAffiliates)
}

func TestHandler_Execute_EmptyInput(t *testing.T) {
	h := createTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{Query: "smith"})
	require.NoError(t, err)
	assert.Empty(t, out.Organizations)
	assert.Empty(t, out.Affiliates)

	_, err = h.Execute(context.Background(), nil)
	assert.Equal(t, errors.ErrCodeInvalidSearchRequest, errors.Normalize(err).Code)
}
