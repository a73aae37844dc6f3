// test/e2e/pipeline_test.go
package e2e

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intel-search-workers/internal/candidates"
	awsclient "intel-search-workers/internal/common/aws"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/fixtures"
	"intel-search-workers/internal/ranking"

	fetchcandidates "intel-search-workers/internal/workers/search/fetch-candidates"
	parsesearchrequest "intel-search-workers/internal/workers/search/parse-search-request"
	publishsearchsummary "intel-search-workers/internal/workers/search/publish-search-summary"
	rankbatch "intel-search-workers/internal/workers/search/rank-batch"
	rankcandidates "intel-search-workers/internal/workers/search/rank-candidates"
)

// recordingSNS captures what the SNS adapter would send.
type recordingSNS struct {
	inputs []*sns.PublishInput
}

func (r *recordingSNS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	r.inputs = append(r.inputs, in)
	return &sns.PublishOutput{MessageId: aws.String("msg-e2e")}, nil
}

type pipeline struct {
	parse   *parsesearchrequest.Handler
	fetch   *fetchcandidates.Handler
	rank    *rankcandidates.Handler
	publish *publishsearchsummary.Handler
	sns     *recordingSNS
	redis   *miniredis.Miniredis
}

// newPipeline wires the workers the way the worker manager does, with a
// static source and a Redis-cached copy of it standing in for the stores.
func newPipeline(t *testing.T) *pipeline {
	t.Helper()
	log := logger.NewTestLogger(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sources := candidates.NewRegistry(
		candidates.NewStaticSource(fixtures.Candidates()),
		candidates.NewCachedSource(
			candidates.NewNamedStaticSource("warm", fixtures.Candidates()), rdb, time.Minute, log),
	)

	parseCfg := parsesearchrequest.LoadConfig()
	parseCfg.AllowedSources = sources.Names()

	recorder := &recordingSNS{}
	snsClient := awsclient.NewSNSClientWithPublisher(recorder, "arn:aws:sns:us-east-1:000000000000:search-completed")

	publishCfg := publishsearchsummary.LoadConfig()
	publishCfg.Enabled = true

	return &pipeline{
		parse:   parsesearchrequest.NewHandler(parseCfg, log),
		fetch:   fetchcandidates.NewHandler(fetchcandidates.LoadConfig(), sources, log),
		rank:    rankcandidates.NewHandler(rankcandidates.LoadConfig(), sources, log),
		publish: publishsearchsummary.NewHandler(publishCfg, snsClient, log),
		sns:     recorder,
		redis:   mr,
	}
}

// run drives one search through parse, fetch, rank and publish, passing
// only what each job would see in its variables.
func (p *pipeline) run(t *testing.T, ctx context.Context, req *parsesearchrequest.Input) (*rankcandidates.Output, *publishsearchsummary.Output) {
	t.Helper()

	parsed, err := p.parse.Execute(ctx, req)
	require.NoError(t, err)

	fetched, err := p.fetch.Execute(ctx, &fetchcandidates.Input{
		Query:  parsed.Query,
		Limit:  parsed.Limit,
		Source: parsed.Source,
	})
	require.NoError(t, err)

	universe := fetched.Candidates
	ranked, err := p.rank.Execute(ctx, &rankcandidates.Input{
		Query:       parsed.Query,
		StateFilter: parsed.StateFilter,
		Candidates:  &universe,
	})
	require.NoError(t, err)

	published, err := p.publish.Execute(ctx, &publishsearchsummary.Input{
		SearchID:    ranked.SearchID,
		Query:       parsed.Query,
		StateFilter: parsed.StateFilter,
		Meta:        ranked.Meta,
		Primary:     ranked.Primary,
	})
	require.NoError(t, err)

	return ranked, published
}

// ==========================
// Pipeline
// ==========================

func TestPipeline_StaticSource(t *testing.T) {
	p := newPipeline(t)

	ranked, published := p.run(t, context.Background(), &parsesearchrequest.Input{
		Query:       "  John   Smith ",
		StateFilter: "all states",
	})

	require.Len(t, ranked.Primary, 2)
	assert.Equal(t, "cand-1001", ranked.Primary[0].ID)
	assert.Equal(t, 134, ranked.Primary[0].RelevanceScore)
	assert.Equal(t, "cand-1002", ranked.Primary[1].ID)
	assert.Equal(t, []string{"john", "smith"}, ranked.Meta.QueryTokens)
	assert.False(t, ranked.Meta.PrimaryFallback)

	assert.True(t, published.Published)
	assert.Equal(t, "msg-e2e", published.MessageID)

	require.Len(t, p.sns.inputs, 1)
	var summary publishsearchsummary.Summary
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(p.sns.inputs[0].Message)), &summary))
	assert.Equal(t, ranked.SearchID, summary.SearchID)
	assert.Equal(t, []string{"cand-1001", "cand-1002"}, summary.PrimaryIDs)
}

func TestPipeline_CachedSourceServesSecondSearch(t *testing.T) {
	p := newPipeline(t)
	ctx := context.Background()
	req := &parsesearchrequest.Input{Query: "Smith", StateFilter: "TX", Source: "WARM"}

	first, _ := p.run(t, ctx, req)
	assert.Len(t, p.redis.Keys(), 1)

	second, _ := p.run(t, ctx, req)
	assert.Equal(t, first.Primary, second.Primary)
	assert.Len(t, p.sns.inputs, 2)

	require.NotEmpty(t, second.Primary)
	assert.True(t, second.Primary[0].StateAligned)
}

func TestPipeline_NoMatchFallsBack(t *testing.T) {
	p := newPipeline(t)

	ranked, published := p.run(t, context.Background(), &parsesearchrequest.Input{Query: "zzqx"})

	assert.True(t, ranked.Meta.PrimaryFallback)
	assert.NotEmpty(t, ranked.Primary)
	assert.True(t, published.Published)
}

func TestPipeline_BatchMatchesSingleRanking(t *testing.T) {
	batch, err := rankbatch.NewHandler(rankbatch.LoadConfig(), logger.NewNoOpLogger())
	require.NoError(t, err)
	defer batch.Release()

	queries := []rankbatch.Query{
		{Query: "John Smith", StateFilter: ranking.AllStates},
		{Query: "Emily", StateFilter: "IL"},
	}
	out, err := batch.Execute(context.Background(), &rankbatch.Input{
		Queries:    queries,
		Candidates: fixtures.Candidates(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, out.Count)

	for i, q := range queries {
		want := ranking.Rank(q.Query, q.StateFilter, fixtures.Candidates())
		assert.Equal(t, want.Primary, out.Results[i].Primary, q.Query)
	}
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkPipeline_Rank(b *testing.B) {
	h := rankcandidates.NewHandler(rankcandidates.LoadConfig(), nil, logger.NewNoOpLogger())
	universe := fixtures.Candidates()
	input := &rankcandidates.Input{Query: "John Smith", StateFilter: "TX", Candidates: &universe}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := h.Execute(context.Background(), input); err != nil {
			b.Fatal(err)
		}
	}
}
