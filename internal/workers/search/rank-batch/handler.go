// internal/workers/search/rank-batch/handler.go
package rankbatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"intel-search-workers/internal/common/camunda"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/metrics"
	"intel-search-workers/internal/common/observability"
	"intel-search-workers/internal/ranking"
)

const TaskType = "rank-batch"

// Handler ranks many queries against one universe on a shared pool.
// Release must be called when the handler is no longer used.
type Handler struct {
	config       *Config
	pool         *ants.Pool
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	pool, err := ants.NewPool(config.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("create ranking pool: %w", err)
	}

	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		pool:         pool,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
	}, nil
}

func (h *Handler) Release() {
	h.pool.Release()
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, errors.NewParseError(err))
		return
	}

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return nil, errors.NewInvalidSearchRequestError("input cannot be nil")
	}
	if len(input.Queries) > h.config.MaxBatchSize {
		return nil, errors.NewInvalidSearchRequestError(
			fmt.Sprintf("batch has %d queries, limit is %d", len(input.Queries), h.config.MaxBatchSize))
	}

	ctx, span := observability.StartSpan(ctx, TaskType,
		attribute.Int("queries", len(input.Queries)),
		attribute.Int("candidates", len(input.Candidates)))
	defer span.End()

	start := time.Now()
	results := make([]Result, len(input.Queries))

	var wg sync.WaitGroup
	for i, q := range input.Queries {
		i, q := i, q
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[i] = Result{
				Query:                q.Query,
				StateFilter:          q.StateFilter,
				SearchEngineResponse: ranking.Rank(q.Query, q.StateFilter, input.Candidates),
			}
		}
		if err := h.pool.Submit(task); err != nil {
			wg.Done()
			wg.Wait()
			return nil, errors.NewRankingFailedError(fmt.Sprintf("submit query %d: %v", i, err))
		}
	}

	// Ranking is not interruptible; the deadline is checked once the batch settles.
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, errors.NewTimeoutError(TaskType, err)
	}

	for _, r := range results {
		metrics.ObserveRanking(TaskType, len(input.Candidates), r.Meta.PrimaryFallback, r.Meta.RelatedFallback)
	}

	duration := time.Since(start).Milliseconds()
	h.logger.Info("batch ranking completed", map[string]interface{}{
		"queryCount":     len(results),
		"candidateCount": len(input.Candidates),
		"durationMs":     duration,
	})
	if duration > 500 {
		h.logger.Warn("batch ranking exceeded 500ms", map[string]interface{}{
			"durationMs": duration,
		})
	}

	return &Output{Results: results, Count: len(results)}, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	if err := camunda.CompleteJob(ctx, client, job.Key, output); err != nil {
		h.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err.Error(),
		})
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
