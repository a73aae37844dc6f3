// internal/workers/search/rank-candidates/handler.go
package rankcandidates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"intel-search-workers/internal/candidates"
	"intel-search-workers/internal/common/camunda"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/metrics"
	"intel-search-workers/internal/common/observability"
	"intel-search-workers/internal/ranking"
)

const TaskType = "rank-candidates"

type Handler struct {
	config       *Config
	sources      *candidates.Registry
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

// NewHandler builds the handler. sources may be nil, in which case jobs must
// carry their candidates inline.
func NewHandler(config *Config, sources *candidates.Registry, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		sources:      sources,
		logger:       l,
		errorHandler: errors.NewErrorHandler(l),
	}
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

	ctx, span := observability.StartSpan(ctx, TaskType, attribute.String("stateFilter", input.StateFilter))
	defer span.End()

	universe, err := h.universe(ctx, input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	start := time.Now()
	res := ranking.Rank(input.Query, input.StateFilter, universe)
	duration := time.Since(start).Milliseconds()

	metrics.ObserveRanking(TaskType, len(universe), res.Meta.PrimaryFallback, res.Meta.RelatedFallback)
	span.SetAttributes(
		attribute.Int("candidates", len(universe)),
		attribute.Int("primary", len(res.Primary)),
		attribute.Int("related", len(res.Related)),
	)

	h.logger.Info("ranking completed", map[string]interface{}{
		"candidateCount":  len(universe),
		"primaryCount":    len(res.Primary),
		"relatedCount":    len(res.Related),
		"primaryFallback": res.Meta.PrimaryFallback,
		"durationMs":      duration,
	})
	if duration > 500 {
		h.logger.Warn("ranking exceeded 500ms", map[string]interface{}{
			"durationMs": duration,
		})
	}

	return &Output{SearchID: uuid.NewString(), SearchEngineResponse: res}, nil
}

func (h *Handler) universe(ctx context.Context, input *Input) ([]ranking.Candidate, error) {
	if input.Candidates != nil {
		return *input.Candidates, nil
	}
	if input.Source == "" {
		return nil, errors.NewInvalidSearchRequestError("either candidates or source is required")
	}
	if h.sources == nil {
		return nil, errors.NewCandidateSourceUnknownError(input.Source)
	}

	source, err := h.sources.Get(input.Source)
	if err != nil {
		return nil, errors.NewCandidateSourceUnknownError(input.Source)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = h.config.FetchLimit
	}
	found, err := source.Fetch(ctx, candidates.Request{Query: input.Query, Limit: limit})
	if err != nil {
		return nil, candidates.ClassifyFetchError(input.Source, err)
	}
	return found, nil
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
