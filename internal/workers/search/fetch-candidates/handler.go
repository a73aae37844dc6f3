// internal/workers/search/fetch-candidates/handler.go
package fetchcandidates

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"

	"intel-search-workers/internal/candidates"
	"intel-search-workers/internal/common/camunda"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/metrics"
	"intel-search-workers/internal/common/observability"
	"intel-search-workers/internal/ranking"
)

const TaskType = "fetch-candidates"

type Handler struct {
	config       *Config
	sources      *candidates.Registry
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

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
	name := input.Source
	if name == "" {
		name = h.config.DefaultSource
	}
	limit := input.Limit
	if limit <= 0 {
		limit = h.config.DefaultLimit
	}

	ctx, span := observability.StartSpan(ctx, TaskType,
		attribute.String("source", name), attribute.Int("limit", limit))
	defer span.End()

	source, err := h.sources.Get(name)
	if err != nil {
		return nil, errors.NewCandidateSourceUnknownError(name)
	}

	start := time.Now()
	found, err := source.Fetch(ctx, candidates.Request{Query: input.Query, Limit: limit})
	if err != nil {
		span.RecordError(err)
		return nil, candidates.ClassifyFetchError(name, err)
	}
	if found == nil {
		found = []ranking.Candidate{}
	}

	duration := time.Since(start).Milliseconds()
	h.logger.Info("candidates fetched", map[string]interface{}{
		"source":     name,
		"count":      len(found),
		"durationMs": duration,
	})
	if duration > 500 {
		h.logger.Warn("candidate fetch exceeded 500ms", map[string]interface{}{
			"source":     name,
			"durationMs": duration,
		})
	}

	return &Output{Candidates: found, CandidateCount: len(found), Source: name}, nil
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
