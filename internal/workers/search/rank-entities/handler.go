// internal/workers/search/rank-entities/handler.go
package rankentities

import (
	"context"
	"encoding/json"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"intel-search-workers/internal/common/camunda"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/metrics"
	"intel-search-workers/internal/common/observability"
	"intel-search-workers/internal/models"
	"intel-search-workers/internal/ranking"
)

const TaskType = "rank-entities"

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
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

	_, span := observability.StartSpan(ctx, TaskType,
		attribute.Int("organizations", len(input.Organizations)),
		attribute.Int("affiliates", len(input.Affiliates)))
	defer span.End()

	start := time.Now()
	orgs := ranking.RankEntities(input.Query, input.StateFilter, input.Organizations)
	affs := ranking.RankEntities(input.Query, input.StateFilter, input.Affiliates)
	duration := time.Since(start).Milliseconds()

	metrics.ObserveRanking(TaskType, len(input.Organizations), orgs.Meta.PrimaryFallback, orgs.Meta.RelatedFallback)
	metrics.ObserveRanking(TaskType, len(input.Affiliates), affs.Meta.PrimaryFallback, affs.Meta.RelatedFallback)

	resp := models.NewSearchAPIResponse(input.Query, input.StateFilter, orgs, affs, duration)

	h.logger.Info("entity ranking completed", map[string]interface{}{
		"matchedOrganizations": resp.TotalMatchedOrganizations,
		"matchedAffiliates":    resp.TotalMatchedAffiliates,
		"durationMs":           duration,
	})
	if duration > 500 {
		h.logger.Warn("entity ranking exceeded 500ms", map[string]interface{}{
			"durationMs": duration,
		})
	}

	return &Output{SearchID: uuid.NewString(), SearchAPIResponse: resp}, nil
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
