// internal/workers/search/parse-search-request/handler.go
package parsesearchrequest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"intel-search-workers/internal/common/camunda"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/metrics"
	"intel-search-workers/internal/common/validation"
	"intel-search-workers/internal/ranking"
)

const TaskType = "parse-search-request"

var schema = validation.MustCompileSchema(inputSchema)

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

	if result := schema.ValidateJSON(job.Variables); !result.Valid {
		h.fail(ctx, client, job, errors.NewInputValidationFailedError(strings.Join(result.GetErrorMessages(), "; ")))
		return
	}

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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	query := strings.Join(strings.Fields(input.Query), " ")
	if h.config.MaxQueryLength > 0 && len(query) > h.config.MaxQueryLength {
		return nil, errors.NewInvalidSearchRequestError(
			fmt.Sprintf("query is %d characters, limit is %d", len(query), h.config.MaxQueryLength))
	}

	source := strings.ToLower(strings.TrimSpace(input.Source))
	if source == "" {
		source = h.config.DefaultSource
	}
	if !h.sourceAllowed(source) {
		return nil, errors.NewInvalidSearchRequestError(fmt.Sprintf("unknown source %q", source))
	}

	return &Output{
		Query:       query,
		StateFilter: NormalizeStateFilter(input.StateFilter),
		Limit:       h.clampLimit(input.Limit),
		Source:      source,
		QueryTokens: ranking.Tokenize(query),
	}, nil
}

// NormalizeStateFilter maps blank and "all" spellings onto ranking.AllStates.
func NormalizeStateFilter(raw string) string {
	trimmed := strings.TrimSpace(raw)
	switch strings.ToLower(trimmed) {
	case "", "all", "all states":
		return ranking.AllStates
	}
	return trimmed
}

func (h *Handler) clampLimit(limit *int) int {
	if limit == nil || *limit == 0 {
		return h.config.DefaultLimit
	}
	if *limit < 1 {
		return 1
	}
	if h.config.MaxLimit > 0 && *limit > h.config.MaxLimit {
		return h.config.MaxLimit
	}
	return *limit
}

func (h *Handler) sourceAllowed(source string) bool {
	for _, s := range h.config.AllowedSources {
		if s == source {
			return true
		}
	}
	return false
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
