// internal/workers/search/publish-search-summary/handler.go
package publishsearchsummary

import (
	"context"
	"encoding/json"
	"strconv"
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
)

const TaskType = "publish-search-summary"

// Publisher is satisfied by aws.SNSClient.
type Publisher interface {
	PublishJSON(ctx context.Context, subject string, payload interface{}, attrs map[string]string) (string, error)
}

type Handler struct {
	config       *Config
	publisher    Publisher
	logger       logger.Logger
	errorHandler *errors.ErrorHandler
}

// NewHandler builds the handler. A nil publisher disables publishing.
func NewHandler(config *Config, publisher Publisher, log logger.Logger) *Handler {
	l := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		publisher:    publisher,
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
	if input == nil || input.SearchID == "" {
		return nil, errors.NewInputValidationFailedError("searchId is required")
	}

	if !h.config.Enabled || h.publisher == nil {
		h.logger.Info("summary publishing disabled", map[string]interface{}{
			"searchId": input.SearchID,
		})
		return &Output{Published: false}, nil
	}

	ctx, span := observability.StartSpan(ctx, TaskType, attribute.String("searchId", input.SearchID))
	defer span.End()

	summary := BuildSummary(input)
	attrs := map[string]string{
		"searchId":        input.SearchID,
		"eventId":         summary.EventID,
		"primaryFallback": strconv.FormatBool(input.Meta.PrimaryFallback),
	}

	messageID, err := h.publisher.PublishJSON(ctx, h.config.Subject, summary, attrs)
	if err != nil {
		span.RecordError(err)
		return nil, errors.NewNotificationPublishFailedError("sns", err)
	}

	h.logger.Info("search summary published", map[string]interface{}{
		"searchId":  input.SearchID,
		"messageId": messageID,
		"eventId":   summary.EventID,
	})

	return &Output{Published: true, MessageID: messageID, EventID: summary.EventID}, nil
}

// BuildSummary keeps ids only; full records stay in the process variables.
func BuildSummary(input *Input) Summary {
	ids := make([]string, len(input.Primary))
	for i, r := range input.Primary {
		ids[i] = r.ID
	}
	return Summary{
		EventID:     uuid.NewString(),
		SearchID:    input.SearchID,
		Query:       input.Query,
		StateFilter: input.StateFilter,
		Meta:        input.Meta,
		PrimaryIDs:  ids,
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	}
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
