// internal/workers/search/publish-search-summary/handler_test.go
package publishsearchsummary

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	awsclient "intel-search-workers/internal/common/aws"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/fixtures"
	"intel-search-workers/internal/ranking"
)

// ==========================
// Test Helper Functions
// ==========================

type fakePublisher struct {
	subject string
	payload interface{}
	attrs   map[string]string
	err     error
}

func (f *fakePublisher) PublishJSON(_ context.Context, subject string, payload interface{}, attrs map[string]string) (string, error) {
	f.subject, f.payload, f.attrs = subject, payload, attrs
	if f.err != nil {
		return "", f.err
	}
	return "msg-42", nil
}

func createTestConfig(enabled bool) *Config {
	return &Config{Enabled: enabled, Timeout: time.Second, Subject: "search.completed"}
}

func createInput() *Input {
	res := ranking.Rank("John Smith", ranking.AllStates, fixtures.Candidates())
	return &Input{
		SearchID:    "search-1",
		Query:       "John Smith",
		StateFilter: ranking.AllStates,
		Meta:        res.Meta,
		Primary:     res.Primary,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Publishes(t *testing.T) {
	pub := &fakePublisher{}
	h := NewHandler(createTestConfig(true), pub, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), createInput())
	require.NoError(t, err)

	assert.True(t, out.Published)
	assert.Equal(t, "msg-42", out.MessageID)
	_, err = uuid.Parse(out.EventID)
	assert.NoError(t, err)

	assert.Equal(t, "search.completed", pub.subject)
	summary, ok := pub.payload.(Summary)
	require.True(t, ok)
	assert.Equal(t, []string{"cand-1001", "cand-1002"}, summary.PrimaryIDs)
	assert.Equal(t, out.EventID, summary.EventID)
	assert.Equal(t, "false", pub.attrs["primaryFallback"])
	assert.Equal(t, out.EventID, pub.attrs["eventId"])
}

func TestHandler_Execute_Disabled(t *testing.T) {
	pub := &fakePublisher{}

	out, err := NewHandler(createTestConfig(false), pub, logger.NewTestLogger(t)).
		Execute(context.Background(), createInput())
	require.NoError(t, err)
	assert.False(t, out.Published)
	assert.Nil(t, pub.payload)

	out, err = NewHandler(createTestConfig(true), nil, logger.NewTestLogger(t)).
		Execute(context.Background(), createInput())
	require.NoError(t, err)
	assert.False(t, out.Published)
}

type snsStub struct{ calls int }

func (s *snsStub) Publish(_ context.Context, _ *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	s.calls++
	id := "sns-1"
	return &sns.PublishOutput{MessageId: &id}, nil
}

func TestHandler_Execute_WithSNSClient(t *testing.T) {
	stub := &snsStub{}
	client := awsclient.NewSNSClientWithPublisher(stub, "arn:aws:sns:us-east-1:123:search")

	out, err := NewHandler(createTestConfig(true), client, logger.NewTestLogger(t)).
		Execute(context.Background(), createInput())
	require.NoError(t, err)
	assert.Equal(t, "sns-1", out.MessageID)
	assert.Equal(t, 1, stub.calls)
}

// ==========================
// Error Handling Tests
// ==========================

func TestHandler_Execute_PublishFailure(t *testing.T) {
	pub := &fakePublisher{err: stderrors.New("throttled")}
	h := NewHandler(createTestConfig(true), pub, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), createInput())
	require.Error(t, err)

	stdErr := errors.Normalize(err)
	assert.Equal(t, errors.ErrCodeNotificationPublishFailed, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}

func TestHandler_Execute_RequiresSearchID(t *testing.T) {
	h := NewHandler(createTestConfig(true), &fakePublisher{}, logger.NewTestLogger(t))

	input := createInput()
	input.SearchID = ""
	_, err := h.Execute(context.Background(), input)
	assert.Equal(t, errors.ErrCodeInputValidationFailed, errors.Normalize(err).Code)
}
