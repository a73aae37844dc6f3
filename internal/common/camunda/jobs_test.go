// internal/common/camunda/jobs_test.go
package camunda

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/commands"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"

	"intel-search-workers/internal/common/config"
	"intel-search-workers/internal/common/errors"
	"intel-search-workers/internal/common/logger"
)

// fakeGateway answers CompleteJob, failing the first `failures` calls with err.
type fakeGateway struct {
	pb.GatewayClient
	failures int
	err      error
	calls    int
	last     *pb.CompleteJobRequest
}

func (g *fakeGateway) CompleteJob(_ context.Context, in *pb.CompleteJobRequest, _ ...grpc.CallOption) (*pb.CompleteJobResponse, error) {
	g.calls++
	g.last = in
	if g.calls <= g.failures {
		return nil, g.err
	}
	return &pb.CompleteJobResponse{}, nil
}

type fakeJobClient struct {
	worker.JobClient
	gateway *fakeGateway
}

func (c *fakeJobClient) NewCompleteJobCommand() commands.CompleteJobCommandStep1 {
	return commands.NewCompleteJobCommand(c.gateway, func(context.Context, error) bool { return false })
}

func withFastJobRetry(t *testing.T) {
	t.Helper()
	prev := JobCommandRetry
	JobCommandRetry = &RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	t.Cleanup(func() { JobCommandRetry = prev })
}

// ==========================
// CompleteJob
// ==========================

func TestCompleteJob_SendsVariables(t *testing.T) {
	gw := &fakeGateway{}
	err := CompleteJob(context.Background(), &fakeJobClient{gateway: gw}, 42, map[string]interface{}{"searchId": "s-1"})
	require.NoError(t, err)

	assert.Equal(t, 1, gw.calls)
	assert.Equal(t, int64(42), gw.last.JobKey)
	assert.JSONEq(t, `{"searchId":"s-1"}`, gw.last.Variables)
}

func TestCompleteJob_RetriesTransientFailure(t *testing.T) {
	withFastJobRetry(t)
	gw := &fakeGateway{failures: 1, err: stderrors.New("rpc error: code = Unavailable desc = connection refused")}

	err := CompleteJob(context.Background(), &fakeJobClient{gateway: gw}, 7, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, 2, gw.calls)
}

func TestCompleteJob_PermanentFailureNotRetried(t *testing.T) {
	withFastJobRetry(t)
	gw := &fakeGateway{failures: 5, err: stderrors.New("NOT_FOUND: no job with key 7")}

	err := CompleteJob(context.Background(), &fakeJobClient{gateway: gw}, 7, map[string]interface{}{})
	require.Error(t, err)
	assert.Equal(t, 1, gw.calls)

	var se *errors.StandardError
	assert.True(t, stderrors.As(err, &se))
}

// ==========================
// StartWorker
// ==========================

func TestStartWorker_DisabledSkipsClient(t *testing.T) {
	cfg := &config.Config{Workers: map[string]config.WorkerConfig{
		"rank-batch": {Enabled: false, MaxJobsActive: 5, Timeout: 1000},
	}}

	// A nil client would panic if the worker were opened.
	w := StartWorker(nil, cfg, "rank-batch", func(worker.JobClient, entities.Job) {}, logger.NewTestLogger(t))
	assert.Nil(t, w)
}
