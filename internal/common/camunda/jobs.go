// internal/common/camunda/jobs.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// JobCommandRetry bounds retries of job commands sent from inside a handler,
// where the job timeout leaves little room for long backoff.
var JobCommandRetry = &RetryConfig{
	MaxRetries: 3,
	BaseDelay:  200 * time.Millisecond,
	MaxDelay:   2 * time.Second,
}

// CompleteJob completes jobKey with variables, retrying transient gateway errors.
func CompleteJob(ctx context.Context, client worker.JobClient, jobKey int64, variables interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(jobKey).
		VariablesFromObject(variables)
	if err != nil {
		return fmt.Errorf("create complete job command: %w", err)
	}

	_, err = executeWithRetry(ctx, JobCommandRetry, func(ctx context.Context) (interface{}, error) {
		return cmd.Send(ctx)
	}, "complete job")
	return err
}
