// internal/common/camunda/worker.go
package camunda

import (
	"time"

	"intel-search-workers/internal/common/config"
	"intel-search-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// StartWorker opens a job worker for taskType using its workers.<taskType>
// settings. It returns nil when the worker is disabled in configuration.
func StartWorker(client zbc.Client, cfg *config.Config, taskType string, handler worker.JobHandler, log logger.Logger) worker.JobWorker {
	if !config.IsWorkerEnabled(cfg, taskType) {
		log.Info("worker disabled", map[string]interface{}{"taskType": taskType})
		return nil
	}
	wcfg := config.GetWorkerConfig(cfg, taskType)

	jobWorker := client.NewJobWorker().
		JobType(taskType).
		Handler(handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		PollInterval(100 * time.Millisecond).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      taskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jobWorker
}

// StopWorkers closes every non-nil worker and waits for in-flight jobs.
func StopWorkers(workers []worker.JobWorker, log logger.Logger) {
	for _, w := range workers {
		if w == nil {
			continue
		}
		w.Close()
		w.AwaitClose()
	}
	log.Info("workers stopped", map[string]interface{}{"count": len(workers)})
}
