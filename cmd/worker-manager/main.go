// cmd/worker-manager/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.uber.org/zap"

	awsclient "intel-search-workers/internal/common/aws"
	"intel-search-workers/internal/common/camunda"
	"intel-search-workers/internal/common/config"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/common/observability"
	"intel-search-workers/pkg/registry"

	fc "intel-search-workers/internal/workers/search/fetch-candidates"
	psr "intel-search-workers/internal/workers/search/parse-search-request"
	pss "intel-search-workers/internal/workers/search/publish-search-summary"
	rb "intel-search-workers/internal/workers/search/rank-batch"
	rc "intel-search-workers/internal/workers/search/rank-candidates"
	re "intel-search-workers/internal/workers/search/rank-entities"
)

func main() {
	bootLog := logger.New("info", "console")
	bootLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		bootLog.Fatal("config load failed", zap.Error(err))
	}

	zapLog, err := logger.NewFromConfig(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	if err != nil {
		bootLog.Fatal("logger init failed", zap.Error(err))
	}
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	obs, err := observability.New(cfg.Observability.ServiceName,
		observability.WithJaegerEndpoint(cfg.Observability.JaegerEndpoint))
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}

	ctx := context.Background()

	// --- Zeebe ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, log, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	log.Info("Zeebe client connected", map[string]interface{}{"address": cfg.Camunda.BrokerAddress})

	// --- Storage and candidate sources ---
	deps, err := connectDependencies(ctx, cfg, log)
	if err != nil {
		zapLog.Fatal("dependency initialization failed", zap.Error(err))
	}
	defer deps.Close()

	sources, err := buildSources(cfg, deps, log)
	if err != nil {
		zapLog.Fatal("candidate sources failed", zap.Error(err))
	}
	log.Info("candidate sources ready", map[string]interface{}{"sources": sources.Names()})

	var publisher pss.Publisher
	if cfg.Notifications.SNS.Enabled {
		sns, err := awsclient.NewSNSClient(ctx, cfg.Notifications.SNS.Region, cfg.Notifications.SNS.TopicARN)
		if err != nil {
			zapLog.Fatal("sns client failed", zap.Error(err))
		}
		publisher = sns
	}

	// --- Workers ---
	batch, err := rb.NewHandler(rb.ConfigFrom(cfg), log)
	if err != nil {
		zapLog.Fatal("failed to create rank-batch handler", zap.Error(err))
	}
	defer batch.Release()

	handlers := map[string]worker.JobHandler{
		psr.TaskType: psr.NewHandler(psr.ConfigFrom(cfg, sources.Names()), log).Handle,
		fc.TaskType:  fc.NewHandler(fc.ConfigFrom(cfg), sources, log).Handle,
		rc.TaskType:  rc.NewHandler(rc.ConfigFrom(cfg), sources, log).Handle,
		re.TaskType:  re.NewHandler(re.ConfigFrom(cfg), log).Handle,
		rb.TaskType:  batch.Handle,
		pss.TaskType: pss.NewHandler(pss.ConfigFrom(cfg), publisher, log).Handle,
	}

	var workers []worker.JobWorker
	var started []string
	for taskType, handle := range handlers {
		w := camunda.StartWorker(zeebe.GetClient(), cfg, taskType, obs.Wrap(taskType, handle), log)
		if w != nil {
			workers = append(workers, w)
			started = append(started, taskType)
		}
	}
	checkRegistry(cfg.Registry.Path, started, log)
	log.Info("workers registered", map[string]interface{}{"count": len(workers)})

	// --- Health & Metrics Server ---
	var ready atomic.Bool
	ready.Store(true)
	server := &http.Server{
		Addr:              cfg.Observability.MetricsAddress,
		Handler:           newServeMux(&ready, zeebe.HealthCheck),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Info("health/metrics server listening", map[string]interface{}{"address": server.Addr})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("health/metrics server failed", map[string]interface{}{"error": err.Error()})
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info("shutdown signal received, stopping workers", nil)
	ready.Store(false)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	camunda.StopWorkers(workers, log)
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("health server shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		log.Error("observability shutdown failed", map[string]interface{}{"error": err.Error()})
	}
	if err := zeebe.Close(); err != nil {
		log.Error("error closing Zeebe client", map[string]interface{}{"error": err.Error()})
	}
	log.Info("worker manager stopped", nil)
}

func checkRegistry(path string, taskTypes []string, log logger.Logger) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		log.Warn("activity registry unavailable", map[string]interface{}{"path": path, "error": err.Error()})
		return
	}
	if missing := reg.Missing(taskTypes); len(missing) > 0 {
		log.Warn("workers missing from activity registry", map[string]interface{}{"taskTypes": missing})
	}
}
