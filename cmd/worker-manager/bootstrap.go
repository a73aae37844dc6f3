// cmd/worker-manager/bootstrap.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"intel-search-workers/internal/candidates"
	"intel-search-workers/internal/common/config"
	"intel-search-workers/internal/common/database"
	"intel-search-workers/internal/common/logger"
	"intel-search-workers/internal/fixtures"
)

// retryWithBackoff retries op, doubling the delay after each failure.
func retryWithBackoff(op func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, name string) error {
	var err error
	delay := initialDelay
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = op(); err == nil {
			return nil
		}
		if attempt == maxRetries {
			break
		}
		log.Warn("operation failed, retrying", map[string]interface{}{
			"operation":  name,
			"attempt":    attempt,
			"maxRetries": maxRetries,
			"retryIn":    delay.String(),
			"error":      err.Error(),
		})
		time.Sleep(delay)
		delay *= 2
	}
	return fmt.Errorf("%s failed after %d attempts: %w", name, maxRetries, err)
}

type dependencies struct {
	postgres      *database.PostgresClient
	elasticsearch *database.ElasticsearchClient
	redis         *database.RedisClient
	log           logger.Logger
}

// connectDependencies opens the enabled backing stores and pings each one.
func connectDependencies(ctx context.Context, cfg *config.Config, log logger.Logger) (*dependencies, error) {
	deps := &dependencies{log: log}

	if cfg.Database.Postgres.Enabled {
		pg, err := database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return nil, err
		}
		deps.postgres = pg
		if err := retryWithBackoff(func() error { return pg.Ping(ctx) }, 5, time.Second, log, "postgres ping"); err != nil {
			deps.Close()
			return nil, err
		}
		log.Info("PostgreSQL connected", map[string]interface{}{"host": cfg.Database.Postgres.Host})
	}

	if cfg.Database.Elasticsearch.Enabled {
		es, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.elasticsearch = es
		if err := retryWithBackoff(func() error { return es.Ping(ctx) }, 5, time.Second, log, "elasticsearch ping"); err != nil {
			deps.Close()
			return nil, err
		}
		log.Info("Elasticsearch connected", map[string]interface{}{"url": cfg.Database.Elasticsearch.GetURL()})
	}

	if cfg.Database.Redis.Enabled {
		rdb, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			deps.Close()
			return nil, err
		}
		deps.redis = rdb
		// A missing cache only costs latency.
		if err := rdb.Ping(ctx); err != nil {
			log.Warn("redis unavailable, candidate cache will miss", map[string]interface{}{"error": err.Error()})
		} else {
			log.Info("Redis connected", map[string]interface{}{"address": cfg.Database.Redis.Address})
		}
	}

	return deps, nil
}

func (d *dependencies) Close() {
	if d.postgres != nil {
		if err := d.postgres.Close(); err != nil {
			d.log.Error("error closing postgres", map[string]interface{}{"error": err.Error()})
		}
	}
	if d.redis != nil {
		if err := d.redis.Close(); err != nil {
			d.log.Error("error closing redis", map[string]interface{}{"error": err.Error()})
		}
	}
}

// buildSources registers the static fixture source plus every enabled store.
// With Redis enabled, store-backed sources are read through the cache.
func buildSources(cfg *config.Config, deps *dependencies, log logger.Logger) (*candidates.Registry, error) {
	registry := candidates.NewRegistry(candidates.NewStaticSource(fixtures.Candidates()))

	var stores []candidates.Source
	if deps.postgres != nil {
		src, err := candidates.NewPostgresSource(deps.postgres.DB, cfg.Search.CandidateTable)
		if err != nil {
			return nil, err
		}
		stores = append(stores, src)
	}
	if deps.elasticsearch != nil {
		src, err := candidates.NewElasticsearchSource(deps.elasticsearch.Client, cfg.Search.CandidateIndex)
		if err != nil {
			return nil, err
		}
		stores = append(stores, src)
	}

	ttl := config.GetDuration(cfg.Search.CacheTTL)
	for _, src := range stores {
		if deps.redis != nil && ttl > 0 {
			src = candidates.NewCachedSource(src, deps.redis.Client, ttl, log)
		}
		registry.Register(src)
	}
	return registry, nil
}

// newServeMux serves liveness, readiness and Prometheus metrics.
func newServeMux(ready *atomic.Bool, healthCheck func(context.Context) error) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok", "")
	})
	mux.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
		if !ready.Load() {
			writeStatus(w, http.StatusServiceUnavailable, "shutting down", "")
			return
		}
		if healthCheck != nil {
			if err := healthCheck(r.Context()); err != nil {
				writeStatus(w, http.StatusServiceUnavailable, "unavailable", err.Error())
				return
			}
		}
		writeStatus(w, http.StatusOK, "ready", "")
	})
	mux.Handle("/metrics", promhttp.Handler())
	return mux
}

func writeStatus(w http.ResponseWriter, code int, status, detail string) {
	body := map[string]string{"status": status}
	if detail != "" {
		body["error"] = detail
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
