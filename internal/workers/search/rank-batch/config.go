// internal/workers/search/rank-batch/config.go
package rankbatch

import (
	"time"

	"intel-search-workers/internal/common/config"
)

type Config struct {
	Timeout      time.Duration
	PoolSize     int
	MaxBatchSize int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		PoolSize:     8,
		MaxBatchSize: 50,
	}
}

func ConfigFrom(app *config.Config) *Config {
	cfg := LoadConfig()
	if wc := config.GetWorkerConfig(app, TaskType); wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	if app.Search.BatchPoolSize > 0 {
		cfg.PoolSize = app.Search.BatchPoolSize
	}
	if app.Search.MaxBatchSize > 0 {
		cfg.MaxBatchSize = app.Search.MaxBatchSize
	}
	return cfg
}
