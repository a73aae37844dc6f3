// internal/workers/search/rank-candidates/config.go
package rankcandidates

import (
	"time"

	"intel-search-workers/internal/common/config"
)

type Config struct {
	Timeout time.Duration
	// FetchLimit bounds the universe when candidates are fetched by source.
	FetchLimit int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		FetchLimit: 100,
	}
}

func ConfigFrom(app *config.Config) *Config {
	cfg := LoadConfig()
	if wc := config.GetWorkerConfig(app, TaskType); wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	cfg.FetchLimit = app.Search.DefaultLimit
	return cfg
}
