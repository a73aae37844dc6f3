// internal/workers/search/fetch-candidates/config.go
package fetchcandidates

import (
	"time"

	"intel-search-workers/internal/common/config"
)

type Config struct {
	Timeout       time.Duration
	DefaultSource string
	DefaultLimit  int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:       5 * time.Second,
		DefaultSource: "static",
		DefaultLimit:  100,
	}
}

func ConfigFrom(app *config.Config) *Config {
	cfg := LoadConfig()
	if wc := config.GetWorkerConfig(app, TaskType); wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	cfg.DefaultSource = app.Search.DefaultSource
	cfg.DefaultLimit = app.Search.DefaultLimit
	return cfg
}
