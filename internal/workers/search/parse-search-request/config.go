// internal/workers/search/parse-search-request/config.go
package parsesearchrequest

import (
	"time"

	"intel-search-workers/internal/common/config"
)

type Config struct {
	Timeout        time.Duration
	DefaultSource  string
	AllowedSources []string
	DefaultLimit   int
	MaxLimit       int
	MaxQueryLength int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:        2 * time.Second,
		DefaultSource:  "static",
		AllowedSources: []string{"static", "postgres", "elasticsearch"},
		DefaultLimit:   100,
		MaxLimit:       500,
		MaxQueryLength: 256,
	}
}

// ConfigFrom derives the worker settings from application config. Sources
// are the names registered at startup.
func ConfigFrom(app *config.Config, sources []string) *Config {
	cfg := LoadConfig()
	if wc := config.GetWorkerConfig(app, TaskType); wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	cfg.DefaultSource = app.Search.DefaultSource
	cfg.DefaultLimit = app.Search.DefaultLimit
	cfg.MaxLimit = app.Search.MaxLimit
	cfg.MaxQueryLength = app.Search.MaxQueryLength
	if len(sources) > 0 {
		cfg.AllowedSources = sources
	}
	return cfg
}
