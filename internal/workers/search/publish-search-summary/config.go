// internal/workers/search/publish-search-summary/config.go
package publishsearchsummary

import (
	"time"

	"intel-search-workers/internal/common/config"
)

type Config struct {
	Enabled bool
	Timeout time.Duration
	Subject string
}

func LoadConfig() *Config {
	return &Config{
		Enabled: false,
		Timeout: 5 * time.Second,
		Subject: "search.completed",
	}
}

func ConfigFrom(app *config.Config) *Config {
	cfg := LoadConfig()
	if wc := config.GetWorkerConfig(app, TaskType); wc.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wc.Timeout)
	}
	cfg.Enabled = app.Notifications.SNS.Enabled
	return cfg
}
