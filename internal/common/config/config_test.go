// internal/common/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalConfig = `
camunda:
  broker_address: localhost:26500
`

// ==========================
// Loading
// ==========================

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "intel-search-workers", cfg.App.Name)
	assert.Equal(t, 10, cfg.Camunda.MaxJobsActive)
	assert.Equal(t, SourceStatic, cfg.Search.DefaultSource)
	assert.Equal(t, 100, cfg.Search.DefaultLimit)
	assert.Equal(t, 500, cfg.Search.MaxLimit)
	assert.Equal(t, 256, cfg.Search.MaxQueryLength)
	assert.Equal(t, 50, cfg.Search.MaxBatchSize)
	assert.Equal(t, "candidates", cfg.Search.CandidateIndex)
	assert.Equal(t, ":8080", cfg.Observability.MetricsAddress)
	assert.Equal(t, "intel-search-workers", cfg.Observability.ServiceName)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "configs/activity-registry.json", cfg.Registry.Path)
}

func TestLoadFromFile_WorkerDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
workers:
  rank-candidates:
    enabled: true
    timeout: 1500
`))
	require.NoError(t, err)

	w := GetWorkerConfig(cfg, "rank-candidates")
	assert.True(t, w.Enabled)
	assert.Equal(t, 1500, w.Timeout)
	assert.Equal(t, 5, w.MaxJobsActive)
	assert.Equal(t, 3, w.MaxRetries)

	assert.True(t, IsWorkerEnabled(cfg, "rank-batch"))
	assert.Equal(t, 30000, GetWorkerConfig(cfg, "rank-batch").Timeout)
}

func TestLoadFromFile_ExpandsPlaceholders(t *testing.T) {
	t.Setenv("TEST_ZEEBE_ADDRESS", "zeebe:26500")

	cfg, err := LoadFromFile(writeConfig(t, `
camunda:
  broker_address: ${TEST_ZEEBE_ADDRESS}
`))
	require.NoError(t, err)
	assert.Equal(t, "zeebe:26500", cfg.Camunda.BrokerAddress)
}

func TestLoadFromFile_EnvOverridesKey(t *testing.T) {
	t.Setenv("SEARCH_DEFAULT_LIMIT", "25")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
search:
  default_limit: 100
`))
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Search.DefaultLimit)
}

func TestLoadFromFile_SecretFallback(t *testing.T) {
	t.Setenv("SNS_TOPIC_ARN", "arn:aws:sns:us-east-1:000000000000:searches")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig+`
notifications:
  sns:
    enabled: true
    region: us-east-1
`))
	require.NoError(t, err)
	assert.Equal(t, "arn:aws:sns:us-east-1:000000000000:searches", cfg.Notifications.SNS.TopicARN)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

// ==========================
// Validation
// ==========================

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.Camunda.BrokerAddress = "localhost:26500"
		applyDefaults(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing broker", func(c *Config) { c.Camunda.BrokerAddress = "" }, "camunda.broker_address"},
		{"postgres without host", func(c *Config) {
			c.Database.Postgres.Enabled = true
			c.Database.Postgres.Database = "intel"
			c.Database.Postgres.User = "svc"
		}, "database.postgres.host"},
		{"elasticsearch without address", func(c *Config) { c.Database.Elasticsearch.Enabled = true }, "database.elasticsearch"},
		{"redis without address", func(c *Config) { c.Database.Redis.Enabled = true }, "database.redis.address"},
		{"default source disabled", func(c *Config) { c.Search.DefaultSource = SourceElasticsearch }, "requires database.elasticsearch.enabled"},
		{"unknown source", func(c *Config) { c.Search.DefaultSource = "ldap" }, "not a known source"},
		{"limit above max", func(c *Config) { c.Search.DefaultLimit = 900 }, "exceeds search.max_limit"},
		{"sns without topic", func(c *Config) { c.Notifications.SNS.Enabled = true }, "topic_arn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validateConfig(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHelpers(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))

	pg := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "intel", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=intel sslmode=disable", pg.GetDSN())

	assert.Equal(t, "http://a:9200", ElasticsearchConfig{Addresses: []string{"http://a:9200"}}.GetURL())
	assert.Equal(t, "http://b:9200", ElasticsearchConfig{URL: "http://b:9200", Addresses: []string{"http://a:9200"}}.GetURL())
	assert.Empty(t, ElasticsearchConfig{}.GetURL())
}
