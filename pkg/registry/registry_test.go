// pkg/registry/registry_test.go
package registry

import (
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repoRegistryPath(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), "..", "..", "configs", "activity-registry.json")
}

func validActivity(id, taskType string) Activity {
	return Activity{
		ID:                   id,
		DisplayName:          "Test",
		TaskType:             taskType,
		ImplementationStatus: "planned",
		Timeout:              "5s",
	}
}

func TestShippedRegistryIsValid(t *testing.T) {
	reg, err := LoadRegistry(repoRegistryPath(t))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())

	for _, tt := range []string{
		"parse-search-request", "fetch-candidates", "rank-candidates",
		"rank-entities", "rank-batch", "publish-search-summary",
	} {
		a, err := reg.Find(tt)
		require.NoError(t, err, tt)
		d, err := a.TimeoutDuration()
		require.NoError(t, err)
		assert.Positive(t, d)
	}
}

func TestValidate_ReportsProblems(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{
		validActivity("search.request.parse", "parse-search-request"),
		validActivity("search.request.parse", "other"),
		validActivity("BadName", "parse-search-request"),
		{ID: "search.x.y", TaskType: "x", DisplayName: "X", ImplementationStatus: "done", Timeout: "soon", Retries: -1},
	}}

	err := reg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "duplicate id")
	assert.Contains(t, msg, "duplicate taskType parse-search-request")
	assert.Contains(t, msg, "domain.subdomain.action")
	assert.Contains(t, msg, `invalid implementationStatus "done"`)
	assert.Contains(t, msg, `invalid timeout "soon"`)
	assert.Contains(t, msg, "retries must not be negative")
}

func TestAddAndSetStatus(t *testing.T) {
	reg := &ActivityRegistry{}
	require.NoError(t, reg.Add(validActivity("search.request.parse", "parse-search-request")))
	assert.Error(t, reg.Add(validActivity("search.request.parse", "another")))
	assert.Error(t, reg.Add(validActivity("search.other.parse", "parse-search-request")))

	require.NoError(t, reg.SetStatus("search.request.parse", "verified"))
	a, err := reg.FindByID("search.request.parse")
	require.NoError(t, err)
	assert.Equal(t, "verified", a.ImplementationStatus)

	assert.Error(t, reg.SetStatus("search.request.parse", "shipped"))
	assert.ErrorIs(t, reg.SetStatus("missing.id.here", "verified"), ErrActivityNotFound)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	reg := &ActivityRegistry{Version: "1.0.0"}
	require.NoError(t, reg.Add(validActivity("search.batch.rank", "rank-batch")))
	require.NoError(t, reg.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)
	assert.Len(t, loaded.Activities, 1)
}

func TestCheckInput(t *testing.T) {
	reg, err := LoadRegistry(repoRegistryPath(t))
	require.NoError(t, err)

	result, err := reg.CheckInput("publish-search-summary", `{"searchId": "abc"}`)
	require.NoError(t, err)
	assert.True(t, result.Valid)

	result, err = reg.CheckInput("publish-search-summary", `{"query": "john"}`)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.True(t, result.HasErrors("searchId"))

	_, err = reg.CheckInput("unknown-task", `{}`)
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestMissing(t *testing.T) {
	reg := &ActivityRegistry{Activities: []Activity{validActivity("search.batch.rank", "rank-batch")}}
	assert.Equal(t, []string{"rank-entities"}, reg.Missing([]string{"rank-batch", "rank-entities"}))
	assert.Empty(t, reg.Missing([]string{"rank-batch"}))
}
