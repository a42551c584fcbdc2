package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result, with earlier configs winning.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder().withDefaults()
	b.configs = append([]*StructuredConfig{
		{GitHub: GitHub{APIToken: "first"}},
		{GitHub: GitHub{APIToken: "second", PageSize: 10}},
	}, b.configs...)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "first", cfg.GitHub.APIToken)
	assert.Equal(t, 10, cfg.GitHub.PageSize)
}

// TestBuild_ValidationFailsWithoutStorage verifies that a config with no
// database settings at all fails validation.
func TestBuild_ValidationFailsWithoutStorage(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		GitHub: GitHub{APIBaseURL: "https://api.github.com", PageSize: 100, RequestTimeout: time.Second},
	})

	_, err := b.build()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

// ── withDefaults ──────────────────────────────────────────────────────────────

// TestWithDefaults_FillsGapsOnly verifies that defaults never override
// values provided by an earlier source.
func TestWithDefaults_FillsGapsOnly(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		DB: DB{Host: "db.internal"},
	})
	b.withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, "github_users", cfg.DB.Name)
	assert.Equal(t, "https://api.github.com", cfg.GitHub.APIBaseURL)
	assert.Equal(t, 100, cfg.GitHub.PageSize)
	assert.Equal(t, 15*time.Second, cfg.GitHub.RequestTimeout)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_MergedAfterFlags verifies that a JSON file referenced from an
// earlier source is loaded and merged with the lowest priority.
func TestWithJSON_MergedAfterFlags(t *testing.T) {
	jsonPath := writeTempJSONConfig(t, map[string]any{
		"github": map[string]any{"api_token": "from-json", "request_timeout": "20s"},
		"db":     map[string]any{"uri": "postgres://json/db"},
	})

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		GitHub:       GitHub{APIToken: "from-env"},
		JSONFilePath: jsonPath,
	})
	b.withJSON().withDefaults()

	cfg, err := b.build()
	require.NoError(t, err)

	// env wins over JSON; JSON fills what env left unset
	assert.Equal(t, "from-env", cfg.GitHub.APIToken)
	assert.Equal(t, 20*time.Second, cfg.GitHub.RequestTimeout)
	assert.Equal(t, "postgres://json/db", cfg.DB.URI)
}

// TestWithJSON_MissingFileSetsError verifies that a dangling config path is
// surfaced as a build error.
func TestWithJSON_MissingFileSetsError(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: "/does/not/exist.json"})
	b.withJSON()

	_, err := b.build()
	require.Error(t, err)
}

// ── GetStructuredConfig ───────────────────────────────────────────────────────

// TestGetStructuredConfig_ReturnsRemainingArgs verifies end-to-end loading
// and that positional arguments pass through.
func TestGetStructuredConfig_ReturnsRemainingArgs(t *testing.T) {
	clearEnvVars(t)

	cfg, remaining, err := GetStructuredConfig([]string{"-token", "ghp_secret", "fetch", "octocat"})
	require.NoError(t, err)

	assert.Equal(t, []string{"fetch", "octocat"}, remaining)
	assert.Equal(t, "ghp_secret", cfg.GitHub.APIToken)
	// defaults filled in
	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 100, cfg.GitHub.PageSize)
}
