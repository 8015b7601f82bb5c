package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into dir for the duration of the test so no stray .env is read.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "http://localhost:8080", cfg.FrontendBaseURL)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, "sqlite", cfg.KVDriver())
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.Metrics)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("API_BASE_URL", "https://api.laganacoach.com/api/v1/")
	t.Setenv("PORT", "9000")
	t.Setenv("LAGANA_REDIS_ADDR", "localhost:6379")
	t.Setenv("LAGANA_API_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.laganacoach.com/api/v1", cfg.APIBaseURL, "trailing slash trimmed")
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "redis", cfg.KVDriver())
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("FRONTEND_BASE_URL=https://app.example.com\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("FRONTEND_BASE_URL") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://app.example.com", cfg.FrontendBaseURL)
	assert.True(t, cfg.SecureCookies())
	assert.Equal(t, []string{"app.example.com"}, cfg.TrustedOrigins())
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "lagana.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
env: development
api_base_url: http://api.internal:8000/api/v1
storage:
  db_path: none
rate_limit: 5
`), 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "http://api.internal:8000/api/v1", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.KVDriver())
	assert.Equal(t, 5, cfg.RateLimit)
}

func TestLoad_ProductionNeedsKeys(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LAGANA_ENV", EnvProduction)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAGANA_CSRF_KEY")
	assert.Contains(t, err.Error(), "LAGANA_TOKEN_KEY")
	assert.Contains(t, err.Error(), "LAGANA_METRICS_TOKEN")
}

func TestValidate_ProductionMetricsOff(t *testing.T) {
	cfg := Config{
		Env:             EnvProduction,
		APIBaseURL:      "https://api.laganacoach.com/api/v1",
		FrontendBaseURL: "https://app.laganacoach.com",
		APITimeout:      time.Second,
		Security:        SecurityConfig{CSRFKey: "k", TokenKey: "t"},
	}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_BadURL(t *testing.T) {
	cfg := Config{APIBaseURL: "localhost:8000", FrontendBaseURL: "http://x", APITimeout: time.Second}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API_BASE_URL")
}

func TestMustLoad_Panics(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Panics(t, func() { MustLoad() })
}
