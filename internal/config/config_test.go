package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_DefaultsWhenFileMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	t.Setenv("ALPHA_VANTAGE_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
	require.Zero(t, cfg.AlphaVantage.TimeoutMs)
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	path := writeConfig(t, `
server:
  port: 8081
  public_dir: web
log:
  level: debug
alpha_vantage:
  api_key: from-file
  timeout_ms: 2500
`)
	t.Setenv("PORT", "9090")
	t.Setenv("ALPHA_VANTAGE_API_KEY", "from-env")
	t.Setenv("ALPHA_VANTAGE_BASE_URL", "")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Server.Port)
	require.Equal(t, "web", cfg.Server.PublicDir)
	require.Equal(t, "dist/client", cfg.Server.ClientDir)
	require.Equal(t, "from-env", cfg.AlphaVantage.APIKey)
	require.Equal(t, 2500, cfg.AlphaVantage.TimeoutMs)
	require.Equal(t, "https://www.alphavantage.co", cfg.AlphaVantage.BaseURL)
	require.Equal(t, hlog.LevelDebug, cfg.Log.HlogLevel())
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ALPHA_VANTAGE_API_KEY=dotenv-key\n"), 0o644))
	t.Setenv("ALPHA_VANTAGE_API_KEY", "")
	t.Setenv("PORT", "")

	// godotenv never overrides variables that are already set, even to "".
	require.NoError(t, os.Unsetenv("ALPHA_VANTAGE_API_KEY"))

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "dotenv-key", cfg.AlphaVantage.APIKey)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "not-a-port")

	_, err := Load("")
	require.ErrorContains(t, err, "invalid PORT")
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "")

	_, err := Load(writeConfig(t, "server: [unterminated"))
	require.ErrorContains(t, err, "parse config")
}

func TestHlogLevel(t *testing.T) {
	t.Parallel()

	require.Equal(t, hlog.LevelInfo, LogConfig{}.HlogLevel())
	require.Equal(t, hlog.LevelWarn, LogConfig{Level: "WARN"}.HlogLevel())
	require.Equal(t, hlog.LevelError, LogConfig{Level: "error"}.HlogLevel())
}
