package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientConfigDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("EMOTION_API_BASE_URL", "")
	t.Setenv("EMOTION_API_TIMEOUT", "")
	t.Setenv("EMOTION_API_HEALTH_INTERVAL", "")

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_BASE_URL, cfg.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, DEFAULT_HEALTH_INTERVAL, cfg.HealthInterval)
}

func TestGetClientConfigProductionTimeout(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("EMOTION_API_TIMEOUT", "")

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestGetClientConfigOverrides(t *testing.T) {
	t.Setenv("EMOTION_API_BASE_URL", "https://emotions.example.com/")
	t.Setenv("EMOTION_API_TIMEOUT", "3s")
	t.Setenv("EMOTION_API_HEALTH_INTERVAL", "1m")

	cfg, err := GetClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://emotions.example.com", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.HealthInterval)
}

func TestGetClientConfigInvalid(t *testing.T) {
	cases := map[string][2]string{
		"bad scheme":       {"EMOTION_API_BASE_URL", "ftp://localhost"},
		"bad timeout":      {"EMOTION_API_TIMEOUT", "soon"},
		"negative timeout": {"EMOTION_API_TIMEOUT", "-1s"},
		"bad interval":     {"EMOTION_API_HEALTH_INTERVAL", "often"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := GetClientConfig()
			assert.Error(t, err)
		})
	}
}

func TestGetServerConfig(t *testing.T) {
	t.Setenv("EMOTION_API_ADDR", "")
	t.Setenv("EMOTION_API_ALLOWED_ORIGINS", " http://a.test , ,http://b.test")
	t.Setenv("EMOTION_API_MAX_TEXT_LENGTH", "250")

	cfg, err := GetServerConfig()
	require.NoError(t, err)
	assert.Equal(t, DEFAULT_ADDR, cfg.Addr)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 250, cfg.MaxTextLength)
}

func TestGetServerConfigInvalidLength(t *testing.T) {
	t.Setenv("EMOTION_API_MAX_TEXT_LENGTH", "0")
	_, err := GetServerConfig()
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	levels := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"WARN":    slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for raw, want := range levels {
		t.Setenv("LOG_LEVEL", raw)
		assert.Equal(t, want, LogLevel(), "LOG_LEVEL=%q", raw)
	}
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, EnvDir), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, EnvDir, ".env.test"),
		[]byte("EMOTION_API_ADDR=:9999\n"),
		0o644,
	))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("EMOTION_API_ADDR", "")
	require.NoError(t, os.Unsetenv("EMOTION_API_ADDR"))
	LoadEnv("test")
	assert.Equal(t, ":9999", os.Getenv("EMOTION_API_ADDR"))

	assert.NotPanics(t, func() { LoadEnv("missing") })
}
