package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(previous) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Cookbook", cfg.App.Name)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "favorites", cfg.Storage.FavoritesKey)
	assert.Equal(t, "/metrics", cfg.Monitoring.MetricsPath)
	assert.True(t, cfg.Catalog.Seed)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr())
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeConfig(t, dir, `
app:
  environment: production
  log_level: warn
server:
  port: 9000
storage:
  driver: sqlite
  sqlite_path: /tmp/favorites.db
`)
	t.Setenv("COOKBOOK_SERVER_PORT", "9100")
	t.Setenv("COOKBOOK_REDIS_HOST", "cache.internal")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "warn", cfg.App.LogLevel)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, StorageSQLite, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/favorites.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "cache.internal", cfg.Redis.Host)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COOKBOOK_APP_NAME=FromDotEnv\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("COOKBOOK_APP_NAME") })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "FromDotEnv", cfg.App.Name)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: 70000\n"},
		{"unknown driver", "storage:\n  driver: mongo\n"},
		{"unknown log level", "app:\n  log_level: verbose\n"},
		{"sampling rate", "monitoring:\n  sampling_rate: 2\n"},
		{"rate limit", "rate_limit:\n  enable: true\n  requests_per_min: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			chdir(t, dir)

			_, err := Load(writeConfig(t, dir, tt.content))

			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := writeConfig(t, dir, "app:\n  log_level: info\n")

	changes := make(chan *Config, 16)
	cfg, err := Watch(path, func(c *Config, _ fsnotify.Event) {
		select {
		case changes <- c:
		default:
		}
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.App.LogLevel)

	require.NoError(t, os.WriteFile(path, []byte("app:\n  log_level: debug\n"), 0o600))

	deadline := time.After(5 * time.Second)
	for {
		select {
		case updated := <-changes:
			if updated.App.LogLevel == "debug" {
				return
			}
		case <-deadline:
			t.Fatal("configuration change was not observed")
		}
	}
}
