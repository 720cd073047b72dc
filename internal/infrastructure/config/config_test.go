package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir()) // no config.toml present

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "TakibiEsasi", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.Refresh.PollInterval)
	assert.True(t, cfg.Refresh.Enabled)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, int64(256<<20), cfg.Database.MmapSizeBytes)
	assert.Equal(t, "8873", cfg.HTTP.Port)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TAKIBI_APP_ENV", "production")
	t.Setenv("TAKIBI_DATABASE_PATH", "/tmp/takibi-test.db")
	t.Setenv("TAKIBI_REFRESH_POLL_INTERVAL", "10s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 10*time.Second, cfg.Refresh.PollInterval)

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/takibi-test.db", path)
}

func TestValidateRejectsTightPolling(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TAKIBI_REFRESH_POLL_INTERVAL", "100ms")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "poll_interval")
}

func TestDatabasePathDefault(t *testing.T) {
	chdir(t, t.TempDir())
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	require.NoError(t, err)

	path, err := cfg.DatabasePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Documents", "TakibiEsasi", "data.db"), path)
	assert.DirExists(t, filepath.Dir(path))
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
