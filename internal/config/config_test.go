package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, used, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Empty(t, used)
	assert.Equal(t, Defaults(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.yaml")
	content := `
server:
  addr: ":9090"
  strict_status: true
  read_timeout: 3s
log:
  level: verbose
cache:
  ttl: 1m
tracing:
  enabled: true
  exporter: none
seed: catalog.yaml
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, used, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, path, used)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Server.StrictStatus)
	assert.Equal(t, 3*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, "verbose", cfg.Log.Level)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.True(t, cfg.Cache.Enabled)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, "cookbook", cfg.Tracing.ServiceName)
	assert.Equal(t, "catalog.yaml", cfg.Seed)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644))
	t.Setenv("COOKBOOK_SERVER_ADDR", ":7070")

	cfg, _, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	_, _, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookbook.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: shouting\n"), 0o644))

	_, _, err := Load(viper.New(), path)
	require.ErrorContains(t, err, "log.level")
}
