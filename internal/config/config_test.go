package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default().Data.RawPath, cfg.Data.RawPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("data:\n  raw_path: /tmp/raw.csv\nserver:\n  port: 9999\nredis:\n  addr: localhost:6379\n  ttl_seconds: 60\n")
	require.NoError(t, os.WriteFile(path, body, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/raw.csv", cfg.Data.RawPath)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, int64(60), int64(cfg.Redis.TTL().Seconds()))
	// Untouched sections keep defaults.
	assert.Equal(t, Default().Data.ProcessedPath, cfg.Data.ProcessedPath)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "7070")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("EQSIM_RAW_PATH", "/data/raw.csv")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "/data/raw.csv", cfg.Data.RawPath)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
