package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "playwright", cfg.KeyPrefix)
	assert.NotEmpty(t, cfg.SQLitePath)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.RedisAddr)
}

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"cmd",
		"-b", "redis", "-k", "ns", "-f", "/tmp/data", "-q", "lib.db",
		"-d", "dsn", "-r", "redis:6379",
		"-t", "bucket", "-g", "us-west-1", "-e", "http://endpoint", "-u", "user", "-p", "password",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseFlags(cfg) })

	assert.Equal(t, BackendRedis, cfg.Backend)
	assert.Equal(t, "ns", cfg.KeyPrefix)
	assert.Equal(t, "/tmp/data", cfg.DataDir)
	assert.Equal(t, "lib.db", cfg.SQLitePath)
	assert.Equal(t, "dsn", cfg.DatabaseDSN)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, "bucket", cfg.S3Bucket)
	assert.Equal(t, "us-west-1", cfg.S3Region)
	assert.Equal(t, "http://endpoint", cfg.S3BaseEndpoint)
	assert.Equal(t, "user", cfg.S3AccessKey)
	assert.Equal(t, "password", cfg.S3SecretKey)
}

func TestParseJson_PartialOverlayKeepsDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{
		"backend":    "file",
		"key_prefix": "demo",
	})
	os.Args = []string{"cmd", "-config", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	require.NotPanics(t, func() { parseJson(cfg) })

	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, "demo", cfg.KeyPrefix)
	// untouched fields keep defaults
	assert.Equal(t, "library.db", cfg.SQLitePath)
}

func TestParseJson_NoFlagIsNoop(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd"}

	cfg := &Config{}
	cfg.LoadDefaults()
	want := *cfg

	parseJson(cfg)
	assert.Equal(t, want, *cfg)
}

func TestParseJson_InvalidFilePanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0o600))
	os.Args = []string{"cmd", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	assert.Panics(t, func() { parseJson(cfg) })
}

func TestLoadConfig_FlagsOverrideJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := writeTempJSON(t, map[string]any{"backend": "file"})
	os.Args = []string{"cmd", "-config", path, "-b", "memory"}

	cfg := LoadConfig()
	assert.Equal(t, BackendMemory, cfg.Backend)
}
