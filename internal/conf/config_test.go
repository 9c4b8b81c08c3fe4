package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
database:
  host: db.internal
  password: secret
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", config.Server.Host)
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, "db.internal", config.Database.Host)
	assert.Equal(t, 5432, config.Database.Port)
	assert.Equal(t, CacheBackendRedis, config.Cache.Backend)
	assert.Equal(t, "info", config.Log.Level)
	assert.False(t, config.ObjectStorageEnabled())
}

func TestLoadConfigMemoryCacheSkipsRedis(t *testing.T) {
	path := writeConfig(t, `
cache:
  backend: memory
  capacity: 500
redis:
  host: ""
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, CacheBackendMemory, config.Cache.Backend)
	assert.Equal(t, 500, config.Cache.Capacity)
}

func TestLoadConfigRejectsUnknownCacheBackend(t *testing.T) {
	path := writeConfig(t, `
cache:
  backend: memcached
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	path := writeConfig(t, `
server:
  port: -1
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigValidatesMinIOWhenConfigured(t *testing.T) {
	path := writeConfig(t, `
minio:
  endpoint: localhost:9000
  bucket: ""
`)

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
