package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads values from the yaml file", func(t *testing.T) {
		// Given: a config file with redis storage and a short delay
		path := writeConfig(t, `
log-level: debug
http-port: "8181"
storage: redis
redis:
  host: cache
  port: "6380"
  session-ttl: 10m
computer:
  delay: 50ms
  mark: X
`)

		// When: loading the config
		conf, err := Load(path)

		// Then: every field is taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8181", conf.HTTPPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 10*time.Minute, conf.Redis.SessionTTL)
		assert.Equal(t, 50*time.Millisecond, conf.Computer.Delay)
		assert.Equal(t, "X", conf.Computer.Mark)
	})

	t.Run("Falls back to defaults when the file is missing", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, time.Hour, conf.Redis.SessionTTL)
		assert.Equal(t, 500*time.Millisecond, conf.Computer.Delay)
		assert.Equal(t, "O", conf.Computer.Mark)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a file and an env override for the port
		path := writeConfig(t, "http-port: \"8181\"\n")
		t.Setenv("HTTP_PORT", "7070")

		// When: loading the config
		conf, err := Load(path)

		// Then: the env value wins
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
	})

	t.Run("Rejects unknown storage", func(t *testing.T) {
		path := writeConfig(t, "storage: postgres\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown storage")
	})

	t.Run("Rejects an invalid computer mark", func(t *testing.T) {
		path := writeConfig(t, "computer:\n  mark: Z\n")

		_, err := Load(path)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "computer mark")
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := writeConfig(t, "storage: [unterminated\n")

		assert.Panics(t, func() { MustLoad(path) })
	})
}
