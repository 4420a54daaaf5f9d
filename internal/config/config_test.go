package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadWithArgs(filepath.Join(t.TempDir(), "missing.json"), nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestFileEnvFlagsLayering(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "recmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: "9090"
storeDriver: redis
redisAddr: redis:6379
redisDb: 1
logLevel: debug
`), 0o644))

	t.Setenv("RECMAP_REDIS_ADDR", "cache:6380")
	t.Setenv("RECMAP_AUTO_MIGRATE", "yes")

	cfg, err := LoadWithArgs(path, []string{"-redis-db", "2", "--log-level=WARN"}, io.Discard)
	require.NoError(t, err)

	// файл
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "redis", cfg.StoreDriver)
	// env поверх файла
	assert.Equal(t, "cache:6380", cfg.RedisAddr)
	assert.True(t, cfg.AutoMigrate)
	// флаги поверх всего, уровень логов нормализован
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestJSONConfigViaFlag(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"storeDriver":"sqlite","sqlitePath":"/tmp/x.db"}`), 0o644))

	cfg, err := LoadWithArgs(filepath.Join(dir, "default.json"), []string{"-config", path}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.StoreDriver)
	assert.Equal(t, "/tmp/x.db", cfg.SQLitePath)
}

func TestBrokenFileFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	cfg, err := LoadWithArgs(path, nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.StoreDriver)
}

func TestUnknownFlag(t *testing.T) {
	_, err := LoadWithArgs("", []string{"-nope"}, io.Discard)
	assert.Error(t, err)
}

func TestLocation(t *testing.T) {
	loc, err := Config{}.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	_, err = Config{DateLocation: "Mars/Olympus"}.Location()
	assert.Error(t, err)
}

func TestLoggerLevel(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "warn"
	log, err := cfg.Logger()
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, log.Core().Enabled(zapcore.WarnLevel))

	cfg.LogLevel = "loud"
	_, err = cfg.Logger()
	assert.Error(t, err)
}
