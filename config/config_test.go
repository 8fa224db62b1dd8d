package config

import (
	"testing"

	"water-dashboard/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("KAFKA_ENABLED", "")
	t.Setenv("NOTIFICATION_LIMIT", "")
	t.Setenv("JAEGER_ENDPOINT", "")

	cfg := Load()

	assert.Equal(t, BackendFile, cfg.Storage.Backend)
	assert.False(t, cfg.Kafka.Enabled)
	assert.Equal(t, 50, cfg.Dashboard.NotificationLimit)
	assert.Empty(t, cfg.Observ.JaegerEndpoint)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "Redis")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("NOTIFICATION_LIMIT", "5")

	cfg := Load()

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 5, cfg.Dashboard.NotificationLimit)
}

func TestLoadRejectsInvalidNotificationLimit(t *testing.T) {
	t.Setenv("NOTIFICATION_LIMIT", "0")

	cfg := Load()

	assert.Equal(t, 50, cfg.Dashboard.NotificationLimit)
}

func TestLoadLogsThroughGlobalLogger(t *testing.T) {
	prev := util.GetLogger()
	t.Cleanup(func() { util.SetLogger(prev) })

	core, logs := observer.New(zapcore.InfoLevel)
	util.SetLogger(zap.New(core))
	t.Setenv("STORAGE_BACKEND", "memory")

	Load()

	entries := logs.FilterMessage("Config loaded").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "memory", entries[0].ContextMap()["storage"])
}

func TestLoadIsSilentBelowErrorLevel(t *testing.T) {
	prev := util.GetLogger()
	t.Cleanup(func() { util.SetLogger(prev) })

	core, logs := observer.New(zapcore.ErrorLevel)
	util.SetLogger(zap.New(core))

	Load()

	assert.Zero(t, logs.Len())
}
