package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "area-analysis-requests", cfg.KafkaSourceTopic)
	assert.Equal(t, "flood-risk-reports", cfg.KafkaSinkTopic)
	assert.Equal(t, "flood-risk-etl", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, 500*time.Millisecond, cfg.BatchFlushInterval)
	assert.Equal(t, "https://api.opentopodata.org/v1", cfg.DEMBaseURL)
	assert.Equal(t, "srtm30m", cfg.DEMDataset)
	assert.Equal(t, 10*time.Second, cfg.DEMTimeout)
	assert.Equal(t, 10000, cfg.DEMCacheSize)
	assert.Equal(t, 30.0, cfg.DEMResolutionM)
	assert.Equal(t, 100.0, cfg.LowZoneThresholdM)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "custom-source")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("BATCH_SIZE", "100")
	t.Setenv("BATCH_FLUSH_INTERVAL", "1s")
	t.Setenv("DEM_API_URL", "http://localhost:5000/v1")
	t.Setenv("DEM_DATASET", "aster30m")
	t.Setenv("DEM_TIMEOUT", "5s")
	t.Setenv("DEM_CACHE_SIZE", "500")
	t.Setenv("DEM_RESOLUTION_M", "90")
	t.Setenv("LOW_ZONE_THRESHOLD_M", "50")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-source", cfg.KafkaSourceTopic)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 1*time.Second, cfg.BatchFlushInterval)
	assert.Equal(t, "http://localhost:5000/v1", cfg.DEMBaseURL)
	assert.Equal(t, "aster30m", cfg.DEMDataset)
	assert.Equal(t, 5*time.Second, cfg.DEMTimeout)
	assert.Equal(t, 500, cfg.DEMCacheSize)
	assert.Equal(t, 90.0, cfg.DEMResolutionM)
	assert.Equal(t, 50.0, cfg.LowZoneThresholdM)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidBatchSize(t *testing.T) {
	t.Setenv("BATCH_SIZE", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BATCH_SIZE")
}

func TestLoad_InvalidDEMResolution(t *testing.T) {
	t.Setenv("DEM_RESOLUTION_M", "-30")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEM_RESOLUTION_M")
}
