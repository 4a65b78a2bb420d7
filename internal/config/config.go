package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// DEM access configuration.
	DEMBaseURL   string
	DEMDataset   string
	DEMTimeout   time.Duration
	DEMCacheSize int

	// Assessment defaults, overridable per request.
	DEMResolutionM    float64
	LowZoneThresholdM float64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := durationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	batchSize, err := positiveIntEnv("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}
	flushInterval, err := durationEnv("BATCH_FLUSH_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}
	demTimeout, err := durationEnv("DEM_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	demCacheSize, err := positiveIntEnv("DEM_CACHE_SIZE", 10000)
	if err != nil {
		return nil, err
	}
	demResolution, err := positiveFloatEnv("DEM_RESOLUTION_M", 30)
	if err != nil {
		return nil, err
	}
	lowZoneThreshold, err := positiveFloatEnv("LOW_ZONE_THRESHOLD_M", 100)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "area-analysis-requests"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "flood-risk-reports"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "flood-risk-etl"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		DEMBaseURL:   envOrDefault("DEM_API_URL", "https://api.opentopodata.org/v1"),
		DEMDataset:   envOrDefault("DEM_DATASET", "srtm30m"),
		DEMTimeout:   demTimeout,
		DEMCacheSize: demCacheSize,

		DEMResolutionM:    demResolution,
		LowZoneThresholdM: lowZoneThreshold,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, fmt.Errorf("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, fmt.Errorf("KAFKA_SINK_TOPIC is required")
	}
	if cfg.DEMBaseURL == "" {
		return nil, fmt.Errorf("DEM_API_URL is required")
	}
	if cfg.DEMDataset == "" {
		return nil, fmt.Errorf("DEM_DATASET is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitBrokers(raw string) []string {
	parts := strings.Split(raw, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func positiveIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func positiveFloatEnv(key string, fallback float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return f, nil
}
