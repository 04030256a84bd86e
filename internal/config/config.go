package config

import (
	"errors"
	"os"
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

	// Grid codec configuration.
	GridCacheSize int

	// Open-Meteo rainfall enrichment configuration.
	OpenMeteoEnabled  bool
	OpenMeteoTimeout  time.Duration
	ForecastHours     int
	ForecastCacheSize int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	batchSize, err := envIntInRange("BATCH_SIZE", 50, 1, 1000)
	if err != nil {
		return nil, err
	}

	flushInterval, err := envDuration("BATCH_FLUSH_INTERVAL", "500ms")
	if err != nil {
		return nil, err
	}

	gridCacheSize, err := envIntInRange("GRID_CACHE_SIZE", 512, 1, 1_000_000)
	if err != nil {
		return nil, err
	}

	openMeteoTimeout, err := envDuration("OPENMETEO_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	forecastHours, err := envIntInRange("FORECAST_HOURS", 24, 1, 72)
	if err != nil {
		return nil, err
	}

	forecastCacheSize, err := envIntInRange("FORECAST_CACHE_SIZE", 1000, 1, 1_000_000)
	if err != nil {
		return nil, err
	}

	// Open-Meteo needs no API key; enrichment is on unless explicitly off.
	openMeteoEnabled := true
	if v := os.Getenv("OPENMETEO_ENABLED"); v != "" {
		openMeteoEnabled = v == "true"
	}

	cfg := &Config{
		KafkaBrokers:       ParseBrokers(EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-citizen-reports"),
		KafkaSinkTopic:     EnvOrDefault("KAFKA_SINK_TOPIC", "enriched-citizen-reports"),
		KafkaGroupID:       EnvOrDefault("KAFKA_GROUP_ID", "citizen-report-etl"),
		HTTPAddr:           EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		GridCacheSize: gridCacheSize,

		OpenMeteoEnabled:  openMeteoEnabled,
		OpenMeteoTimeout:  openMeteoTimeout,
		ForecastHours:     forecastHours,
		ForecastCacheSize: forecastCacheSize,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if cfg.KafkaSourceTopic == cfg.KafkaSinkTopic {
		return nil, errors.New("KAFKA_SOURCE_TOPIC and KAFKA_SINK_TOPIC must differ")
	}

	return cfg, nil
}
