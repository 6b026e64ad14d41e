package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/robfig/cron/v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	CropParamsPath  string
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// ReloadSchedule is a cron expression or descriptor such as "@hourly".
	ReloadSchedule      string
	LoadRetryMaxElapsed time.Duration

	// Optional sinks. Empty values disable them.
	SQLitePath   string
	KafkaBrokers []string
	KafkaTopic   string
}

// SQLiteEnabled reports whether the SQLite catalog sink is configured.
func (c *Config) SQLiteEnabled() bool { return c.SQLitePath != "" }

// KafkaEnabled reports whether the Kafka sink is configured.
func (c *Config) KafkaEnabled() bool { return len(c.KafkaBrokers) > 0 }

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	retryMaxElapsed, err := parsePositiveDuration("LOAD_RETRY_MAX_ELAPSED", "30s")
	if err != nil {
		return nil, err
	}

	var brokers []string
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		brokers = sharedcfg.ParseBrokers(v)
	}

	cfg := &Config{
		CropParamsPath:      os.Getenv("CROP_PARAMS_PATH"),
		HTTPAddr:            sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:            sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:     shutdownTimeout,
		ReloadSchedule:      sharedcfg.EnvOrDefault("RELOAD_SCHEDULE", "@hourly"),
		LoadRetryMaxElapsed: retryMaxElapsed,
		SQLitePath:          os.Getenv("SQLITE_PATH"),
		KafkaBrokers:        brokers,
		KafkaTopic:          sharedcfg.EnvOrDefault("KAFKA_TOPIC", "crop-parameters"),
	}

	if cfg.CropParamsPath == "" {
		return nil, errors.New("CROP_PARAMS_PATH is required")
	}
	if _, err := cron.ParseStandard(cfg.ReloadSchedule); err != nil {
		return nil, fmt.Errorf("invalid RELOAD_SCHEDULE: %w", err)
	}
	if cfg.KafkaEnabled() && cfg.KafkaTopic == "" {
		return nil, errors.New("KAFKA_TOPIC is required when KAFKA_BROKERS is set")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}
