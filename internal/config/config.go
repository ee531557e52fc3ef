package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/skylabs-meteo/forecast-analytics/internal/modelstore"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string `validate:"required,min=1,dive,hostname_port"`
	KafkaSourceTopic string   `validate:"required"`
	KafkaSinkTopic   string   `validate:"required"`
	KafkaGroupID     string   `validate:"required"`
	HTTPAddr         string   `validate:"required"`
	LogLevel         string   `validate:"oneof=debug info warn error"`
	LogFormat        string   `validate:"oneof=json text"`
	ShutdownTimeout  time.Duration

	BatchSize          int `validate:"gt=0"`
	BatchFlushInterval time.Duration

	// Model persistence. ModelStore selects the backend; the matching
	// path field applies.
	ModelStore  string `validate:"oneof=file sqlite"`
	ModelPath   string `validate:"required"`
	ModelDBPath string

	PredictHorizonDays int `validate:"gt=0"`

	// Alert threshold overrides. Nil means keep the built-in default.
	AlertExtremeHeatC *float64
	AlertFreezingC    *float64
	AlertHighWindMS   *float64
	AlertHeavyRainMMH *float64
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	flushInterval, err := parseDuration("BATCH_FLUSH_INTERVAL", 5*time.Second)
	if err != nil {
		return nil, err
	}
	batchSize, err := parseInt("BATCH_SIZE", 50)
	if err != nil {
		return nil, err
	}
	horizon, err := parseInt("PREDICT_HORIZON_DAYS", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       splitBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   envOrDefault("KAFKA_SOURCE_TOPIC", "weather-requests"),
		KafkaSinkTopic:     envOrDefault("KAFKA_SINK_TOPIC", "weather-results"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "forecast-analytics"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,
		ModelStore:         envOrDefault("MODEL_STORE", "file"),
		ModelPath:          envOrDefault("MODEL_PATH", modelstore.DefaultFilePath),
		ModelDBPath:        envOrDefault("MODEL_DB_PATH", "models/forecast.db"),
		PredictHorizonDays: horizon,
	}

	for env, field := range map[string]**float64{
		"ALERT_EXTREME_HEAT_C":  &cfg.AlertExtremeHeatC,
		"ALERT_FREEZING_C":      &cfg.AlertFreezingC,
		"ALERT_HIGH_WIND_MS":    &cfg.AlertHighWindMS,
		"ALERT_HEAVY_RAIN_MM_H": &cfg.AlertHeavyRainMMH,
	} {
		v, err := parseOptionalFloat(env)
		if err != nil {
			return nil, err
		}
		*field = v
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			brokers = append(brokers, p)
		}
	}
	return brokers
}

func parseDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func parseInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return n, nil
}

func parseOptionalFloat(key string) (*float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %q", key, s)
	}
	return &f, nil
}
