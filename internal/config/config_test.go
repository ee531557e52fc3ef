package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"KAFKA_BROKERS", "KAFKA_SOURCE_TOPIC", "KAFKA_SINK_TOPIC", "KAFKA_GROUP_ID",
		"HTTP_ADDR", "LOG_LEVEL", "LOG_FORMAT", "SHUTDOWN_TIMEOUT",
		"BATCH_SIZE", "BATCH_FLUSH_INTERVAL",
		"MODEL_STORE", "MODEL_PATH", "MODEL_DB_PATH", "PREDICT_HORIZON_DAYS",
		"ALERT_EXTREME_HEAT_C", "ALERT_FREEZING_C", "ALERT_HIGH_WIND_MS", "ALERT_HEAVY_RAIN_MM_H",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "weather-requests", cfg.KafkaSourceTopic)
	assert.Equal(t, "weather-results", cfg.KafkaSinkTopic)
	assert.Equal(t, "forecast-analytics", cfg.KafkaGroupID)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, "file", cfg.ModelStore)
	assert.Equal(t, "models/weather_trend_model.gob", cfg.ModelPath)
	assert.Equal(t, 7, cfg.PredictHorizonDays)
	assert.Nil(t, cfg.AlertExtremeHeatC)
	assert.Nil(t, cfg.AlertHeavyRainMMH)
}

func TestLoadCustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("KAFKA_SOURCE_TOPIC", "obs-in")
	t.Setenv("KAFKA_SINK_TOPIC", "results-out")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("BATCH_SIZE", "25")
	t.Setenv("MODEL_STORE", "sqlite")
	t.Setenv("MODEL_DB_PATH", "/var/lib/forecast/models.db")
	t.Setenv("PREDICT_HORIZON_DAYS", "14")
	t.Setenv("ALERT_EXTREME_HEAT_C", "40")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "obs-in", cfg.KafkaSourceTopic)
	assert.Equal(t, "results-out", cfg.KafkaSinkTopic)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 25, cfg.BatchSize)
	assert.Equal(t, "sqlite", cfg.ModelStore)
	assert.Equal(t, "/var/lib/forecast/models.db", cfg.ModelDBPath)
	assert.Equal(t, 14, cfg.PredictHorizonDays)
	require.NotNil(t, cfg.AlertExtremeHeatC)
	assert.Equal(t, 40.0, *cfg.AlertExtremeHeatC)
	assert.Nil(t, cfg.AlertFreezingC)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"bad model store", "MODEL_STORE", "redis"},
		{"non-numeric batch size", "BATCH_SIZE", "many"},
		{"zero batch size", "BATCH_SIZE", "0"},
		{"negative horizon", "PREDICT_HORIZON_DAYS", "-1"},
		{"bad shutdown timeout", "SHUTDOWN_TIMEOUT", "soon"},
		{"negative flush interval", "BATCH_FLUSH_INTERVAL", "-2s"},
		{"bad threshold", "ALERT_FREEZING_C", "cold"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
