package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
	"github.com/skylabs-meteo/forecast-analytics/internal/observability"
)

// TrendModel is the temperature trend predictor consumed by the analyzer.
type TrendModel interface {
	Train(observations []domain.Observation) (bool, error)
	Predict(observations []domain.Observation, horizonDays int) ([]domain.PredictionPoint, error)
	Info() domain.ModelInfo
}

// AlertAnalyzer scans forecast points for hazardous conditions.
type AlertAnalyzer interface {
	Analyze(points []domain.ForecastPoint) []domain.Alert
}

// Analyzer implements Transformer by routing request envelopes to the trend
// model or the alert engine based on their kind.
type Analyzer struct {
	model       TrendModel
	alerts      AlertAnalyzer
	horizonDays int
	logger      *slog.Logger
	metrics     *observability.Metrics
}

// NewAnalyzer creates an Analyzer. horizonDays controls how many days ahead
// historical requests are forecast.
func NewAnalyzer(model TrendModel, alerts AlertAnalyzer, horizonDays int, logger *slog.Logger, metrics *observability.Metrics) *Analyzer {
	return &Analyzer{
		model:       model,
		alerts:      alerts,
		horizonDays: horizonDays,
		logger:      logger,
		metrics:     metrics,
	}
}

func (a *Analyzer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	env, err := domain.ParseEnvelope(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}
	a.metrics.EnvelopesConsumed.WithLabelValues(env.Kind).Inc()

	switch env.Kind {
	case domain.KindHistorical:
		return a.handleHistorical(env)
	case domain.KindForecast:
		return a.handleForecast(env)
	default:
		return domain.OutputEvent{}, fmt.Errorf("unsupported request kind %q", env.Kind)
	}
}

// handleHistorical trains the model on the supplied observations and then
// predicts the coming days. Training is skipped below the minimum sample
// count; the result reports whether it happened.
func (a *Analyzer) handleHistorical(env domain.RequestEnvelope) (domain.OutputEvent, error) {
	observations, err := domain.ParseObservations(env.Records)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("parse observations for %s: %w", env.City, err)
	}

	start := time.Now()
	trained, err := a.model.Train(observations)
	a.metrics.TrainDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		a.metrics.TrainRuns.WithLabelValues("error").Inc()
		return domain.OutputEvent{}, fmt.Errorf("train model for %s: %w", env.City, err)
	}
	if trained {
		a.metrics.TrainRuns.WithLabelValues("trained").Inc()
	} else {
		a.metrics.TrainRuns.WithLabelValues("insufficient_data").Inc()
		a.metrics.InsufficientData.WithLabelValues("train").Inc()
		a.logger.Info("too few observations to train",
			"city", env.City, "observations", len(observations))
	}

	horizon := env.HorizonDays
	if horizon <= 0 {
		horizon = a.horizonDays
	}

	start = time.Now()
	points, err := a.model.Predict(observations, horizon)
	a.metrics.PredictDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("predict trend for %s: %w", env.City, err)
	}
	if points == nil {
		a.metrics.InsufficientData.WithLabelValues("predict").Inc()
	} else {
		a.metrics.PredictionsProduced.Add(float64(len(points)))
	}

	result := domain.NewPredictionResult(env.City, trained, points, a.model.Info())
	return a.marshalResult(env.City, "prediction", result)
}

// handleForecast scans the supplied forecast points for hazards.
func (a *Analyzer) handleForecast(env domain.RequestEnvelope) (domain.OutputEvent, error) {
	points := domain.ToForecastPoints(env.Records)
	alerts := a.alerts.Analyze(points)
	for _, alert := range alerts {
		a.metrics.AlertsFired.WithLabelValues(string(alert.Type)).Inc()
	}

	result := domain.NewAlertResult(env.City, alerts)
	return a.marshalResult(env.City, "alerts", result)
}

func (a *Analyzer) marshalResult(city, kind string, result any) (domain.OutputEvent, error) {
	value, err := json.Marshal(result)
	if err != nil {
		return domain.OutputEvent{}, fmt.Errorf("marshal %s result for %s: %w", kind, city, err)
	}
	return domain.OutputEvent{
		Key:     []byte(city),
		Value:   value,
		Headers: map[string]string{"result_kind": kind},
	}, nil
}
