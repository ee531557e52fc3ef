package domain

import "time"

// PredictionPoint is one predicted future day. Date is a calendar date with
// no time-of-day component.
type PredictionPoint struct {
	Date                 string  `json:"date"`
	PredictedTemperature float64 `json:"predicted_temperature"`
}

// ModelInfo describes the regressor that produced a prediction.
type ModelInfo struct {
	Type     string   `json:"type"`
	Features []string `json:"features"`
}

// PredictionResult is the sink-topic payload for a historical envelope.
// InsufficientData marks the expected "not enough observations" outcome;
// it is not an error.
type PredictionResult struct {
	City             string            `json:"city"`
	GeneratedAt      time.Time         `json:"generated_at"`
	Trained          bool              `json:"trained"`
	InsufficientData bool              `json:"insufficient_data,omitempty"`
	Predictions      []PredictionPoint `json:"predictions"`
	ModelInfo        ModelInfo         `json:"model_info"`
}

// AlertResult is the sink-topic payload for a forecast envelope.
type AlertResult struct {
	City        string    `json:"city"`
	GeneratedAt time.Time `json:"generated_at"`
	HasAlerts   bool      `json:"has_alerts"`
	Alerts      []Alert   `json:"alerts"`
}

// NewPredictionResult stamps a prediction payload with the domain clock.
func NewPredictionResult(city string, trained bool, points []PredictionPoint, info ModelInfo) PredictionResult {
	return PredictionResult{
		City:             city,
		GeneratedAt:      clock.Now().UTC(),
		Trained:          trained,
		InsufficientData: points == nil,
		Predictions:      points,
		ModelInfo:        info,
	}
}

// NewAlertResult stamps an alert payload with the domain clock.
func NewAlertResult(city string, alerts []Alert) AlertResult {
	return AlertResult{
		City:        city,
		GeneratedAt: clock.Now().UTC(),
		HasAlerts:   len(alerts) > 0,
		Alerts:      alerts,
	}
}
