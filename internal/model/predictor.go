// Package model implements the weather trend predictor: a standard scaler
// and a seeded random-forest regressor over engineered features, with a
// persisted artifact that survives process restarts.
package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
	"github.com/skylabs-meteo/forecast-analytics/internal/features"
)

// Minimum observation counts. Shorter inputs are an expected outcome, not an
// error: Train reports false, Predict returns a nil slice.
const (
	MinTrainObservations   = 10
	MinPredictObservations = 5
)

// ModelType names the regressor in prediction payloads.
const ModelType = "RandomForestRegressor"

// ErrNotTrained is returned by Predict when no training has ever succeeded,
// in this process or a previous one. Predicting with an unfitted scaler would
// silently return garbage; failing fast is deliberate.
var ErrNotTrained = errors.New("model not trained")

// Store persists the trained artifact. Load reports ok=false when no
// artifact exists yet; that is not an error.
type Store interface {
	Load() (*Artifact, bool, error)
	Save(*Artifact) error
}

// Regressor is the capability the predictor needs from a regression model.
// *RandomForest implements it; any other regressor can be swapped in without
// touching the TrendPredictor contract.
type Regressor interface {
	Fit(rows [][]float64, targets []float64) error
	Predict(row []float64) (float64, error)
}

// Scaler is the capability the predictor needs from a feature scaler.
// *StandardScaler implements it.
type Scaler interface {
	Fit(rows [][]float64) error
	Transform(rows [][]float64) ([][]float64, error)
}

// Status reports the predictor's trained state for the ops endpoint.
type Status struct {
	Trained   bool      `json:"trained"`
	TrainedAt time.Time `json:"trained_at,omitzero"`
	Samples   int       `json:"samples"`
}

// TrendPredictor owns the regression model and scaler pair. It has no
// internal locking: per the service design there is one instance per process,
// driven by the single pipeline goroutine, and concurrent Train calls against
// one instance must be serialized by the caller.
type TrendPredictor struct {
	store     Store
	scaler    *StandardScaler
	forest    *RandomForest
	trained   bool
	trainedAt time.Time
	samples   int
}

// NewTrendPredictor loads the persisted artifact from the store when one
// exists, otherwise starts with a fresh untrained model using the default
// hyperparameters.
func NewTrendPredictor(store Store) (*TrendPredictor, error) {
	p := &TrendPredictor{
		store:  store,
		scaler: NewStandardScaler(),
		forest: NewRandomForest(),
	}

	artifact, ok, err := store.Load()
	if err != nil {
		return nil, fmt.Errorf("load model artifact: %w", err)
	}
	if ok {
		p.scaler = artifact.Scaler
		p.forest = artifact.Forest
		p.trained = true
		p.trainedAt = artifact.TrainedAt
		p.samples = artifact.Samples
	}
	return p, nil
}

// Train fits the scaler and forest on the given observations and persists the
// new artifact, overwriting any previous one. Fewer than MinTrainObservations
// observations returns (false, nil) with no state change. A persistence
// failure is a hard error; the in-memory model keeps the fresh fit so the
// next successful train can persist it.
func (p *TrendPredictor) Train(observations []domain.Observation) (bool, error) {
	if len(observations) < MinTrainObservations {
		return false, nil
	}

	vectors, targets, err := features.Build(observations)
	if err != nil {
		return false, fmt.Errorf("build features: %w", err)
	}
	rows := features.Matrix(vectors)

	scaler := NewStandardScaler()
	scaled, err := scaler.FitTransform(rows)
	if err != nil {
		return false, fmt.Errorf("fit scaler: %w", err)
	}

	forest := NewRandomForest()
	if err := forest.Fit(scaled, targets); err != nil {
		return false, fmt.Errorf("fit forest: %w", err)
	}

	p.scaler = scaler
	p.forest = forest
	p.trained = true
	p.trainedAt = clock.Now().UTC()
	p.samples = len(observations)

	if err := p.store.Save(p.artifact()); err != nil {
		return false, fmt.Errorf("persist model artifact: %w", err)
	}
	return true, nil
}

// Predict extrapolates one temperature per future day, for the horizonDays
// days following the last observation's timestamp. Fewer than
// MinPredictObservations observations returns (nil, nil), the explicit
// insufficient-data sentinel. Each synthetic future row uses that day's real
// calendar fields but the last computed rolling averages, frozen across the
// whole horizon; accuracy degrades with distance, which is accepted behavior.
func (p *TrendPredictor) Predict(observations []domain.Observation, horizonDays int) ([]domain.PredictionPoint, error) {
	if len(observations) < MinPredictObservations {
		return nil, nil
	}
	if !p.trained {
		return nil, ErrNotTrained
	}
	if horizonDays < 1 {
		return nil, fmt.Errorf("horizon must be at least 1 day, got %d", horizonDays)
	}

	vectors, _, err := features.Build(observations)
	if err != nil {
		return nil, fmt.Errorf("build features: %w", err)
	}
	last := vectors[len(vectors)-1]
	lastTS := observations[len(observations)-1].Timestamp

	rows := make([][]float64, horizonDays)
	dates := make([]string, horizonDays)
	for i := 0; i < horizonDays; i++ {
		future := lastTS.AddDate(0, 0, i+1)
		rows[i] = features.Vector{
			DayOfYear:          future.YearDay(),
			Month:              int(future.Month()),
			Day:                future.Day(),
			Hour:               future.Hour(),
			TempRollingAvg:     last.TempRollingAvg,
			HumidityRollingAvg: last.HumidityRollingAvg,
			PressureRollingAvg: last.PressureRollingAvg,
		}.Row()
		dates[i] = future.Format("2006-01-02")
	}

	scaled, err := p.scaler.Transform(rows)
	if err != nil {
		return nil, fmt.Errorf("scale future features: %w", err)
	}
	predicted, err := p.forest.PredictBatch(scaled)
	if err != nil {
		return nil, fmt.Errorf("predict: %w", err)
	}

	points := make([]domain.PredictionPoint, horizonDays)
	for i := range points {
		points[i] = domain.PredictionPoint{
			Date:                 dates[i],
			PredictedTemperature: predicted[i],
		}
	}
	return points, nil
}

// Status reports whether and when the model was last trained.
func (p *TrendPredictor) Status() Status {
	return Status{Trained: p.trained, TrainedAt: p.trainedAt, Samples: p.samples}
}

// Info describes the model for prediction payloads.
func (p *TrendPredictor) Info() domain.ModelInfo {
	return domain.ModelInfo{Type: ModelType, Features: features.Names}
}

func (p *TrendPredictor) artifact() *Artifact {
	return &Artifact{
		Scaler:       p.scaler,
		Forest:       p.forest,
		TrainedAt:    p.trainedAt,
		Samples:      p.samples,
		FeatureNames: features.Names,
	}
}
