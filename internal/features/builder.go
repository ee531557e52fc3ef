// Package features derives the fixed per-observation feature vectors consumed
// by the trend model: calendar fields plus causal rolling averages.
package features

import (
	"errors"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
)

// RollingWindow is the trailing window length for rolling averages. The
// window is causal: element i averages indices [max(0,i-4), i], so the first
// element's rolling average is its own value.
const RollingWindow = 5

// ErrNoObservations is returned when Build is called with an empty sequence.
var ErrNoObservations = errors.New("no observations to build features from")

// Names lists the feature columns in row order.
var Names = []string{
	"day_of_year",
	"month",
	"day",
	"hour",
	"temp_rolling_avg",
	"humidity_rolling_avg",
	"pressure_rolling_avg",
}

// Vector is the derived, immutable feature set for one observation. Calendar
// fields come straight from the timestamp in whatever zone it carries.
type Vector struct {
	DayOfYear          int
	Month              int
	Day                int
	Hour               int
	TempRollingAvg     float64
	HumidityRollingAvg float64
	PressureRollingAvg float64
}

// Row returns the vector as a feature row in Names order.
func (v Vector) Row() []float64 {
	return []float64{
		float64(v.DayOfYear),
		float64(v.Month),
		float64(v.Day),
		float64(v.Hour),
		v.TempRollingAvg,
		v.HumidityRollingAvg,
		v.PressureRollingAvg,
	}
}

// Build derives one feature vector and one target (raw temperature) per
// observation, 1:1 and order-preserving. It is a pure function: the input
// sequence is never mutated or re-sorted.
func Build(observations []domain.Observation) ([]Vector, []float64, error) {
	if len(observations) == 0 {
		return nil, nil, ErrNoObservations
	}

	vectors := make([]Vector, len(observations))
	targets := make([]float64, len(observations))

	for i, obs := range observations {
		start := i - (RollingWindow - 1)
		if start < 0 {
			start = 0
		}
		var tempSum, humSum, presSum float64
		for j := start; j <= i; j++ {
			tempSum += observations[j].Temperature
			humSum += observations[j].Humidity
			presSum += observations[j].Pressure
		}
		n := float64(i - start + 1)

		ts := obs.Timestamp
		vectors[i] = Vector{
			DayOfYear:          ts.YearDay(),
			Month:              int(ts.Month()),
			Day:                ts.Day(),
			Hour:               ts.Hour(),
			TempRollingAvg:     tempSum / n,
			HumidityRollingAvg: humSum / n,
			PressureRollingAvg: presSum / n,
		}
		targets[i] = obs.Temperature
	}

	return vectors, targets, nil
}

// Matrix converts vectors to feature rows for fitting and scaling.
func Matrix(vectors []Vector) [][]float64 {
	rows := make([][]float64, len(vectors))
	for i, v := range vectors {
		rows[i] = v.Row()
	}
	return rows
}
