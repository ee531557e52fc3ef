package model

import (
	"errors"
	"fmt"
	"math"
)

// ErrScalerNotFitted is returned when Transform runs before Fit.
var ErrScalerNotFitted = errors.New("scaler not fitted")

// StandardScaler normalizes feature columns to zero mean and unit variance.
// Fit always refits from scratch; there is no incremental update. Fields are
// exported for gob encoding of the trained artifact.
type StandardScaler struct {
	Mean   []float64
	Std    []float64
	Fitted bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes per-column mean and standard deviation from the feature matrix.
func (s *StandardScaler) Fit(rows [][]float64) error {
	if len(rows) == 0 {
		return errors.New("fit scaler: empty feature matrix")
	}
	cols := len(rows[0])
	mean := make([]float64, cols)
	std := make([]float64, cols)

	for _, row := range rows {
		if len(row) != cols {
			return fmt.Errorf("fit scaler: ragged row, want %d columns got %d", cols, len(row))
		}
		for j, v := range row {
			mean[j] += v
		}
	}
	n := float64(len(rows))
	for j := range mean {
		mean[j] /= n
	}
	for _, row := range rows {
		for j, v := range row {
			d := v - mean[j]
			std[j] += d * d
		}
	}
	for j := range std {
		std[j] = math.Sqrt(std[j] / n)
		// Constant columns scale by 1 so Transform maps them to exactly zero.
		if std[j] == 0 {
			std[j] = 1
		}
	}

	s.Mean = mean
	s.Std = std
	s.Fitted = true
	return nil
}

// Transform scales rows with the fitted parameters, returning new slices.
func (s *StandardScaler) Transform(rows [][]float64) ([][]float64, error) {
	if !s.Fitted {
		return nil, ErrScalerNotFitted
	}
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("transform: row has %d columns, scaler fitted on %d", len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			scaled[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = scaled
	}
	return out, nil
}

// FitTransform fits on rows and returns their scaled form.
func (s *StandardScaler) FitTransform(rows [][]float64) ([][]float64, error) {
	if err := s.Fit(rows); err != nil {
		return nil, err
	}
	return s.Transform(rows)
}
