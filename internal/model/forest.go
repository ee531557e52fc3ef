package model

import (
	"errors"
	"math/rand"
)

// Default forest hyperparameters. The fixed seed makes training reproducible:
// the same observations always grow the same forest.
const (
	DefaultNumTrees = 100
	DefaultSeed     = 42
)

// ErrForestNotFitted is returned when Predict runs before Fit.
var ErrForestNotFitted = errors.New("forest not fitted")

// RandomForest is a bagged ensemble of regression trees. Randomness is
// confined to bootstrap sampling at fit time; prediction is deterministic.
// Fields are exported for gob encoding of the trained artifact.
type RandomForest struct {
	NumTrees int
	Seed     int64
	Trees    []*regressionTree
}

// NewRandomForest returns an unfitted forest with the default tree count and seed.
func NewRandomForest() *RandomForest {
	return &RandomForest{NumTrees: DefaultNumTrees, Seed: DefaultSeed}
}

// Fit grows NumTrees trees, each on a bootstrap sample of the rows.
// Any previously fitted trees are discarded.
func (f *RandomForest) Fit(rows [][]float64, targets []float64) error {
	if len(rows) == 0 {
		return errors.New("fit forest: empty feature matrix")
	}
	if len(rows) != len(targets) {
		return errors.New("fit forest: rows and targets length mismatch")
	}

	rng := rand.New(rand.NewSource(f.Seed))
	n := len(rows)
	trees := make([]*regressionTree, f.NumTrees)

	for t := 0; t < f.NumTrees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		trees[t] = fitTree(rows, targets, idx)
	}

	f.Trees = trees
	return nil
}

// Predict returns the forest mean for a single feature row.
func (f *RandomForest) Predict(row []float64) (float64, error) {
	if len(f.Trees) == 0 {
		return 0, ErrForestNotFitted
	}
	var sum float64
	for _, t := range f.Trees {
		sum += t.predict(row)
	}
	return sum / float64(len(f.Trees)), nil
}

// PredictBatch predicts each row in order.
func (f *RandomForest) PredictBatch(rows [][]float64) ([]float64, error) {
	out := make([]float64, len(rows))
	for i, row := range rows {
		v, err := f.Predict(row)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
