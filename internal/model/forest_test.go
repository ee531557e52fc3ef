package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stepData is a simple step function: feature < 5 → 10, feature >= 5 → 30.
func stepData() ([][]float64, []float64) {
	var rows [][]float64
	var targets []float64
	for i := 0; i < 10; i++ {
		rows = append(rows, []float64{float64(i)})
		if i < 5 {
			targets = append(targets, 10)
		} else {
			targets = append(targets, 30)
		}
	}
	return rows, targets
}

func TestRandomForest_LearnsStepFunction(t *testing.T) {
	rows, targets := stepData()

	f := NewRandomForest()
	require.NoError(t, f.Fit(rows, targets))

	low, err := f.Predict([]float64{1})
	require.NoError(t, err)
	high, err := f.Predict([]float64{8})
	require.NoError(t, err)

	assert.InDelta(t, 10, low, 3.0)
	assert.InDelta(t, 30, high, 3.0)
	assert.Greater(t, high, low)
}

func TestRandomForest_ConstantTarget(t *testing.T) {
	rows := [][]float64{{1}, {2}, {3}, {4}}
	targets := []float64{7, 7, 7, 7}

	f := NewRandomForest()
	require.NoError(t, f.Fit(rows, targets))

	got, err := f.Predict([]float64{2.5})
	require.NoError(t, err)
	assert.InDelta(t, 7, got, 1e-9)
}

func TestRandomForest_DeterministicWithFixedSeed(t *testing.T) {
	rows, targets := stepData()

	a := NewRandomForest()
	require.NoError(t, a.Fit(rows, targets))
	b := NewRandomForest()
	require.NoError(t, b.Fit(rows, targets))

	for _, row := range rows {
		pa, err := a.Predict(row)
		require.NoError(t, err)
		pb, err := b.Predict(row)
		require.NoError(t, err)
		assert.Equal(t, pa, pb)
	}
}

func TestRandomForest_RefitDiscardsOldTrees(t *testing.T) {
	f := NewRandomForest()
	require.NoError(t, f.Fit([][]float64{{1}, {2}}, []float64{100, 100}))
	require.NoError(t, f.Fit([][]float64{{1}, {2}}, []float64{5, 5}))

	got, err := f.Predict([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 5, got, 1e-9)
	assert.Len(t, f.Trees, DefaultNumTrees)
}

func TestRandomForest_Errors(t *testing.T) {
	t.Run("predict before fit", func(t *testing.T) {
		f := NewRandomForest()
		_, err := f.Predict([]float64{1})
		assert.ErrorIs(t, err, ErrForestNotFitted)
	})

	t.Run("empty fit", func(t *testing.T) {
		f := NewRandomForest()
		assert.Error(t, f.Fit(nil, nil))
	})

	t.Run("length mismatch", func(t *testing.T) {
		f := NewRandomForest()
		assert.Error(t, f.Fit([][]float64{{1}, {2}}, []float64{1}))
	})
}
