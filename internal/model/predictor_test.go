package model

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
)

// memStore keeps the artifact in memory; saveErr simulates persistence failure.
type memStore struct {
	artifact *Artifact
	saves    int
	saveErr  error
}

func (m *memStore) Load() (*Artifact, bool, error) {
	if m.artifact == nil {
		return nil, false, nil
	}
	return m.artifact, true, nil
}

func (m *memStore) Save(a *Artifact) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	// Round-trip through gob so persistence bugs surface in tests.
	data, err := a.Encode()
	if err != nil {
		return err
	}
	decoded, err := DecodeArtifact(data)
	if err != nil {
		return err
	}
	m.artifact = decoded
	m.saves++
	return nil
}

// seasonalObservations builds daily readings with a mild warming trend.
func seasonalObservations(n int) []domain.Observation {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	obs := make([]domain.Observation, n)
	for i := range obs {
		day := float64(i)
		obs[i] = domain.Observation{
			Timestamp:   base.AddDate(0, 0, i),
			Temperature: 12 + 0.3*day + 2*math.Sin(day/3),
			Humidity:    65 - 0.2*day,
			Pressure:    1010 + math.Cos(day/5),
			WindSpeed:   4,
		}
	}
	return obs
}

func TestTrendPredictor_TrainRequiresTenObservations(t *testing.T) {
	store := &memStore{}
	p, err := NewTrendPredictor(store)
	require.NoError(t, err)

	ok, err := p.Train(seasonalObservations(9))

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, store.saves, "artifact untouched for short input")
	assert.False(t, p.Status().Trained)
}

func TestTrendPredictor_TrainPersistsArtifact(t *testing.T) {
	frozen := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	defer SetClock(nil)

	store := &memStore{}
	p, err := NewTrendPredictor(store)
	require.NoError(t, err)

	ok, err := p.Train(seasonalObservations(20))

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, store.saves)
	require.NotNil(t, store.artifact)
	assert.Equal(t, 20, store.artifact.Samples)
	assert.Equal(t, frozen, store.artifact.TrainedAt)

	status := p.Status()
	assert.True(t, status.Trained)
	assert.Equal(t, frozen, status.TrainedAt)
	assert.Equal(t, 20, status.Samples)
}

func TestTrendPredictor_RetrainOverwritesArtifact(t *testing.T) {
	store := &memStore{}
	p, err := NewTrendPredictor(store)
	require.NoError(t, err)

	_, err = p.Train(seasonalObservations(15))
	require.NoError(t, err)
	_, err = p.Train(seasonalObservations(25))
	require.NoError(t, err)

	assert.Equal(t, 2, store.saves)
	assert.Equal(t, 25, store.artifact.Samples)
}

func TestTrendPredictor_TrainSurfacesPersistenceFailure(t *testing.T) {
	store := &memStore{saveErr: errors.New("disk full")}
	p, err := NewTrendPredictor(store)
	require.NoError(t, err)

	_, err = p.Train(seasonalObservations(12))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "persist model artifact")
}

func TestTrendPredictor_PredictInsufficientData(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)
	_, err = p.Train(seasonalObservations(12))
	require.NoError(t, err)

	for _, horizon := range []int{1, 7, 30} {
		points, err := p.Predict(seasonalObservations(4), horizon)
		require.NoError(t, err)
		assert.Nil(t, points, "horizon %d", horizon)
	}
}

func TestTrendPredictor_PredictColdModelFailsFast(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)

	_, err = p.Predict(seasonalObservations(8), 7)

	assert.ErrorIs(t, err, ErrNotTrained)
}

func TestTrendPredictor_PredictHorizonDates(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)
	obs := seasonalObservations(20)
	_, err = p.Train(obs)
	require.NoError(t, err)

	const horizon = 7
	points, err := p.Predict(obs, horizon)

	require.NoError(t, err)
	require.Len(t, points, horizon)

	last := obs[len(obs)-1].Timestamp
	for i, pt := range points {
		want := last.AddDate(0, 0, i+1).Format("2006-01-02")
		assert.Equal(t, want, pt.Date)
	}
}

func TestTrendPredictor_PredictIsDeterministic(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)
	obs := seasonalObservations(30)
	_, err = p.Train(obs)
	require.NoError(t, err)

	first, err := p.Predict(obs, 5)
	require.NoError(t, err)
	second, err := p.Predict(obs, 5)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTrendPredictor_PredictionsInPlausibleRange(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)
	obs := seasonalObservations(30)
	_, err = p.Train(obs)
	require.NoError(t, err)

	points, err := p.Predict(obs, 3)
	require.NoError(t, err)

	// Forest means never leave the training target range.
	for _, pt := range points {
		assert.GreaterOrEqual(t, pt.PredictedTemperature, 10.0)
		assert.LessOrEqual(t, pt.PredictedTemperature, 25.0)
	}
}

func TestTrendPredictor_ArtifactRoundTrip(t *testing.T) {
	store := &memStore{}
	p, err := NewTrendPredictor(store)
	require.NoError(t, err)
	obs := seasonalObservations(20)
	_, err = p.Train(obs)
	require.NoError(t, err)

	want, err := p.Predict(obs, 7)
	require.NoError(t, err)

	// A fresh predictor over the same store must load the artifact and
	// reproduce the predictions without retraining.
	reloaded, err := NewTrendPredictor(store)
	require.NoError(t, err)
	assert.True(t, reloaded.Status().Trained)

	got, err := reloaded.Predict(obs, 7)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestTrendPredictor_InvalidHorizon(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)
	obs := seasonalObservations(12)
	_, err = p.Train(obs)
	require.NoError(t, err)

	for _, horizon := range []int{0, -3} {
		_, err := p.Predict(obs, horizon)
		assert.Error(t, err, fmt.Sprintf("horizon %d", horizon))
	}
}

func TestTrendPredictor_Info(t *testing.T) {
	p, err := NewTrendPredictor(&memStore{})
	require.NoError(t, err)

	info := p.Info()

	assert.Equal(t, ModelType, info.Type)
	assert.Contains(t, info.Features, "temp_rolling_avg")
	assert.Len(t, info.Features, 7)
}
