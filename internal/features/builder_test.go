package features

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skylabs-meteo/forecast-analytics/internal/domain"
)

func obsAt(day int, temp, humidity, pressure float64) domain.Observation {
	return domain.Observation{
		Timestamp:   time.Date(2026, 3, day, 9, 0, 0, 0, time.UTC),
		Temperature: temp,
		Humidity:    humidity,
		Pressure:    pressure,
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	_, _, err := Build(nil)
	assert.ErrorIs(t, err, ErrNoObservations)
}

func TestBuild_CountInvariant(t *testing.T) {
	obs := make([]domain.Observation, 12)
	for i := range obs {
		obs[i] = obsAt(i+1, float64(10+i), 60, 1010)
	}

	vectors, targets, err := Build(obs)

	require.NoError(t, err)
	assert.Len(t, vectors, len(obs))
	assert.Len(t, targets, len(obs))
}

func TestBuild_CalendarFields(t *testing.T) {
	obs := []domain.Observation{{
		Timestamp:   time.Date(2026, 2, 14, 17, 30, 0, 0, time.UTC),
		Temperature: 5,
	}}

	vectors, _, err := Build(obs)

	require.NoError(t, err)
	v := vectors[0]
	assert.Equal(t, 45, v.DayOfYear)
	assert.Equal(t, 2, v.Month)
	assert.Equal(t, 14, v.Day)
	assert.Equal(t, 17, v.Hour)
}

func TestBuild_FirstRollingAverageIsOwnValue(t *testing.T) {
	obs := []domain.Observation{
		obsAt(1, 21.5, 55, 1008),
		obsAt(2, 30.0, 70, 1012),
	}

	vectors, _, err := Build(obs)

	require.NoError(t, err)
	assert.Equal(t, 21.5, vectors[0].TempRollingAvg)
	assert.Equal(t, 55.0, vectors[0].HumidityRollingAvg)
	assert.Equal(t, 1008.0, vectors[0].PressureRollingAvg)
}

func TestBuild_RollingAverageFiveElements(t *testing.T) {
	temps := []float64{10, 20, 10, 20, 10}
	obs := make([]domain.Observation, len(temps))
	for i, temp := range temps {
		obs[i] = obsAt(i+1, temp, 60, 1010)
	}

	vectors, _, err := Build(obs)

	require.NoError(t, err)
	assert.InDelta(t, 14.0, vectors[4].TempRollingAvg, 1e-9)
}

func TestBuild_WindowIsCausal(t *testing.T) {
	// A spike at the end must not leak into earlier averages.
	obs := []domain.Observation{
		obsAt(1, 10, 60, 1010),
		obsAt(2, 10, 60, 1010),
		obsAt(3, 100, 60, 1010),
	}

	vectors, _, err := Build(obs)

	require.NoError(t, err)
	assert.Equal(t, 10.0, vectors[0].TempRollingAvg)
	assert.Equal(t, 10.0, vectors[1].TempRollingAvg)
	assert.InDelta(t, 40.0, vectors[2].TempRollingAvg, 1e-9)
}

func TestBuild_WindowSlidesPastFive(t *testing.T) {
	// Seven elements: index 6 averages indices 2..6 only.
	temps := []float64{100, 100, 10, 20, 10, 20, 10}
	obs := make([]domain.Observation, len(temps))
	for i, temp := range temps {
		obs[i] = obsAt(i+1, temp, 60, 1010)
	}

	vectors, _, err := Build(obs)

	require.NoError(t, err)
	assert.InDelta(t, 14.0, vectors[6].TempRollingAvg, 1e-9)
}

func TestBuild_TargetsAreRawTemperatures(t *testing.T) {
	obs := []domain.Observation{
		obsAt(1, 10, 60, 1010),
		obsAt(2, 20, 60, 1010),
	}

	_, targets, err := Build(obs)

	require.NoError(t, err)
	assert.Equal(t, []float64{10, 20}, targets)
}

func TestBuild_DoesNotMutateInput(t *testing.T) {
	obs := []domain.Observation{
		obsAt(1, 10, 60, 1010),
		obsAt(2, 20, 65, 1011),
	}
	before := make([]domain.Observation, len(obs))
	copy(before, obs)

	_, _, err := Build(obs)

	require.NoError(t, err)
	assert.Equal(t, before, obs)
}

func TestVectorRow_MatchesNames(t *testing.T) {
	v := Vector{DayOfYear: 60, Month: 3, Day: 1, Hour: 9, TempRollingAvg: 1, HumidityRollingAvg: 2, PressureRollingAvg: 3}
	row := v.Row()

	require.Len(t, row, len(Names))
	assert.Equal(t, []float64{60, 3, 1, 9, 1, 2, 3}, row)
}
