package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogReturns(t *testing.T) {
	e := math.E
	series := []float64{1.0, e, e * e}

	returns := LogReturns(series)

	require.Len(t, returns, 2)
	assert.InDelta(t, 1.0, returns[0], 1e-12)
	assert.InDelta(t, 1.0, returns[1], 1e-12)
}

func TestLogReturns_ShortSeries(t *testing.T) {
	assert.Empty(t, LogReturns([]float64{100.0}))
	assert.Empty(t, LogReturns(nil))
}

func TestShiftPositive(t *testing.T) {
	t.Run("non-positive series is shifted by abs(min)+1", func(t *testing.T) {
		shifted := ShiftPositive([]float64{-5.0, 0.0, 3.0})
		assert.Equal(t, []float64{1.0, 6.0, 9.0}, shifted)
	})

	t.Run("positive series is untouched", func(t *testing.T) {
		series := []float64{1.0, 2.0, 3.0}
		assert.Equal(t, series, ShiftPositive(series))
	})

	t.Run("zero minimum still shifts", func(t *testing.T) {
		shifted := ShiftPositive([]float64{0.0, 1.0})
		assert.Equal(t, []float64{1.0, 2.0}, shifted)
	})
}

func TestSafeLogReturns(t *testing.T) {
	t.Run("short series yields single zero", func(t *testing.T) {
		assert.Equal(t, []float64{0.0}, SafeLogReturns([]float64{42.0}))
		assert.Equal(t, []float64{0.0}, SafeLogReturns(nil))
	})

	t.Run("negative values produce finite returns", func(t *testing.T) {
		returns := SafeLogReturns([]float64{-2.0, -1.0, 0.0, 1.0})
		require.Len(t, returns, 3)
		for _, r := range returns {
			assert.False(t, math.IsNaN(r))
			assert.False(t, math.IsInf(r, 0))
		}
	})
}

func TestMeanSeries(t *testing.T) {
	mean := MeanSeries([][]float64{
		{1.0, 2.0, 3.0},
		{3.0, 4.0, 5.0},
	})
	assert.Equal(t, []float64{2.0, 3.0, 4.0}, mean)
}

func TestMeanSeries_TruncatesToShortest(t *testing.T) {
	mean := MeanSeries([][]float64{
		{1.0, 2.0, 3.0},
		{3.0, 4.0},
	})
	assert.Equal(t, []float64{2.0, 3.0}, mean)
}

func TestMeanSeries_Empty(t *testing.T) {
	assert.Nil(t, MeanSeries(nil))
	assert.Nil(t, MeanSeries([][]float64{{}}))
}
