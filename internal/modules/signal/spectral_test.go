package signal

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDominantFrequency_PureTone(t *testing.T) {
	// 10 cycles over 128 samples at fs=1 -> dominant frequency 10/128.
	series := sine(128, 10, 1.0)

	freq := DominantFrequency(series, 1.0)

	assert.InDelta(t, 10.0/128.0, freq, 1e-12)
}

func TestDominantFrequency_IgnoresDC(t *testing.T) {
	// A large constant offset must not win over the oscillation.
	series := sine(128, 10, 1.0)
	for i := range series {
		series[i] += 1000.0
	}

	freq := DominantFrequency(series, 1.0)

	assert.InDelta(t, 10.0/128.0, freq, 1e-12)
}

func TestDominantFrequency_ShortSeries(t *testing.T) {
	assert.Equal(t, 0.0, DominantFrequency([]float64{1.0}, 1.0))
	assert.Equal(t, 0.0, DominantFrequency(nil, 1.0))
}

func TestWelch_PeakAtToneFrequency(t *testing.T) {
	// 8 cycles over 128 samples -> 0.0625; with nperseg=64 that lands
	// exactly on bin 4.
	series := sine(128, 8, 1.0)

	freqs, psd := Welch(series, 1.0, 64)

	require.Len(t, freqs, 33)
	require.Len(t, psd, 33)

	peak := 0
	for i, p := range psd {
		if p > psd[peak] {
			peak = i
		}
		assert.GreaterOrEqual(t, p, 0.0)
		assert.False(t, math.IsNaN(p))
	}
	assert.Equal(t, 4, peak)
	assert.InDelta(t, 0.0625, freqs[peak], 1e-12)
}

func TestWelch_ClampsSegmentLength(t *testing.T) {
	series := sine(32, 4, 1.0)

	freqs, psd := Welch(series, 1.0, 256)

	require.Len(t, freqs, 17)
	require.Len(t, psd, 17)
}

func TestWelch_ShortSeries(t *testing.T) {
	freqs, psd := Welch([]float64{1.0}, 1.0, 64)
	assert.Nil(t, freqs)
	assert.Nil(t, psd)
}

func noisySeries(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.NormFloat64()
	}
	return out
}

func TestCoherence_SelfIsUnity(t *testing.T) {
	x := noisySeries(256, 7)

	_, cxy := Coherence(x, x, 1.0, 64)

	require.NotEmpty(t, cxy)
	for i, c := range cxy {
		assert.InDelta(t, 1.0, c, 1e-9, "bin %d", i)
	}
}

func TestCoherence_Symmetric(t *testing.T) {
	x := noisySeries(256, 1)
	y := noisySeries(256, 2)

	_, cxy := Coherence(x, y, 1.0, 64)
	_, cyx := Coherence(y, x, 1.0, 64)

	require.Equal(t, len(cxy), len(cyx))
	for i := range cxy {
		assert.InDelta(t, cxy[i], cyx[i], 1e-12)
	}
}

func TestCoherence_Bounded(t *testing.T) {
	x := noisySeries(512, 3)
	y := noisySeries(512, 4)

	_, cxy := Coherence(x, y, 1.0, 64)

	require.NotEmpty(t, cxy)
	for _, c := range cxy {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 1.0+1e-12)
	}
}

func TestCoherence_LengthMismatch(t *testing.T) {
	freqs, cxy := Coherence([]float64{1, 2, 3}, []float64{1, 2}, 1.0, 2)
	assert.Nil(t, freqs)
	assert.Nil(t, cxy)
}
