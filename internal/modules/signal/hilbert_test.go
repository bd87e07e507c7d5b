package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sine builds amplitude*sin(2π*cycles*i/n) for i in [0, n).
func sine(n int, cycles, amplitude float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amplitude * math.Sin(2.0*math.Pi*cycles*float64(i)/float64(n))
	}
	return out
}

func TestPhaseAmplitude_PureTone(t *testing.T) {
	// An integer number of cycles makes the Hilbert transform exact:
	// the envelope of A*sin(ωt) is A everywhere.
	series := sine(256, 16, 2.0)

	phase, amplitude := PhaseAmplitude(series)

	require.Len(t, phase, 256)
	require.Len(t, amplitude, 256)
	for i, a := range amplitude {
		assert.InDelta(t, 2.0, a, 1e-8, "envelope at index %d", i)
	}
	for _, p := range phase {
		assert.LessOrEqual(t, p, math.Pi)
		assert.GreaterOrEqual(t, p, -math.Pi)
	}
}

func TestPhaseAmplitude_ShortSeries(t *testing.T) {
	phase, amplitude := PhaseAmplitude([]float64{5.0})
	assert.Equal(t, []float64{0.0}, phase)
	assert.Equal(t, []float64{0.0}, amplitude)

	phase, amplitude = PhaseAmplitude(nil)
	assert.Equal(t, []float64{0.0}, phase)
	assert.Equal(t, []float64{0.0}, amplitude)
}

func TestUnwrap_RemovesJumps(t *testing.T) {
	// A steadily advancing phase, wrapped into (-π, π].
	n := 100
	step := 0.3
	wrapped := make([]float64, n)
	for i := range wrapped {
		raw := float64(i) * step
		wrapped[i] = math.Mod(raw+math.Pi, 2.0*math.Pi) - math.Pi
	}

	unwrapped := Unwrap(wrapped)

	for i := 1; i < n; i++ {
		assert.InDelta(t, step, unwrapped[i]-unwrapped[i-1], 1e-9)
	}
}

func TestGradient(t *testing.T) {
	// For y = i², the centered differences recover 2i exactly.
	y := []float64{0, 1, 4, 9, 16, 25}

	g := Gradient(y)

	require.Len(t, g, 6)
	assert.InDelta(t, 1.0, g[0], 1e-12) // forward difference at the edge
	assert.InDelta(t, 9.0, g[5], 1e-12) // backward difference at the edge
	for i := 1; i < 5; i++ {
		assert.InDelta(t, 2.0*float64(i), g[i], 1e-12)
	}
}

func TestGradient_Degenerate(t *testing.T) {
	assert.Nil(t, Gradient(nil))
	assert.Equal(t, []float64{0.0}, Gradient([]float64{7.0}))
}

func TestInstantaneousFrequency_PureTone(t *testing.T) {
	// A tone with 16 cycles over 256 samples at fs=1 has instantaneous
	// frequency 16/256 everywhere away from the boundary.
	series := sine(256, 16, 1.0)

	freq := InstantaneousFrequency(series, 1.0)

	require.Len(t, freq, 256)
	want := 16.0 / 256.0
	for i := 8; i < 248; i++ {
		assert.InDelta(t, want, freq[i], 1e-6, "frequency at index %d", i)
	}
}

func TestInstantaneousFrequency_ShortSeries(t *testing.T) {
	assert.Equal(t, []float64{0.0}, InstantaneousFrequency([]float64{1.0}, 1.0))
}

func TestDemean(t *testing.T) {
	out := Demean([]float64{1.0, 2.0, 3.0})
	assert.InDelta(t, -1.0, out[0], 1e-12)
	assert.InDelta(t, 0.0, out[1], 1e-12)
	assert.InDelta(t, 1.0, out[2], 1e-12)
}
