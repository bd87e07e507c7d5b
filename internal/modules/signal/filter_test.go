package signal

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// freqResponse evaluates the cascade's transfer function at normalized
// angular frequency w (radians/sample).
func freqResponse(sections []Section, w float64) float64 {
	z := cmplx.Exp(complex(0, w))
	h := complex(1, 0)
	for _, s := range sections {
		num := complex(s.B0, 0) + complex(s.B1, 0)/z + complex(s.B2, 0)/(z*z)
		den := complex(1, 0) + complex(s.A1, 0)/z + complex(s.A2, 0)/(z*z)
		h *= num / den
	}
	return cmplx.Abs(h)
}

// assertStable checks the second-order stability triangle for every section.
func assertStable(t *testing.T, sections []Section) {
	t.Helper()
	for i, s := range sections {
		assert.Less(t, math.Abs(s.A2), 1.0, "section %d: |a2| < 1", i)
		assert.Less(t, math.Abs(s.A1), 1.0+s.A2, "section %d: |a1| < 1+a2", i)
	}
}

func TestButterLowpass_Response(t *testing.T) {
	sections, err := ButterLowpass(0.2)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assertStable(t, sections)

	// Unity DC gain, -3dB at the cutoff, strong stopband attenuation.
	assert.InDelta(t, 1.0, freqResponse(sections, 0), 1e-9)
	assert.InDelta(t, 1.0/math.Sqrt2, freqResponse(sections, 0.2*math.Pi), 1e-6)
	assert.Less(t, freqResponse(sections, 0.8*math.Pi), 1e-3)
}

func TestButterHighpass_Response(t *testing.T) {
	sections, err := ButterHighpass(0.3)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assertStable(t, sections)

	assert.InDelta(t, 1.0, freqResponse(sections, math.Pi), 1e-9)
	assert.InDelta(t, 1.0/math.Sqrt2, freqResponse(sections, 0.3*math.Pi), 1e-6)
	assert.Less(t, freqResponse(sections, 0.05*math.Pi), 1e-3)
}

func TestButterBandpass_Response(t *testing.T) {
	sections, err := ButterBandpass(0.2, 0.4)
	require.NoError(t, err)
	require.Len(t, sections, 4)
	assertStable(t, sections)

	// Zero response at DC and Nyquist, near-unity in the middle of the band.
	assert.Less(t, freqResponse(sections, 0), 1e-9)
	assert.Less(t, freqResponse(sections, math.Pi), 1e-9)
	mid := math.Sqrt(0.2*0.4) * math.Pi
	assert.InDelta(t, 1.0, freqResponse(sections, mid), 0.05)
	assert.InDelta(t, 1.0/math.Sqrt2, freqResponse(sections, 0.2*math.Pi), 1e-4)
	assert.InDelta(t, 1.0/math.Sqrt2, freqResponse(sections, 0.4*math.Pi), 1e-4)
}

func TestButterDesign_InvalidCutoffs(t *testing.T) {
	_, err := ButterLowpass(0.0)
	assert.Error(t, err)
	_, err = ButterLowpass(1.0)
	assert.Error(t, err)
	_, err = ButterHighpass(-0.1)
	assert.Error(t, err)
	_, err = ButterBandpass(0.4, 0.2)
	assert.Error(t, err)
}

func TestFiltFilt_PreservesConstant(t *testing.T) {
	sections, err := ButterLowpass(0.2)
	require.NoError(t, err)

	x := make([]float64, 100)
	for i := range x {
		x[i] = 42.0
	}

	y := FiltFilt(sections, x)

	require.Len(t, y, 100)
	for i, v := range y {
		assert.InDelta(t, 42.0, v, 1e-6, "sample %d", i)
	}
}

func TestFiltFilt_AttenuatesStopband(t *testing.T) {
	sections, err := ButterLowpass(0.1)
	require.NoError(t, err)

	// A Nyquist-rate oscillation is far inside the stopband.
	x := make([]float64, 200)
	for i := range x {
		x[i] = math.Cos(math.Pi * float64(i))
	}

	y := FiltFilt(sections, x)

	for i := 20; i < 180; i++ {
		assert.Less(t, math.Abs(y[i]), 1e-3, "sample %d", i)
	}
}

func TestFiltFilt_ZeroPhase(t *testing.T) {
	sections, err := ButterLowpass(0.3)
	require.NoError(t, err)

	// A slow passband tone must come through with no shift: the filtered
	// series peaks where the input peaks.
	x := sine(256, 4, 1.0)
	y := FiltFilt(sections, x)

	argmax := func(v []float64) int {
		best := 0
		for i := range v {
			if v[i] > v[best] {
				best = i
			}
		}
		return best
	}
	assert.InDelta(t, float64(argmax(x)), float64(argmax(y)), 1.0)
}

func TestFiltFilt_Degenerate(t *testing.T) {
	sections, err := ButterLowpass(0.2)
	require.NoError(t, err)

	assert.Empty(t, FiltFilt(sections, nil))
	assert.Len(t, FiltFilt(sections, []float64{1.0}), 1)
}

func TestBandpassDecompose(t *testing.T) {
	bands := map[string]FilterBand{
		"ultra_low": {Low: 0.0, High: 0.01},
		"low":       {Low: 0.01, High: 0.05},
		"medium":    {Low: 0.05, High: 0.15},
		"high":      {Low: 0.15, High: 0.5},
	}
	series := sine(128, 8, 1.0)

	decomposed, err := BandpassDecompose(series, bands, 1.0)
	require.NoError(t, err)

	require.Len(t, decomposed, 4)
	for name := range bands {
		require.Contains(t, decomposed, name)
		assert.Len(t, decomposed[name], 128, "band %s", name)
	}

	// The 8/128 = 0.0625 tone lives in the medium band; that component
	// should dominate the others.
	energy := func(v []float64) float64 {
		var e float64
		for _, x := range v {
			e += x * x
		}
		return e
	}
	assert.Greater(t, energy(decomposed["medium"]), energy(decomposed["ultra_low"]))
	assert.Greater(t, energy(decomposed["medium"]), energy(decomposed["high"]))
}
