package signal

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// Analytic computes the analytic signal of the input via the FFT-based
// Hilbert transform: negative-frequency coefficients are zeroed, positive
// ones doubled, and the spectrum inverted back to the time domain. The
// magnitude of the result is the instantaneous envelope, its angle the
// instantaneous phase.
func Analytic(series []float64) []complex128 {
	n := len(series)
	if n == 0 {
		return nil
	}

	fft := fourier.NewCmplxFFT(n)
	buf := make([]complex128, n)
	for i, v := range series {
		buf[i] = complex(v, 0)
	}
	coeff := fft.Coefficients(nil, buf)

	// One-sided spectrum: keep DC (and Nyquist for even lengths) as-is,
	// double the positive frequencies, zero the negative ones.
	half := n / 2
	if n%2 == 0 {
		for i := 1; i < half; i++ {
			coeff[i] *= 2
		}
	} else {
		for i := 1; i <= half; i++ {
			coeff[i] *= 2
		}
	}
	for i := half + 1; i < n; i++ {
		coeff[i] = 0
	}

	analytic := fft.Sequence(nil, coeff)
	scale := complex(1.0/float64(n), 0)
	for i := range analytic {
		analytic[i] *= scale
	}
	return analytic
}

// Demean returns a copy of the series with its mean removed.
func Demean(series []float64) []float64 {
	if len(series) == 0 {
		return series
	}
	mean := stat.Mean(series, nil)
	out := make([]float64, len(series))
	for i, v := range series {
		out[i] = v - mean
	}
	return out
}

// PhaseAmplitude extracts the instantaneous phase and amplitude of a series
// by taking the analytic signal of the demeaned input. Series shorter than
// two samples degenerate to a single zero phase and the series' standard
// deviation as amplitude (zero for empty input).
func PhaseAmplitude(series []float64) (phase, amplitude []float64) {
	if len(series) < 2 {
		amp := 0.0
		if len(series) == 1 {
			amp = stat.PopStdDev(series, nil)
			if math.IsNaN(amp) {
				amp = 0.0
			}
		}
		return []float64{0.0}, []float64{amp}
	}

	analytic := Analytic(Demean(series))
	phase = make([]float64, len(analytic))
	amplitude = make([]float64, len(analytic))
	for i, c := range analytic {
		phase[i] = cmplx.Phase(c)
		amplitude[i] = cmplx.Abs(c)
	}
	return phase, amplitude
}

// Phase extracts only the instantaneous phase of a series.
func Phase(series []float64) []float64 {
	phase, _ := PhaseAmplitude(series)
	return phase
}

// Unwrap removes 2π-multiple jumps from a phase sequence so it becomes
// continuous. Mirrors the usual numpy-style unwrap with a π discontinuity
// threshold.
func Unwrap(phase []float64) []float64 {
	if len(phase) == 0 {
		return phase
	}
	out := make([]float64, len(phase))
	out[0] = phase[0]
	offset := 0.0
	for i := 1; i < len(phase); i++ {
		d := phase[i] - phase[i-1]
		if d > math.Pi {
			offset -= 2 * math.Pi
		} else if d < -math.Pi {
			offset += 2 * math.Pi
		}
		out[i] = phase[i] + offset
	}
	return out
}

// Gradient computes the discrete derivative using centered differences in
// the interior and one-sided differences at the boundaries, assuming unit
// spacing.
func Gradient(y []float64) []float64 {
	n := len(y)
	switch n {
	case 0:
		return nil
	case 1:
		return []float64{0.0}
	}
	g := make([]float64, n)
	g[0] = y[1] - y[0]
	g[n-1] = y[n-1] - y[n-2]
	for i := 1; i < n-1; i++ {
		g[i] = (y[i+1] - y[i-1]) / 2.0
	}
	return g
}

// InstantaneousFrequency derives the signed instantaneous frequency of a
// series: unwrap the Hilbert phase, differentiate, divide by 2π·dt.
// Series shorter than two samples return a single zero.
func InstantaneousFrequency(series []float64, samplingRate float64) []float64 {
	if len(series) < 2 {
		return []float64{0.0}
	}
	unwrapped := Unwrap(Phase(series))
	dt := 1.0 / samplingRate
	freq := Gradient(unwrapped)
	scale := 1.0 / (2.0 * math.Pi * dt)
	for i := range freq {
		freq[i] *= scale
	}
	return freq
}
