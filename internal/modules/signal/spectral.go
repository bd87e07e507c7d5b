package signal

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DominantFrequency finds the strongest frequency component of a series via
// the FFT magnitude spectrum, ignoring the DC bin. Returns 0 for series
// shorter than two samples.
func DominantFrequency(series []float64, samplingRate float64) float64 {
	n := len(series)
	if n < 2 {
		return 0.0
	}

	fft := fourier.NewFFT(n)
	coeff := fft.Coefficients(nil, series)

	// Restrict to the first n/2 bins, matching the usual one-sided spectrum.
	nBins := n / 2
	if nBins < 2 {
		return 0.0
	}

	maxIdx := 1
	maxMag := cmplx.Abs(coeff[1])
	for i := 2; i < nBins; i++ {
		if mag := cmplx.Abs(coeff[i]); mag > maxMag {
			maxMag = mag
			maxIdx = i
		}
	}

	return float64(maxIdx) * samplingRate / float64(n)
}

// hannPeriodic builds a periodic Hann window of length n, the standard
// choice for averaged periodogram estimates.
func hannPeriodic(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n)))
	}
	return w
}

// segmentSpectra computes windowed, mean-detrended FFTs of 50%-overlapping
// segments. Shared by the Welch PSD and coherence estimators.
func segmentSpectra(x []float64, nperseg int) [][]complex128 {
	window := hannPeriodic(nperseg)
	step := nperseg - nperseg/2
	fft := fourier.NewFFT(nperseg)

	var spectra [][]complex128
	buf := make([]float64, nperseg)
	for start := 0; start+nperseg <= len(x); start += step {
		seg := x[start : start+nperseg]

		mean := 0.0
		for _, v := range seg {
			mean += v
		}
		mean /= float64(nperseg)

		for i, v := range seg {
			buf[i] = (v - mean) * window[i]
		}
		spectra = append(spectra, fft.Coefficients(nil, buf))
	}
	return spectra
}

// welchScale returns the density scaling factor 1/(fs*sum(w^2)) for a
// periodic Hann window of length nperseg.
func welchScale(fs float64, nperseg int) float64 {
	window := hannPeriodic(nperseg)
	sumSq := 0.0
	for _, w := range window {
		sumSq += w * w
	}
	if sumSq == 0 || fs == 0 {
		return 0.0
	}
	return 1.0 / (fs * sumSq)
}

// onesided doubles all power bins except DC and, for even segment lengths,
// the Nyquist bin.
func onesided(psd []float64, nperseg int) {
	last := len(psd) - 1
	for i := 1; i < len(psd); i++ {
		if i == last && nperseg%2 == 0 {
			continue
		}
		psd[i] *= 2.0
	}
}

// Welch estimates the one-sided power spectral density of x using Welch's
// method: Hann-windowed, mean-detrended segments with 50% overlap, averaged
// in the frequency domain. nperseg is clamped to len(x). Returns the
// frequency bins and the density estimate; nil for series shorter than two
// samples.
func Welch(x []float64, fs float64, nperseg int) (freqs, psd []float64) {
	if len(x) < 2 {
		return nil, nil
	}
	if nperseg > len(x) {
		nperseg = len(x)
	}
	if nperseg < 2 {
		return nil, nil
	}

	spectra := segmentSpectra(x, nperseg)
	if len(spectra) == 0 {
		return nil, nil
	}

	nBins := nperseg/2 + 1
	psd = make([]float64, nBins)
	for _, spec := range spectra {
		for i := 0; i < nBins; i++ {
			re := real(spec[i])
			im := imag(spec[i])
			psd[i] += re*re + im*im
		}
	}

	scale := welchScale(fs, nperseg) / float64(len(spectra))
	for i := range psd {
		psd[i] *= scale
	}
	onesided(psd, nperseg)

	freqs = make([]float64, nBins)
	for i := range freqs {
		freqs[i] = float64(i) * fs / float64(nperseg)
	}
	return freqs, psd
}

// Coherence estimates the magnitude-squared coherence between x and y using
// Welch's method: Cxy = |Pxy|² / (Pxx·Pyy) with segment-averaged auto and
// cross spectra. Inputs must be the same length; nperseg is clamped to the
// series length. Bins with zero auto power report zero coherence. Returns
// nil when the estimate is not computable.
func Coherence(x, y []float64, fs float64, nperseg int) (freqs, cxy []float64) {
	if len(x) != len(y) || len(x) < 2 {
		return nil, nil
	}
	if nperseg > len(x) {
		nperseg = len(x)
	}
	if nperseg < 2 {
		return nil, nil
	}

	specX := segmentSpectra(x, nperseg)
	specY := segmentSpectra(y, nperseg)
	if len(specX) == 0 || len(specX) != len(specY) {
		return nil, nil
	}

	nBins := nperseg/2 + 1
	pxx := make([]float64, nBins)
	pyy := make([]float64, nBins)
	pxy := make([]complex128, nBins)
	for k := range specX {
		for i := 0; i < nBins; i++ {
			cx := specX[k][i]
			cy := specY[k][i]
			pxx[i] += real(cx)*real(cx) + imag(cx)*imag(cx)
			pyy[i] += real(cy)*real(cy) + imag(cy)*imag(cy)
			pxy[i] += cmplx.Conj(cx) * cy
		}
	}

	// Scaling cancels in the coherence ratio, so the raw averages suffice.
	cxy = make([]float64, nBins)
	for i := 0; i < nBins; i++ {
		denom := pxx[i] * pyy[i]
		if denom <= 0 {
			cxy[i] = 0.0
			continue
		}
		mag := cmplx.Abs(pxy[i])
		cxy[i] = mag * mag / denom
	}

	freqs = make([]float64, nBins)
	for i := range freqs {
		freqs[i] = float64(i) * fs / float64(nperseg)
	}
	return freqs, cxy
}
