package signal

import (
	"fmt"
	"math"
	"math/cmplx"
)

// Section is one second-order (biquad) stage of a cascaded digital filter,
// with the a0 coefficient normalized to 1.
type Section struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// FilterBand describes the passband edges handed to Butterworth design,
// normalized against the sampling rate (not the Nyquist frequency).
type FilterBand struct {
	Low  float64
	High float64
}

const butterworthOrder = 4

// butterPrototype returns the poles of the normalized analog Butterworth
// lowpass prototype: evenly spaced on the unit circle in the left half
// plane.
func butterPrototype(order int) []complex128 {
	poles := make([]complex128, order)
	for k := 0; k < order; k++ {
		theta := math.Pi * float64(2*k+order+1) / float64(2*order)
		poles[k] = cmplx.Exp(complex(0, theta))
	}
	return poles
}

// prewarp maps a normalized digital cutoff (fraction of Nyquist, in (0,1))
// to the analog frequency that survives the bilinear transform unchanged.
func prewarp(wn float64) float64 {
	const fs = 2.0
	return 2.0 * fs * math.Tan(math.Pi*wn/fs)
}

// bilinear maps analog zeros/poles/gain to their digital equivalents with
// the standard Tustin substitution, padding the zero set to full degree
// with zeros at z=-1.
func bilinear(zeros, poles []complex128, gain float64) ([]complex128, []complex128, float64) {
	const fs2 = 4.0 // 2 * (fs = 2.0)

	num := complex(1, 0)
	for _, z := range zeros {
		num *= complex(fs2, 0) - z
	}
	den := complex(1, 0)
	for _, p := range poles {
		den *= complex(fs2, 0) - p
	}
	gain *= real(num / den)

	zd := make([]complex128, 0, len(poles))
	for _, z := range zeros {
		zd = append(zd, (complex(fs2, 0)+z)/(complex(fs2, 0)-z))
	}
	for len(zd) < len(poles) {
		zd = append(zd, complex(-1, 0))
	}
	pd := make([]complex128, len(poles))
	for i, p := range poles {
		pd[i] = (complex(fs2, 0) + p) / (complex(fs2, 0) - p)
	}
	return zd, pd, gain
}

// pairConjugates groups a conjugate-closed set of complex values into
// pairs, matching each value with its (numerically nearest) conjugate.
func pairConjugates(values []complex128) [][2]complex128 {
	remaining := append([]complex128(nil), values...)
	var pairs [][2]complex128
	for len(remaining) >= 2 {
		v := remaining[0]
		remaining = remaining[1:]

		best := 0
		bestDist := math.Inf(1)
		want := cmplx.Conj(v)
		for i, c := range remaining {
			if d := cmplx.Abs(c - want); d < bestDist {
				bestDist = d
				best = i
			}
		}
		match := remaining[best]
		remaining = append(remaining[:best], remaining[best+1:]...)
		pairs = append(pairs, [2]complex128{v, match})
	}
	return pairs
}

// zpk2sos converts digital zeros/poles/gain into cascaded biquad sections.
// The overall gain is folded into the first section's numerator.
func zpk2sos(zeros, poles []complex128, gain float64) []Section {
	polePairs := pairConjugates(poles)
	zeroPairs := pairConjugates(zeros)

	sections := make([]Section, len(polePairs))
	for i, pp := range polePairs {
		sec := Section{
			B0: 1,
			A1: -real(pp[0] + pp[1]),
			A2: real(pp[0] * pp[1]),
		}
		if i < len(zeroPairs) {
			zp := zeroPairs[i]
			sec.B1 = -real(zp[0]+zp[1]) * sec.B0
			sec.B2 = real(zp[0] * zp[1])
		}
		sections[i] = sec
	}

	if len(sections) > 0 {
		sections[0].B0 *= gain
		sections[0].B1 *= gain
		sections[0].B2 *= gain
	}
	return sections
}

// ButterLowpass designs an order-4 digital Butterworth lowpass filter with
// cutoff wn expressed as a fraction of the Nyquist frequency (0 < wn < 1).
func ButterLowpass(wn float64) ([]Section, error) {
	if wn <= 0 || wn >= 1 {
		return nil, fmt.Errorf("lowpass cutoff must be in (0, 1), got %f", wn)
	}
	warped := prewarp(wn)

	proto := butterPrototype(butterworthOrder)
	poles := make([]complex128, len(proto))
	for i, p := range proto {
		poles[i] = p * complex(warped, 0)
	}
	gain := math.Pow(warped, float64(butterworthOrder))

	zd, pd, g := bilinear(nil, poles, gain)
	return zpk2sos(zd, pd, g), nil
}

// ButterHighpass designs an order-4 digital Butterworth highpass filter
// with cutoff wn as a fraction of Nyquist.
func ButterHighpass(wn float64) ([]Section, error) {
	if wn <= 0 || wn >= 1 {
		return nil, fmt.Errorf("highpass cutoff must be in (0, 1), got %f", wn)
	}
	warped := prewarp(wn)

	proto := butterPrototype(butterworthOrder)
	poles := make([]complex128, len(proto))
	prodP := complex(1, 0)
	for i, p := range proto {
		poles[i] = complex(warped, 0) / p
		prodP *= -p
	}
	zeros := make([]complex128, butterworthOrder) // all at s=0
	gain := real(prodP)

	zd, pd, g := bilinear(zeros, poles, gain)
	return zpk2sos(zd, pd, g), nil
}

// ButterBandpass designs a digital Butterworth bandpass filter from an
// order-4 lowpass prototype (8 poles total), with edges as fractions of
// Nyquist.
func ButterBandpass(low, high float64) ([]Section, error) {
	if low <= 0 || high >= 1 || low >= high {
		return nil, fmt.Errorf("bandpass edges must satisfy 0 < low < high < 1, got [%f, %f]", low, high)
	}
	w1 := prewarp(low)
	w2 := prewarp(high)
	bw := w2 - w1
	wo := math.Sqrt(w1 * w2)

	proto := butterPrototype(butterworthOrder)
	poles := make([]complex128, 0, 2*butterworthOrder)
	for _, p := range proto {
		scaled := p * complex(bw/2, 0)
		disc := cmplx.Sqrt(scaled*scaled - complex(wo*wo, 0))
		poles = append(poles, scaled+disc, scaled-disc)
	}
	zeros := make([]complex128, butterworthOrder) // all at s=0
	gain := math.Pow(bw, float64(butterworthOrder))

	zd, pd, g := bilinear(zeros, poles, gain)
	return zpk2sos(zd, pd, g), nil
}

// sosFilter applies the cascade in direct form II transposed, starting from
// the supplied per-section state. The state is mutated in place.
func sosFilter(sections []Section, x []float64, state [][2]float64) []float64 {
	out := make([]float64, len(x))
	for n, v := range x {
		for i, s := range sections {
			y := s.B0*v + state[i][0]
			state[i][0] = s.B1*v - s.A1*y + state[i][1]
			state[i][1] = s.B2*v - s.A2*y
			v = y
		}
		out[n] = v
	}
	return out
}

// stepState returns the per-section steady-state response to a unit step,
// with cumulative DC gain carried through the cascade. Used to initialize
// the forward-backward filter so the edges do not ring.
func stepState(sections []Section) [][2]float64 {
	state := make([][2]float64, len(sections))
	scale := 1.0
	for i, s := range sections {
		den := 1.0 + s.A1 + s.A2
		h1 := 0.0
		if den != 0 {
			h1 = (s.B0 + s.B1 + s.B2) / den
		}
		z2 := s.B2 - s.A2*h1
		z1 := s.B1 - s.A1*h1 + z2
		state[i][0] = scale * z1
		state[i][1] = scale * z2
		scale *= h1
	}
	return state
}

func reverse(x []float64) {
	for i, j := 0, len(x)-1; i < j; i, j = i+1, j-1 {
		x[i], x[j] = x[j], x[i]
	}
}

// FiltFilt applies the section cascade forward and backward with odd
// extension padding, producing a zero-phase filtered series.
func FiltFilt(sections []Section, x []float64) []float64 {
	n := len(x)
	if n == 0 || len(sections) == 0 {
		return append([]float64(nil), x...)
	}

	padlen := 3 * (2*len(sections) + 1)
	if padlen >= n {
		padlen = n - 1
	}

	// Odd extension about the first and last samples.
	ext := make([]float64, 0, n+2*padlen)
	for i := padlen; i >= 1; i-- {
		ext = append(ext, 2*x[0]-x[i])
	}
	ext = append(ext, x...)
	for i := n - 2; i >= n-1-padlen; i-- {
		ext = append(ext, 2*x[n-1]-x[i])
	}

	zi := stepState(sections)
	state := make([][2]float64, len(zi))
	for i := range zi {
		state[i][0] = zi[i][0] * ext[0]
		state[i][1] = zi[i][1] * ext[0]
	}
	forward := sosFilter(sections, ext, state)

	reverse(forward)
	for i := range zi {
		state[i][0] = zi[i][0] * forward[0]
		state[i][1] = zi[i][1] * forward[0]
	}
	backward := sosFilter(sections, forward, state)
	reverse(backward)

	return backward[padlen : padlen+n]
}

// BandpassDecompose splits a series into the configured frequency bands,
// designing a lowpass, highpass or bandpass filter per band depending on
// where its edges sit relative to Nyquist, and applying it zero-phase.
func BandpassDecompose(series []float64, bands map[string]FilterBand, samplingRate float64) (map[string][]float64, error) {
	nyquist := samplingRate / 2.0
	decomposed := make(map[string][]float64, len(bands))

	for name, band := range bands {
		var (
			sections []Section
			err      error
		)
		switch {
		case band.Low == 0:
			sections, err = ButterLowpass(band.High / nyquist)
		case band.High >= nyquist:
			sections, err = ButterHighpass(band.Low / nyquist)
		default:
			sections, err = ButterBandpass(band.Low/nyquist, band.High/nyquist)
		}
		if err != nil {
			return nil, fmt.Errorf("band %q: %w", name, err)
		}
		decomposed[name] = FiltFilt(sections, series)
	}
	return decomposed, nil
}
