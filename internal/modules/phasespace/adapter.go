package phasespace

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/stat"

	"github.com/aristath/coherence/internal/config"
	"github.com/aristath/coherence/internal/modules/coherence"
	"github.com/aristath/coherence/internal/modules/signal"
)

// ErrLengthMismatch is returned when phases and amplitudes disagree in length.
var ErrLengthMismatch = errors.New("phases and amplitudes must have the same length")

// Adapter converts between market data and phase-space representations.
// It is stateless apart from the sampling rate.
type Adapter struct {
	samplingRate float64
}

// NewAdapter creates an adapter for the given sampling rate.
func NewAdapter(samplingRate float64) *Adapter {
	return &Adapter{samplingRate: samplingRate}
}

// PriceToPhase extracts the instantaneous phase of a price series, in
// radians in (-π, π]. Series shorter than two samples yield a single zero.
func (a *Adapter) PriceToPhase(prices []float64) []float64 {
	return signal.Phase(prices)
}

// PriceToAmplitude extracts the instantaneous envelope of a price series.
func (a *Adapter) PriceToAmplitude(prices []float64) []float64 {
	_, amplitude := signal.PhaseAmplitude(prices)
	return amplitude
}

// PriceToFrequency extracts the instantaneous frequency of a price series.
func (a *Adapter) PriceToFrequency(prices []float64) []float64 {
	return signal.InstantaneousFrequency(prices, a.samplingRate)
}

// VolumeToPhase extracts the phase of a volume series. Volumes are log1p
// transformed first to compress their scale and tolerate zeros.
func (a *Adapter) VolumeToPhase(volumes []float64) []float64 {
	if len(volumes) < 2 {
		return []float64{0.0}
	}
	logVolumes := make([]float64, len(volumes))
	for i, v := range volumes {
		logVolumes[i] = math.Log1p(v)
	}
	return a.PriceToPhase(logVolumes)
}

// ToPhaseSpace converts a price series (and optionally a matching volume
// series) into its full phase-space representation. When volumes are
// supplied and match the price length, the amplitude envelope is modulated
// by the min-max-normalized volume: amplitude *= (1 + normalizedVolume).
func (a *Adapter) ToPhaseSpace(prices, volumes []float64) Representation {
	phases := a.PriceToPhase(prices)
	amplitudes := a.PriceToAmplitude(prices)
	frequencies := a.PriceToFrequency(prices)

	if volumes != nil && len(volumes) == len(prices) && len(volumes) == len(amplitudes) {
		minVol, maxVol := math.Inf(1), math.Inf(-1)
		for _, v := range volumes {
			minVol = math.Min(minVol, v)
			maxVol = math.Max(maxVol, v)
		}
		// Epsilon keeps the normalization finite for constant volume.
		span := maxVol - minVol + 1e-10
		for i := range amplitudes {
			normalized := (volumes[i] - minVol) / span
			amplitudes[i] *= 1.0 + normalized
		}
	}

	meanPrice := 0.0
	stdPrice := 0.0
	if len(prices) > 0 {
		meanPrice = stat.Mean(prices, nil)
		stdPrice = stat.PopStdDev(prices, nil)
	}

	return Representation{
		Phases:      phases,
		Amplitudes:  amplitudes,
		Frequencies: frequencies,
		MeanPrice:   meanPrice,
		StdPrice:    stdPrice,
	}
}

// FromPhaseSpace reconstructs a price series from a phase-space
// representation: amplitude·cos(phase), rescaled by the stored moments.
// When numPoints differs from the stored length the series is resampled
// with a cubic spline over a normalized [0, 1] parametrization. numPoints
// <= 0 keeps the stored length. Reconstruction is lossy in fine phase
// detail; the first two moments approximately survive the round trip.
func (a *Adapter) FromPhaseSpace(repr Representation, numPoints int) (Signal, error) {
	if len(repr.Phases) != len(repr.Amplitudes) {
		return Signal{}, ErrLengthMismatch
	}
	if numPoints <= 0 {
		numPoints = len(repr.Phases)
	}

	reconstructed := make([]float64, len(repr.Phases))
	for i := range repr.Phases {
		reconstructed[i] = repr.Amplitudes[i]*math.Cos(repr.Phases[i])*repr.StdPrice + repr.MeanPrice
	}

	if len(reconstructed) != numPoints {
		resampled, err := resampleCubic(reconstructed, numPoints)
		if err != nil {
			return Signal{}, err
		}
		reconstructed = resampled
	}

	return Signal{Prices: reconstructed}, nil
}

// resampleCubic fits a cubic spline over x in [0, 1] and evaluates it at
// numPoints evenly spaced positions.
func resampleCubic(y []float64, numPoints int) ([]float64, error) {
	if len(y) == 0 || numPoints <= 0 {
		return []float64{}, nil
	}
	if len(y) == 1 {
		out := make([]float64, numPoints)
		for i := range out {
			out[i] = y[0]
		}
		return out, nil
	}

	xs := make([]float64, len(y))
	for i := range xs {
		xs[i] = float64(i) / float64(len(y)-1)
	}

	var spline interp.NaturalCubic
	if err := spline.Fit(xs, y); err != nil {
		return nil, fmt.Errorf("cubic resample failed: %w", err)
	}

	out := make([]float64, numPoints)
	for i := range out {
		x := 0.0
		if numPoints > 1 {
			x = float64(i) / float64(numPoints-1)
		}
		out[i] = spline.Predict(x)
	}
	return out, nil
}

// PhaseToPrice converts phase and amplitude sequences back into a price
// series using the supplied moments. The sequences must have equal length.
func (a *Adapter) PhaseToPrice(phases, amplitudes []float64, meanPrice, stdPrice float64) ([]float64, error) {
	if len(phases) != len(amplitudes) {
		return nil, ErrLengthMismatch
	}
	prices := make([]float64, len(phases))
	for i := range phases {
		prices[i] = amplitudes[i]*math.Cos(phases[i])*stdPrice + meanPrice
	}
	return prices, nil
}

// PhaseShift rotates every phase of the price series by shiftRadians and
// reconstructs the shifted prices. Aliasing modulo 2π is expected.
func (a *Adapter) PhaseShift(prices []float64, shiftRadians float64) ([]float64, error) {
	repr := a.ToPhaseSpace(prices, nil)

	shifted := make([]float64, len(repr.Phases))
	for i, p := range repr.Phases {
		shifted[i] = p + shiftRadians
	}

	return a.PhaseToPrice(shifted, repr.Amplitudes, repr.MeanPrice, repr.StdPrice)
}

// Envelope returns the upper and lower envelope bounds of a price series:
// the series mean plus/minus the analytic-signal magnitude.
func (a *Adapter) Envelope(prices []float64) (upper, lower []float64) {
	if len(prices) == 0 {
		return nil, nil
	}
	mean := stat.Mean(prices, nil)
	analytic := signal.Analytic(signal.Demean(prices))

	upper = make([]float64, len(analytic))
	lower = make([]float64, len(analytic))
	for i, c := range analytic {
		envelope := math.Hypot(real(c), imag(c))
		upper[i] = mean + envelope
		lower[i] = mean - envelope
	}
	return upper, lower
}

// PhaseVelocity returns the rate of change of an unwrapped phase sequence.
func (a *Adapter) PhaseVelocity(phases []float64) []float64 {
	if len(phases) < 2 {
		return []float64{0.0}
	}
	velocity := signal.Gradient(signal.Unwrap(phases))
	for i := range velocity {
		velocity[i] *= a.samplingRate
	}
	return velocity
}

// PhaseCoherence computes the phase-locking value between two price series,
// truncating to the shorter length.
func (a *Adapter) PhaseCoherence(prices1, prices2 []float64) float64 {
	phase1 := a.PriceToPhase(prices1)
	phase2 := a.PriceToPhase(prices2)

	minLen := len(phase1)
	if len(phase2) < minLen {
		minLen = len(phase2)
	}

	plv, err := coherence.PhaseLockingValue(phase1[:minLen], phase2[:minLen])
	if err != nil {
		return 0.0
	}
	return plv
}

// BandDecompose splits a price series into the configured frequency bands
// using zero-phase Butterworth filtering.
func (a *Adapter) BandDecompose(prices []float64, bands []config.Band) (map[string][]float64, error) {
	filterBands := make(map[string]signal.FilterBand, len(bands))
	for _, band := range bands {
		filterBands[band.Name] = signal.FilterBand{Low: band.Low, High: band.High}
	}
	return signal.BandpassDecompose(prices, filterBands, a.samplingRate)
}
