package coherence

import (
	"github.com/rs/zerolog"

	"github.com/aristath/coherence/internal/config"
	"github.com/aristath/coherence/internal/modules/signal"
)

// Analyzer computes coherence metrics over price series. It carries the
// sampling rate and the configured frequency bands; it holds no per-call
// state, so one analyzer can serve concurrent requests.
type Analyzer struct {
	samplingRate float64
	bands        []config.Band
	log          zerolog.Logger
}

// NewAnalyzer creates an analyzer for the given sampling rate and bands.
func NewAnalyzer(samplingRate float64, bands []config.Band, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		samplingRate: samplingRate,
		bands:        bands,
		log:          log.With().Str("component", "coherence_analyzer").Logger(),
	}
}

// Coherence estimates the average spectral coherence between two price
// series. The series are truncated to the shorter length; fewer than 32
// usable samples floor the estimate at 0. Both series are reduced to log
// returns before the Welch estimate, and the result is the mean coherence
// across all frequency bins.
func (a *Analyzer) Coherence(s1, s2 []float64) float64 {
	minLen := len(s1)
	if len(s2) < minLen {
		minLen = len(s2)
	}
	if minLen < minCoherenceSamples {
		return 0.0
	}

	r1 := signal.SafeLogReturns(s1[:minLen])
	r2 := signal.SafeLogReturns(s2[:minLen])

	nperseg := len(r1)
	if nperseg > 64 {
		nperseg = 64
	}
	_, cxy := signal.Coherence(r1, r2, a.samplingRate, nperseg)
	if len(cxy) == 0 {
		return 0.0
	}

	var sum float64
	for _, c := range cxy {
		sum += c
	}
	return sum / float64(len(cxy))
}

// BandedCoherence estimates spectral coherence per configured frequency
// band: the mean of the coherence bins whose frequency falls inside the
// band (inclusive). The inputs must have equal length; series shorter than
// 4 samples report 0 for every band, as does a band that covers no bins.
func (a *Analyzer) BandedCoherence(s1, s2 []float64) (map[string]float64, error) {
	if len(s1) != len(s2) {
		return nil, ErrLengthMismatch
	}

	result := make(map[string]float64, len(a.bands))
	for _, band := range a.bands {
		result[band.Name] = 0.0
	}
	if len(s1) < minBandedSamples {
		return result, nil
	}

	nperseg := len(s1) / 2
	if nperseg > 256 {
		nperseg = 256
	}
	freqs, cxy := signal.Coherence(s1, s2, a.samplingRate, nperseg)
	if len(cxy) == 0 {
		return result, nil
	}

	for _, band := range a.bands {
		var sum float64
		var count int
		for i, f := range freqs {
			if f >= band.Low && f <= band.High {
				sum += cxy[i]
				count++
			}
		}
		if count > 0 {
			result[band.Name] = sum / float64(count)
		}
	}
	return result, nil
}

// ResonanceStability measures how concentrated the spectral power of a
// price series is: the ratio of the peak Welch PSD bin of the log returns
// to the total power. A value near 1 indicates a single standing
// oscillation dominating the series. Zero total power scores 0.
func (a *Analyzer) ResonanceStability(series []float64) float64 {
	returns := signal.SafeLogReturns(series)

	nperseg := len(returns)
	if nperseg > 64 {
		nperseg = 64
	}
	_, psd := signal.Welch(returns, a.samplingRate, nperseg)
	if len(psd) == 0 {
		return 0.0
	}

	var peak, total float64
	for _, p := range psd {
		if p > peak {
			peak = p
		}
		total += p
	}
	if total <= 0 {
		return 0.0
	}
	return peak / total
}

// DominantFrequency reports the strongest non-DC frequency component of the
// series at the analyzer's sampling rate.
func (a *Analyzer) DominantFrequency(series []float64) float64 {
	return signal.DominantFrequency(series, a.samplingRate)
}

// Analyze runs the full metric suite over a primary series, an optional
// reference series (the primary is used when nil) and optional per-sector
// price data, and blends the components into the overall score.
func (a *Analyzer) Analyze(primary, reference []float64, sectorData map[string][]float64) (Metrics, error) {
	if reference == nil {
		reference = primary
	}

	returns := signal.SafeLogReturns(primary)

	phase1 := signal.Phase(primary)
	phase2 := signal.Phase(reference)
	plv, err := PhaseLockingValue(phase1, phase2)
	if err != nil {
		return Metrics{}, err
	}

	volatilityScore := VolatilityClustering(returns, DefaultClusterWindow)

	sectorSync := 0.0
	if len(sectorData) > 0 {
		sectorSync = SectorSynchronization(sectorData)
	}

	freqCoherence, err := a.BandedCoherence(primary, reference)
	if err != nil {
		return Metrics{}, err
	}

	dominantFreq := a.DominantFrequency(primary)

	return Metrics{
		PLV:                    plv,
		VolatilityClusterScore: volatilityScore,
		SectorSyncScore:        sectorSync,
		FrequencyCoherence:     freqCoherence,
		DominantFrequency:      dominantFreq,
		OverallScore:           OverallScore(plv, volatilityScore, sectorSync, freqCoherence),
	}, nil
}
