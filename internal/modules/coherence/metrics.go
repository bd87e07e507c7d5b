package coherence

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/coherence/internal/modules/signal"
)

// ErrLengthMismatch is returned by operations that require equal-length
// inputs. Silent truncation would hide upstream data bugs; the one deliberate
// exception is Analyzer.Coherence, whose documented policy is to truncate.
var ErrLengthMismatch = errors.New("input series must have the same length")

// PhaseLockingValue measures the phase synchrony of two phase sequences as
// |mean(exp(i·(phase1-phase2)))|: the magnitude of the mean complex
// exponential of the phase difference. 1 means perfectly locked phases,
// 0 means uniformly scattered differences.
func PhaseLockingValue(phase1, phase2 []float64) (float64, error) {
	if len(phase1) != len(phase2) {
		return 0, ErrLengthMismatch
	}
	if len(phase1) == 0 {
		return 0, nil
	}

	var sumRe, sumIm float64
	for i := range phase1 {
		diff := phase1[i] - phase2[i]
		sumRe += math.Cos(diff)
		sumIm += math.Sin(diff)
	}
	n := float64(len(phase1))
	return math.Hypot(sumRe/n, sumIm/n), nil
}

// VolatilityClustering scores the persistence of volatility as the lag-1
// autocorrelation of squared returns, rescaled from [-1, 1] to [0, 1].
// Series shorter than twice the window return 0. Degenerate correlations
// (zero variance in the squared returns) also score 0.
func VolatilityClustering(returns []float64, window int) float64 {
	if len(returns) < window*2 {
		return 0.0
	}

	squared := make([]float64, len(returns))
	for i, r := range returns {
		squared[i] = r * r
	}

	autocorr := stat.Correlation(squared[:len(squared)-1], squared[1:], nil)
	if math.IsNaN(autocorr) || math.IsInf(autocorr, 0) {
		autocorr = 0.0
	}

	return (autocorr + 1.0) / 2.0
}

// SectorSynchronization measures how tightly a group of sector price series
// move in phase: the mean pairwise PLV over the instantaneous phases of
// every sector pair. Fewer than two usable sectors score 0.
func SectorSynchronization(sectorPrices map[string][]float64) float64 {
	if len(sectorPrices) < 2 {
		return 0.0
	}

	names := make([]string, 0, len(sectorPrices))
	for name, prices := range sectorPrices {
		if len(prices) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	phases := make(map[string][]float64, len(names))
	for _, name := range names {
		phases[name] = signal.Phase(sectorPrices[name])
	}

	var sum float64
	var count int
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			plv, err := PhaseLockingValue(phases[names[i]], phases[names[j]])
			if err != nil {
				// Unequal sector histories; the pair carries no signal.
				continue
			}
			sum += plv
			count++
		}
	}

	if count == 0 {
		return 0.0
	}
	return sum / float64(count)
}

// OverallScore blends the component metrics into one score in [0, 1]:
// 0.3·plv + 0.2·(1-volatility) + 0.2·sector + 0.3·mean(bands). The result
// is clamped so floating-point drift in the inputs never leaks out of range.
func OverallScore(plv, volatilityCluster, sectorSync float64, freqCoherence map[string]float64) float64 {
	var avgFreq float64
	if len(freqCoherence) > 0 {
		for _, v := range freqCoherence {
			avgFreq += v
		}
		avgFreq /= float64(len(freqCoherence))
	}

	overall := weightPLV*plv +
		weightVolatility*(1.0-volatilityCluster) +
		weightSector*sectorSync +
		weightFrequency*avgFreq

	return clamp01(overall)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
