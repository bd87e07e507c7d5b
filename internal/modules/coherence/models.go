// Package coherence implements the pairwise synchronization metrics and the
// blended coherence analyzer built on top of the signal primitives.
package coherence

// Metrics is the bundle of scores produced by one analyzer run. Every scalar
// except the dominant frequency is bounded to [0, 1].
type Metrics struct {
	PLV                    float64            `json:"plv"`
	VolatilityClusterScore float64            `json:"volatility_cluster_score"`
	SectorSyncScore        float64            `json:"sector_sync_score"`
	FrequencyCoherence     map[string]float64 `json:"frequency_coherence"`
	DominantFrequency      float64            `json:"dominant_frequency"`
	OverallScore           float64            `json:"overall_score"`
}

// Weights for the blended overall score. The volatility term is inverted:
// calmer volatility regimes count toward coherence.
const (
	weightPLV        = 0.3
	weightVolatility = 0.2
	weightSector     = 0.2
	weightFrequency  = 0.3
)

// Sample-count floors below which each metric reports a neutral zero
// instead of a statistically meaningless estimate.
const (
	minCoherenceSamples  = 32
	minBandedSamples     = 4
	DefaultClusterWindow = 20
)
