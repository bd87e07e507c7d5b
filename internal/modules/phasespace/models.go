// Package phasespace converts price/volume series into phase-space
// representations (phase, amplitude, instantaneous frequency) and back.
package phasespace

// Representation is the phase-space form of a price series: three parallel
// sequences of equal length plus the first two moments of the originating
// prices, which are needed to invert the transform.
type Representation struct {
	Phases      []float64 `json:"phases"`
	Amplitudes  []float64 `json:"amplitudes"`
	Frequencies []float64 `json:"frequencies"`
	MeanPrice   float64   `json:"mean_price"`
	StdPrice    float64   `json:"std_price"`
}

// Signal is a reconstructed market signal. Volumes and Timestamps are
// optional; the inverse transform only produces prices.
type Signal struct {
	Prices     []float64 `json:"prices"`
	Volumes    []float64 `json:"volumes,omitempty"`
	Timestamps []float64 `json:"timestamps,omitempty"`
}
