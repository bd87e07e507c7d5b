// Package hierarchy builds the multi-scale coherence report: macro
// (index vs index), meso (sector average vs market) and micro (instrument
// close vs volume) levels plus the global aggregate scores.
package hierarchy

// DataSource supplies close-price and volume series for a symbol. Both
// returned series have equal length; an error signals that no data is
// available for the symbol.
type DataSource interface {
	Series(symbol string, count int) (close, volume []float64, err error)
}

// Levels holds the per-scale coherence tables. Macro maps reference-pair
// labels (SPY_vs_QQQ) to coherence, Meso maps sector labels
// (Tech_vs_Market), Micro maps sector name to per-symbol close/volume
// coherence.
type Levels struct {
	Macro map[string]float64            `json:"macro"`
	Meso  map[string]float64            `json:"meso"`
	Micro map[string]map[string]float64 `json:"micro"`
}

// Report is the full hierarchy analysis result. It is built fresh on every
// request and has no lifecycle beyond the call that produced it.
type Report struct {
	ReportID              string             `json:"report_id"`
	Timestamp             string             `json:"timestamp"`
	Levels                Levels             `json:"levels"`
	FaradayResonance      map[string]float64 `json:"faraday_resonance"`
	HemisphericCoupling   float64            `json:"hemispheric_coupling"`
	EmotionalIntelligence float64            `json:"emotional_intelligence"`
}

// symbolData pairs the two series fetched for one symbol.
type symbolData struct {
	close  []float64
	volume []float64
}
