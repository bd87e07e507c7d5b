package hierarchy

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aristath/coherence/internal/config"
	"github.com/aristath/coherence/internal/modules/coherence"
	"github.com/aristath/coherence/internal/modules/signal"
)

// Service computes hierarchy reports over a configured universe. It holds
// no per-call state; every Analyze call allocates its own working data.
type Service struct {
	universe    config.Universe
	source      DataSource
	analyzer    *coherence.Analyzer
	sampleCount int
	log         zerolog.Logger
}

// NewService creates a hierarchy service.
func NewService(universe config.Universe, source DataSource, analyzer *coherence.Analyzer, sampleCount int, log zerolog.Logger) *Service {
	return &Service{
		universe:    universe,
		source:      source,
		analyzer:    analyzer,
		sampleCount: sampleCount,
		log:         log.With().Str("component", "hierarchy").Logger(),
	}
}

// Analyze builds the full multi-scale coherence report. Symbols whose data
// is missing or undersized are skipped; only a missing reference symbol
// aborts the report, since every level is measured against it.
func (s *Service) Analyze() (Report, error) {
	report := Report{
		ReportID:  uuid.New().String(),
		Timestamp: time.Now().Format(time.RFC3339),
		Levels: Levels{
			Macro: map[string]float64{},
			Meso:  map[string]float64{},
			Micro: map[string]map[string]float64{},
		},
		FaradayResonance: map[string]float64{},
	}

	data := s.fetchAll()

	ref, ok := data[s.universe.ReferenceSymbol]
	if !ok {
		return Report{}, fmt.Errorf("no data for reference symbol %q", s.universe.ReferenceSymbol)
	}
	macroRef := ref.close

	// Macro level: every other macro instrument against the reference.
	if macro, ok := s.universe.FindSector(s.universe.MacroSector); ok {
		for _, sym := range macro.Symbols {
			if sym == s.universe.ReferenceSymbol {
				continue
			}
			d, ok := data[sym]
			if !ok {
				continue
			}
			label := fmt.Sprintf("%s_vs_%s", s.universe.ReferenceSymbol, sym)
			report.Levels.Macro[label] = s.analyzer.Coherence(macroRef, d.close)
		}
	}

	// Meso and micro levels for every non-macro sector.
	for _, sector := range s.universe.Sectors {
		if sector.Name == s.universe.MacroSector {
			continue
		}

		var sectorSignals [][]float64
		for _, sym := range sector.Symbols {
			if d, ok := data[sym]; ok {
				sectorSignals = append(sectorSignals, d.close)
			}
		}
		if len(sectorSignals) == 0 {
			continue
		}

		sectorAvg := signal.MeanSeries(sectorSignals)
		report.Levels.Meso[sector.Name+"_vs_Market"] = s.analyzer.Coherence(sectorAvg, macroRef)

		micro := map[string]float64{}
		for _, sym := range sector.Symbols {
			d, ok := data[sym]
			if !ok {
				continue
			}
			micro[sym] = s.analyzer.Coherence(d.close, d.volume)
			report.FaradayResonance[sym] = s.analyzer.ResonanceStability(d.close)
		}
		report.Levels.Micro[sector.Name] = micro
	}

	// Hemispheric coupling: the two designated macro instruments.
	left, leftOK := data[s.universe.CouplingPair[0]]
	right, rightOK := data[s.universe.CouplingPair[1]]
	if leftOK && rightOK {
		report.HemisphericCoupling = s.analyzer.Coherence(left.close, right.close)
	}

	// Emotional intelligence: mean of every micro-level coherence value.
	var sum float64
	var count int
	for _, micro := range report.Levels.Micro {
		for _, v := range micro {
			sum += v
			count++
		}
	}
	if count > 0 {
		report.EmotionalIntelligence = sum / float64(count)
	}

	return report, nil
}

// fetchAll pulls series for every universe symbol, skipping symbols whose
// source reports an error or whose series disagree in length.
func (s *Service) fetchAll() map[string]symbolData {
	data := make(map[string]symbolData)
	for _, sym := range s.universe.AllSymbols() {
		closes, volumes, err := s.source.Series(sym, s.sampleCount)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", sym).Msg("Skipping symbol without data")
			continue
		}
		if len(closes) == 0 || len(closes) != len(volumes) {
			s.log.Warn().Str("symbol", sym).Int("close", len(closes)).Int("volume", len(volumes)).
				Msg("Skipping symbol with malformed series")
			continue
		}
		data[sym] = symbolData{close: closes, volume: volumes}
	}
	return data
}
