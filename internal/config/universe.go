package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Band is a frequency interval, in the same units as the sampling rate.
type Band struct {
	Name string  `yaml:"name" json:"name"`
	Low  float64 `yaml:"low" json:"low"`
	High float64 `yaml:"high" json:"high"`
}

// Sector groups an ordered set of instrument symbols under a name.
type Sector struct {
	Name    string   `yaml:"name" json:"name"`
	Symbols []string `yaml:"symbols" json:"symbols"`
}

// Universe is the immutable analysis configuration: sector membership,
// reference instruments and the frequency bands used for coherence
// decomposition. It is built once at startup and passed into the
// components that need it; nothing mutates it afterwards.
type Universe struct {
	Sectors         []Sector `yaml:"sectors"`
	MacroSector     string   `yaml:"macro_sector"`
	ReferenceSymbol string   `yaml:"reference_symbol"`
	CouplingPair    []string `yaml:"coupling_pair"`
	Bands           []Band   `yaml:"bands"`
}

// DefaultUniverse returns the reference 5-sector instance.
func DefaultUniverse() Universe {
	return Universe{
		Sectors: []Sector{
			{Name: "Macro", Symbols: []string{"SPY", "QQQ", "DIA"}},
			{Name: "Crypto", Symbols: []string{"BTC-USD", "ETH-USD", "SOL-USD"}},
			{Name: "Tech", Symbols: []string{"AAPL", "MSFT", "NVDA", "GOOGL"}},
			{Name: "Finance", Symbols: []string{"JPM", "GS", "BAC"}},
			{Name: "Energy", Symbols: []string{"XOM", "CVX", "SLB"}},
		},
		MacroSector:     "Macro",
		ReferenceSymbol: "SPY",
		CouplingPair:    []string{"SPY", "QQQ"},
		Bands:           DefaultBands(),
	}
}

// DefaultBands returns the standard frequency-band boundaries.
func DefaultBands() []Band {
	return []Band{
		{Name: "ultra_low", Low: 0.0, High: 0.01},
		{Name: "low", Low: 0.01, High: 0.05},
		{Name: "medium", Low: 0.05, High: 0.15},
		{Name: "high", Low: 0.15, High: 0.5},
	}
}

// LoadUniverse reads a universe definition from a YAML file. An empty path
// returns the default universe. A file may omit the bands section, in which
// case the default bands are used.
func LoadUniverse(path string) (Universe, error) {
	if path == "" {
		return DefaultUniverse(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Universe{}, fmt.Errorf("failed to read universe config: %w", err)
	}

	var u Universe
	if err := yaml.Unmarshal(data, &u); err != nil {
		return Universe{}, fmt.Errorf("failed to parse universe config: %w", err)
	}

	if len(u.Bands) == 0 {
		u.Bands = DefaultBands()
	}

	if err := u.Validate(); err != nil {
		return Universe{}, err
	}

	return u, nil
}

// Validate checks internal consistency of the universe definition
func (u Universe) Validate() error {
	if len(u.Sectors) == 0 {
		return fmt.Errorf("universe has no sectors")
	}
	macro, ok := u.FindSector(u.MacroSector)
	if !ok {
		return fmt.Errorf("macro sector %q not defined", u.MacroSector)
	}
	if !containsSymbol(macro.Symbols, u.ReferenceSymbol) {
		return fmt.Errorf("reference symbol %q not in macro sector", u.ReferenceSymbol)
	}
	if len(u.CouplingPair) != 2 {
		return fmt.Errorf("coupling pair must name exactly 2 symbols, got %d", len(u.CouplingPair))
	}
	all := u.AllSymbols()
	for _, sym := range u.CouplingPair {
		if !containsSymbol(all, sym) {
			return fmt.Errorf("coupling symbol %q not in universe", sym)
		}
	}
	for _, band := range u.Bands {
		if band.High <= band.Low {
			return fmt.Errorf("band %q has empty range [%f, %f]", band.Name, band.Low, band.High)
		}
	}
	return nil
}

// FindSector returns the sector with the given name
func (u Universe) FindSector(name string) (Sector, bool) {
	for _, s := range u.Sectors {
		if s.Name == name {
			return s, true
		}
	}
	return Sector{}, false
}

// AllSymbols returns every symbol in the universe, in sector order
func (u Universe) AllSymbols() []string {
	var symbols []string
	for _, s := range u.Sectors {
		symbols = append(symbols, s.Symbols...)
	}
	return symbols
}

func containsSymbol(symbols []string, symbol string) bool {
	for _, s := range symbols {
		if s == symbol {
			return true
		}
	}
	return false
}
