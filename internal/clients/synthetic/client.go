// Package synthetic provides a deterministic market data feed for the
// coherence engine. Each symbol is assigned a fixed random seed derived
// from its name, so repeated requests yield identical series.
package synthetic

import (
	"hash/fnv"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
)

// Client generates reproducible pseudo-random price and volume series.
// It satisfies the hierarchy.DataSource contract.
type Client struct {
	trending map[string]bool
	log      zerolog.Logger
}

// New creates a synthetic feed. Symbols listed in trending get a linear
// upward drift layered on the random walk.
func New(trending []string, log zerolog.Logger) *Client {
	set := make(map[string]bool, len(trending))
	for _, sym := range trending {
		set[sym] = true
	}
	return &Client{
		trending: set,
		log:      log.With().Str("client", "synthetic").Logger(),
	}
}

// Series returns count samples of close price and volume for the symbol.
// Prices follow a Gaussian random walk around 100; volume tracks a noisy
// base level plus a tenth of the price. The series are a function of the
// symbol name only.
func (c *Client) Series(symbol string, count int) ([]float64, []float64, error) {
	rng := rand.New(rand.NewSource(seed(symbol)))

	closes := make([]float64, count)
	walk := 0.0
	for i := 0; i < count; i++ {
		walk += rng.NormFloat64() * 0.5
		closes[i] = 100.0 + walk
		if c.trending[symbol] {
			closes[i] += float64(i) * 0.05
		}
	}

	volume := make([]float64, count)
	for i := 0; i < count; i++ {
		volume[i] = 1000.0 + math.Abs(rng.NormFloat64()*100.0) + closes[i]/10.0
	}

	return closes, volume, nil
}

// seed maps a symbol to a stable seed in [0, 1000).
func seed(symbol string) int64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(symbol))
	return int64(h.Sum32() % 1000)
}
