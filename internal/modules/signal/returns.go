// Package signal implements the signal-processing primitives shared by the
// coherence pipeline: log returns, analytic-signal phase extraction, spectral
// estimation and digital filtering.
package signal

import (
	"math"
)

// LogReturns computes the first difference of the log series.
// Precondition: all values must be > 0. Callers with non-positive data
// must shift the series first (see ShiftPositive) — taking the log of a
// non-positive value poisons every downstream metric with NaN.
func LogReturns(series []float64) []float64 {
	if len(series) < 2 {
		return []float64{}
	}
	returns := make([]float64, len(series)-1)
	for i := 1; i < len(series); i++ {
		returns[i-1] = math.Log(series[i]) - math.Log(series[i-1])
	}
	return returns
}

// ShiftPositive returns a copy of the series offset so every value is
// strictly positive. Series that are already positive are returned as-is.
// The offset is abs(min)+1, matching the convention used throughout the
// analyzer so shifted series remain comparable.
func ShiftPositive(series []float64) []float64 {
	if len(series) == 0 {
		return series
	}
	min := series[0]
	for _, v := range series[1:] {
		if v < min {
			min = v
		}
	}
	if min > 0 {
		return series
	}
	offset := math.Abs(min) + 1.0
	shifted := make([]float64, len(series))
	for i, v := range series {
		shifted[i] = v + offset
	}
	return shifted
}

// SafeLogReturns shifts the series positive if needed and returns its log
// returns. Single-element and empty series yield a single zero return,
// so downstream guards see a well-formed (if useless) series.
func SafeLogReturns(series []float64) []float64 {
	if len(series) < 2 {
		return []float64{0.0}
	}
	return LogReturns(ShiftPositive(series))
}

// MeanSeries computes the elementwise mean across several equal-length
// series, truncating to the shortest. Returns nil when no series are given.
func MeanSeries(series [][]float64) []float64 {
	if len(series) == 0 {
		return nil
	}
	n := len(series[0])
	for _, s := range series[1:] {
		if len(s) < n {
			n = len(s)
		}
	}
	if n == 0 {
		return nil
	}
	mean := make([]float64, n)
	for _, s := range series {
		for i := 0; i < n; i++ {
			mean[i] += s[i]
		}
	}
	inv := 1.0 / float64(len(series))
	for i := range mean {
		mean[i] *= inv
	}
	return mean
}
