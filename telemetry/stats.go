// Package telemetry records per-second ecosystem samples and writes search
// results to disk.
package telemetry

import (
	"log/slog"
	"sort"
)

// Sample holds the ecosystem state recorded once per simulated second.
// The number of samples in a run is its fitness.
type Sample struct {
	Second int `csv:"second"`
	Tick   int `csv:"tick"`

	// Population counts at sample time
	PreyCount int `csv:"prey"`
	PredCount int `csv:"pred"`

	// Events since the previous sample
	PreyBirths int `csv:"prey_births"`
	PredBirths int `csv:"pred_births"`
	PreyDeaths int `csv:"prey_deaths"`
	PredDeaths int `csv:"pred_deaths"`
	Kills      int `csv:"kills"`
	Forage     int `csv:"forage"` // food sites eaten

	// Energy distribution at sample time
	PreyEnergyMean float64 `csv:"prey_energy_mean"`
	PreyEnergyP50  float64 `csv:"prey_energy_p50"`
	PredEnergyMean float64 `csv:"pred_energy_mean"`
	PredEnergyP50  float64 `csv:"pred_energy_p50"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and median from energy values.
func ComputeEnergyStats(values []float64) (mean, p50 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	return mean, Percentile(sorted, 0.5)
}

// LogValue implements slog.LogValuer for structured logging.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("second", s.Second),
		slog.Int("tick", s.Tick),
		slog.Int("prey", s.PreyCount),
		slog.Int("pred", s.PredCount),
		slog.Int("prey_births", s.PreyBirths),
		slog.Int("pred_births", s.PredBirths),
		slog.Int("prey_deaths", s.PreyDeaths),
		slog.Int("pred_deaths", s.PredDeaths),
		slog.Int("kills", s.Kills),
		slog.Int("forage", s.Forage),
		slog.Float64("prey_energy_mean", s.PreyEnergyMean),
		slog.Float64("pred_energy_mean", s.PredEnergyMean),
	)
}
