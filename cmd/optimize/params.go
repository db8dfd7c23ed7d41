package main

import (
	"math"

	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/evolution"
)

// ParamSpec defines a single optimizable genome scalar.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
	Integer bool    // Rounded before use
}

// ParamVector maps a genome pair to and from a flat vector.
type ParamVector struct {
	Specs   []ParamSpec
	mutator evolution.Mutator
}

// NewParamVector creates the eight genome scalars of a pair, bounded by the
// configured random-genome ranges.
func NewParamVector(cfg *config.Config) *ParamVector {
	spec := func(name, path string, r config.Range, integer bool) ParamSpec {
		return ParamSpec{Name: name, Path: path, Min: r.Min, Max: r.Max, Default: (r.Min + r.Max) / 2, Integer: integer}
	}
	prey, pred := cfg.Genome.Prey, cfg.Genome.Predator

	return &ParamVector{
		Specs: []ParamSpec{
			spec("prey_size", "genome.prey.size", prey.Size, true),
			spec("prey_speed", "genome.prey.speed", prey.Speed, false),
			spec("prey_hunger_rate", "genome.prey.hunger_rate", prey.HungerRate, false),
			spec("prey_reproduction_time", "genome.prey.reproduction_time", prey.ReproductionTime, true),
			spec("pred_size", "genome.predator.size", pred.Size, true),
			spec("pred_speed", "genome.predator.speed", pred.Speed, false),
			spec("pred_hunger_rate", "genome.predator.hunger_rate", pred.HungerRate, false),
			spec("pred_reproduction_time", "genome.predator.reproduction_time", pred.ReproductionTime, true),
		},
		mutator: evolution.NewMutator(cfg),
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
// Degenerate specs with Min == Max normalize to 0.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		if spec.Max > spec.Min {
			normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
		}
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// ToPair converts raw values into a genome pair. Values are clamped to the
// spec bounds, integer scalars rounded, and the result clamped to the
// genome bounds.
// Order must match Specs order.
func (pv *ParamVector) ToPair(values []float64) evolution.Pair {
	v := pv.Clamp(values)

	var p evolution.Pair
	p.Prey.Size = int(math.Round(v[0]))
	p.Prey.Speed = v[1]
	p.Prey.HungerRate = v[2]
	p.Prey.ReproductionTime = int(math.Round(v[3]))
	p.Predator.Size = int(math.Round(v[4]))
	p.Predator.Speed = v[5]
	p.Predator.HungerRate = v[6]
	p.Predator.ReproductionTime = int(math.Round(v[7]))

	p.Prey = pv.mutator.Clamp(p.Prey)
	p.Predator = pv.mutator.Clamp(p.Predator)
	return p
}

// FromPair flattens a genome pair in Specs order.
func (pv *ParamVector) FromPair(p evolution.Pair) []float64 {
	return []float64{
		float64(p.Prey.Size), p.Prey.Speed, p.Prey.HungerRate, float64(p.Prey.ReproductionTime),
		float64(p.Predator.Size), p.Predator.Speed, p.Predator.HungerRate, float64(p.Predator.ReproductionTime),
	}
}
