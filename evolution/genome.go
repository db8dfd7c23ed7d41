// Package evolution implements the genetic search over prey/predator genome
// pairs: random initialization, truncation selection, uniform crossover and
// bounded mutation.
package evolution

import (
	"math/rand"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
)

// Pair is the unit of selection: one genome per population.
type Pair struct {
	Prey     components.Genome `yaml:"prey"`
	Predator components.Genome `yaml:"predator"`
}

// RandomGenome draws every scalar uniformly from its range. Integer scalars
// include both ends of the range.
func RandomGenome(r config.GenomeRange, rng *rand.Rand) components.Genome {
	return components.Genome{
		Size:             uniformInt(r.Size, rng),
		Speed:            uniformFloat(r.Speed, rng),
		HungerRate:       uniformFloat(r.HungerRate, rng),
		ReproductionTime: uniformInt(r.ReproductionTime, rng),
	}
}

// RandomPair draws a fresh pair from the per-kind ranges.
func RandomPair(g config.GenomeConfig, rng *rand.Rand) Pair {
	return Pair{
		Prey:     RandomGenome(g.Prey, rng),
		Predator: RandomGenome(g.Predator, rng),
	}
}

func uniformInt(r config.Range, rng *rand.Rand) int {
	lo, hi := int(r.Min), int(r.Max)
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo+1)
}

func uniformFloat(r config.Range, rng *rand.Rand) float64 {
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Crossover recombines two genomes scalar by scalar. For each scalar a fair
// coin decides which parent the first child copies; the second child takes
// the other parent's value, so the children are complementary.
func Crossover(a, b components.Genome, rng *rand.Rand) (components.Genome, components.Genome) {
	x, y := a, b

	if rng.Intn(2) == 1 {
		x.Size, y.Size = b.Size, a.Size
	}
	if rng.Intn(2) == 1 {
		x.Speed, y.Speed = b.Speed, a.Speed
	}
	if rng.Intn(2) == 1 {
		x.HungerRate, y.HungerRate = b.HungerRate, a.HungerRate
	}
	if rng.Intn(2) == 1 {
		x.ReproductionTime, y.ReproductionTime = b.ReproductionTime, a.ReproductionTime
	}
	return x, y
}

// CrossoverPair recombines the prey genomes and the predator genomes of two
// pairs independently.
func CrossoverPair(a, b Pair, rng *rand.Rand) (Pair, Pair) {
	var x, y Pair
	x.Prey, y.Prey = Crossover(a.Prey, b.Prey, rng)
	x.Predator, y.Predator = Crossover(a.Predator, b.Predator, rng)
	return x, y
}

// Mutator perturbs genomes within fixed steps and clamps them to bounds.
type Mutator struct {
	Rate   float64 // probability a genome is mutated at all
	Step   config.MutationConfig
	Bounds config.GenomeBounds
}

// NewMutator builds a mutator from the search and genome sections of cfg.
func NewMutator(cfg *config.Config) Mutator {
	return Mutator{
		Rate:   cfg.Search.MutationRate,
		Step:   cfg.Mutation,
		Bounds: cfg.Genome.Bounds,
	}
}

// Mutate returns g, perturbed with probability Rate. A mutated genome has
// every scalar shifted by a uniform draw within its step, then clamped.
func (m Mutator) Mutate(g components.Genome, rng *rand.Rand) components.Genome {
	if rng.Float64() >= m.Rate {
		return g
	}

	g.Size += rng.Intn(2*m.Step.Size+1) - m.Step.Size
	g.Speed += (rng.Float64()*2 - 1) * m.Step.Speed
	g.HungerRate += (rng.Float64()*2 - 1) * m.Step.HungerRate
	g.ReproductionTime += rng.Intn(2*m.Step.ReproductionTime+1) - m.Step.ReproductionTime

	return m.Clamp(g)
}

// MutatePair mutates the two genomes of p independently.
func (m Mutator) MutatePair(p Pair, rng *rand.Rand) Pair {
	p.Prey = m.Mutate(p.Prey, rng)
	p.Predator = m.Mutate(p.Predator, rng)
	return p
}

// Clamp raises every scalar of g to its lower bound.
func (m Mutator) Clamp(g components.Genome) components.Genome {
	g.Size = max(g.Size, m.Bounds.MinSize)
	g.Speed = max(g.Speed, m.Bounds.MinSpeed)
	g.HungerRate = max(g.HungerRate, m.Bounds.MinHungerRate)
	g.ReproductionTime = max(g.ReproductionTime, m.Bounds.MinReproductionTime)
	return g
}
