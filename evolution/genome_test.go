package evolution

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
)

func TestRandomGenomeWithinRanges(t *testing.T) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 500; i++ {
		p := RandomPair(cfg.Genome, rng)
		for _, tc := range []struct {
			g components.Genome
			r config.GenomeRange
		}{
			{p.Prey, cfg.Genome.Prey},
			{p.Predator, cfg.Genome.Predator},
		} {
			if float64(tc.g.Size) < tc.r.Size.Min || float64(tc.g.Size) > tc.r.Size.Max {
				t.Fatalf("size %d outside %v", tc.g.Size, tc.r.Size)
			}
			if tc.g.Speed < tc.r.Speed.Min || tc.g.Speed > tc.r.Speed.Max {
				t.Fatalf("speed %v outside %v", tc.g.Speed, tc.r.Speed)
			}
			if tc.g.HungerRate < tc.r.HungerRate.Min || tc.g.HungerRate > tc.r.HungerRate.Max {
				t.Fatalf("hunger %v outside %v", tc.g.HungerRate, tc.r.HungerRate)
			}
			rt := float64(tc.g.ReproductionTime)
			if rt < tc.r.ReproductionTime.Min || rt > tc.r.ReproductionTime.Max {
				t.Fatalf("reproduction time %d outside %v", tc.g.ReproductionTime, tc.r.ReproductionTime)
			}
		}
	}
}

func TestCrossoverIdentical(t *testing.T) {
	g := components.Genome{Size: 10, Speed: 2, HungerRate: 3, ReproductionTime: 4000}
	rng := rand.New(rand.NewSource(1))

	for i := 0; i < 50; i++ {
		a, b := Crossover(g, g, rng)
		if a != g || b != g {
			t.Fatalf("Crossover(g, g) = %v, %v; want %v", a, b, g)
		}
	}
}

func TestCrossoverComplementary(t *testing.T) {
	p := components.Genome{Size: 10, Speed: 2, HungerRate: 3, ReproductionTime: 4000}
	q := components.Genome{Size: 20, Speed: 5, HungerRate: 7, ReproductionTime: 9000}
	rng := rand.New(rand.NewSource(2))

	for i := 0; i < 50; i++ {
		a, b := Crossover(p, q, rng)

		if a.Size+b.Size != p.Size+q.Size || (a.Size != p.Size && a.Size != q.Size) {
			t.Fatalf("size not complementary: %d, %d", a.Size, b.Size)
		}
		if a.Speed+b.Speed != p.Speed+q.Speed || (a.Speed != p.Speed && a.Speed != q.Speed) {
			t.Fatalf("speed not complementary: %v, %v", a.Speed, b.Speed)
		}
		if a.HungerRate+b.HungerRate != p.HungerRate+q.HungerRate {
			t.Fatalf("hunger not complementary: %v, %v", a.HungerRate, b.HungerRate)
		}
		if a.ReproductionTime+b.ReproductionTime != p.ReproductionTime+q.ReproductionTime {
			t.Fatalf("reproduction time not complementary: %d, %d", a.ReproductionTime, b.ReproductionTime)
		}
	}
}

func TestMutateZeroRate(t *testing.T) {
	cfg := config.Default()
	cfg.Search.MutationRate = 0
	m := NewMutator(cfg)
	rng := rand.New(rand.NewSource(3))

	g := components.Genome{Size: 10, Speed: 2, HungerRate: 3, ReproductionTime: 4000}
	for i := 0; i < 1000; i++ {
		if got := m.Mutate(g, rng); got != g {
			t.Fatalf("zero-rate mutation changed %v to %v", g, got)
		}
	}
}

func TestMutateStaysWithinSteps(t *testing.T) {
	cfg := config.Default()
	cfg.Search.MutationRate = 1
	m := NewMutator(cfg)
	rng := rand.New(rand.NewSource(4))

	g := components.Genome{Size: 10, Speed: 2, HungerRate: 3, ReproductionTime: 4000}
	changed := false
	for i := 0; i < 1000; i++ {
		got := m.Mutate(g, rng)
		if got != g {
			changed = true
		}
		if d := got.Size - g.Size; d < -cfg.Mutation.Size || d > cfg.Mutation.Size {
			t.Fatalf("size moved by %d", d)
		}
		if d := got.Speed - g.Speed; d < -cfg.Mutation.Speed || d > cfg.Mutation.Speed {
			t.Fatalf("speed moved by %v", d)
		}
		if d := got.HungerRate - g.HungerRate; d < -cfg.Mutation.HungerRate || d > cfg.Mutation.HungerRate {
			t.Fatalf("hunger moved by %v", d)
		}
		if d := got.ReproductionTime - g.ReproductionTime; d < -cfg.Mutation.ReproductionTime || d > cfg.Mutation.ReproductionTime {
			t.Fatalf("reproduction time moved by %d", d)
		}
	}
	if !changed {
		t.Error("rate 1 never changed the genome")
	}
}

func TestMutateClampsToBounds(t *testing.T) {
	cfg := config.Default()
	cfg.Search.MutationRate = 1
	m := NewMutator(cfg)
	rng := rand.New(rand.NewSource(5))

	g := components.Genome{Size: 1, Speed: 0.1, HungerRate: 0, ReproductionTime: 0}
	for i := 0; i < 1000; i++ {
		got := m.Mutate(g, rng)
		if got.Size < cfg.Genome.Bounds.MinSize ||
			got.Speed < cfg.Genome.Bounds.MinSpeed ||
			got.HungerRate < cfg.Genome.Bounds.MinHungerRate ||
			got.ReproductionTime < cfg.Genome.Bounds.MinReproductionTime {
			t.Fatalf("mutated genome %v below bounds", got)
		}
	}
}
