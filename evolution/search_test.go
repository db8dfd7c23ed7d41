package evolution

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/fitness"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// sizeScorer rewards large prey and small predators without simulating.
type sizeScorer struct {
	calls  int
	cancel context.CancelFunc
	after  int
}

func (s *sizeScorer) Evaluate(ctx context.Context, prey, pred components.Genome) (fitness.Result, error) {
	s.calls++
	if s.cancel != nil && s.calls == s.after {
		s.cancel()
	}
	score := max(0, prey.Size*2-pred.Size+20)
	return fitness.Result{Score: score, History: make([]telemetry.Sample, score)}, nil
}

type failingScorer struct{}

func (failingScorer) Evaluate(context.Context, components.Genome, components.Genome) (fitness.Result, error) {
	return fitness.Result{}, fitness.ErrInvalidGenome
}

func searchConfig() *config.Config {
	cfg := config.Default()
	cfg.Search.PopulationSize = 8
	cfg.Search.Generations = 5
	cfg.Search.MutationRate = 0.5
	return cfg
}

func TestSearchRun(t *testing.T) {
	cfg := searchConfig()
	scorer := &sizeScorer{}
	s := NewSearch(cfg, scorer, rand.New(rand.NewSource(1)), nil)

	var seen int
	s.OnGeneration = func(telemetry.GenerationSummary) { seen++ }

	out, err := s.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if scorer.calls != cfg.Search.PopulationSize*cfg.Search.Generations {
		t.Errorf("evaluations = %d, want %d", scorer.calls, cfg.Search.PopulationSize*cfg.Search.Generations)
	}
	if len(out.Generations) != cfg.Search.Generations || seen != cfg.Search.Generations {
		t.Errorf("generations = %d (hook %d), want %d", len(out.Generations), seen, cfg.Search.Generations)
	}
	for _, g := range out.Generations {
		if g.Size != cfg.Search.PopulationSize {
			t.Errorf("generation %d size = %d", g.Generation, g.Size)
		}
	}

	last := out.Generations[len(out.Generations)-1]
	if float64(out.BestScore) != last.Best {
		t.Errorf("best score %d, last generation best %v", out.BestScore, last.Best)
	}
	if out.BestResult.Score != out.BestScore {
		t.Errorf("best result score %d != %d", out.BestResult.Score, out.BestScore)
	}

	if len(out.HallOfFame) != DefaultHallSize {
		t.Fatalf("hall of fame size = %d, want %d", len(out.HallOfFame), DefaultHallSize)
	}
	if out.HallOfFame[0].Score < out.BestScore {
		t.Errorf("hall top %d below last-generation best %d", out.HallOfFame[0].Score, out.BestScore)
	}
}

func TestSearchDeterministic(t *testing.T) {
	run := func() Outcome {
		s := NewSearch(searchConfig(), &sizeScorer{}, rand.New(rand.NewSource(21)), nil)
		out, err := s.Run(context.Background())
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		return out
	}
	a, b := run(), run()
	if a.Best != b.Best || a.BestScore != b.BestScore {
		t.Errorf("outcomes differ: %v/%d vs %v/%d", a.Best, a.BestScore, b.Best, b.BestScore)
	}
}

func TestSearchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scorer := &sizeScorer{cancel: cancel, after: 3}
	s := NewSearch(searchConfig(), scorer, rand.New(rand.NewSource(1)), nil)

	if _, err := s.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if scorer.calls != 3 {
		t.Errorf("evaluations after cancel = %d, want 3", scorer.calls)
	}
}

func TestSearchScorerError(t *testing.T) {
	s := NewSearch(searchConfig(), failingScorer{}, rand.New(rand.NewSource(1)), nil)
	if _, err := s.Run(context.Background()); !errors.Is(err, fitness.ErrInvalidGenome) {
		t.Errorf("err = %v, want wrapped ErrInvalidGenome", err)
	}
}

func TestSearchWritesOutput(t *testing.T) {
	dir := t.TempDir()
	om, err := telemetry.NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	cfg := searchConfig()
	s := NewSearch(cfg, &sizeScorer{}, rand.New(rand.NewSource(1)), om)
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"generations.csv", "summary.csv"} {
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil || info.Size() == 0 {
			t.Errorf("%s missing or empty: %v", name, err)
		}
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(3, []int{4, 1, 3, 2})

	if s.Generation != 3 || s.Size != 4 {
		t.Errorf("generation/size = %d/%d", s.Generation, s.Size)
	}
	if s.Best != 4 {
		t.Errorf("best = %v, want 4", s.Best)
	}
	if math.Abs(s.Mean-2.5) > 1e-9 {
		t.Errorf("mean = %v, want 2.5", s.Mean)
	}
	if s.Median != 2 && s.Median != 2.5 && s.Median != 3 {
		t.Errorf("median = %v, want a middle value", s.Median)
	}
	if math.Abs(s.Std-math.Sqrt(5.0/3.0)) > 1e-9 {
		t.Errorf("std = %v, want %v", s.Std, math.Sqrt(5.0/3.0))
	}

	if one := Summarize(0, []int{7}); one.Std != 0 || one.Median != 7 {
		t.Errorf("single score summary = %+v", one)
	}
}
