package fitness

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/ecosystem"
	"github.com/pthm-cable/ecoevo/telemetry"
)

var (
	testPrey = components.Genome{Size: 10, Speed: 2, HungerRate: 2, ReproductionTime: 5000}
	testPred = components.Genome{Size: 15, Speed: 2, HungerRate: 6, ReproductionTime: 7000}
)

func testConfig(maxTicks int) *config.Config {
	cfg := config.Default()
	cfg.Physics.MaxTicks = maxTicks
	return cfg
}

func TestEvaluate_Terminates(t *testing.T) {
	cfg := testConfig(20000)
	e := NewEvaluator(cfg, rand.New(rand.NewSource(1)), Options{})

	res, err := e.Evaluate(context.Background(), testPrey, testPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Score < 0 {
		t.Errorf("score = %d, want >= 0", res.Score)
	}
	if res.Score != len(res.History) {
		t.Errorf("score = %d, history = %d samples", res.Score, len(res.History))
	}
	if res.Aborted {
		t.Error("run should not be aborted")
	}
	if res.Capped != (res.Reason == ReasonCapped) {
		t.Errorf("capped = %v with reason %q", res.Capped, res.Reason)
	}
	if !res.Capped && res.Reason != ReasonExtinct {
		t.Errorf("reason = %q, want %q", res.Reason, ReasonExtinct)
	}

	// Seconds are consecutive
	for i, s := range res.History {
		if s.Second != i+1 {
			t.Fatalf("sample %d has second %d", i, s.Second)
		}
	}
}

func TestEvaluate_EmptyPopulationScoresZero(t *testing.T) {
	tests := []struct {
		name      string
		prey      int
		predators int
	}{
		{"no predators", 32, 0},
		{"no prey", 0, 1},
		{"nothing", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(0)
			cfg.Population.Prey = tt.prey
			cfg.Population.Predators = tt.predators

			frames := 0
			e := NewEvaluator(cfg, rand.New(rand.NewSource(1)), Options{
				OnFrame: func(ecosystem.Frame) { frames++ },
			})
			res, err := e.Evaluate(context.Background(), testPrey, testPred)
			if err != nil {
				t.Fatalf("Evaluate: %v", err)
			}
			if res.Score != 0 || res.Ticks != 0 {
				t.Errorf("score/ticks = %d/%d, want 0/0", res.Score, res.Ticks)
			}
			if res.Reason != ReasonEmpty {
				t.Errorf("reason = %q, want %q", res.Reason, ReasonEmpty)
			}
			if frames != 0 {
				t.Errorf("OnFrame called %d times without stepping", frames)
			}
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	cfg := testConfig(10000)

	run := func() Result {
		e := NewEvaluator(cfg, rand.New(rand.NewSource(99)), Options{})
		res, err := e.Evaluate(context.Background(), testPrey, testPred)
		if err != nil {
			t.Fatalf("Evaluate: %v", err)
		}
		return res
	}

	a, b := run(), run()
	if a.Score != b.Score || a.Ticks != b.Ticks {
		t.Errorf("score/ticks differ: %d/%d vs %d/%d", a.Score, a.Ticks, b.Score, b.Ticks)
	}
	if !reflect.DeepEqual(a.History, b.History) {
		t.Error("histories differ for the same seed")
	}
}

func TestEvaluate_StopRequest(t *testing.T) {
	cfg := testConfig(0)

	polls := 0
	e := NewEvaluator(cfg, rand.New(rand.NewSource(1)), Options{
		Stop: func() bool {
			polls++
			return polls > 100
		},
	})

	res, err := e.Evaluate(context.Background(), testPrey, testPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if res.Reason == ReasonExtinct {
		t.Skip("run went extinct before the stop request")
	}
	if !res.Aborted || res.Reason != ReasonStopped {
		t.Errorf("aborted/reason = %v/%q, want true/%q", res.Aborted, res.Reason, ReasonStopped)
	}
	if res.Ticks != 100 {
		t.Errorf("ticks = %d, want 100", res.Ticks)
	}
	// 100 ticks of 16ms cross the one second mark once
	if res.Score != 1 {
		t.Errorf("partial score = %d, want 1", res.Score)
	}
}

func TestEvaluate_ContextCanceled(t *testing.T) {
	cfg := testConfig(0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewEvaluator(cfg, rand.New(rand.NewSource(1)), Options{})
	res, err := e.Evaluate(ctx, testPrey, testPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !res.Aborted || res.Reason != ReasonCanceled || res.Ticks != 0 {
		t.Errorf("got aborted=%v reason=%q ticks=%d", res.Aborted, res.Reason, res.Ticks)
	}
}

func TestEvaluate_Hooks(t *testing.T) {
	cfg := testConfig(200)

	var frames int
	var samples []telemetry.Sample
	e := NewEvaluator(cfg, rand.New(rand.NewSource(7)), Options{
		OnFrame:  func(ecosystem.Frame) { frames++ },
		OnSample: func(s telemetry.Sample) { samples = append(samples, s) },
	})

	res, err := e.Evaluate(context.Background(), testPrey, testPred)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if frames != res.Ticks {
		t.Errorf("frames = %d, ticks = %d", frames, res.Ticks)
	}
	if !reflect.DeepEqual(samples, res.History) {
		t.Errorf("OnSample saw %d samples, history has %d", len(samples), len(res.History))
	}
}

func TestEvaluate_InvalidGenome(t *testing.T) {
	e := NewEvaluator(testConfig(0), rand.New(rand.NewSource(1)), Options{})

	bad := testPrey
	bad.Size = 0
	if _, err := e.Evaluate(context.Background(), bad, testPred); !errors.Is(err, ErrInvalidGenome) {
		t.Errorf("err = %v, want ErrInvalidGenome", err)
	}

	bad = testPred
	bad.Speed = 0
	if _, err := e.Evaluate(context.Background(), testPrey, bad); !errors.Is(err, ErrInvalidGenome) {
		t.Errorf("err = %v, want ErrInvalidGenome", err)
	}
}
