// Package fitness scores a prey/predator genome pair by the number of
// simulated seconds the ecosystem survives before either side goes extinct.
package fitness

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/ecosystem"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// ErrInvalidGenome is returned for genomes the simulation cannot run.
var ErrInvalidGenome = errors.New("invalid genome")

// Reasons a run ended.
const (
	ReasonExtinct  = "extinct"
	ReasonEmpty    = "empty"
	ReasonCapped   = "capped"
	ReasonStopped  = "stopped"
	ReasonCanceled = "canceled"
)

// perfWindow is the number of trailing ticks step timings are averaged over.
const perfWindow = 1000

// Options are optional hooks for observing and interrupting a run.
type Options struct {
	// Stop is polled once per tick; returning true ends the run early.
	Stop func() bool
	// OnFrame is called after every tick with the drawable state.
	OnFrame func(ecosystem.Frame)
	// OnSample is called for every recorded one-second sample.
	OnSample func(telemetry.Sample)
}

// Result is the outcome of one evaluation.
type Result struct {
	Score   int                // number of one-second samples recorded
	History []telemetry.Sample // one sample per simulated second
	Ticks   int
	Capped  bool // physics.max_ticks reached before extinction
	Aborted bool // stop request or context cancellation
	Reason  string
}

// Evaluator runs one headless simulation per genome pair.
type Evaluator struct {
	cfg  *config.Config
	rng  *rand.Rand
	opts Options
}

// NewEvaluator creates an evaluator. Every evaluation draws the seed of its
// world from rng, so a seeded rng makes a sequence of evaluations repeatable.
func NewEvaluator(cfg *config.Config, rng *rand.Rand, opts Options) *Evaluator {
	return &Evaluator{cfg: cfg, rng: rng, opts: opts}
}

// Evaluate simulates the pair until extinction, the tick cap, a stop request
// or ctx cancellation. An interrupted run still returns its partial score.
func (e *Evaluator) Evaluate(ctx context.Context, prey, pred components.Genome) (Result, error) {
	if err := validateGenome(prey); err != nil {
		return Result{}, fmt.Errorf("prey: %w", err)
	}
	if err := validateGenome(pred); err != nil {
		return Result{}, fmt.Errorf("predator: %w", err)
	}

	// Draw the seed even for empty runs so the stream stays aligned
	seed := e.rng.Int63()

	if e.cfg.Population.Prey == 0 || e.cfg.Population.Predators == 0 {
		return Result{Reason: ReasonEmpty}, nil
	}

	w := ecosystem.New(e.cfg, prey, pred, rand.New(rand.NewSource(seed)))
	perf := telemetry.NewPerfCollector(perfWindow)
	w.SetPerf(perf)
	result := e.run(ctx, w)

	slog.Debug("evaluation finished",
		"prey", prey.String(),
		"predator", pred.String(),
		"score", result.Score,
		"ticks", result.Ticks,
		"reason", result.Reason,
		"perf", perf.Stats(),
	)
	return result, nil
}

// run drives the world tick by tick.
func (e *Evaluator) run(ctx context.Context, w *ecosystem.World) Result {
	dt := e.cfg.Physics.DTMillis
	maxTicks := e.cfg.Physics.MaxTicks

	result := Result{Reason: ReasonExtinct}
	seen := 0

	for !w.Done() {
		if err := ctx.Err(); err != nil {
			result.Aborted = true
			result.Reason = ReasonCanceled
			break
		}
		if e.opts.Stop != nil && e.opts.Stop() {
			result.Aborted = true
			result.Reason = ReasonStopped
			break
		}
		if maxTicks > 0 && w.Tick() >= maxTicks {
			result.Capped = true
			result.Reason = ReasonCapped
			slog.Warn("max ticks reached before extinction",
				"tick", w.Tick(),
				"prey", w.PreyCount(),
				"predators", w.PredCount(),
			)
			break
		}

		w.Step(dt)

		if e.opts.OnFrame != nil {
			e.opts.OnFrame(w.Frame())
		}
		if history := w.History(); len(history) > seen {
			for _, s := range history[seen:] {
				if e.cfg.Telemetry.LogSamples {
					slog.Info("sample", "stats", s)
				}
				if e.opts.OnSample != nil {
					e.opts.OnSample(s)
				}
			}
			seen = len(history)
		}
	}

	history := w.History()
	result.History = make([]telemetry.Sample, len(history))
	copy(result.History, history)
	result.Score = len(result.History)
	result.Ticks = w.Tick()
	return result
}

func validateGenome(g components.Genome) error {
	switch {
	case g.Size < 1:
		return fmt.Errorf("%w: size %d < 1", ErrInvalidGenome, g.Size)
	case g.Speed <= 0:
		return fmt.Errorf("%w: speed %v <= 0", ErrInvalidGenome, g.Speed)
	case g.HungerRate < 0:
		return fmt.Errorf("%w: hunger rate %v < 0", ErrInvalidGenome, g.HungerRate)
	}
	return nil
}
