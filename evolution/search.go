package evolution

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/fitness"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// Scorer evaluates one genome pair.
type Scorer interface {
	Evaluate(ctx context.Context, prey, pred components.Genome) (fitness.Result, error)
}

// Outcome is the result of a completed search.
type Outcome struct {
	Best        Pair
	BestScore   int
	BestResult  fitness.Result // full run of Best, including its history
	Generations []telemetry.GenerationSummary
	HallOfFame  []HallEntry // best pairs across all generations
}

// Search runs the generational loop.
type Search struct {
	cfg     *config.Config
	scorer  Scorer
	rng     *rand.Rand
	mutator Mutator
	output  *telemetry.OutputManager
	hall    *HallOfFame

	// OnGeneration is called after every generation has been scored.
	OnGeneration func(telemetry.GenerationSummary)
}

// NewSearch creates a search. output may be nil to disable CSV logging.
func NewSearch(cfg *config.Config, scorer Scorer, rng *rand.Rand, output *telemetry.OutputManager) *Search {
	return &Search{
		cfg:     cfg,
		scorer:  scorer,
		rng:     rng,
		mutator: NewMutator(cfg),
		output:  output,
		hall:    NewHallOfFame(DefaultHallSize),
	}
}

// Run evaluates search.generations generations and returns the best pair
// of the last one. Cancelling ctx aborts the search with ctx.Err().
func (s *Search) Run(ctx context.Context) (Outcome, error) {
	n := s.cfg.Search.PopulationSize

	pop := make([]Pair, n)
	for i := range pop {
		pop[i] = RandomPair(s.cfg.Genome, s.rng)
	}

	var out Outcome
	for gen := 0; gen < s.cfg.Search.Generations; gen++ {
		results, err := s.evaluate(ctx, gen, pop)
		if err != nil {
			out.HallOfFame = s.hall.Entries()
			return out, err
		}

		scores := make([]int, len(results))
		for i, r := range results {
			scores[i] = r.Score
		}

		summary := Summarize(gen, scores)
		out.Generations = append(out.Generations, summary)
		if err := s.output.WriteSummary(summary); err != nil {
			out.HallOfFame = s.hall.Entries()
			return out, err
		}
		slog.Info("generation complete", "summary", summary)
		if s.OnGeneration != nil {
			s.OnGeneration(summary)
		}

		selected := Select(scores)
		best := selected[0]
		out.Best = pop[best]
		out.BestScore = scores[best]
		out.BestResult = results[best]

		if gen == s.cfg.Search.Generations-1 {
			break
		}

		parents := make([]Pair, len(selected))
		for i, idx := range selected {
			parents[i] = pop[idx]
		}
		pop = Breed(parents, n, s.cfg.Search.Elitism, s.mutator, s.rng)
	}

	out.HallOfFame = s.hall.Entries()
	return out, nil
}

// evaluate scores every pair of one generation in order.
func (s *Search) evaluate(ctx context.Context, gen int, pop []Pair) ([]fitness.Result, error) {
	results := make([]fitness.Result, len(pop))
	for i, p := range pop {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res, err := s.scorer.Evaluate(ctx, p.Prey, p.Predator)
		if err != nil {
			return nil, fmt.Errorf("generation %d, individual %d: %w", gen, i, err)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		results[i] = res
		s.hall.Consider(HallEntry{Pair: p, Score: res.Score, Generation: gen, Individual: i})

		slog.Debug("individual scored", "generation", gen, "index", i, "score", res.Score)
		if err := s.output.WriteIndividual(telemetry.NewIndividualRecord(gen, i, res.Score, res.Capped, p.Prey, p.Predator)); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// Summarize computes fitness statistics for one generation.
func Summarize(gen int, scores []int) telemetry.GenerationSummary {
	summary := telemetry.GenerationSummary{Generation: gen, Size: len(scores)}
	if len(scores) == 0 {
		return summary
	}

	values := make([]float64, len(scores))
	for i, v := range scores {
		values[i] = float64(v)
	}
	sort.Float64s(values)

	summary.Best = values[len(values)-1]
	summary.Mean, summary.Std = stat.MeanStdDev(values, nil)
	summary.Median = stat.Quantile(0.5, stat.Empirical, values, nil)
	if len(values) == 1 {
		summary.Std = 0
	}
	return summary
}
