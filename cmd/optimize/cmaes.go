package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/evolution"
	"github.com/pthm-cable/ecoevo/fitness"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// runCMAES searches the genome pair space with CMA-ES, spending the same
// evaluation budget as the genetic search: population_size * generations.
// Scores are negated because the optimizer minimizes.
func runCMAES(ctx context.Context, cfg *config.Config, evaluator evolution.Scorer, om *telemetry.OutputManager) (evolution.Outcome, error) {
	params := NewParamVector(cfg)
	popSize := cfg.Search.PopulationSize
	maxEvals := popSize * cfg.Search.Generations

	var (
		out       evolution.Outcome
		evalCount int
		block     []int
		evalErr   error
		haveBest  bool
	)
	hall := evolution.NewHallOfFame(evolution.DefaultHallSize)
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			// Once cancelled or failed, burn the remaining budget without simulating
			if ctx.Err() != nil || evalErr != nil {
				return 0
			}

			pair := params.ToPair(params.Denormalize(x))
			res, err := evaluator.Evaluate(ctx, pair.Prey, pair.Predator)
			if err != nil {
				evalErr = fmt.Errorf("evaluation %d: %w", evalCount, err)
				return 0
			}

			gen, idx := evalCount/popSize, evalCount%popSize
			evalCount++
			hall.Consider(evolution.HallEntry{Pair: pair, Score: res.Score, Generation: gen, Individual: idx})

			if err := om.WriteIndividual(telemetry.NewIndividualRecord(gen, idx, res.Score, res.Capped, pair.Prey, pair.Predator)); err != nil {
				slog.Error("failed to write individual", "error", err)
			}
			if !haveBest || res.Score > out.BestScore {
				haveBest = true
				out.Best, out.BestScore, out.BestResult = pair, res.Score, res
			}

			// Summarize every popSize evaluations as one generation
			block = append(block, res.Score)
			if len(block) == popSize {
				summary := evolution.Summarize(gen, block)
				out.Generations = append(out.Generations, summary)
				if err := om.WriteSummary(summary); err != nil {
					slog.Error("failed to write summary", "error", err)
				}
				printProgress(summary, cfg.Search.Generations, startTime)
				block = block[:0]
			}

			return -float64(res.Score)
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: maxEvals,
		Concurrent:      0, // Sequential evaluation
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	initX := params.Normalize(params.DefaultVector())
	if _, err := optimize.Minimize(problem, initX, settings, method); err != nil {
		slog.Info("optimization ended", "reason", err)
	}
	out.HallOfFame = hall.Entries()

	if err := ctx.Err(); err != nil {
		return out, err
	}
	if evalErr != nil {
		return out, evalErr
	}
	return out, nil
}

// Compile-time check that the evaluator fits the search.
var _ evolution.Scorer = (*fitness.Evaluator)(nil)
