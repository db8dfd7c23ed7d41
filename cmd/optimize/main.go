// Package main searches for the prey and predator genomes that keep the
// ecosystem alive longest, with a genetic algorithm or CMA-ES.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/evolution"
	"github.com/pthm-cable/ecoevo/fitness"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

// printProgress prints one line per finished generation with timing.
func printProgress(s telemetry.GenerationSummary, total int, start time.Time) {
	done := s.Generation + 1
	elapsed := time.Since(start)
	remaining := time.Duration(total-done) * (elapsed / time.Duration(done))

	fmt.Printf("Generation %d/%d: best=%.0fs mean=%.1fs median=%.1fs std=%.1f | elapsed: %s, ETA: %s\n",
		done, total, s.Best, s.Mean, s.Median, s.Std,
		formatDuration(elapsed), formatDuration(remaining))
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	outputDir := flag.String("output", "", "Output directory for results (empty = no files)")
	method := flag.String("method", "ga", "Search method: ga or cmaes")
	seed := flag.Int64("seed", -1, "RNG seed (-1 = use config, 0 = time-based)")
	population := flag.Int("population", 0, "Population size (0 = use config)")
	generations := flag.Int("generations", 0, "Number of generations (0 = use config)")
	mutation := flag.Float64("mutation", -1, "Mutation probability (-1 = use config)")
	maxTicks := flag.Int("max-ticks", -1, "Tick cap per evaluation (-1 = use config, 0 = unlimited)")
	verbose := flag.Bool("v", false, "Log every evaluation")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	applyFlags(cfg, *seed, *population, *generations, *mutation, *maxTicks)
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, *method, *outputDir); err != nil {
		slog.Error("optimization failed", "error", err)
		os.Exit(1)
	}
}

// applyFlags overrides config values with the flags that were set.
func applyFlags(cfg *config.Config, seed int64, population, generations int, mutation float64, maxTicks int) {
	if seed >= 0 {
		cfg.Search.Seed = seed
	}
	if population > 0 {
		cfg.Search.PopulationSize = population
	}
	if generations > 0 {
		cfg.Search.Generations = generations
	}
	if mutation >= 0 {
		cfg.Search.MutationRate = mutation
	}
	if maxTicks >= 0 {
		cfg.Physics.MaxTicks = maxTicks
	}
}

func run(ctx context.Context, cfg *config.Config, method, outputDir string) error {
	rngSeed := cfg.Search.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))

	om, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer om.Close()

	if err := om.WriteConfig(cfg); err != nil {
		return err
	}

	evaluator := fitness.NewEvaluator(cfg, rng, fitness.Options{})

	fmt.Printf("Starting %s search: population=%d, generations=%d, mutation=%.2f, seed=%d\n",
		method, cfg.Search.PopulationSize, cfg.Search.Generations, cfg.Search.MutationRate, rngSeed)

	startTime := time.Now()
	var out evolution.Outcome
	switch method {
	case "ga":
		search := evolution.NewSearch(cfg, evaluator, rng, om)
		search.OnGeneration = func(s telemetry.GenerationSummary) {
			printProgress(s, cfg.Search.Generations, startTime)
		}
		out, err = search.Run(ctx)
	case "cmaes":
		out, err = runCMAES(ctx, cfg, evaluator, om)
	default:
		return fmt.Errorf("unknown method %q", method)
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nSearch complete in %s\n", formatDuration(time.Since(startTime)))
	fmt.Printf("Best fitness: %ds\n", out.BestScore)
	fmt.Printf("  prey:     %s\n", out.Best.Prey)
	fmt.Printf("  predator: %s\n", out.Best.Predator)

	return writeResults(om, out)
}

// writeResults saves the best pair, its history, the hall of fame and the charts.
func writeResults(om *telemetry.OutputManager, out evolution.Outcome) error {
	if om == nil {
		return nil
	}

	if err := om.WriteYAML("best.yaml", out.Best); err != nil {
		return err
	}
	if err := om.WriteHistory("history.csv", out.BestResult.History); err != nil {
		return err
	}
	if err := evolution.WriteHallOfFame(om.Path("hall_of_fame.yaml"), out.HallOfFame); err != nil {
		return err
	}

	// A best run that died within a second has nothing to chart
	if len(out.BestResult.History) > 0 {
		if err := telemetry.PlotHistory(out.BestResult.History, "Best run population", om.Path("population.png")); err != nil {
			return err
		}
	}
	if len(out.Generations) > 0 {
		if err := telemetry.PlotGenerations(out.Generations, "Fitness per generation", om.Path("fitness.png")); err != nil {
			return err
		}
	}

	fmt.Printf("\nResults saved to: %s\n", om.Dir())
	return nil
}
