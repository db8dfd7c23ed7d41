package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/ecosystem"
	"github.com/pthm-cable/ecoevo/evolution"
	"github.com/pthm-cable/ecoevo/fitness"
	"github.com/pthm-cable/ecoevo/renderer"
	"github.com/pthm-cable/ecoevo/telemetry"
	"github.com/pthm-cable/ecoevo/ui"
)

// frontend draws frames and reports stop requests.
type frontend interface {
	Draw(f ecosystem.Frame, hud ui.HUDData)
	StopRequested() bool
	Close()
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	pairPath := flag.String("pair", "", "Replay a genome pair from a best.yaml instead of searching")
	hallPath := flag.String("hall", "", "Replay every pair of a hall_of_fame.yaml, best first")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Draw in the terminal instead of a window")
	sound := flag.Bool("sound", false, "Play tones on kills and extinctions")
	drawEvery := flag.Int("draw-every", 1, "Draw every Nth tick")
	seed := flag.Int64("seed", -1, "RNG seed (-1 = use config, 0 = time-based)")
	flag.Parse()

	// Set up slog (JSON to stdout for structured logging); the terminal
	// view owns stdout, so logging is dropped there
	var logOut io.Writer = os.Stdout
	if *tui && !*headless {
		logOut = io.Discard
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed >= 0 {
		cfg.Search.Seed = *seed
	}
	if *headless {
		cfg.Telemetry.LogSamples = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var fe frontend
	switch {
	case *headless:
	case *tui:
		t, err := renderer.NewTerminal(cfg.World.Width, cfg.World.Height)
		if err != nil {
			slog.Error("failed to open terminal", "error", err)
			os.Exit(1)
		}
		fe = &terminalFrontend{t}
	default:
		fe = newWindowFrontend(cfg)
	}

	var chime *renderer.Chime
	if *sound {
		if chime, err = renderer.NewChime(); err != nil {
			// Non-fatal, the viewer can run without sound
			slog.Warn("audio initialization failed", "error", err)
		}
		defer chime.Close()
	}

	v := &viewer{cfg: cfg, fe: fe, chime: chime, drawEvery: max(*drawEvery, 1), cancel: cancel}
	switch {
	case *pairPath != "":
		err = v.replay(ctx, *pairPath)
	case *hallPath != "":
		err = v.replayHall(ctx, *hallPath)
	default:
		err = v.search(ctx)
	}
	if fe != nil {
		fe.Close()
	}

	switch {
	case errors.Is(err, context.Canceled):
		slog.Info("stopped")
	case err != nil:
		slog.Error("viewer failed", "error", err)
		os.Exit(1)
	}
}

// viewer connects the evaluator hooks to a frontend.
type viewer struct {
	cfg       *config.Config
	fe        frontend
	chime     *renderer.Chime
	drawEvery int
	cancel    context.CancelFunc

	hud ui.HUDData
}

func (v *viewer) rng() *rand.Rand {
	seed := v.cfg.Search.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	slog.Info("starting viewer", "seed", seed)
	return rand.New(rand.NewSource(seed))
}

// options builds the evaluator hooks. A stop request from the frontend
// cancels the whole viewer, not only the current run.
func (v *viewer) options() fitness.Options {
	return fitness.Options{
		Stop: func() bool {
			if v.fe != nil && v.fe.StopRequested() {
				v.cancel()
				return true
			}
			return false
		},
		OnFrame: func(f ecosystem.Frame) {
			v.hud.Tick = f.Tick
			v.hud.PreyCount = f.PreyCount
			v.hud.PredCount = f.PredCount
			if v.fe != nil && f.Tick%v.drawEvery == 0 {
				v.fe.Draw(f, v.hud)
			}
		},
		OnSample: func(s telemetry.Sample) {
			v.hud.Second = s.Second
			if s.Kills > 0 {
				v.chime.Kill()
			}
		},
	}
}

// evaluate runs one evaluation and resets the per-run HUD fields.
func (v *viewer) evaluate(ctx context.Context, e *fitness.Evaluator, p evolution.Pair) (fitness.Result, error) {
	v.hud.Tick, v.hud.Second = 0, 0
	res, err := e.Evaluate(ctx, p.Prey, p.Predator)
	if err != nil {
		return res, err
	}
	if res.Reason == fitness.ReasonExtinct {
		v.chime.Extinction()
	}
	return res, nil
}

// search runs the genetic search with every evaluation shown live.
func (v *viewer) search(ctx context.Context) error {
	v.hud = ui.HUDData{
		Title:       "Ecosystem search",
		Generations: v.cfg.Search.Generations,
		Population:  v.cfg.Search.PopulationSize,
		BestScore:   -1,
	}

	rng := v.rng()
	scorer := &viewerScorer{v: v, e: fitness.NewEvaluator(v.cfg, rng, v.options())}
	s := evolution.NewSearch(v.cfg, scorer, rng, nil)
	s.OnGeneration = func(g telemetry.GenerationSummary) {
		v.hud.BestScore = int(g.Best)
		v.hud.Generation = g.Generation + 1
		v.hud.Individual = 0
	}

	out, err := s.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("search complete",
		"best_score", out.BestScore,
		"prey", out.Best.Prey.String(),
		"predator", out.Best.Predator.String(),
	)
	return nil
}

// viewerScorer advances the HUD counters around each evaluation.
type viewerScorer struct {
	v *viewer
	e *fitness.Evaluator
}

func (s *viewerScorer) Evaluate(ctx context.Context, prey, pred components.Genome) (fitness.Result, error) {
	res, err := s.v.evaluate(ctx, s.e, evolution.Pair{Prey: prey, Predator: pred})
	s.v.hud.Individual++
	return res, err
}

// replay runs a single saved pair until extinction or stop.
func (v *viewer) replay(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading pair: %w", err)
	}
	var p evolution.Pair
	if err := yaml.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("parsing pair: %w", err)
	}

	v.hud = ui.HUDData{Title: "Ecosystem replay", Generations: 1, Population: 1, BestScore: -1}
	e := fitness.NewEvaluator(v.cfg, v.rng(), v.options())

	res, err := v.evaluate(ctx, e, p)
	if err != nil {
		return err
	}
	slog.Info("replay finished", "score", res.Score, "ticks", res.Ticks, "reason", res.Reason)
	return nil
}

// replayHall runs the saved hall of fame one pair after another.
func (v *viewer) replayHall(ctx context.Context, path string) error {
	entries, err := evolution.LoadHallOfFame(path)
	if err != nil {
		return err
	}

	v.hud = ui.HUDData{Title: "Hall of fame", Generations: 1, Population: len(entries), BestScore: -1}
	e := fitness.NewEvaluator(v.cfg, v.rng(), v.options())

	for i, entry := range entries {
		v.hud.Individual = i
		v.hud.BestScore = entry.Score
		res, err := v.evaluate(ctx, e, entry.Pair)
		if err != nil {
			return err
		}
		slog.Info("hall entry replayed",
			"rank", i+1,
			"recorded_score", entry.Score,
			"score", res.Score,
			"reason", res.Reason,
		)
		if res.Aborted {
			return ctx.Err()
		}
	}
	return nil
}

// windowFrontend draws into a raylib window with the HUD on top.
type windowFrontend struct {
	win *renderer.Window
	hud *ui.HUD
}

func newWindowFrontend(cfg *config.Config) *windowFrontend {
	win := renderer.NewWindow(cfg.World.Width, cfg.World.Height, cfg.Derived.ScreenWidth, cfg.Derived.ScreenHeight)
	win.Open("Ecosystem", cfg.Screen.TargetFPS)
	return &windowFrontend{win: win, hud: ui.NewHUD()}
}

func (w *windowFrontend) Draw(f ecosystem.Frame, hud ui.HUDData) {
	hud.FPS = rl.GetFPS()
	w.win.Begin()
	w.win.DrawFrame(f)
	w.hud.Draw(hud)
	w.win.End()
}

func (w *windowFrontend) StopRequested() bool {
	return w.win.ShouldClose() || w.hud.StopRequested()
}

func (w *windowFrontend) Close() {
	w.win.Close()
}

// terminalFrontend draws into the terminal with a one-line status.
type terminalFrontend struct {
	t *renderer.Terminal
}

func (t *terminalFrontend) Draw(f ecosystem.Frame, hud ui.HUDData) {
	status := fmt.Sprintf(" gen %d/%d  ind %d/%d  tick %d  %ds  prey %d  predators %d  [q] quit",
		hud.Generation+1, hud.Generations, hud.Individual+1, hud.Population,
		hud.Tick, hud.Second, hud.PreyCount, hud.PredCount)
	t.t.Draw(f, status)
}

func (t *terminalFrontend) StopRequested() bool {
	return t.t.StopRequested()
}

func (t *terminalFrontend) Close() {
	t.t.Close()
}
