// Package ecosystem runs one predator/prey/food simulation on an ark ECS world.
package ecosystem

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
	"github.com/pthm-cable/ecoevo/systems"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// SampleWindowMs is the simulated time between two history samples.
const SampleWindowMs = 1000

// World holds the complete state of one simulation run.
type World struct {
	world *ecs.World
	rng   *rand.Rand
	rules systems.Rules

	// Entity mapper and filter over the five agent components
	agentMapper *ecs.Map5[
		components.Position,
		components.Body,
		components.Energy,
		components.Genome,
		components.Organism,
	]
	agentFilter *ecs.Filter5[
		components.Position,
		components.Body,
		components.Energy,
		components.Genome,
		components.Organism,
	]

	food       []components.FoodSite
	foodRadius int

	// Telemetry
	collector *telemetry.Collector
	history   []telemetry.Sample
	perf      *telemetry.PerfCollector

	// State
	tick    int
	nextID  uint32
	numPrey int
	numPred int

	// Scratch buffers reused across ticks
	preyBuf []systems.Agent
	predBuf []systems.Agent
}

// New creates a world seeded with the configured food pool and founders of
// the two genomes. All randomness of the run is drawn from rng.
func New(cfg *config.Config, prey, pred components.Genome, rng *rand.Rand) *World {
	world := ecs.NewWorld()

	w := &World{
		world: world,
		rng:   rng,
		rules: systems.RulesFromConfig(cfg),
		agentMapper: ecs.NewMap5[
			components.Position,
			components.Body,
			components.Energy,
			components.Genome,
			components.Organism,
		](world),
		agentFilter: ecs.NewFilter5[
			components.Position,
			components.Body,
			components.Energy,
			components.Genome,
			components.Organism,
		](world),
		foodRadius: cfg.Food.Radius,
		collector:  telemetry.NewCollector(SampleWindowMs),
		nextID:     1,
	}

	w.food = systems.NewFoodPool(cfg.Population.Food, w.rules.Plane, rng)
	w.spawnFounders(components.KindPrey, prey, cfg.Population.Prey)
	w.spawnFounders(components.KindPredator, pred, cfg.Population.Predators)

	return w
}

// spawnFounders places n agents of one kind uniformly over the plane.
func (w *World) spawnFounders(kind components.Kind, g components.Genome, n int) {
	plane := w.rules.Plane
	for i := 0; i < n; i++ {
		pos := components.Position{X: w.rng.Intn(plane.Width), Y: w.rng.Intn(plane.Height)}
		w.spawn(systems.NewSpawn(kind, g, pos, &w.rules))
	}
}

// spawn creates the entity for s and assigns its ID.
func (w *World) spawn(s systems.Spawn) ecs.Entity {
	s.Org.ID = w.nextID
	w.nextID++

	entity := w.agentMapper.NewEntity(&s.Pos, &s.Body, &s.Energy, &s.Genome, &s.Org)

	if s.Org.Kind == components.KindPrey {
		w.numPrey++
	} else {
		w.numPred++
	}
	return entity
}

// Tick returns the number of completed ticks.
func (w *World) Tick() int {
	return w.tick
}

// PreyCount returns the number of live prey.
func (w *World) PreyCount() int {
	return w.numPrey
}

// PredCount returns the number of live predators.
func (w *World) PredCount() int {
	return w.numPred
}

// Done reports whether either population is extinct.
func (w *World) Done() bool {
	return w.numPrey == 0 || w.numPred == 0
}

// History returns the per-second samples recorded so far.
// The slice is owned by the world; callers must not modify it.
func (w *World) History() []telemetry.Sample {
	return w.history
}

// Food returns the food pool. The slice is owned by the world.
func (w *World) Food() []components.FoodSite {
	return w.food
}

// SetPerf attaches a step timer. A nil collector disables timing.
func (w *World) SetPerf(p *telemetry.PerfCollector) {
	w.perf = p
}
