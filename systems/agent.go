// Package systems implements the per-agent rules of the ecosystem: targeting,
// movement, feeding, metabolism and reproduction.
package systems

import (
	"math/rand"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/config"
)

// Rules holds the agent rules shared by every entity in a run.
type Rules struct {
	Plane            components.Plane
	MaxEnergy        float64
	InitialEnergy    float64
	MealEnergy       float64
	GrowthPerMeal    int
	MealsToReproduce int
	OffspringOffset  int
	EvasivePrey      bool
	ClampToPlane     bool
}

// RulesFromConfig extracts the agent rules from cfg.
func RulesFromConfig(cfg *config.Config) Rules {
	return Rules{
		Plane:            components.Plane{Width: cfg.World.Width, Height: cfg.World.Height},
		MaxEnergy:        cfg.Agent.MaxEnergy,
		InitialEnergy:    cfg.Agent.InitialEnergy,
		MealEnergy:       cfg.Agent.MealEnergy,
		GrowthPerMeal:    cfg.Agent.GrowthPerMeal,
		MealsToReproduce: cfg.Agent.MealsToReproduce,
		OffspringOffset:  cfg.Agent.OffspringOffset,
		EvasivePrey:      cfg.Agent.EvasivePrey,
		ClampToPlane:     cfg.Agent.ClampToPlane,
	}
}

// Agent bundles pointers to the components of one entity.
// The pointers are only valid until the next structural change of the world.
type Agent struct {
	Pos    *components.Position
	Body   *components.Body
	Energy *components.Energy
	Genome *components.Genome
	Org    *components.Organism
}

// Alive reports whether the agent is still alive.
func (a Agent) Alive() bool {
	return a.Energy.Alive
}

// Kind returns the agent's population.
func (a Agent) Kind() components.Kind {
	return a.Org.Kind
}

// Neighborhood is what an agent can see during one tick: the shared food
// pool and the live populations. The slices belong to the world; agents may
// mark elements (eaten prey, respawned food) but never resize them.
type Neighborhood struct {
	Food      []components.FoodSite
	Prey      []Agent
	Predators []Agent
}

// Update advances the agent by dtMs milliseconds: it pays the hunger cost,
// dies if energy ran out, and otherwise moves then eats.
// Returns the number of meals eaten.
func (a Agent) Update(dtMs float64, nb *Neighborhood, r *Rules, rng *rand.Rand) int {
	if !a.Energy.Alive {
		return 0
	}
	if !Metabolize(a.Energy, a.Genome.HungerRate, dtMs) {
		return 0
	}
	a.Move(nb, r)
	return a.Eat(nb, r, rng)
}
