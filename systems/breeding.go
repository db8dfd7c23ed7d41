package systems

import (
	"math/rand"

	"github.com/pthm-cable/ecoevo/components"
)

// Spawn holds the component values of an agent about to be created.
type Spawn struct {
	Pos    components.Position
	Body   components.Body
	Energy components.Energy
	Genome components.Genome
	Org    components.Organism
}

// NewSpawn returns fresh runtime state for an agent of the given genome.
// The ID is left for the world to assign.
func NewSpawn(kind components.Kind, g components.Genome, pos components.Position, r *Rules) Spawn {
	return Spawn{
		Pos:    pos,
		Body:   components.Body{BaseSize: g.Size, Size: g.Size},
		Energy: components.Energy{Value: r.InitialEnergy, Alive: true},
		Genome: g,
		Org:    components.Organism{Kind: kind},
	}
}

// Reproduce returns one offspring once the agent has eaten MealsToReproduce
// meals, resetting the parent's meal counter and size. The offspring sits
// OffspringOffset units away on each axis, sign drawn per axis, and inherits
// the genome unchanged.
func (a Agent) Reproduce(r *Rules, rng *rand.Rand) (Spawn, bool) {
	if !a.Energy.Alive || a.Energy.Meals < r.MealsToReproduce {
		return Spawn{}, false
	}

	a.Energy.Meals = 0
	a.Body.Size = a.Body.BaseSize

	pos := components.Position{
		X: a.Pos.X + jitterSign(rng)*r.OffspringOffset,
		Y: a.Pos.Y + jitterSign(rng)*r.OffspringOffset,
	}
	if r.ClampToPlane {
		pos = r.Plane.Clamp(pos)
	}

	child := NewSpawn(a.Org.Kind, *a.Genome, pos, r)
	child.Org.ParentID = a.Org.ID
	child.Org.Generation = a.Org.Generation + 1
	return child, true
}

func jitterSign(rng *rand.Rand) int {
	if rng.Intn(2) == 0 {
		return -1
	}
	return 1
}
