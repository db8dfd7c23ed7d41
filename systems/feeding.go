package systems

import (
	"math/rand"

	"github.com/pthm-cable/ecoevo/components"
)

// InReach reports whether other lies inside the axis-aligned box of
// half-width size around self. The test is a box, not a circle.
func InReach(self, other components.Position, size int) bool {
	return absInt(self.X-other.X) < size && absInt(self.Y-other.Y) < size
}

// Eat consumes everything in reach. Predators kill live prey; prey eat food
// sites, which respawn in the quadrant they were eaten from.
// Returns the number of meals.
func (a Agent) Eat(nb *Neighborhood, r *Rules, rng *rand.Rand) int {
	meals := 0
	if a.Org.Kind == components.KindPredator {
		for _, p := range nb.Prey {
			if !p.Alive() || !InReach(*a.Pos, *p.Pos, a.Body.Size) {
				continue
			}
			p.Energy.Alive = false
			Feed(a.Energy, a.Body, r)
			meals++
		}
		return meals
	}

	for i := range nb.Food {
		f := &nb.Food[i]
		if !InReach(*a.Pos, f.Position, a.Body.Size) {
			continue
		}
		RespawnFood(f, f.Quadrant, r.Plane, rng)
		Feed(a.Energy, a.Body, r)
		meals++
	}
	return meals
}
