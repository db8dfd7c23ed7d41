package systems

import (
	"math"

	"github.com/pthm-cable/ecoevo/components"
)

// Move steers the agent one step toward its current target.
// Predators chase the nearest live prey; prey head for food, preferring
// sites far from predators when EvasivePrey is set. No target means no move.
func (a Agent) Move(nb *Neighborhood, r *Rules) {
	var (
		target components.Position
		ok     bool
	)
	if a.Org.Kind == components.KindPredator {
		target, ok = NearestPrey(*a.Pos, nb.Prey)
	} else {
		var idx int
		if r.EvasivePrey {
			idx = EvasiveFood(*a.Pos, nb.Food, nb.Predators)
		} else {
			idx = NearestFood(*a.Pos, nb.Food)
		}
		if idx >= 0 {
			target, ok = nb.Food[idx].Position, true
		}
	}
	if !ok {
		return
	}
	Step(a.Pos, target, a.Genome.Speed, r)
}

// Step advances pos by speed along the unit direction to target.
// The direction length is floored at 1 and each axis is truncated to whole
// plane units.
func Step(pos *components.Position, target components.Position, speed float64, r *Rules) {
	dx := float64(target.X - pos.X)
	dy := float64(target.Y - pos.Y)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist < 1 {
		dist = 1
	}

	pos.X += int(dx / dist * speed)
	pos.Y += int(dy / dist * speed)

	if r.ClampToPlane {
		*pos = r.Plane.Clamp(*pos)
	}
}

// NearestPrey returns the position of the closest live prey.
func NearestPrey(from components.Position, prey []Agent) (components.Position, bool) {
	best := -1
	bestDist := 0
	for i, p := range prey {
		if !p.Alive() {
			continue
		}
		d := distanceSq(from, *p.Pos)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return components.Position{}, false
	}
	return *prey[best].Pos, true
}

// NearestFood returns the index of the closest food site, or -1.
func NearestFood(from components.Position, food []components.FoodSite) int {
	best := -1
	bestDist := 0
	for i := range food {
		d := distanceSq(from, food[i].Position)
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}

// EvasiveFood picks the food site maximizing
// (distance from the site to its nearest live predator) - (distance from
// the agent to the site). Falls back to NearestFood when no predator is
// alive. Returns -1 when there is no food.
func EvasiveFood(from components.Position, food []components.FoodSite, predators []Agent) int {
	if len(food) == 0 {
		return -1
	}

	live := make([]components.Position, 0, len(predators))
	for _, p := range predators {
		if p.Alive() {
			live = append(live, *p.Pos)
		}
	}
	if len(live) == 0 {
		return NearestFood(from, food)
	}

	best := -1
	bestScore := math.Inf(-1)
	for i := range food {
		nearest := math.Inf(1)
		for _, p := range live {
			if d := distance(food[i].Position, p); d < nearest {
				nearest = d
			}
		}
		score := nearest - distance(from, food[i].Position)
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}
