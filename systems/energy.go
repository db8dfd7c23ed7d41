package systems

import "github.com/pthm-cable/ecoevo/components"

// Metabolize deducts hungerRate*dtMs/1000 from energy and checks for death.
// Returns false once the agent is dead.
func Metabolize(e *components.Energy, hungerRate, dtMs float64) bool {
	if !e.Alive {
		return false
	}

	e.Value -= hungerRate * dtMs / 1000

	// Death check
	if e.Value <= 0 {
		e.Value = 0
		e.Alive = false
		return false
	}
	return true
}

// Feed applies one meal: energy gain capped at MaxEnergy, meal counter and
// size growth.
func Feed(e *components.Energy, b *components.Body, r *Rules) {
	e.Value += r.MealEnergy
	if e.Value > r.MaxEnergy {
		e.Value = r.MaxEnergy
	}
	e.Meals++
	b.Size += r.GrowthPerMeal
}
