package systems

import (
	"math/rand"

	"github.com/pthm-cable/ecoevo/components"
)

// RespawnFood places f uniformly at random inside quadrant q.
func RespawnFood(f *components.FoodSite, q components.Quadrant, plane components.Plane, rng *rand.Rand) {
	minX, minY, maxX, maxY := plane.Bounds(q)
	f.X = minX + rng.Intn(maxX-minX)
	f.Y = minY + rng.Intn(maxY-minY)
	f.Quadrant = q
}

// RespawnFoodAnywhere places f in a uniformly chosen quadrant.
func RespawnFoodAnywhere(f *components.FoodSite, plane components.Plane, rng *rand.Rand) {
	RespawnFood(f, components.Quadrant(rng.Intn(components.NumQuadrants)), plane, rng)
}

// NewFoodPool creates n food sites scattered over random quadrants.
func NewFoodPool(n int, plane components.Plane, rng *rand.Rand) []components.FoodSite {
	pool := make([]components.FoodSite, n)
	for i := range pool {
		RespawnFoodAnywhere(&pool[i], plane, rng)
	}
	return pool
}
