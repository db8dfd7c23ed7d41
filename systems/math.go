package systems

import (
	"math"

	"github.com/pthm-cable/ecoevo/components"
)

// distanceSq returns the squared distance between two points.
func distanceSq(a, b components.Position) int {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// distance returns the Euclidean distance between two points.
func distance(a, b components.Position) float64 {
	return math.Sqrt(float64(distanceSq(a, b)))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
