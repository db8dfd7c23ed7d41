package components

// Position represents an entity's position in whole plane units.
type Position struct {
	X, Y int
}

// Plane is the bounded simulation area [0, Width] x [0, Height].
type Plane struct {
	Width, Height int
}

// Clamp returns p moved inside the plane.
func (pl Plane) Clamp(p Position) Position {
	return Position{X: clampInt(p.X, 0, pl.Width), Y: clampInt(p.Y, 0, pl.Height)}
}

// Contains reports whether p lies inside the plane, borders included.
func (pl Plane) Contains(p Position) bool {
	return p.X >= 0 && p.X <= pl.Width && p.Y >= 0 && p.Y <= pl.Height
}

// Quadrant indexes one of the four equal quarters of the plane.
type Quadrant uint8

const (
	QuadrantTopLeft Quadrant = iota
	QuadrantTopRight
	QuadrantBottomLeft
	QuadrantBottomRight

	NumQuadrants = 4
)

// Bounds returns the half-open box [minX, maxX) x [minY, maxY) covered by q.
func (pl Plane) Bounds(q Quadrant) (minX, minY, maxX, maxY int) {
	hw, hh := pl.Width/2, pl.Height/2
	switch q {
	case QuadrantTopLeft:
		return 0, 0, hw, hh
	case QuadrantTopRight:
		return hw, 0, pl.Width, hh
	case QuadrantBottomLeft:
		return 0, hh, hw, pl.Height
	default:
		return hw, hh, pl.Width, pl.Height
	}
}

// QuadrantOf returns the quadrant containing p.
func (pl Plane) QuadrantOf(p Position) Quadrant {
	right := p.X >= pl.Width/2
	bottom := p.Y >= pl.Height/2
	switch {
	case !right && !bottom:
		return QuadrantTopLeft
	case right && !bottom:
		return QuadrantTopRight
	case !right && bottom:
		return QuadrantBottomLeft
	default:
		return QuadrantBottomRight
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
