package components

// FoodSite is a respawning point resource pinned to one quadrant.
type FoodSite struct {
	Position
	Quadrant Quadrant
}
