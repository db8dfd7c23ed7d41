package components

// Body holds the collision size of an agent.
// Size grows with every meal and resets to BaseSize on reproduction.
type Body struct {
	BaseSize int
	Size     int
}
