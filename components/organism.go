package components

// Energy tracks an agent's metabolic state.
type Energy struct {
	Value float64 // 0..max
	Meals int     // consumptions since the last reproduction
	Alive bool
}

// Organism holds identity and lineage.
type Organism struct {
	ID         uint32
	Kind       Kind
	ParentID   uint32 // 0 for founders
	Generation int    // 0 for founders
}
