// Package components defines ECS components for the ecosystem simulation.
package components

// Kind distinguishes the two agent populations.
type Kind uint8

const (
	KindPrey Kind = iota
	KindPredator
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindPrey:
		return "prey"
	case KindPredator:
		return "predator"
	default:
		return "unknown"
	}
}
