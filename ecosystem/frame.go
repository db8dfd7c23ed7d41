package ecosystem

import "github.com/pthm-cable/ecoevo/components"

// AgentView is the drawable state of one agent.
type AgentView struct {
	Kind components.Kind
	X, Y int
	Size int
}

// FoodView is the drawable state of one food site.
type FoodView struct {
	X, Y   int
	Radius int
}

// Frame is everything a renderer needs to draw one tick.
type Frame struct {
	Tick      int
	PreyCount int
	PredCount int
	Agents    []AgentView
	Food      []FoodView
}

// Frame returns a copy of the current drawable state.
func (w *World) Frame() Frame {
	f := Frame{
		Tick:      w.tick,
		PreyCount: w.numPrey,
		PredCount: w.numPred,
		Agents:    make([]AgentView, 0, w.numPrey+w.numPred),
		Food:      make([]FoodView, len(w.food)),
	}

	query := w.agentFilter.Query()
	for query.Next() {
		pos, body, _, _, org := query.Get()
		f.Agents = append(f.Agents, AgentView{Kind: org.Kind, X: pos.X, Y: pos.Y, Size: body.Size})
	}

	for i, site := range w.food {
		f.Food[i] = FoodView{X: site.X, Y: site.Y, Radius: w.foodRadius}
	}
	return f
}
