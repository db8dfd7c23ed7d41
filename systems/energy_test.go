package systems

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/ecoevo/components"
)

func TestMetabolize(t *testing.T) {
	tests := []struct {
		name      string
		start     float64
		hunger    float64
		dtMs      float64
		want      float64
		wantAlive bool
	}{
		{"half second at rate 2", 100, 2, 500, 99, true},
		{"one tick at rate 6", 100, 6, 16, 100 - 0.096, true},
		{"exactly drained", 1, 1, 1000, 0, false},
		{"overdrawn", 0.5, 1, 1000, 0, false},
		{"zero hunger", 40, 0, 1000, 40, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := components.Energy{Value: tt.start, Alive: true}
			alive := Metabolize(&e, tt.hunger, tt.dtMs)
			if alive != tt.wantAlive || e.Alive != tt.wantAlive {
				t.Errorf("alive = %v (flag %v), want %v", alive, e.Alive, tt.wantAlive)
			}
			if math.Abs(e.Value-tt.want) > 1e-9 {
				t.Errorf("energy = %v, want %v", e.Value, tt.want)
			}
		})
	}
}

func TestMetabolize_DeadStaysDead(t *testing.T) {
	e := components.Energy{Value: 0, Alive: false}
	if Metabolize(&e, 0, 1000) {
		t.Error("dead agent must not come back to life")
	}
	if e.Alive {
		t.Error("Alive flag flipped back on")
	}
}

func TestFeed_CapsEnergy(t *testing.T) {
	r := testRules()
	e := components.Energy{Value: 80, Alive: true}
	b := components.Body{BaseSize: 10, Size: 10}

	Feed(&e, &b, &r)

	if e.Value != 100 {
		t.Errorf("energy = %v, want capped 100", e.Value)
	}
	if e.Meals != 1 {
		t.Errorf("meals = %d, want 1", e.Meals)
	}
	if b.Size != 12 {
		t.Errorf("size = %d, want 12", b.Size)
	}
}

func TestEnergyMonotonicWithoutMeals(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(7))

	// Food exists but is far away; the prey walks toward it without reaching it
	prey := newAgent(components.KindPrey, 10, 10, preyGenome, &r)
	nb := &Neighborhood{Food: []components.FoodSite{{Position: components.Position{X: 790, Y: 790}}}}

	prev := prey.Energy.Value
	for i := 0; i < 200; i++ {
		meals := prey.Update(16, nb, &r, rng)
		if meals != 0 {
			t.Fatalf("tick %d: unexpected meal", i)
		}
		if prey.Energy.Value > prev {
			t.Fatalf("tick %d: energy rose from %v to %v without a meal", i, prev, prey.Energy.Value)
		}
		if prey.Energy.Value > r.MaxEnergy {
			t.Fatalf("tick %d: energy %v above max", i, prey.Energy.Value)
		}
		prev = prey.Energy.Value
	}
}

func TestEnergyNeverExceedsMax(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(3))

	// Prey parked on a dense food patch eats every tick
	prey := newAgent(components.KindPrey, 50, 50, preyGenome, &r)
	food := make([]components.FoodSite, 8)
	for i := range food {
		food[i] = components.FoodSite{Position: components.Position{X: 50, Y: 50}}
	}
	nb := &Neighborhood{Food: food}

	for i := 0; i < 50; i++ {
		prey.Update(16, nb, &r, rng)
		if prey.Energy.Value > r.MaxEnergy {
			t.Fatalf("tick %d: energy %v above max %v", i, prey.Energy.Value, r.MaxEnergy)
		}
		for j := range food {
			food[j].X, food[j].Y = prey.Pos.X, prey.Pos.Y
		}
	}
}
