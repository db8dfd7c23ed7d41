package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/ecoevo/components"
)

func TestReproduce_BelowThreshold(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(1))

	prey := newAgent(components.KindPrey, 100, 100, preyGenome, &r)
	prey.Energy.Meals = 1

	if _, ok := prey.Reproduce(&r, rng); ok {
		t.Error("one meal should not be enough to reproduce")
	}
	if prey.Energy.Meals != 1 {
		t.Errorf("meal counter changed to %d", prey.Energy.Meals)
	}
}

func TestReproduce_Offspring(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(2))

	parent := newAgent(components.KindPredator, 300, 300, predGenome, &r)
	parent.Org.ID = 17
	parent.Org.Generation = 3
	parent.Energy.Meals = 2
	parent.Energy.Value = 42
	parent.Body.Size = predGenome.Size + 4

	child, ok := parent.Reproduce(&r, rng)
	if !ok {
		t.Fatal("expected an offspring after two meals")
	}

	// Parent state resets
	if parent.Energy.Meals != 0 {
		t.Errorf("parent meals = %d, want 0", parent.Energy.Meals)
	}
	if parent.Body.Size != predGenome.Size {
		t.Errorf("parent size = %d, want base %d", parent.Body.Size, predGenome.Size)
	}
	if parent.Energy.Value != 42 {
		t.Errorf("parent energy = %v, reproduction must not cost energy", parent.Energy.Value)
	}

	// Offspring inherits the genome and starts fresh
	if child.Genome != predGenome {
		t.Errorf("child genome = %v, want %v", child.Genome, predGenome)
	}
	if child.Org.Kind != components.KindPredator {
		t.Errorf("child kind = %v", child.Org.Kind)
	}
	if child.Org.ParentID != 17 || child.Org.Generation != 4 {
		t.Errorf("lineage = parent %d gen %d, want 17/4", child.Org.ParentID, child.Org.Generation)
	}
	if child.Energy.Value != r.InitialEnergy || child.Energy.Meals != 0 || !child.Energy.Alive {
		t.Errorf("child energy = %+v", child.Energy)
	}
	if child.Body.Size != predGenome.Size || child.Body.BaseSize != predGenome.Size {
		t.Errorf("child body = %+v", child.Body)
	}

	dx := child.Pos.X - 300
	dy := child.Pos.Y - 300
	if absInt(dx) != 5 || absInt(dy) != 5 {
		t.Errorf("child offset = (%d,%d), want ±5 on each axis", dx, dy)
	}
}

func TestReproduce_NoSecondOffspringWithoutMeals(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(3))

	prey := newAgent(components.KindPrey, 100, 100, preyGenome, &r)
	prey.Energy.Meals = 2

	if _, ok := prey.Reproduce(&r, rng); !ok {
		t.Fatal("first call should reproduce")
	}
	if _, ok := prey.Reproduce(&r, rng); ok {
		t.Error("second call without new meals must not reproduce")
	}

	prey.Energy.Meals++
	if _, ok := prey.Reproduce(&r, rng); ok {
		t.Error("one meal after reset must not reproduce")
	}
}

func TestReproduce_OffsetSignsVary(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(4))

	seen := make(map[components.Position]bool)
	for i := 0; i < 200; i++ {
		prey := newAgent(components.KindPrey, 100, 100, preyGenome, &r)
		prey.Energy.Meals = 2
		child, _ := prey.Reproduce(&r, rng)
		seen[child.Pos] = true
	}
	if len(seen) != 4 {
		t.Errorf("saw %d distinct offspring positions, want 4", len(seen))
	}
}

func TestReproduce_ClampedAtCorner(t *testing.T) {
	r := testRules()
	rng := rand.New(rand.NewSource(5))

	for i := 0; i < 50; i++ {
		prey := newAgent(components.KindPrey, 0, 800, preyGenome, &r)
		prey.Energy.Meals = 2
		child, _ := prey.Reproduce(&r, rng)
		if !r.Plane.Contains(child.Pos) {
			t.Fatalf("offspring at %v outside plane", child.Pos)
		}
	}
}
