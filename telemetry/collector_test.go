package telemetry

import (
	"testing"

	"github.com/pthm-cable/ecoevo/components"
)

func TestCollector_AdvanceCrossesSecond(t *testing.T) {
	c := NewCollector(1000)

	// 16ms ticks: the 63rd tick reaches 1008ms
	for i := 1; i <= 62; i++ {
		if c.Advance(16) {
			t.Fatalf("tick %d: sampled before one second elapsed", i)
		}
	}
	if !c.Advance(16) {
		t.Fatal("tick 63 should cross the one second boundary")
	}

	// The accumulator restarts from zero, so the overshoot is dropped
	for i := 1; i <= 62; i++ {
		if c.Advance(16) {
			t.Fatalf("second window, tick %d: sampled early", i)
		}
	}
	if !c.Advance(16) {
		t.Fatal("second window should also take 63 ticks")
	}
}

func TestCollector_FlushResetsCounters(t *testing.T) {
	c := NewCollector(1000)

	c.RecordBirth(components.KindPrey)
	c.RecordBirth(components.KindPrey)
	c.RecordBirth(components.KindPredator)
	c.RecordDeath(components.KindPrey)
	c.RecordDeath(components.KindPredator)
	c.RecordMeals(components.KindPredator, 3)
	c.RecordMeals(components.KindPrey, 5)

	s := c.Flush(63, 10, 2, []float64{20, 40}, []float64{80})

	want := Sample{
		Second: 1, Tick: 63, PreyCount: 10, PredCount: 2,
		PreyBirths: 2, PredBirths: 1, PreyDeaths: 1, PredDeaths: 1,
		Kills: 3, Forage: 5,
		PreyEnergyMean: 30, PreyEnergyP50: 30,
		PredEnergyMean: 80, PredEnergyP50: 80,
	}
	if s != want {
		t.Errorf("Flush() = %+v\nwant %+v", s, want)
	}

	next := c.Flush(126, 9, 2, nil, nil)
	if next.Second != 2 {
		t.Errorf("second = %d, want 2", next.Second)
	}
	if next.PreyBirths != 0 || next.Kills != 0 || next.Forage != 0 || next.PredDeaths != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
}
