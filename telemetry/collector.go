package telemetry

import "github.com/pthm-cable/ecoevo/components"

// Collector accumulates events between samples and produces a Sample every
// time the simulation clock crosses the window boundary.
type Collector struct {
	windowMs float64
	elapsed  float64
	second   int

	// Event counters for current window
	preyBirths int
	predBirths int
	preyDeaths int
	predDeaths int
	kills      int
	forage     int
}

// NewCollector creates a collector sampling every windowMs of simulated time.
func NewCollector(windowMs float64) *Collector {
	if windowMs <= 0 {
		windowMs = 1000
	}
	return &Collector{windowMs: windowMs}
}

// RecordBirth records a birth event.
func (c *Collector) RecordBirth(kind components.Kind) {
	if kind == components.KindPrey {
		c.preyBirths++
	} else {
		c.predBirths++
	}
}

// RecordDeath records a death event.
func (c *Collector) RecordDeath(kind components.Kind) {
	if kind == components.KindPrey {
		c.preyDeaths++
	} else {
		c.predDeaths++
	}
}

// RecordMeals records meals eaten by an agent of the given kind.
func (c *Collector) RecordMeals(kind components.Kind, n int) {
	if kind == components.KindPredator {
		c.kills += n
	} else {
		c.forage += n
	}
}

// Advance moves the clock by dtMs. It returns true when the accumulated
// time reached the window; the accumulator then restarts from zero.
func (c *Collector) Advance(dtMs float64) bool {
	c.elapsed += dtMs
	if c.elapsed < c.windowMs {
		return false
	}
	c.elapsed = 0
	return true
}

// Flush produces a Sample and resets counters for the next window.
func (c *Collector) Flush(tick, preyCount, predCount int, preyEnergies, predEnergies []float64) Sample {
	c.second++

	preyMean, preyP50 := ComputeEnergyStats(preyEnergies)
	predMean, predP50 := ComputeEnergyStats(predEnergies)

	s := Sample{
		Second:         c.second,
		Tick:           tick,
		PreyCount:      preyCount,
		PredCount:      predCount,
		PreyBirths:     c.preyBirths,
		PredBirths:     c.predBirths,
		PreyDeaths:     c.preyDeaths,
		PredDeaths:     c.predDeaths,
		Kills:          c.kills,
		Forage:         c.forage,
		PreyEnergyMean: preyMean,
		PreyEnergyP50:  preyP50,
		PredEnergyMean: predMean,
		PredEnergyP50:  predP50,
	}

	// Reset for next window
	c.preyBirths = 0
	c.predBirths = 0
	c.preyDeaths = 0
	c.predDeaths = 0
	c.kills = 0
	c.forage = 0

	return s
}
