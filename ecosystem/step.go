package ecosystem

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/ecoevo/components"
	"github.com/pthm-cable/ecoevo/systems"
	"github.com/pthm-cable/ecoevo/telemetry"
)

// Step advances the world by one tick of dtMs milliseconds and reports
// whether the run is over.
//
// Order within a tick: every prey is updated, then every predator, over a
// snapshot taken at the start of the tick; dead agents are removed; survivors
// reproduce; the sampling clock advances.
func (w *World) Step(dtMs float64) bool {
	if w.Done() {
		return true
	}
	w.tick++
	w.perf.StartTick()
	defer w.perf.EndTick()

	w.perf.StartPhase(telemetry.PhaseSnapshot)
	w.snapshot()
	nb := &systems.Neighborhood{Food: w.food, Prey: w.preyBuf, Predators: w.predBuf}

	w.perf.StartPhase(telemetry.PhasePrey)
	for _, a := range w.preyBuf {
		if !a.Alive() {
			continue
		}
		w.collector.RecordMeals(components.KindPrey, a.Update(dtMs, nb, &w.rules, w.rng))
	}
	w.perf.StartPhase(telemetry.PhasePredators)
	for _, a := range w.predBuf {
		if !a.Alive() {
			continue
		}
		w.collector.RecordMeals(components.KindPredator, a.Update(dtMs, nb, &w.rules, w.rng))
	}

	w.perf.StartPhase(telemetry.PhaseCleanup)
	w.cleanupDead()
	w.perf.StartPhase(telemetry.PhaseReproduction)
	w.reproduce()

	w.perf.StartPhase(telemetry.PhaseSample)
	if w.collector.Advance(dtMs) {
		w.flushSample()
	}

	return w.Done()
}

// snapshot rebuilds the live prey and predator views from the ECS world.
// The component pointers stay valid until the next structural change.
func (w *World) snapshot() {
	w.preyBuf = w.preyBuf[:0]
	w.predBuf = w.predBuf[:0]

	query := w.agentFilter.Query()
	for query.Next() {
		pos, body, energy, genome, org := query.Get()
		if !energy.Alive {
			continue
		}
		a := systems.Agent{Pos: pos, Body: body, Energy: energy, Genome: genome, Org: org}
		if org.Kind == components.KindPrey {
			w.preyBuf = append(w.preyBuf, a)
		} else {
			w.predBuf = append(w.predBuf, a)
		}
	}
}

// cleanupDead removes dead entities from the world.
func (w *World) cleanupDead() {
	// First pass: collect dead entities (must complete before modifying)
	type deadInfo struct {
		entity ecs.Entity
		kind   components.Kind
	}
	var toRemove []deadInfo

	query := w.agentFilter.Query()
	for query.Next() {
		_, _, energy, _, org := query.Get()
		if !energy.Alive {
			toRemove = append(toRemove, deadInfo{entity: query.Entity(), kind: org.Kind})
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		w.collector.RecordDeath(dead.kind)
		w.agentMapper.Remove(dead.entity)

		if dead.kind == components.KindPrey {
			w.numPrey--
		} else {
			w.numPred--
		}
	}
}

// reproduce lets every survivor breed and creates the offspring afterwards.
func (w *World) reproduce() {
	var births []systems.Spawn

	query := w.agentFilter.Query()
	for query.Next() {
		pos, body, energy, genome, org := query.Get()
		a := systems.Agent{Pos: pos, Body: body, Energy: energy, Genome: genome, Org: org}
		if child, ok := a.Reproduce(&w.rules, w.rng); ok {
			births = append(births, child)
		}
	}

	for _, child := range births {
		w.spawn(child)
		w.collector.RecordBirth(child.Org.Kind)
	}
}

// flushSample records one history sample.
func (w *World) flushSample() {
	var preyEnergy, predEnergy []float64

	query := w.agentFilter.Query()
	for query.Next() {
		_, _, energy, _, org := query.Get()
		if org.Kind == components.KindPrey {
			preyEnergy = append(preyEnergy, energy.Value)
		} else {
			predEnergy = append(predEnergy, energy.Value)
		}
	}

	s := w.collector.Flush(w.tick, w.numPrey, w.numPred, preyEnergy, predEnergy)
	w.history = append(w.history, s)
}

// LastSample returns the most recent history sample.
func (w *World) LastSample() (telemetry.Sample, bool) {
	if len(w.history) == 0 {
		return telemetry.Sample{}, false
	}
	return w.history[len(w.history)-1], true
}
