package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/ecoevo/components"
)

// IndividualRecord is one evaluated genome pair, one row of generations.csv.
type IndividualRecord struct {
	Generation int  `csv:"generation"`
	Index      int  `csv:"index"`
	Fitness    int  `csv:"fitness"`
	Capped     bool `csv:"capped"`

	PreySize             int     `csv:"prey_size"`
	PreySpeed            float64 `csv:"prey_speed"`
	PreyHungerRate       float64 `csv:"prey_hunger_rate"`
	PreyReproductionTime int     `csv:"prey_reproduction_time"`

	PredSize             int     `csv:"pred_size"`
	PredSpeed            float64 `csv:"pred_speed"`
	PredHungerRate       float64 `csv:"pred_hunger_rate"`
	PredReproductionTime int     `csv:"pred_reproduction_time"`
}

// NewIndividualRecord flattens a genome pair into a CSV row.
func NewIndividualRecord(gen, idx, fitness int, capped bool, prey, pred components.Genome) IndividualRecord {
	return IndividualRecord{
		Generation:           gen,
		Index:                idx,
		Fitness:              fitness,
		Capped:               capped,
		PreySize:             prey.Size,
		PreySpeed:            prey.Speed,
		PreyHungerRate:       prey.HungerRate,
		PreyReproductionTime: prey.ReproductionTime,
		PredSize:             pred.Size,
		PredSpeed:            pred.Speed,
		PredHungerRate:       pred.HungerRate,
		PredReproductionTime: pred.ReproductionTime,
	}
}

// GenerationSummary holds fitness statistics for one generation.
type GenerationSummary struct {
	Generation int     `csv:"generation"`
	Size       int     `csv:"size"`
	Best       float64 `csv:"best"`
	Mean       float64 `csv:"mean"`
	Median     float64 `csv:"median"`
	Std        float64 `csv:"std"`
}

// LogValue implements slog.LogValuer for structured logging.
func (g GenerationSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", g.Generation),
		slog.Int("size", g.Size),
		slog.Float64("best", g.Best),
		slog.Float64("mean", g.Mean),
		slog.Float64("median", g.Median),
		slog.Float64("std", g.Std),
	)
}
