package components

import "fmt"

// Genome is the heritable parameter set of one lineage.
// Offspring copy it unchanged; only the search recombines it.
type Genome struct {
	Size             int     `yaml:"size" csv:"size"`
	Speed            float64 `yaml:"speed" csv:"speed"`
	HungerRate       float64 `yaml:"hunger_rate" csv:"hunger_rate"`             // energy per second
	ReproductionTime int     `yaml:"reproduction_time" csv:"reproduction_time"` // ms, inherited but not read by any rule
}

// String formats the genome for logs.
func (g Genome) String() string {
	return fmt.Sprintf("size=%d speed=%.2f hunger=%.2f repro=%d", g.Size, g.Speed, g.HungerRate, g.ReproductionTime)
}
