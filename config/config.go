// Package config provides configuration loading for the ecosystem simulation
// and the genome search.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all simulation and search parameters.
// A Config is scoped to one search run and passed explicitly to the
// world, evaluator and search constructors.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Screen     ScreenConfig     `yaml:"screen"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Population PopulationConfig `yaml:"population"`
	Food       FoodConfig       `yaml:"food"`
	Agent      AgentConfig      `yaml:"agent"`
	Genome     GenomeConfig     `yaml:"genome"`
	Mutation   MutationConfig   `yaml:"mutation"`
	Search     SearchConfig     `yaml:"search"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the plane dimensions in whole plane units.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ScreenConfig holds viewer window settings. The simulation never reads it.
type ScreenConfig struct {
	Width     int `yaml:"width"`  // 0 = world width
	Height    int `yaml:"height"` // 0 = world height
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds tick timing.
type PhysicsConfig struct {
	DTMillis float64 `yaml:"dt_ms"`     // Elapsed milliseconds per tick
	MaxTicks int     `yaml:"max_ticks"` // Safety cap per evaluation (0 = unlimited)
}

// PopulationConfig holds initial counts.
type PopulationConfig struct {
	Food      int `yaml:"food"`
	Prey      int `yaml:"prey"`
	Predators int `yaml:"predators"`
}

// FoodConfig holds food site parameters.
type FoodConfig struct {
	Radius int `yaml:"radius"` // Draw radius only; eating uses the agent's size
}

// AgentConfig holds the runtime rules shared by every agent.
type AgentConfig struct {
	MaxEnergy        float64 `yaml:"max_energy"`
	InitialEnergy    float64 `yaml:"initial_energy"`
	MealEnergy       float64 `yaml:"meal_energy"`
	GrowthPerMeal    int     `yaml:"growth_per_meal"`
	MealsToReproduce int     `yaml:"meals_to_reproduce"`
	OffspringOffset  int     `yaml:"offspring_offset"`
	EvasivePrey      bool    `yaml:"evasive_prey"`   // Prey pick food away from predators
	ClampToPlane     bool    `yaml:"clamp_to_plane"` // Clamp positions after every move
}

// Range is an inclusive [Min, Max] interval.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// GenomeRange holds the per-scalar ranges random genomes are drawn from.
type GenomeRange struct {
	Size             Range `yaml:"size"`
	Speed            Range `yaml:"speed"`
	HungerRate       Range `yaml:"hunger_rate"`
	ReproductionTime Range `yaml:"reproduction_time"`
}

// GenomeBounds holds the lower bounds mutated genomes are clamped to.
type GenomeBounds struct {
	MinSize             int     `yaml:"min_size"`
	MinSpeed            float64 `yaml:"min_speed"`
	MinHungerRate       float64 `yaml:"min_hunger_rate"`
	MinReproductionTime int     `yaml:"min_reproduction_time"`
}

// GenomeConfig holds genome generation parameters per kind.
type GenomeConfig struct {
	Prey     GenomeRange  `yaml:"prey"`
	Predator GenomeRange  `yaml:"predator"`
	Bounds   GenomeBounds `yaml:"bounds"`
}

// MutationConfig holds the maximum perturbation per genome scalar.
type MutationConfig struct {
	Size             int     `yaml:"size"`
	Speed            float64 `yaml:"speed"`
	HungerRate       float64 `yaml:"hunger_rate"`
	ReproductionTime int     `yaml:"reproduction_time"`
}

// SearchConfig holds genetic search parameters.
type SearchConfig struct {
	PopulationSize int     `yaml:"population_size"`
	Generations    int     `yaml:"generations"`
	MutationRate   float64 `yaml:"mutation_rate"`
	Elitism        int     `yaml:"elitism"` // Top-k pairs copied unchanged
	Seed           int64   `yaml:"seed"`    // 0 = time-based
}

// TelemetryConfig holds logging parameters.
type TelemetryConfig struct {
	LogSamples bool `yaml:"log_samples"` // Log every per-second sample via slog
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	HalfW        int // World.Width / 2
	HalfH        int // World.Height / 2
	ScreenWidth  int
	ScreenHeight int
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Clone returns a deep copy. Config holds no reference types, so a value
// copy is enough.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate checks the config for values the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.World.Width < 2 || c.World.Height < 2:
		return fmt.Errorf("%w: world must be at least 2x2, got %dx%d", ErrInvalid, c.World.Width, c.World.Height)
	case c.Physics.DTMillis <= 0:
		return fmt.Errorf("%w: physics.dt_ms must be positive", ErrInvalid)
	case c.Physics.MaxTicks < 0:
		return fmt.Errorf("%w: physics.max_ticks must not be negative", ErrInvalid)
	case c.Population.Food < 0 || c.Population.Prey < 0 || c.Population.Predators < 0:
		return fmt.Errorf("%w: population counts must not be negative", ErrInvalid)
	case c.Agent.MaxEnergy <= 0:
		return fmt.Errorf("%w: agent.max_energy must be positive", ErrInvalid)
	case c.Agent.MealsToReproduce < 1:
		return fmt.Errorf("%w: agent.meals_to_reproduce must be at least 1", ErrInvalid)
	case c.Search.PopulationSize < 2:
		return fmt.Errorf("%w: search.population_size must be at least 2", ErrInvalid)
	case c.Search.Generations < 1:
		return fmt.Errorf("%w: search.generations must be at least 1", ErrInvalid)
	case c.Search.MutationRate < 0 || c.Search.MutationRate > 1:
		return fmt.Errorf("%w: search.mutation_rate must be in [0, 1]", ErrInvalid)
	case c.Search.Elitism < 0 || c.Search.Elitism >= c.Search.PopulationSize:
		return fmt.Errorf("%w: search.elitism must be in [0, population_size)", ErrInvalid)
	case c.Genome.Bounds.MinSize < 1:
		return fmt.Errorf("%w: genome.bounds.min_size must be at least 1", ErrInvalid)
	case c.Genome.Bounds.MinSpeed <= 0:
		return fmt.Errorf("%w: genome.bounds.min_speed must be positive", ErrInvalid)
	}

	for name, r := range map[string]GenomeRange{"prey": c.Genome.Prey, "predator": c.Genome.Predator} {
		if err := r.validate(); err != nil {
			return fmt.Errorf("%w: genome.%s: %v", ErrInvalid, name, err)
		}
	}
	return nil
}

func (g GenomeRange) validate() error {
	ranges := []struct {
		name string
		r    Range
	}{
		{"size", g.Size},
		{"speed", g.Speed},
		{"hunger_rate", g.HungerRate},
		{"reproduction_time", g.ReproductionTime},
	}
	for _, it := range ranges {
		if it.r.Min > it.r.Max {
			return fmt.Errorf("%s: min %v > max %v", it.name, it.r.Min, it.r.Max)
		}
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.HalfW = c.World.Width / 2
	c.Derived.HalfH = c.World.Height / 2

	// Screen dimensions default to world size if not specified
	c.Derived.ScreenWidth = c.Screen.Width
	if c.Derived.ScreenWidth == 0 {
		c.Derived.ScreenWidth = c.World.Width
	}
	c.Derived.ScreenHeight = c.Screen.Height
	if c.Derived.ScreenHeight == 0 {
		c.Derived.ScreenHeight = c.World.Height
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
