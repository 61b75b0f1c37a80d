package sim

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default simulation parameters: a 4-hour opening window with roughly one
// arrival every 144 seconds, 10±5 minute service times, and customers who
// give up after 30 minutes in line.
const (
	DefaultHorizonTicks       = 4 * 3600
	DefaultArrivalProbability = 1.0 / 144.0
	DefaultMaxWaitTicks       = 30 * 60
	DefaultServiceMeanTicks   = 10 * 60
	DefaultServiceStdDevTicks = 5 * 60
	DefaultMinServiceTicks    = 60
	DefaultBoxCost            = 1000
	DefaultAbandonPenalty     = 10000

	// MinBoxes and MaxBoxes bound the facility size.
	MinBoxes = 1
	MaxBoxes = 10
)

// Config holds all construction-time parameters for a Simulator.
// It is plain data: every Simulator owns its own copy, so independently
// configured instances can run side by side.
type Config struct {
	Boxes              int     `yaml:"boxes"`               // number of service boxes (1-10)
	HorizonTicks       int64   `yaml:"horizon"`             // opening window in ticks; no arrivals at or past this
	ArrivalProbability float64 `yaml:"arrival_probability"` // per-tick Bernoulli arrival probability
	MaxWaitTicks       int64   `yaml:"max_wait"`            // ticks in line before a customer abandons
	ServiceMeanTicks   float64 `yaml:"service_mean"`        // mean of the normal service-time distribution
	ServiceStdDevTicks float64 `yaml:"service_stddev"`      // std dev of the normal service-time distribution
	MinServiceTicks    int64   `yaml:"service_min"`         // floor applied to sampled service times
	BoxCost            int64   `yaml:"box_cost"`            // operating cost per box
	AbandonPenalty     int64   `yaml:"abandon_penalty"`     // cost per abandoned customer
	Seed               int64   `yaml:"seed"`                // master RNG seed
}

// DefaultConfig returns a Config with the standard parameters and the given
// number of boxes.
func DefaultConfig(boxes int) Config {
	return Config{
		Boxes:              boxes,
		HorizonTicks:       DefaultHorizonTicks,
		ArrivalProbability: DefaultArrivalProbability,
		MaxWaitTicks:       DefaultMaxWaitTicks,
		ServiceMeanTicks:   DefaultServiceMeanTicks,
		ServiceStdDevTicks: DefaultServiceStdDevTicks,
		MinServiceTicks:    DefaultMinServiceTicks,
		BoxCost:            DefaultBoxCost,
		AbandonPenalty:     DefaultAbandonPenalty,
		Seed:               42,
	}
}

// Validate checks the configuration, returning a descriptive error for the
// first violated constraint. A zero arrival probability is legal: an empty
// facility is a meaningful degenerate scenario.
func (c Config) Validate() error {
	if c.Boxes < MinBoxes || c.Boxes > MaxBoxes {
		return fmt.Errorf("boxes must be between %d and %d, got %d", MinBoxes, MaxBoxes, c.Boxes)
	}
	if c.HorizonTicks <= 0 {
		return fmt.Errorf("horizon must be positive, got %d", c.HorizonTicks)
	}
	if c.ArrivalProbability < 0 || c.ArrivalProbability > 1 {
		return fmt.Errorf("arrival probability must be in [0,1], got %v", c.ArrivalProbability)
	}
	if c.MaxWaitTicks <= 0 {
		return fmt.Errorf("max wait must be positive, got %d", c.MaxWaitTicks)
	}
	if c.ServiceMeanTicks <= 0 {
		return fmt.Errorf("service mean must be positive, got %v", c.ServiceMeanTicks)
	}
	if c.ServiceStdDevTicks <= 0 {
		return fmt.Errorf("service stddev must be positive, got %v", c.ServiceStdDevTicks)
	}
	if c.MinServiceTicks <= 0 {
		return fmt.Errorf("service floor must be positive, got %d", c.MinServiceTicks)
	}
	if c.BoxCost < 0 {
		return fmt.Errorf("box cost must be non-negative, got %d", c.BoxCost)
	}
	if c.AbandonPenalty < 0 {
		return fmt.Errorf("abandon penalty must be non-negative, got %d", c.AbandonPenalty)
	}
	return nil
}

// LoadConfig reads a YAML scenario file over the given base configuration.
// Keys absent from the file keep their base values, so scenario files only
// need to name the parameters they change.
func LoadConfig(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scenario file: %w", err)
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse scenario file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("scenario file %s: %w", path, err)
	}
	return cfg, nil
}
