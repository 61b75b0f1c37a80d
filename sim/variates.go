// Random variate generation for the simulator: the per-tick arrival draw
// and the service-duration distribution.

package sim

import "math/rand"

// VariateSource supplies the random draws the simulator consumes each tick.
// The production implementation is RandomVariates; tests inject scripted
// sources to force exact arrival and service sequences.
type VariateSource interface {
	// NextArrival reports whether a customer arrives this tick, as a
	// Bernoulli draw with probability p. Draws are independent across ticks.
	NextArrival(p float64) bool

	// NextServiceTicks returns the service duration, in ticks, for a
	// customer about to start service. Always >= the configured floor.
	NextServiceTicks() int64
}

// GaussianTicks samples integer tick durations from a normal distribution
// floored at Min. The floor guarantees no zero or negative durations
// despite the normal distribution's tails.
type GaussianTicks struct {
	Mean   float64
	StdDev float64
	Min    int64
}

// Sample draws one duration from the distribution.
func (g GaussianTicks) Sample(rng *rand.Rand) int64 {
	val := int64(rng.NormFloat64()*g.StdDev + g.Mean)
	if val < g.Min {
		return g.Min
	}
	return val
}

// RandomVariates is the production VariateSource, backed by a PartitionedRNG
// so that arrival and service draws come from isolated streams.
type RandomVariates struct {
	rng     *PartitionedRNG
	service GaussianTicks
}

// NewRandomVariates creates a RandomVariates seeded by key, sampling service
// durations from the given distribution.
func NewRandomVariates(key SimulationKey, service GaussianTicks) *RandomVariates {
	return &RandomVariates{
		rng:     NewPartitionedRNG(key),
		service: service,
	}
}

// NextArrival implements VariateSource.
func (v *RandomVariates) NextArrival(p float64) bool {
	return v.rng.ForSubsystem(SubsystemArrival).Float64() < p
}

// NextServiceTicks implements VariateSource.
func (v *RandomVariates) NextServiceTicks() int64 {
	return v.service.Sample(v.rng.ForSubsystem(SubsystemService))
}
