// Tracks simulation-wide statistics: customer counters, min/max service
// and wait times, and the final operating cost.

package sim

import "fmt"

// Metrics aggregates statistics about the simulation for final reporting.
// Counters and min/max values are updated incrementally as events happen,
// never by rescanning the terminal collections; the per-tick cost stays
// proportional to the number of boxes and queue churn.
type Metrics struct {
	Arrived   int // customers that entered the facility
	Served    int // customers whose service completed
	Abandoned int // customers that left the line unserved

	// Min/max are None until the first customer is served; wait extremes
	// cover served customers only, matching the reference behavior.
	MinServiceTicks int64
	MaxServiceTicks int64
	MinWaitTicks    int64
	MaxWaitTicks    int64

	TotalCost int64 // set once by FinalizeCost
	finalized bool
}

// NewMetrics returns an empty Metrics with the min/max sentinels unset.
func NewMetrics() *Metrics {
	return &Metrics{
		MinServiceTicks: None,
		MaxServiceTicks: None,
		MinWaitTicks:    None,
		MaxWaitTicks:    None,
	}
}

// ObserveArrival records one customer entering the facility.
func (m *Metrics) ObserveArrival() {
	m.Arrived++
}

// ObserveServed records a completed service with its duration and the
// customer's time in line, updating the running extremes.
func (m *Metrics) ObserveServed(serviceTicks, waitTicks int64) {
	m.Served++
	if m.MinServiceTicks == None || serviceTicks < m.MinServiceTicks {
		m.MinServiceTicks = serviceTicks
	}
	if m.MaxServiceTicks == None || serviceTicks > m.MaxServiceTicks {
		m.MaxServiceTicks = serviceTicks
	}
	if m.MinWaitTicks == None || waitTicks < m.MinWaitTicks {
		m.MinWaitTicks = waitTicks
	}
	if m.MaxWaitTicks == None || waitTicks > m.MaxWaitTicks {
		m.MaxWaitTicks = waitTicks
	}
}

// ObserveAbandoned records one customer giving up on the line.
func (m *Metrics) ObserveAbandoned() {
	m.Abandoned++
}

// FinalizeCost computes the total operating cost from the final counts:
// boxes × per-box cost plus abandoned customers × per-abandonment penalty.
// Idempotent; the cost is frozen on the first call.
func (m *Metrics) FinalizeCost(boxes int, boxCost, abandonPenalty int64) int64 {
	if m.finalized {
		return m.TotalCost
	}
	m.TotalCost = int64(boxes)*boxCost + int64(m.Abandoned)*abandonPenalty
	m.finalized = true
	return m.TotalCost
}

// Finalized reports whether FinalizeCost has run.
func (m *Metrics) Finalized() bool {
	return m.finalized
}

func (m *Metrics) String() string {
	return fmt.Sprintf("Metrics: (Arrived: %d, Served: %d, Abandoned: %d)", m.Arrived, m.Served, m.Abandoned)
}
