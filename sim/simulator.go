// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Simulator is the core object that holds simulation time, facility state,
// and the tick loop. Time advances in fixed one-tick (one simulated second)
// steps rather than next-event jumps.
//
// Thread-safety: NOT thread-safe. The line and box array are owned by the
// simulator and mutated only inside Step. Independent Simulator instances
// share no state and may run concurrently with each other.
type Simulator struct {
	Clock   int64
	Config  Config
	Boxes   []*Box
	Line    *WaitLine
	Metrics *Metrics

	// Terminal and ingest records, in event order.
	arrived   []*Customer
	served    []*Customer
	abandoned []*Customer

	source VariateSource
	nextID int
}

// NewSimulator validates cfg and builds a simulator drawing randomness from
// the config seed. Returns an error, and no partial simulator, for invalid
// configuration.
func NewSimulator(cfg Config) (*Simulator, error) {
	source := NewRandomVariates(NewSimulationKey(cfg.Seed), GaussianTicks{
		Mean:   cfg.ServiceMeanTicks,
		StdDev: cfg.ServiceStdDevTicks,
		Min:    cfg.MinServiceTicks,
	})
	return NewSimulatorWithSource(cfg, source)
}

// NewSimulatorWithSource is NewSimulator with an injected VariateSource.
// Tests use scripted sources to force exact arrival and service sequences.
func NewSimulatorWithSource(cfg Config, source VariateSource) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if source == nil {
		return nil, fmt.Errorf("invalid configuration: nil variate source")
	}

	boxes := make([]*Box, cfg.Boxes)
	for i := range boxes {
		boxes[i] = NewBox(i)
	}
	return &Simulator{
		Config:  cfg,
		Boxes:   boxes,
		Line:    &WaitLine{},
		Metrics: NewMetrics(),
		source:  source,
	}, nil
}

// Step performs exactly one tick transition. The phase order is fixed and
// load-bearing: arrivals, then box assignment, then service completion,
// then abandonment, then the clock advance. Reordering the phases changes
// outcomes even under an identical draw sequence.
func (s *Simulator) Step() {
	s.admitArrival()
	s.assignBoxes()
	s.completeService()
	s.sweepAbandonments()
	s.Clock++
}

// Finished reports whether the run is complete: the opening window has
// closed, the line is empty, and every box is free. The facility drains
// past the horizon but admits no one new after it.
func (s *Simulator) Finished() bool {
	if s.Clock < s.Config.HorizonTicks || s.Line.Len() > 0 {
		return false
	}
	for _, b := range s.Boxes {
		if b.Occupied {
			return false
		}
	}
	return true
}

// Run steps the simulation to completion and finalizes the cost figures.
func (s *Simulator) Run() {
	for !s.Finished() {
		s.Step()
	}
	logrus.Infof("[tick %07d] Simulation ended", s.Clock)
	if _, err := s.Finalize(); err != nil {
		// Finished() held in the loop condition, so Finalize cannot fail here.
		panic(err)
	}
}

// Finalize computes and freezes the total operating cost. It must be called
// after the run has drained; calling it mid-run is an error. Idempotent.
func (s *Simulator) Finalize() (*Metrics, error) {
	if !s.Finished() {
		return nil, fmt.Errorf("finalize before simulation finished (tick %d)", s.Clock)
	}
	s.Metrics.FinalizeCost(s.Config.Boxes, s.Config.BoxCost, s.Config.AbandonPenalty)
	return s.Metrics, nil
}

// Arrived returns the ingest record: every customer that entered, in
// arrival order. Callers must not mutate the returned slice.
func (s *Simulator) Arrived() []*Customer { return s.arrived }

// Served returns the customers whose service completed, in completion order.
func (s *Simulator) Served() []*Customer { return s.served }

// Abandoned returns the customers that left unserved, in abandonment order.
func (s *Simulator) Abandoned() []*Customer { return s.abandoned }

// admitArrival draws the per-tick Bernoulli arrival while the facility is
// open. Arrivals at or past the horizon are rejected outright, not queued.
func (s *Simulator) admitArrival() {
	if s.Clock >= s.Config.HorizonTicks {
		return
	}
	if !s.source.NextArrival(s.Config.ArrivalProbability) {
		return
	}
	c := NewCustomer(s.nextID, s.Clock)
	s.nextID++
	s.arrived = append(s.arrived, c)
	s.Line.Enqueue(c)
	s.Metrics.ObserveArrival()
	logrus.Debugf("[tick %07d] << Arrival: customer %d", s.Clock, c.ID)
}

// assignBoxes moves customers from the head of the line into free boxes,
// walking boxes in ascending id so assignment is deterministic.
func (s *Simulator) assignBoxes() {
	for _, b := range s.Boxes {
		if b.Occupied || s.Line.Len() == 0 {
			continue
		}
		c := s.Line.PopFront()
		duration := s.source.NextServiceTicks()
		b.Assign(c, s.Clock, duration)
		logrus.Debugf("[tick %07d] Box %d takes customer %d for %d ticks", s.Clock, b.ID, c.ID, duration)
	}
}

// completeService releases every box whose scheduled completion has been
// reached and records the served customer's statistics.
func (s *Simulator) completeService() {
	for _, b := range s.Boxes {
		if !b.Occupied || s.Clock < b.DoneTick {
			continue
		}
		c := b.Release()
		c.State = StateServed
		c.ServiceEnd = s.Clock
		s.served = append(s.served, c)
		s.Metrics.ObserveServed(c.ServiceTicks(), c.WaitTicks())
		logrus.Debugf("[tick %07d] Box %d finished customer %d", s.Clock, b.ID, c.ID)
	}
}

// sweepAbandonments removes every customer who has waited at least the
// abandonment threshold, preserving the order of those who stay.
func (s *Simulator) sweepAbandonments() {
	gone := s.Line.RemoveWhere(func(c *Customer) bool {
		return s.Clock-c.ArrivalTick >= s.Config.MaxWaitTicks
	})
	for _, c := range gone {
		if c.ServiceStart != None {
			panic(fmt.Sprintf("customer %d abandoning after service started", c.ID))
		}
		c.State = StateAbandoned
		c.AbandonTick = s.Clock
		s.abandoned = append(s.abandoned, c)
		s.Metrics.ObserveAbandoned()
		logrus.Debugf("[tick %07d] Customer %d abandoned after %d ticks", s.Clock, c.ID, c.WaitTicks())
	}
}
