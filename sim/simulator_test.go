package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource forces exact arrival and service sequences. NextArrival
// is drawn once per tick while the facility is open, so arrivals[i] is the
// arrival decision for tick i; missing entries mean no arrival. Service
// durations are consumed in assignment order, repeating the last entry.
type scriptedSource struct {
	arrivals []bool
	aIdx     int
	service  []int64
	sIdx     int
}

func (s *scriptedSource) NextArrival(p float64) bool {
	if s.aIdx >= len(s.arrivals) {
		return false
	}
	v := s.arrivals[s.aIdx]
	s.aIdx++
	return v
}

func (s *scriptedSource) NextServiceTicks() int64 {
	if len(s.service) == 0 {
		panic("scriptedSource: no service durations scripted")
	}
	if s.sIdx >= len(s.service) {
		return s.service[len(s.service)-1]
	}
	v := s.service[s.sIdx]
	s.sIdx++
	return v
}

func arrivalsAt(ticks ...int64) []bool {
	var maxTick int64
	for _, t := range ticks {
		if t > maxTick {
			maxTick = t
		}
	}
	out := make([]bool, maxTick+1)
	for _, t := range ticks {
		out[t] = true
	}
	return out
}

func testConfig(boxes int) Config {
	cfg := DefaultConfig(boxes)
	cfg.HorizonTicks = 200
	return cfg
}

// === Construction ===

func TestNewSimulator_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig(0)
	s, err := NewSimulator(cfg)
	require.Error(t, err)
	assert.Nil(t, s)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestNewSimulatorWithSource_RejectsNilSource(t *testing.T) {
	_, err := NewSimulatorWithSource(testConfig(1), nil)
	require.Error(t, err)
}

func TestNewSimulator_BoxesCreatedOnce(t *testing.T) {
	s, err := NewSimulator(testConfig(7))
	require.NoError(t, err)
	require.Len(t, s.Boxes, 7)
	for i, b := range s.Boxes {
		assert.Equal(t, i, b.ID)
		assert.False(t, b.Occupied)
	}
}

// === Scenario A: single customer, single box ===

func TestScenario_SingleCustomerServed(t *testing.T) {
	s, err := NewSimulatorWithSource(testConfig(1), &scriptedSource{
		arrivals: arrivalsAt(0),
		service:  []int64{120},
	})
	require.NoError(t, err)

	s.Run()

	require.Len(t, s.Served(), 1)
	assert.Empty(t, s.Abandoned())
	c := s.Served()[0]
	assert.Equal(t, int64(0), c.ArrivalTick)
	assert.Equal(t, int64(0), c.ServiceStart)
	assert.Equal(t, int64(120), c.ServiceEnd)
	assert.Equal(t, int64(0), c.BoxID)
	assert.Equal(t, StateServed, c.State)
	assert.Equal(t, 1, s.Metrics.Served)
	assert.Equal(t, int64(120), s.Metrics.MinServiceTicks)
	assert.Equal(t, int64(120), s.Metrics.MaxServiceTicks)
	assert.Equal(t, int64(0), s.Metrics.MinWaitTicks)
}

// === Scenario B: second customer abandons while the box is busy ===

func TestScenario_SecondCustomerAbandons(t *testing.T) {
	cfg := testConfig(1)
	cfg.MaxWaitTicks = 10
	s, err := NewSimulatorWithSource(cfg, &scriptedSource{
		arrivals: arrivalsAt(0, 1),
		service:  []int64{3600},
	})
	require.NoError(t, err)

	s.Run()

	require.Len(t, s.Served(), 1)
	require.Len(t, s.Abandoned(), 1)
	gone := s.Abandoned()[0]
	assert.Equal(t, int64(1), gone.ArrivalTick)
	assert.Equal(t, int64(11), gone.AbandonTick)
	assert.Equal(t, int64(10), gone.WaitTicks())
	assert.Equal(t, StateAbandoned, gone.State)
	assert.Equal(t, None, gone.ServiceStart)
}

// === Scenario C: empty facility ===

func TestScenario_NoArrivals(t *testing.T) {
	cfg := testConfig(3)
	cfg.ArrivalProbability = 0
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	s.Run()

	assert.Equal(t, 0, s.Metrics.Arrived)
	assert.Equal(t, 0, s.Metrics.Abandoned)
	assert.Equal(t, cfg.HorizonTicks, s.Clock)
	assert.Equal(t, int64(3)*cfg.BoxCost, s.Metrics.TotalCost)
	assert.Equal(t, None, s.Metrics.MinServiceTicks)
}

// === Scenario D: mass abandonment with a full facility ===

func TestScenario_MassAbandonmentCost(t *testing.T) {
	cfg := testConfig(10)
	cfg.MaxWaitTicks = 10
	arrivals := make([]bool, 60) // one arrival per tick for a minute
	for i := range arrivals {
		arrivals[i] = true
	}
	s, err := NewSimulatorWithSource(cfg, &scriptedSource{
		arrivals: arrivals,
		service:  []int64{5000}, // longer than anyone is willing to wait
	})
	require.NoError(t, err)

	s.Run()

	// The first ten customers occupy the boxes; everyone else gives up.
	assert.Equal(t, 60, s.Metrics.Arrived)
	assert.Equal(t, 10, s.Metrics.Served)
	assert.Equal(t, 50, s.Metrics.Abandoned)
	assert.Equal(t, int64(10*1000+50*10000), s.Metrics.TotalCost)
}

// === Horizon policy: hard arrival cutoff, soft drain ===

func TestHorizon_NoArrivalsAtOrPastHorizon(t *testing.T) {
	cfg := testConfig(1)
	cfg.HorizonTicks = 5
	src := &scriptedSource{
		// Scripted to arrive every tick; only the first five draws may happen.
		arrivals: []bool{true, true, true, true, true, true, true, true},
		service:  []int64{60},
	}
	s, err := NewSimulatorWithSource(cfg, src)
	require.NoError(t, err)

	s.Run()

	assert.Equal(t, 5, s.Metrics.Arrived, "one arrival per open tick, none after")
	assert.Equal(t, 5, src.aIdx, "arrival draw happens only while open")
}

func TestHorizon_DrainsPastClosing(t *testing.T) {
	cfg := testConfig(1)
	cfg.HorizonTicks = 10
	s, err := NewSimulatorWithSource(cfg, &scriptedSource{
		arrivals: arrivalsAt(9),
		service:  []int64{100},
	})
	require.NoError(t, err)

	s.Run()

	// Customer arrives at tick 9, served 9..109, well past the horizon.
	require.Len(t, s.Served(), 1)
	assert.Equal(t, int64(109), s.Served()[0].ServiceEnd)
	assert.Greater(t, s.Clock, cfg.HorizonTicks)
	assert.Equal(t, 0, s.Metrics.Abandoned)
}

// === Conservation of customers ===

func occupiedBoxes(s *Simulator) int {
	n := 0
	for _, b := range s.Boxes {
		if b.Occupied {
			n++
		}
	}
	return n
}

func TestConservation_EveryTick(t *testing.T) {
	cfg := DefaultConfig(2)
	cfg.HorizonTicks = 2000
	cfg.ArrivalProbability = 1.0 / 20.0 // busy enough to exercise abandonment
	cfg.MaxWaitTicks = 300
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	for !s.Finished() {
		s.Step()
		total := s.Line.Len() + occupiedBoxes(s) + s.Metrics.Served + s.Metrics.Abandoned
		require.Equal(t, s.Metrics.Arrived, total, "conservation violated at tick %d", s.Clock)
	}
}

// === Terminal disposition exclusivity and thresholds ===

func TestDispositions_ExclusiveAndThresholded(t *testing.T) {
	cfg := DefaultConfig(1)
	cfg.HorizonTicks = 3000
	cfg.ArrivalProbability = 1.0 / 15.0
	cfg.MaxWaitTicks = 200
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	s.Run()

	require.NotEmpty(t, s.Arrived())
	for _, c := range s.Served() {
		assert.False(t, c.Abandoned(), "served customer %d marked abandoned", c.ID)
		assert.LessOrEqual(t, c.ServiceStart, c.ServiceEnd)
		assert.GreaterOrEqual(t, c.ServiceTicks(), cfg.MinServiceTicks)
	}
	for _, c := range s.Abandoned() {
		assert.Equal(t, None, c.ServiceStart, "abandoned customer %d has service start", c.ID)
		assert.GreaterOrEqual(t, c.WaitTicks(), cfg.MaxWaitTicks)
	}
	assert.Equal(t, len(s.Arrived()), len(s.Served())+len(s.Abandoned()))
}

// === Snapshot ===

func TestSnapshot_IdempotentBetweenSteps(t *testing.T) {
	cfg := testConfig(2)
	cfg.ArrivalProbability = 0.5
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	for i := 0; i < 50; i++ {
		s.Step()
		assert.Equal(t, s.Snapshot(), s.Snapshot())
	}
}

func TestSnapshot_CallerMutationIsIsolated(t *testing.T) {
	s, err := NewSimulatorWithSource(testConfig(2), &scriptedSource{
		arrivals: arrivalsAt(0),
		service:  []int64{120},
	})
	require.NoError(t, err)
	s.Step()

	snap := s.Snapshot()
	require.True(t, snap.Boxes[0].Occupied)
	snap.Boxes[0].Occupied = false
	snap.Stats.Arrived = 99

	again := s.Snapshot()
	assert.True(t, again.Boxes[0].Occupied)
	assert.Equal(t, 1, again.Stats.Arrived)
}

// === Determinism ===

func TestDeterminism_SameSeedSameOutcome(t *testing.T) {
	cfg := DefaultConfig(3)
	cfg.HorizonTicks = 5000
	cfg.ArrivalProbability = 1.0 / 30.0
	cfg.Seed = 1234

	run := func() *Simulator {
		s, err := NewSimulator(cfg)
		require.NoError(t, err)
		s.Run()
		return s
	}

	s1, s2 := run(), run()
	assert.Equal(t, s1.Clock, s2.Clock)
	assert.Equal(t, s1.Metrics, s2.Metrics)
	require.Equal(t, len(s1.Served()), len(s2.Served()))
	for i := range s1.Served() {
		assert.Equal(t, *s1.Served()[i], *s2.Served()[i])
	}
}

// === Finalize ===

func TestFinalize_BeforeFinishedFails(t *testing.T) {
	cfg := testConfig(1)
	s, err := NewSimulator(cfg)
	require.NoError(t, err)

	_, err = s.Finalize()
	require.Error(t, err)
	assert.False(t, s.Metrics.Finalized())
}

func TestFinalize_Idempotent(t *testing.T) {
	cfg := testConfig(1)
	cfg.ArrivalProbability = 0
	s, err := NewSimulator(cfg)
	require.NoError(t, err)
	s.Run()

	m1, err := s.Finalize()
	require.NoError(t, err)
	m2, err := s.Finalize()
	require.NoError(t, err)
	assert.Equal(t, m1.TotalCost, m2.TotalCost)
}
