package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boxsim/boxsim/sim"
)

func TestFormatTicks(t *testing.T) {
	tests := []struct {
		ticks int64
		want  string
	}{
		{0, "0 min 0 s"},
		{59, "0 min 59 s"},
		{60, "1 min 0 s"},
		{630, "10 min 30 s"},
		{sim.None, "N/A"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTicks(tt.ticks))
	}
}

// emptyRun returns a finished simulator that never saw a customer.
func emptyRun(t *testing.T, boxes int) *sim.Simulator {
	t.Helper()
	cfg := sim.DefaultConfig(boxes)
	cfg.HorizonTicks = 100
	cfg.ArrivalProbability = 0
	s, err := sim.NewSimulator(cfg)
	require.NoError(t, err)
	s.Run()
	return s
}

// busyRun returns a finished simulator with served and abandoned customers.
func busyRun(t *testing.T) *sim.Simulator {
	t.Helper()
	cfg := sim.DefaultConfig(1)
	cfg.HorizonTicks = 2000
	cfg.ArrivalProbability = 1.0 / 10.0
	cfg.MaxWaitTicks = 120
	s, err := sim.NewSimulator(cfg)
	require.NoError(t, err)
	s.Run()
	return s
}

func TestPrintResults_EmptyRun(t *testing.T) {
	s := emptyRun(t, 3)
	var sb strings.Builder
	PrintResults(&sb, s)
	out := sb.String()

	assert.Contains(t, out, "1) Customers arrived: 0")
	assert.Contains(t, out, "4) Minimum service time: N/A")
	assert.Contains(t, out, "6) Minimum wait time: N/A")
	assert.Contains(t, out, "Box cost: $3000")
	assert.Contains(t, out, "Lost-customer cost: $0")
	assert.Contains(t, out, "8) Total operating cost: $3000")
}

func TestPrintResults_BusyRun(t *testing.T) {
	s := busyRun(t)
	var sb strings.Builder
	PrintResults(&sb, s)
	out := sb.String()

	assert.NotContains(t, out, "N/A")
	assert.Contains(t, out, "8) Total operating cost: $")
}

func TestWrite_Sections(t *testing.T) {
	s := busyRun(t)
	var sb strings.Builder
	Write(&sb, s)
	out := sb.String()

	assert.Contains(t, out, "DETAILED SIMULATION REPORT")
	assert.Contains(t, out, "- Boxes: 1")
	assert.Contains(t, out, "Mean service time:")
	assert.Contains(t, out, "p90 wait time:")
	assert.Contains(t, out, "Service rate:")
	assert.Contains(t, out, "Abandonment rate:")
}

func TestWrite_EmptyRunRates(t *testing.T) {
	s := emptyRun(t, 1)
	var sb strings.Builder
	Write(&sb, s)
	out := sb.String()

	assert.Contains(t, out, "Mean service time: N/A")
	assert.Contains(t, out, "Service rate: N/A")
	assert.Contains(t, out, "Abandonment rate: N/A")
}

func TestWriteFile(t *testing.T) {
	s := emptyRun(t, 2)
	path := filepath.Join(t.TempDir(), DefaultReportFile(2))
	require.NoError(t, WriteFile(path, s))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "DETAILED SIMULATION REPORT")
}

func TestDefaultReportFile(t *testing.T) {
	assert.Equal(t, "report_5_boxes.txt", DefaultReportFile(5))
}

func TestTimeline_Empty(t *testing.T) {
	assert.Equal(t, "No data to display", Timeline(nil))
}

func TestTimeline_Render(t *testing.T) {
	var points []sim.Snapshot
	for i := 0; i < 200; i++ {
		points = append(points, sim.Snapshot{Clock: int64(i * 60), QueueLength: i % 13})
	}
	out := Timeline(points)

	assert.Contains(t, out, "Queue Length Over Time")
	assert.Contains(t, out, "#")
	assert.Contains(t, out, "tick 0")
	assert.Contains(t, out, "tick 11940")
}

func TestTimeline_AllZeroQueue(t *testing.T) {
	points := []sim.Snapshot{{Clock: 0}, {Clock: 60}, {Clock: 120}}
	out := Timeline(points)
	assert.Contains(t, out, "Queue Length Over Time")
	assert.NotContains(t, out, "#")
}
