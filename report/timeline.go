package report

import (
	"fmt"
	"strings"

	"github.com/boxsim/boxsim/sim"
)

const (
	timelineWidth  = 80
	timelineHeight = 20
)

// Timeline renders an ASCII chart of queue length over time from a series
// of snapshots polled during the run. This is the passive replacement for
// the original animated view: the engine knows nothing about it.
func Timeline(points []sim.Snapshot) string {
	if len(points) == 0 {
		return "No data to display"
	}

	var sb strings.Builder
	sb.WriteString("\nQueue Length Over Time\n")
	sb.WriteString(strings.Repeat("=", timelineWidth))
	sb.WriteString("\n\n")

	// Resample to the chart width, taking the max queue length per column
	// so short spikes stay visible.
	cols := timelineWidth - 6 // leave room for the y-axis labels
	columns := make([]int, cols)
	maxQueue := 0
	for i := range columns {
		lo := i * len(points) / cols
		hi := (i + 1) * len(points) / cols
		if hi <= lo {
			hi = lo + 1
		}
		for _, p := range points[lo:min(hi, len(points))] {
			if p.QueueLength > columns[i] {
				columns[i] = p.QueueLength
			}
		}
		if columns[i] > maxQueue {
			maxQueue = columns[i]
		}
	}
	if maxQueue == 0 {
		maxQueue = 1
	}

	for row := timelineHeight; row > 0; row-- {
		threshold := float64(row) / float64(timelineHeight) * float64(maxQueue)
		sb.WriteString(fmt.Sprintf("%4d |", int(threshold)))
		for _, v := range columns {
			if float64(v) >= threshold {
				sb.WriteString("#")
			} else {
				sb.WriteString(" ")
			}
		}
		sb.WriteString("\n")
	}
	sb.WriteString("     +")
	sb.WriteString(strings.Repeat("-", cols))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("      tick 0%stick %d\n",
		strings.Repeat(" ", max(1, cols-12)), points[len(points)-1].Clock))

	return sb.String()
}
