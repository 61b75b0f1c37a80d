// Package report renders simulation results for humans: the final results
// block, a detailed text report, and an ASCII queue-length timeline. It is
// a passive consumer of the engine's read-only surface (snapshots, metrics,
// terminal records) and never mutates simulator state.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/boxsim/boxsim/sim"
)

// FormatTicks renders a tick count as "M min S s". Returns "N/A" for the
// unset sentinel, so empty runs print cleanly.
func FormatTicks(t int64) string {
	if t == sim.None {
		return "N/A"
	}
	return fmt.Sprintf("%d min %d s", t/60, t%60)
}

// PrintResults writes the final results block, mirroring the numbered
// summary the simulator has always reported.
func PrintResults(w io.Writer, s *sim.Simulator) {
	cfg := s.Config
	m := s.Metrics

	fmt.Fprintln(w, "============================================================")
	fmt.Fprintln(w, "SIMULATION RESULTS")
	fmt.Fprintln(w, "============================================================")
	fmt.Fprintf(w, "Boxes in operation: %d\n", cfg.Boxes)
	fmt.Fprintf(w, "Opening window: %s\n", FormatTicks(cfg.HorizonTicks))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "CUSTOMERS:")
	fmt.Fprintf(w, "1) Customers arrived: %d\n", m.Arrived)
	fmt.Fprintf(w, "2) Customers served: %d\n", m.Served)
	fmt.Fprintf(w, "3) Customers abandoned: %d\n", m.Abandoned)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "SERVICE TIMES:")
	fmt.Fprintf(w, "4) Minimum service time: %s\n", FormatTicks(m.MinServiceTicks))
	fmt.Fprintf(w, "5) Maximum service time: %s\n", FormatTicks(m.MaxServiceTicks))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "WAIT TIMES:")
	fmt.Fprintf(w, "6) Minimum wait time: %s\n", FormatTicks(m.MinWaitTicks))
	fmt.Fprintf(w, "7) Maximum wait time: %s\n", FormatTicks(m.MaxWaitTicks))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "OPERATING COST:")
	fmt.Fprintf(w, "Box cost: $%d\n", int64(cfg.Boxes)*cfg.BoxCost)
	fmt.Fprintf(w, "Lost-customer cost: $%d\n", int64(m.Abandoned)*cfg.AbandonPenalty)
	fmt.Fprintf(w, "8) Total operating cost: $%d\n", m.TotalCost)
	fmt.Fprintln(w, "============================================================")
}

// Summary holds distribution statistics over a set of durations, in ticks.
type Summary struct {
	Mean float64
	P50  float64
	P90  float64
}

// summarize computes mean and quantiles of the given durations.
// Returns ok=false for an empty sample.
func summarize(ticks []int64) (Summary, bool) {
	if len(ticks) == 0 {
		return Summary{}, false
	}
	data := make([]float64, len(ticks))
	for i, t := range ticks {
		data[i] = float64(t)
	}
	sort.Float64s(data)
	return Summary{
		Mean: stat.Mean(data, nil),
		P50:  stat.Quantile(0.5, stat.Empirical, data, nil),
		P90:  stat.Quantile(0.9, stat.Empirical, data, nil),
	}, true
}

func writeSummaryLines(w io.Writer, label string, ticks []int64) {
	sum, ok := summarize(ticks)
	if !ok {
		fmt.Fprintf(w, "Mean %s: N/A\n", label)
		return
	}
	fmt.Fprintf(w, "Mean %s: %s\n", label, FormatTicks(int64(sum.Mean)))
	fmt.Fprintf(w, "Median %s: %s\n", label, FormatTicks(int64(sum.P50)))
	fmt.Fprintf(w, "p90 %s: %s\n", label, FormatTicks(int64(sum.P90)))
}

// Write produces the detailed report: configuration echo, results,
// distribution summaries, and system efficiency rates.
func Write(w io.Writer, s *sim.Simulator) {
	cfg := s.Config
	m := s.Metrics

	fmt.Fprintln(w, "DETAILED SIMULATION REPORT")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintf(w, "- Boxes: %d\n", cfg.Boxes)
	fmt.Fprintf(w, "- Opening window: %s\n", FormatTicks(cfg.HorizonTicks))
	fmt.Fprintf(w, "- Arrival probability: %g per tick\n", cfg.ArrivalProbability)
	fmt.Fprintf(w, "- Maximum wait: %s\n", FormatTicks(cfg.MaxWaitTicks))
	fmt.Fprintf(w, "- Seed: %d\n", cfg.Seed)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Results:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintf(w, "Customers arrived: %d\n", m.Arrived)
	fmt.Fprintf(w, "Customers served: %d\n", m.Served)
	fmt.Fprintf(w, "Customers abandoned: %d\n", m.Abandoned)
	fmt.Fprintf(w, "Total cost: $%d\n", m.TotalCost)
	fmt.Fprintln(w)

	var serviceTicks, waitTicks []int64
	for _, c := range s.Served() {
		serviceTicks = append(serviceTicks, c.ServiceTicks())
		waitTicks = append(waitTicks, c.WaitTicks())
	}

	fmt.Fprintln(w, "Service times:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintf(w, "Minimum service time: %s\n", FormatTicks(m.MinServiceTicks))
	fmt.Fprintf(w, "Maximum service time: %s\n", FormatTicks(m.MaxServiceTicks))
	writeSummaryLines(w, "service time", serviceTicks)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Wait times:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	fmt.Fprintf(w, "Minimum wait time: %s\n", FormatTicks(m.MinWaitTicks))
	fmt.Fprintf(w, "Maximum wait time: %s\n", FormatTicks(m.MaxWaitTicks))
	writeSummaryLines(w, "wait time", waitTicks)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System efficiency:")
	fmt.Fprintln(w, strings.Repeat("-", 20))
	if m.Arrived > 0 {
		fmt.Fprintf(w, "Service rate: %.1f%%\n", float64(m.Served)/float64(m.Arrived)*100)
		fmt.Fprintf(w, "Abandonment rate: %.1f%%\n", float64(m.Abandoned)/float64(m.Arrived)*100)
	} else {
		fmt.Fprintln(w, "Service rate: N/A")
		fmt.Fprintln(w, "Abandonment rate: N/A")
	}
}

// WriteFile writes the detailed report to path.
func WriteFile(path string, s *sim.Simulator) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()
	Write(f, s)
	return nil
}

// DefaultReportFile returns the conventional report filename for a run.
func DefaultReportFile(boxes int) string {
	return fmt.Sprintf("report_%d_boxes.txt", boxes)
}
