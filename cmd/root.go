package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/boxsim/boxsim/report"
	"github.com/boxsim/boxsim/sim"
)

var (
	// CLI flags for simulation configuration
	boxes              int     // Number of service boxes (1-10)
	seed               int64   // Seed for random variate generation
	horizon            int64   // Opening window (in ticks)
	arrivalProbability float64 // Per-tick arrival probability
	maxWait            int64   // Ticks in line before a customer abandons
	serviceMean        float64 // Mean service time (in ticks)
	serviceStdDev      float64 // Stddev of service time (in ticks)
	serviceMin         int64   // Floor for sampled service times (in ticks)
	boxCost            int64   // Operating cost per box
	abandonPenalty     int64   // Cost per abandoned customer
	logLevel           string  // Log verbosity level
	scenarioFile       string  // Optional YAML scenario file

	// CLI flags for output
	writeReport   bool   // Write the detailed text report
	reportFile    string // Report path; empty = report_<boxes>_boxes.txt
	showTimeline  bool   // Render the ASCII queue timeline
	timelineEvery int64  // Snapshot sampling period for the timeline (in ticks)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "boxsim",
	Short: "Discrete-time simulator for a public-service facility with parallel boxes",
}

// runCmd executes one simulation using parameters from CLI flags and the
// optional scenario file. Flags set explicitly on the command line win over
// scenario-file values.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the facility simulation",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg, err := buildConfig(cmd)
		if err != nil {
			return err
		}

		logrus.Infof("Starting simulation with %d boxes, horizon=%d ticks, arrival p=%g",
			cfg.Boxes, cfg.HorizonTicks, cfg.ArrivalProbability)

		s, err := sim.NewSimulator(cfg)
		if err != nil {
			return err
		}

		var timeline []sim.Snapshot
		if showTimeline {
			if timelineEvery < 1 {
				timelineEvery = 1
			}
			// Drive the loop by hand so the timeline can poll snapshots.
			for !s.Finished() {
				if s.Clock%timelineEvery == 0 {
					timeline = append(timeline, s.Snapshot())
				}
				s.Step()
			}
			if _, err := s.Finalize(); err != nil {
				return err
			}
		} else {
			s.Run()
		}

		report.PrintResults(os.Stdout, s)
		if showTimeline {
			cmd.Println(report.Timeline(timeline))
		}
		if writeReport {
			path := reportFile
			if path == "" {
				path = report.DefaultReportFile(cfg.Boxes)
			}
			if err := report.WriteFile(path, s); err != nil {
				return err
			}
			logrus.Infof("Report written to %s", path)
		}

		logrus.Info("Simulation complete.")
		return nil
	},
}

// buildConfig merges defaults, the optional scenario file, and explicitly
// set flags, in that precedence order.
func buildConfig(cmd *cobra.Command) (sim.Config, error) {
	cfg := sim.DefaultConfig(boxes)
	cfg.Seed = seed

	if scenarioFile != "" {
		loaded, err := sim.LoadConfig(scenarioFile, cfg)
		if err != nil {
			return sim.Config{}, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("boxes") {
		cfg.Boxes = boxes
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("horizon") {
		cfg.HorizonTicks = horizon
	}
	if flags.Changed("arrival-probability") {
		cfg.ArrivalProbability = arrivalProbability
	}
	if flags.Changed("max-wait") {
		cfg.MaxWaitTicks = maxWait
	}
	if flags.Changed("service-mean") {
		cfg.ServiceMeanTicks = serviceMean
	}
	if flags.Changed("service-stddev") {
		cfg.ServiceStdDevTicks = serviceStdDev
	}
	if flags.Changed("service-min") {
		cfg.MinServiceTicks = serviceMin
	}
	if flags.Changed("box-cost") {
		cfg.BoxCost = boxCost
	}
	if flags.Changed("abandon-penalty") {
		cfg.AbandonPenalty = abandonPenalty
	}

	return cfg, cfg.Validate()
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().IntVar(&boxes, "boxes", 1, "Number of service boxes (1-10)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for random variate generation")
	runCmd.Flags().Int64Var(&horizon, "horizon", sim.DefaultHorizonTicks, "Opening window in ticks; no arrivals at or past this")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")
	runCmd.Flags().StringVar(&scenarioFile, "config", "", "YAML scenario file (explicit flags override it)")

	// Facility parameters
	runCmd.Flags().Float64Var(&arrivalProbability, "arrival-probability", sim.DefaultArrivalProbability, "Per-tick customer arrival probability")
	runCmd.Flags().Int64Var(&maxWait, "max-wait", sim.DefaultMaxWaitTicks, "Ticks a customer waits before abandoning")
	runCmd.Flags().Float64Var(&serviceMean, "service-mean", sim.DefaultServiceMeanTicks, "Mean service time in ticks")
	runCmd.Flags().Float64Var(&serviceStdDev, "service-stddev", sim.DefaultServiceStdDevTicks, "Stddev of service time in ticks")
	runCmd.Flags().Int64Var(&serviceMin, "service-min", sim.DefaultMinServiceTicks, "Minimum sampled service time in ticks")
	runCmd.Flags().Int64Var(&boxCost, "box-cost", sim.DefaultBoxCost, "Operating cost per box")
	runCmd.Flags().Int64Var(&abandonPenalty, "abandon-penalty", sim.DefaultAbandonPenalty, "Cost per abandoned customer")

	// Output options
	runCmd.Flags().BoolVar(&writeReport, "report", false, "Write the detailed text report")
	runCmd.Flags().StringVar(&reportFile, "report-file", "", "Report path (default report_<boxes>_boxes.txt)")
	runCmd.Flags().BoolVar(&showTimeline, "timeline", false, "Render an ASCII queue-length timeline")
	runCmd.Flags().Int64Var(&timelineEvery, "timeline-every", 60, "Ticks between timeline snapshots")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
