package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/portsim/portsim/sim"
	"github.com/portsim/portsim/sim/trace"
)

var (
	logLevel    string // Log verbosity level
	logFormat   string // Log output format (text or json)
	resultsPath string // Where to write metrics JSON ("" = don't write)
	traceLevel  string // Decision trace level
	runFlags    simFlags
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "portsim",
	Short: "Discrete-event simulator for a single-entrance port",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
}

// setupLogging configures the standard logrus logger.
func setupLogging(level, format string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logrus.SetLevel(lvl)
	switch format {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("invalid log format %q (want text or json)", format)
	}
	return nil
}

// runCmd executes the simulation to the horizon as fast as possible
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the port simulation to its horizon and print metrics",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := runFlags.buildConfig(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}
		if !trace.IsValidTraceLevel(traceLevel) {
			logrus.Fatalf("Invalid trace level: %s", traceLevel)
		}

		logrus.Infof("Starting simulation with %d piers, horizon=%dticks, seed=%d, max ships=%d",
			cfg.Port.Piers, cfg.Horizon, cfg.Seed, cfg.Spawn.MaxShips)
		startTime := time.Now()

		s, err := runSimulation(cfg, trace.TraceLevel(traceLevel))
		if err != nil {
			logrus.Fatalf("Simulation failed: %v", err)
		}
		s.Metrics.Print()
		if s.Trace.Enabled() {
			printTraceSummary(trace.Summarize(s.Trace))
		}
		if resultsPath != "" {
			if err := s.Metrics.SaveResults(resultsPath); err != nil {
				logrus.Fatalf("Saving results: %v", err)
			}
			logrus.Infof("Metrics written to %s", resultsPath)
		}

		logrus.Infof("Simulation complete in %s (run %s).", time.Since(startTime).Round(time.Millisecond), s.RunID)
	},
}

// runSimulation builds and runs a simulator to completion.
func runSimulation(cfg sim.SimConfig, level trace.TraceLevel) (*sim.Simulator, error) {
	opts := []sim.Option{}
	if level != "" && level != trace.TraceLevelNone {
		opts = append(opts, sim.WithTrace(trace.NewSimulationTrace(trace.TraceConfig{Level: level})))
	}
	s, err := sim.NewSimulator(cfg, opts...)
	if err != nil {
		return nil, err
	}
	s.Run()
	return s, nil
}

func printTraceSummary(ts *trace.TraceSummary) {
	fmt.Println("=== Decision Trace ===")
	fmt.Printf("Decisions            : %d\n", ts.TotalDecisions)
	fmt.Printf("Admitted             : %d (%d from queue)\n", ts.AdmittedCount, ts.QueueAdmissions)
	fmt.Printf("Deferred             : %d\n", ts.DeferredCount)
	for _, reason := range trace.DeferReasons {
		if n := ts.DeferReasons[reason]; n > 0 {
			fmt.Printf("  %-19s: %d\n", reason, n)
		}
	}
	fmt.Printf("Entrance Grants      : %d (mean wait %.2f, max %d ticks)\n", ts.EntranceGrants, ts.MeanEntranceWait, ts.MaxEntranceWait)
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")

	runFlags.register(runCmd.Flags())
	runCmd.Flags().StringVar(&resultsPath, "results-path", "", "Write metrics as JSON to this file")
	runCmd.Flags().StringVar(&traceLevel, "trace-level", "none", "Decision trace level (none, decisions)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
