package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/layout-sim/layout-sim/internal/session"
	"github.com/layout-sim/layout-sim/sim/trace"
)

var (
	optimizeFlags runFlags
	historyOut    string // JSON file receiving the best-score history
	showChart     bool   // print a text chart of the history
)

// optimizeCmd searches for the layout with the lowest mean completion time
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Search for the station order that minimizes mean job completion time",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()
		flush := setupTracing()
		defer flush()

		cfg, err := resolveConfig(cmd, &optimizeFlags)
		if err != nil {
			logrus.Fatalf("Unable to read run config: %v", err)
		}
		if err := cfg.ValidateForOptimize(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		logrus.Infof("Starting optimization of %v: num_jobs=%d iterations=%d initial_temp=%g cooling_rate=%g durations=[%d,%d]",
			cfg.Stations, cfg.NumJobs, cfg.Iterations, cfg.InitialTemp, cfg.CoolingRate, cfg.Duration.Min, cfg.Duration.Max)

		out, err := session.Optimize(context.Background(), cfg, nil)
		if err != nil {
			logrus.Fatalf("Optimization failed: %v", err)
		}

		printReport(os.Stdout, out)
		if showChart {
			renderChart(os.Stdout, out.Result.History, chartWidth)
		}
		if out.Trace.Enabled() {
			printTraceSummary(os.Stdout, trace.Summarize(out.Trace))
		}
		if historyOut != "" {
			if err := writeHistory(historyOut, out); err != nil {
				logrus.Fatalf("Writing history: %v", err)
			}
			logrus.Infof("History written to %s", historyOut)
		}
		logrus.Info("Optimization complete.")
	},
}

func init() {
	addRunFlags(optimizeCmd, &optimizeFlags)
	optimizeCmd.Flags().StringVar(&historyOut, "history-out", "", "Write best layout, best score and history as JSON to this file")
	optimizeCmd.Flags().BoolVar(&showChart, "chart", false, "Print a text chart of best score per iteration")
}
