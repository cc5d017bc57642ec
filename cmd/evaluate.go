package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/layout-sim/layout-sim/internal/session"
)

var (
	evaluateFlags runFlags
	repeats       int // independent evaluations of the layout
	showJobs      bool
)

// evaluateCmd scores a layout without optimizing it
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Simulate a station layout and report its mean job completion time",
	Run: func(cmd *cobra.Command, args []string) {
		setupLogging()

		cfg, err := resolveConfig(cmd, &evaluateFlags)
		if err != nil {
			logrus.Fatalf("Unable to read run config: %v", err)
		}
		if err := cfg.Validate(); err != nil {
			logrus.Fatalf("Invalid configuration: %v", err)
		}

		ev, err := session.Evaluate(cfg, repeats)
		if err != nil {
			logrus.Fatalf("Evaluation failed: %v", err)
		}
		printEvaluation(os.Stdout, ev, showJobs)
	},
}

func init() {
	addRunFlags(evaluateCmd, &evaluateFlags)
	evaluateCmd.Flags().IntVar(&repeats, "repeat", 1, "Number of independent simulation runs")
	evaluateCmd.Flags().BoolVar(&showJobs, "jobs", false, "Print per-job and per-station detail for each run")
}
