package cmd

import (
	"github.com/spf13/cobra"

	"github.com/layout-sim/layout-sim/internal/session"
)

// runFlags holds the CLI flags shared by optimize and evaluate.
type runFlags struct {
	configPath  string   // YAML run file
	stations    []string // initial layout
	numJobs     int      // jobs per evaluation
	iterations  int      // annealing iterations
	initialTemp float64  // starting temperature
	coolingRate float64  // temperature decay per iteration
	durationMin int64    // shortest station hold
	durationMax int64    // longest station hold
	seed        int64    // master seed; unset = fresh randomness
	traceLevel  string   // iteration trace level
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	def := session.DefaultConfig()
	cmd.Flags().StringVar(&f.configPath, "config", "", "YAML run file; flags override its values")
	cmd.Flags().StringSliceVar(&f.stations, "stations", def.Stations, "Comma-separated initial station layout")
	cmd.Flags().IntVar(&f.numJobs, "num-jobs", def.NumJobs, "Number of jobs per simulation run")
	cmd.Flags().IntVar(&f.iterations, "iterations", def.Iterations, "Number of annealing iterations")
	cmd.Flags().Float64Var(&f.initialTemp, "initial-temp", def.InitialTemp, "Initial annealing temperature")
	cmd.Flags().Float64Var(&f.coolingRate, "cooling-rate", def.CoolingRate, "Temperature multiplier applied after each iteration")
	cmd.Flags().Int64Var(&f.durationMin, "duration-min", def.Duration.Min, "Minimum station processing time (ticks, inclusive)")
	cmd.Flags().Int64Var(&f.durationMax, "duration-max", def.Duration.Max, "Maximum station processing time (ticks, inclusive)")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "Seed for reproducible runs (default: fresh randomness)")
	cmd.Flags().StringVar(&f.traceLevel, "trace", "", "Iteration trace level (none, iterations)")
}

// resolveConfig builds the run config: defaults, then the YAML file, then
// any flag the user explicitly set. Unchanged flags never overwrite file values.
func resolveConfig(cmd *cobra.Command, f *runFlags) (session.Config, error) {
	cfg := session.DefaultConfig()
	if f.configPath != "" {
		loaded, err := session.LoadConfig(f.configPath)
		if err != nil {
			return session.Config{}, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("stations") {
		cfg.Stations = f.stations
	}
	if changed("num-jobs") {
		cfg.NumJobs = f.numJobs
	}
	if changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if changed("initial-temp") {
		cfg.InitialTemp = f.initialTemp
	}
	if changed("cooling-rate") {
		cfg.CoolingRate = f.coolingRate
	}
	if changed("duration-min") {
		cfg.Duration.Min = f.durationMin
	}
	if changed("duration-max") {
		cfg.Duration.Max = f.durationMax
	}
	if changed("seed") {
		seed := f.seed
		cfg.Seed = &seed
	}
	if changed("trace") {
		cfg.TraceLevel = f.traceLevel
	}
	return cfg, nil
}
