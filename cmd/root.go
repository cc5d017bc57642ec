package cmd

import (
	"context"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/layout-sim/layout-sim/internal/tracing"
)

// Version is reported by --version and attached to exported spans.
const Version = "0.1.0"

var (
	logLevel      string // Log verbosity level
	otelTraceFile string // Destination of OpenTelemetry spans ("" = disabled, "-" = stdout)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:     "layout-sim",
	Short:   "Discrete-event simulator and annealing optimizer for station layouts",
	Version: Version,
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging applies the --log flag.
func setupLogging() {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level: %s", logLevel)
	}
	logrus.SetLevel(level)
}

// setupTracing installs the span exporter requested by --otel-trace-out and
// returns a function that flushes it.
func setupTracing() func() {
	if otelTraceFile == "" {
		return func() {}
	}
	path := otelTraceFile
	if path == "-" {
		path = ""
	}
	shutdown, err := tracing.Init("layout-sim", Version, path)
	if err != nil {
		logrus.Fatalf("Failed to initialise tracing: %v", err)
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(ctx); err != nil {
			logrus.Warnf("Flushing spans: %v", err)
		}
	}
}

// init sets up persistent flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVar(&otelTraceFile, "otel-trace-out", "", "Write OpenTelemetry spans to this file (\"-\" for stdout)")

	rootCmd.AddCommand(optimizeCmd)
	rootCmd.AddCommand(evaluateCmd)
	rootCmd.AddCommand(serveCmd)
}
