package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/layout-sim/layout-sim/sim"
	"github.com/layout-sim/layout-sim/sim/anneal"
	"github.com/layout-sim/layout-sim/sim/trace"
)

// DefaultStations is the layout optimized when none is configured.
var DefaultStations = []string{"A", "B", "C"}

// Config is the full description of one optimization run. It is loaded from
// YAML files by the CLI and from JSON request bodies by the server.
type Config struct {
	Stations    []string             `yaml:"stations" json:"stations"`
	NumJobs     int                  `yaml:"num_jobs" json:"num_jobs"`
	Iterations  int                  `yaml:"iterations" json:"iterations"`
	InitialTemp float64              `yaml:"initial_temp" json:"initial_temp"`
	CoolingRate float64              `yaml:"cooling_rate" json:"cooling_rate"`
	Duration    sim.UniformDurations `yaml:"duration" json:"duration"`
	Seed        *int64               `yaml:"seed,omitempty" json:"seed,omitempty"` // nil = fresh randomness
	TraceLevel  string               `yaml:"trace_level,omitempty" json:"trace_level,omitempty"`
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	ac := anneal.DefaultConfig()
	return Config{
		Stations:    append([]string(nil), DefaultStations...),
		NumJobs:     sim.DefaultNumJobs,
		Iterations:  ac.Iterations,
		InitialTemp: ac.InitialTemp,
		CoolingRate: ac.CoolingRate,
		Duration:    sim.DefaultDurations(),
	}
}

// LoadConfig reads a YAML run file. Fields absent from the file keep their
// defaults. Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading run config: %w", err)
	}
	return ParseYAML(data)
}

// ParseYAML decodes a YAML run description over the defaults.
func ParseYAML(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// ParseJSON decodes a JSON run description over the defaults, rejecting
// unknown fields.
func ParseJSON(data []byte) (Config, error) {
	cfg := DefaultConfig()
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing run config: %w", err)
	}
	return cfg, nil
}

// Layout returns the configured stations as a validated layout.
func (c Config) Layout() (sim.Layout, error) {
	return sim.NewLayout(c.Stations...)
}

// Anneal returns the annealing schedule part of the config.
func (c Config) Anneal() anneal.Config {
	return anneal.Config{
		Iterations:  c.Iterations,
		InitialTemp: c.InitialTemp,
		CoolingRate: c.CoolingRate,
	}
}

// Validate checks every field. All failures wrap sim.ErrInvalidArgument.
func (c Config) Validate() error {
	if _, err := c.Layout(); err != nil {
		return fmt.Errorf("stations: %w", err)
	}
	if c.NumJobs < 1 {
		return fmt.Errorf("num_jobs must be >= 1 (got %d): %w", c.NumJobs, sim.ErrInvalidArgument)
	}
	if err := c.Duration.Validate(); err != nil {
		return fmt.Errorf("duration: %w", err)
	}
	if err := c.Anneal().Validate(); err != nil {
		return err
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("unknown trace_level %q; valid: none, iterations: %w", c.TraceLevel, sim.ErrInvalidArgument)
	}
	return nil
}

// ValidateForOptimize additionally requires enough stations to swap.
func (c Config) ValidateForOptimize() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if len(c.Stations) < 2 {
		return fmt.Errorf("at least 2 stations are required to optimize (got %d): %w", len(c.Stations), sim.ErrInvalidArgument)
	}
	return nil
}
