package anneal

import (
	"fmt"
	"math"

	"github.com/layout-sim/layout-sim/sim"
)

// Defaults for an optimization run.
const (
	DefaultIterations  = 50
	DefaultInitialTemp = 10.0
	DefaultCoolingRate = 0.95
)

// Config groups the annealing schedule parameters.
type Config struct {
	Iterations  int     // number of swap proposals; 0 returns the initial evaluation only
	InitialTemp float64 // starting temperature (must be > 0)
	CoolingRate float64 // geometric decay factor applied after every iteration, in (0, 1]
}

// DefaultConfig returns 50 iterations starting at temperature 10 with a 0.95 cooling rate.
func DefaultConfig() Config {
	return Config{
		Iterations:  DefaultIterations,
		InitialTemp: DefaultInitialTemp,
		CoolingRate: DefaultCoolingRate,
	}
}

// Validate rejects schedules that cannot run.
func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("iterations must be >= 0 (got %d): %w", c.Iterations, sim.ErrInvalidArgument)
	}
	if math.IsNaN(c.InitialTemp) || math.IsInf(c.InitialTemp, 0) || c.InitialTemp <= 0 {
		return fmt.Errorf("initial_temp must be a finite number > 0 (got %f): %w", c.InitialTemp, sim.ErrInvalidArgument)
	}
	if math.IsNaN(c.CoolingRate) || c.CoolingRate <= 0 || c.CoolingRate > 1 {
		return fmt.Errorf("cooling_rate must lie in (0, 1] (got %f): %w", c.CoolingRate, sim.ErrInvalidArgument)
	}
	return nil
}
