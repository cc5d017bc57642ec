package sim

import (
	"fmt"
	"math/rand"
)

// Default processing-time bounds, in ticks, inclusive.
const (
	DefaultMinDuration int64 = 1
	DefaultMaxDuration int64 = 5

	// MaxDuration bounds a single hold. It keeps a sampled range within
	// int64 and leaves the clock room for many jobs and stations.
	MaxDuration int64 = 1 << 32
)

// DurationSampler draws the time a job holds one station.
type DurationSampler interface {
	Sample(rng *rand.Rand) int64
	Validate() error
}

// UniformDurations draws integers uniformly from [Min, Max].
type UniformDurations struct {
	Min int64 `yaml:"min" json:"min"`
	Max int64 `yaml:"max" json:"max"`
}

// DefaultDurations returns the [1, 5] range.
func DefaultDurations() UniformDurations {
	return UniformDurations{Min: DefaultMinDuration, Max: DefaultMaxDuration}
}

// Sample returns a value in [Min, Max].
func (u UniformDurations) Sample(rng *rand.Rand) int64 {
	span := u.Max - u.Min + 1
	if span <= 1 {
		return u.Min
	}
	return u.Min + rng.Int63n(span)
}

// Validate rejects negative bounds, bounds above MaxDuration and inverted
// ranges.
func (u UniformDurations) Validate() error {
	if u.Min < 0 || u.Max < 0 {
		return fmt.Errorf("duration bounds must be >= 0 (got [%d, %d]): %w", u.Min, u.Max, ErrInvalidArgument)
	}
	if u.Max > MaxDuration {
		return fmt.Errorf("duration max must be <= %d (got %d): %w", MaxDuration, u.Max, ErrInvalidArgument)
	}
	if u.Max < u.Min {
		return fmt.Errorf("duration max must be >= min (got [%d, %d]): %w", u.Min, u.Max, ErrInvalidArgument)
	}
	return nil
}

// ConstantDuration always returns the same value. It does not consume the RNG.
type ConstantDuration int64

func (c ConstantDuration) Sample(*rand.Rand) int64 { return int64(c) }

func (c ConstantDuration) Validate() error {
	if c < 0 || int64(c) > MaxDuration {
		return fmt.Errorf("constant duration must be in [0, %d] (got %d): %w", MaxDuration, int64(c), ErrInvalidArgument)
	}
	return nil
}
