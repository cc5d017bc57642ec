package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layout-sim/layout-sim/sim"
	"github.com/layout-sim/layout-sim/sim/trace"
)

func seeded(seed int64) Config {
	cfg := DefaultConfig()
	cfg.Seed = &seed
	return cfg
}

func TestOptimize_SeededRun_ReportsCompleteOutcome(t *testing.T) {
	// GIVEN a seeded default config with iteration tracing
	cfg := seeded(42)
	cfg.TraceLevel = string(trace.TraceLevelIterations)
	var observed int

	// WHEN optimized
	out, err := Optimize(context.Background(), cfg, func(trace.IterationRecord) { observed++ })

	// THEN the outcome carries the result, trace and a fresh initial score
	require.NoError(t, err)
	assert.NotEmpty(t, out.RunID)
	assert.Equal(t, sim.SimulationKey(42), out.Key)
	assert.Equal(t, sim.Layout{"A", "B", "C"}, out.InitialLayout)
	assert.Greater(t, out.InitialScore, 0.0)
	assert.Len(t, out.Result.History, cfg.Iterations+1)
	assert.True(t, out.Result.BestLayout.IsPermutationOf(out.InitialLayout))
	assert.Equal(t, cfg.Iterations, observed)
	assert.Len(t, out.Trace.Iterations, cfg.Iterations)
}

func TestOptimize_SameSeed_IdenticalOutcome(t *testing.T) {
	a, err := OptimizeWithID(context.Background(), "a", seeded(7), nil)
	require.NoError(t, err)
	b, err := OptimizeWithID(context.Background(), "b", seeded(7), nil)
	require.NoError(t, err)

	assert.Equal(t, a.Result.History, b.Result.History)
	assert.Equal(t, a.Result.BestLayout, b.Result.BestLayout)
	assert.Equal(t, a.InitialScore, b.InitialScore)
}

func TestOptimize_TracingDisabled_NoRecordsKept(t *testing.T) {
	out, err := Optimize(context.Background(), seeded(1), nil)
	require.NoError(t, err)
	assert.Empty(t, out.Trace.Iterations)
}

func TestOptimize_InvalidConfig_FailsBeforeRunning(t *testing.T) {
	cfg := seeded(1)
	cfg.Stations = []string{"A"}
	calls := 0
	_, err := Optimize(context.Background(), cfg, func(trace.IterationRecord) { calls++ })
	require.ErrorIs(t, err, sim.ErrInvalidArgument)
	assert.Zero(t, calls)
}

func TestEvaluate_Repeats_ComputesMeanAndSpread(t *testing.T) {
	cfg := seeded(3)
	out, err := Evaluate(cfg, 5)
	require.NoError(t, err)
	require.Len(t, out.Runs, 5)

	var sum float64
	for _, r := range out.Runs {
		sum += r.Score
	}
	assert.InDelta(t, sum/5, out.Mean, 1e-9)
	assert.GreaterOrEqual(t, out.StdDev, 0.0)
}

func TestEvaluate_SingleStation_Allowed(t *testing.T) {
	cfg := seeded(3)
	cfg.Stations = []string{"Only"}
	cfg.NumJobs = 1
	cfg.Duration = sim.UniformDurations{Min: 4, Max: 4}

	out, err := Evaluate(cfg, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, out.Mean)
	assert.Equal(t, 0.0, out.StdDev)
}

func TestEvaluate_InvalidRepeats(t *testing.T) {
	_, err := Evaluate(seeded(1), 0)
	assert.ErrorIs(t, err, sim.ErrInvalidArgument)
}
