// Package session wires configuration, randomness, the simulator and the
// optimizer into a single run that the CLI and the server both drive.
package session

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"

	"github.com/layout-sim/layout-sim/internal/idgen"
	"github.com/layout-sim/layout-sim/sim"
	"github.com/layout-sim/layout-sim/sim/anneal"
	"github.com/layout-sim/layout-sim/sim/trace"
)

// Outcome is everything a finished optimization run reports.
type Outcome struct {
	RunID         string
	Key           sim.SimulationKey
	InitialLayout sim.Layout
	// InitialScore is a fresh evaluation of the input layout taken after the
	// search, independent of the optimizer's own initial evaluation.
	InitialScore float64
	Result       anneal.Result
	Trace        *trace.AnnealTrace
}

// Evaluation is the outcome of scoring a layout without optimizing it.
type Evaluation struct {
	RunID  string
	Key    sim.SimulationKey
	Layout sim.Layout
	Runs   []sim.RunResult
	Mean   float64 // mean score across runs
	StdDev float64 // 0 for a single run
}

func newRNG(cfg Config) *sim.PartitionedRNG {
	key := sim.NewRandomSimulationKey()
	if cfg.Seed != nil {
		key = sim.NewSimulationKey(*cfg.Seed)
	}
	return sim.NewPartitionedRNG(key)
}

// Optimize validates cfg and runs the annealing search. observer, when not
// nil, sees every iteration record.
func Optimize(ctx context.Context, cfg Config, observer anneal.Observer) (*Outcome, error) {
	return OptimizeWithID(ctx, idgen.New(), cfg, observer)
}

// OptimizeWithID is Optimize with a caller-chosen run identifier.
func OptimizeWithID(ctx context.Context, runID string, cfg Config, observer anneal.Observer) (*Outcome, error) {
	if err := cfg.ValidateForOptimize(); err != nil {
		return nil, err
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}

	rng := newRNG(cfg)
	logrus.Infof("Run %s: optimizing %v with key %d", runID, layout, rng.Key())

	eval, err := sim.NewEvaluator(cfg.NumJobs, cfg.Duration, rng.ForSubsystem(sim.SubsystemDurations))
	if err != nil {
		return nil, err
	}
	opt, err := anneal.New(cfg.Anneal(), eval, rng.ForSubsystem(sim.SubsystemAnneal))
	if err != nil {
		return nil, err
	}

	tr := trace.NewAnnealTrace(trace.TraceLevel(cfg.TraceLevel))
	opt.Observer = func(rec trace.IterationRecord) {
		tr.RecordIteration(rec)
		if observer != nil {
			observer(rec)
		}
	}

	res, err := opt.Optimize(ctx, layout)
	if err != nil {
		return nil, err
	}

	initial, err := eval.Evaluate(layout)
	if err != nil {
		return nil, fmt.Errorf("re-evaluating initial layout: %w", err)
	}

	return &Outcome{
		RunID:         runID,
		Key:           rng.Key(),
		InitialLayout: layout,
		InitialScore:  initial.Score,
		Result:        res,
		Trace:         tr,
	}, nil
}

// Evaluate scores the configured layout repeats times without optimizing.
// Repeated runs expose how noisy a single evaluation is.
func Evaluate(cfg Config, repeats int) (*Evaluation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if repeats < 1 {
		return nil, fmt.Errorf("repeats must be >= 1 (got %d): %w", repeats, sim.ErrInvalidArgument)
	}
	layout, err := cfg.Layout()
	if err != nil {
		return nil, err
	}

	rng := newRNG(cfg)
	eval, err := sim.NewEvaluator(cfg.NumJobs, cfg.Duration, rng.ForSubsystem(sim.SubsystemDurations))
	if err != nil {
		return nil, err
	}

	out := &Evaluation{RunID: idgen.New(), Key: rng.Key(), Layout: layout}
	scores := make([]float64, 0, repeats)
	for i := 0; i < repeats; i++ {
		run, err := eval.Evaluate(layout)
		if err != nil {
			return nil, err
		}
		out.Runs = append(out.Runs, run)
		scores = append(scores, run.Score)
	}
	out.Mean = stat.Mean(scores, nil)
	if repeats > 1 {
		out.StdDev = stat.StdDev(scores, nil)
	}
	return out, nil
}
