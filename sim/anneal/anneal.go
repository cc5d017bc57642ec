// Package anneal searches for the station layout with the lowest mean job
// completion time using simulated annealing over a noisy simulation score.
package anneal

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/layout-sim/layout-sim/internal/tracing"
	"github.com/layout-sim/layout-sim/sim"
	"github.com/layout-sim/layout-sim/sim/trace"
)

// Evaluator scores a layout. Scores may differ between calls for the same
// layout; the optimizer tracks the best score it observed.
type Evaluator interface {
	Evaluate(layout sim.Layout) (sim.RunResult, error)
}

// Observer receives one record per iteration, after the state update.
// The record's Candidate slice is shared with the optimizer and must not be modified.
type Observer func(trace.IterationRecord)

// Optimizer runs simulated annealing over station layouts.
type Optimizer struct {
	Cfg      Config
	Eval     Evaluator
	Rng      *rand.Rand
	Observer Observer
}

// New returns an optimizer with a validated configuration.
func New(cfg Config, eval Evaluator, rng *rand.Rand) (*Optimizer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if eval == nil {
		return nil, fmt.Errorf("evaluator is nil: %w", sim.ErrInvalidArgument)
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is nil: %w", sim.ErrInvalidArgument)
	}
	return &Optimizer{Cfg: cfg, Eval: eval, Rng: rng}, nil
}

// Optimize searches from layout for a lower-scoring permutation. The loop
// always runs exactly Cfg.Iterations times; ctx only carries tracing spans.
func (o *Optimizer) Optimize(ctx context.Context, layout sim.Layout) (res Result, err error) {
	start := time.Now()

	if err := o.Cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := layout.Validate(); err != nil {
		return Result{}, err
	}
	if len(layout) < 2 {
		return Result{}, fmt.Errorf("at least 2 stations are required to swap (got %d): %w", len(layout), sim.ErrInvalidArgument)
	}
	if o.Eval == nil || o.Rng == nil {
		return Result{}, fmt.Errorf("optimizer is missing its evaluator or random source: %w", sim.ErrInvalidArgument)
	}

	ctx, span := tracing.StartSpan(ctx, "anneal.Optimize")
	defer func() { tracing.EndSpan(span, err) }()
	span.WithAttributes(map[string]string{"layout": layout.String()})
	span.SetInt("iterations", o.Cfg.Iterations)

	current := layout.Clone()
	currentScore, err := o.evaluate(ctx, current, 0)
	if err != nil {
		return Result{}, err
	}
	best := current.Clone()
	bestScore := currentScore
	history := make([]float64, 0, o.Cfg.Iterations+1)
	history = append(history, bestScore)
	temp := o.Cfg.InitialTemp
	accepted := 0

	logrus.Infof("Annealing from %v: initial score %.3f", layout, currentScore)

	for it := 1; it <= o.Cfg.Iterations; it++ {
		i, j := swapPositions(o.Rng, len(current))
		candidate := current.Swap(i, j)
		score, err := o.evaluate(ctx, candidate, it)
		if err != nil {
			return Result{}, err
		}

		ok, p := o.accept(currentScore, score, temp)
		rec := trace.IterationRecord{
			Iteration:      it,
			SwapI:          i,
			SwapJ:          j,
			Candidate:      []string(candidate),
			CandidateScore: score,
			CurrentScore:   currentScore,
			Temperature:    temp,
			Probability:    p,
			Accepted:       ok,
		}
		if ok {
			accepted++
			current = candidate
			currentScore = score
			if score < bestScore {
				best = candidate
				bestScore = score
				rec.Improved = true
			}
		}

		temp *= o.Cfg.CoolingRate
		history = append(history, bestScore)
		rec.BestScore = bestScore

		logrus.Debugf("iteration %d: swap(%d,%d) %v score=%.3f p=%.4f accepted=%t best=%.3f T=%.4f",
			it, i, j, candidate, score, p, ok, bestScore, rec.Temperature)
		if o.Observer != nil {
			o.Observer(rec)
		}
	}

	span.SetFloat("best_score", bestScore)
	logrus.Infof("Annealing finished: best layout %v score %.3f (%d/%d accepted)",
		best, bestScore, accepted, o.Cfg.Iterations)

	return Result{
		BestLayout:       best,
		BestScore:        bestScore,
		History:          history,
		InitialScore:     history[0],
		FinalLayout:      current,
		FinalTemperature: temp,
		Accepted:         accepted,
		Evaluations:      o.Cfg.Iterations + 1,
		Duration:         time.Since(start),
	}, nil
}

func (o *Optimizer) evaluate(ctx context.Context, layout sim.Layout, iteration int) (float64, error) {
	_, span := tracing.StartSpan(ctx, "anneal.evaluate")
	span.WithAttributes(map[string]string{
		"layout":    layout.String(),
		"iteration": strconv.Itoa(iteration),
	})
	run, err := o.Eval.Evaluate(layout)
	if err == nil {
		span.SetFloat("score", run.Score)
	}
	tracing.EndSpan(span, err)
	if err != nil {
		return 0, fmt.Errorf("evaluating layout %v: %w", layout, err)
	}
	return run.Score, nil
}

// accept applies the Metropolis criterion. A strictly better candidate is
// taken without consuming the RNG; otherwise one uniform draw is compared
// against exp((current - candidate) / temp).
func (o *Optimizer) accept(current, candidate, temp float64) (bool, float64) {
	if candidate < current {
		return true, 1
	}
	p := AcceptanceProbability(current, candidate, temp)
	return o.Rng.Float64() < p, p
}

// AcceptanceProbability returns the Metropolis acceptance probability of
// moving from a layout scoring current to one scoring candidate.
func AcceptanceProbability(current, candidate, temp float64) float64 {
	if candidate <= current {
		return 1
	}
	if temp <= 0 {
		// fully cooled: only moves that are no worse pass
		return 0
	}
	return math.Exp((current - candidate) / temp)
}

// swapPositions picks two distinct positions uniformly from [0, n).
func swapPositions(rng *rand.Rand, n int) (int, int) {
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return i, j
}
