package opt

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/cwbudde/mayfly"

	"github.com/cwbudde/gapso/internal/problem"
)

// minMayflyPop is the smallest population the mayfly library accepts.
const minMayflyPop = 20

// MayflyAdapter wraps the external Mayfly library to conform to our Optimizer interface.
// Mayfly minimizes over a scalar box, so the problem is searched on the unit
// hypercube and mapped onto the per-dimension bounds before each evaluation.
type MayflyAdapter struct {
	maxIters int
	popSize  int
	seed     int64
}

// NewMayfly creates a new Mayfly optimizer adapter
func NewMayfly(maxIters, popSize int, seed int64) (*MayflyAdapter, error) {
	if maxIters <= 0 {
		return nil, fmt.Errorf("mayfly: iterations must be > 0 (got %d)", maxIters)
	}
	if popSize < minMayflyPop {
		return nil, fmt.Errorf("mayfly: population must be >= %d (got %d)", minMayflyPop, popSize)
	}
	return &MayflyAdapter{
		maxIters: maxIters,
		popSize:  popSize,
		seed:     seed,
	}, nil
}

// Solve executes the Mayfly optimization using the external library.
// Fitness is evaluated at step maxIters, so constraint penalties apply at full
// strength from the first evaluation. Steps, BestStep and the series all count
// objective evaluations; the series gets one point per popSize evaluations.
func (m *MayflyAdapter) Solve(ctx context.Context, prob *problem.Problem) (*Result, error) {
	if err := prob.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	dim := prob.Dim
	lower, upper := prob.Lower(), prob.Upper()

	x := make([]float64, dim)
	scale := func(u []float64) []float64 {
		for i := range x {
			x[i] = lower[i] + u[i]*(upper[i]-lower[i])
		}
		return x
	}

	var (
		best    Best
		series  []Point
		evals   int
		evalErr error
	)
	eval := func(u []float64) float64 {
		fitness, err := prob.Calculate(scale(u), m.maxIters)
		if err != nil {
			evalErr = err
			return math.Inf(1)
		}
		evals++
		best, _ = best.Improve(fitness, x, evals)
		if evals%m.popSize == 0 {
			series = append(series, Point{Step: evals, Best: float64(prob.Direction) * best.Fitness})
		}
		return -fitness
	}

	// Create config for external Mayfly library
	config := mayfly.NewDefaultConfig()
	config.ObjectiveFunc = eval
	config.ProblemSize = dim
	config.MaxIterations = m.maxIters
	config.NPop = m.popSize
	config.LowerBound = 0
	config.UpperBound = 1

	// Set random seed for reproducibility
	config.Rand = rand.New(rand.NewSource(m.seed))

	slog.Info("Starting mayfly", "problem", prob.Name, "dim", dim, "iters", m.maxIters, "pop", m.popSize)

	if _, err := mayfly.Optimize(config); err != nil {
		return nil, fmt.Errorf("mayfly optimization failed: %w", err)
	}
	if evalErr != nil {
		return nil, evalErr
	}
	if !best.Valid() {
		return nil, fmt.Errorf("mayfly: no evaluations performed")
	}
	if len(series) == 0 || series[len(series)-1].Step != evals {
		series = append(series, Point{Step: evals, Best: float64(prob.Direction) * best.Fitness})
	}

	res := &Result{
		Algorithm:   "mayfly",
		Best:        float64(prob.Direction) * best.Fitness,
		BestData:    best.Position,
		BestStep:    best.Step,
		Steps:       evals,
		Evaluations: evals,
		Series:      series,
		Duration:    time.Since(start),
	}
	slog.Info("Mayfly complete", "best", res.Best, "evaluations", evals, "elapsed", res.Duration)
	return res, nil
}
