package pso

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/cwbudde/gapso/internal/opt"
	"github.com/cwbudde/gapso/internal/problem"
)

// Solver is a global-best particle swarm optimizer with velocity clamping and
// wrap-around boundary re-entry.
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New returns a PSO solver after validating cfg.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", problem.ErrInvalidArgument)
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// VMax returns the per-dimension velocity limit for prob.
func (s *Solver) VMax(prob *problem.Problem) []float64 {
	vmax := make([]float64, prob.Dim)
	for i := range vmax {
		vmax[i] = s.Cfg.VMaxFactor * prob.Range(i)
	}
	return vmax
}

// Solve runs the configured number of iterations on prob.
func (s *Solver) Solve(ctx context.Context, prob *problem.Problem) (*opt.Result, error) {
	start := time.Now()

	if err := prob.Validate(); err != nil {
		return nil, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Starting PSO",
		"problem", prob.Name,
		"dim", prob.Dim,
		"particles", s.Cfg.Particles,
		"iterations", s.Cfg.Iterations,
		"w", s.Cfg.W, "c1", s.Cfg.C1, "c2", s.Cfg.C2,
	)

	vmax := s.VMax(prob)
	sw, err := s.initial(prob, vmax)
	if err != nil {
		return nil, err
	}
	dir := float64(prob.Direction)
	series := make([]opt.Point, 0, s.Cfg.Iterations+1)
	series = append(series, opt.Point{Step: 0, Best: dir * sw.Global.Fitness})
	evals := s.Cfg.Particles

	result := func() *opt.Result {
		return &opt.Result{
			Algorithm:   "pso",
			Best:        dir * sw.Global.Fitness,
			BestData:    sw.Global.Position,
			BestStep:    sw.Global.Step,
			Steps:       sw.Iteration,
			Evaluations: evals,
			Series:      series,
			Duration:    time.Since(start),
		}
	}

	for it := 1; it <= s.Cfg.Iterations; it++ {
		if err := ctx.Err(); err != nil {
			slog.Warn("PSO stopped", "iteration", sw.Iteration, "error", err)
			return result(), err
		}
		sw, err = s.next(prob, vmax, sw)
		if err != nil {
			return nil, err
		}
		evals += len(sw.Particles)
		series = append(series, opt.Point{Step: sw.Iteration, Best: dir * sw.Global.Fitness})
	}

	res := result()
	slog.Info("PSO complete",
		"best", res.Best,
		"best_iteration", res.BestStep,
		"evaluations", res.Evaluations,
		"elapsed", res.Duration,
	)
	return res, nil
}

// initial places particles uniformly inside the bounds with velocities drawn
// from [0, vmax_i), and evaluates them at iteration 0.
func (s *Solver) initial(prob *problem.Problem, vmax []float64) (Swarm, error) {
	lower, upper := prob.Lower(), prob.Upper()
	ps := make([]Particle, s.Cfg.Particles)
	for i := range ps {
		pos := make([]float64, prob.Dim)
		for d := range pos {
			pos[d] = lower[d] + s.Rng.Float64()*(upper[d]-lower[d])
		}
		vel := make([]float64, prob.Dim)
		for d := range vel {
			vel[d] = s.Rng.Float64() * vmax[d]
		}

		fitness, err := prob.Calculate(pos, 0)
		if err != nil {
			return Swarm{}, err
		}
		ps[i] = Particle{
			Position:     pos,
			Velocity:     vel,
			Fitness:      fitness,
			Best:         fitness,
			BestPosition: append([]float64(nil), pos...),
		}
	}

	sw := Swarm{Particles: ps}
	top := sw.bestIndex()
	sw.Global = opt.Seed(ps[top].Best, ps[top].BestPosition, 0)
	return sw, nil
}

// next moves every particle once against the global best of prev, then
// rescans the personal bests. prev is not modified.
func (s *Solver) next(prob *problem.Problem, vmax []float64, prev Swarm) (Swarm, error) {
	sw := prev.clone()
	sw.Iteration = prev.Iteration + 1
	lower, upper := prob.Lower(), prob.Upper()
	gbest := prev.Global.Position

	for i := range sw.Particles {
		p := &sw.Particles[i]
		for d := range p.Velocity {
			r1 := s.Rng.Float64()
			r2 := s.Rng.Float64()
			p.Velocity[d] = s.Cfg.W*p.Velocity[d] +
				r1*s.Cfg.C1*(p.BestPosition[d]-p.Position[d]) +
				r2*s.Cfg.C2*(gbest[d]-p.Position[d])
		}
		ClampVelocity(p.Velocity, vmax)
		for d := range p.Position {
			p.Position[d] += p.Velocity[d]
		}
		Reenter(p.Position, lower, upper)

		fitness, err := prob.Calculate(p.Position, sw.Iteration)
		if err != nil {
			return Swarm{}, err
		}
		p.Fitness = fitness
		p.remember()
	}

	top := sw.bestIndex()
	var improved bool
	sw.Global, improved = prev.Global.Improve(sw.Particles[top].Best, sw.Particles[top].BestPosition, sw.Iteration)
	if improved {
		slog.Debug("PSO improved", "iteration", sw.Iteration, "fitness", sw.Global.Fitness)
	}
	return sw, nil
}
