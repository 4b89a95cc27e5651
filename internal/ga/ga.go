package ga

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/gapso/internal/opt"
	"github.com/cwbudde/gapso/internal/problem"
)

// Solver is a binary-encoded genetic algorithm with roulette selection and
// generational replacement (no elitism).
type Solver struct {
	Cfg Config
	Rng *rand.Rand
}

// New returns a GA solver after validating cfg. The rng is the only source of
// randomness, so a seeded rng makes runs reproducible.
func New(cfg Config, rng *rand.Rand) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: random source is nil", problem.ErrInvalidArgument)
	}
	return &Solver{Cfg: cfg, Rng: rng}, nil
}

// Generation is the complete state between two generational steps.
type Generation struct {
	Index int
	Pool  []Chromosome
	Best  opt.Best
}

// Solve runs the configured number of generations on prob.
func (s *Solver) Solve(ctx context.Context, prob *problem.Problem) (*opt.Result, error) {
	start := time.Now()

	if err := prob.Validate(); err != nil {
		return nil, err
	}
	if err := s.Cfg.Validate(); err != nil {
		return nil, err
	}
	settings, err := DeriveSettings(prob.Lower(), prob.Upper(), s.Cfg.Precision)
	if err != nil {
		return nil, err
	}

	slog.Info("Starting GA",
		"problem", prob.Name,
		"dim", prob.Dim,
		"bits", TotalBits(settings),
		"population", s.Cfg.Population,
		"generations", s.Cfg.Generations,
		"crossover", s.Cfg.Crossover.String(),
	)

	gen, err := s.initial(prob, settings)
	if err != nil {
		return nil, err
	}
	dir := float64(prob.Direction)
	series := make([]opt.Point, 0, s.Cfg.Generations+1)
	series = append(series, opt.Point{Step: 0, Best: dir * gen.Best.Fitness})
	evals := s.Cfg.Population

	result := func() *opt.Result {
		return &opt.Result{
			Algorithm:   "ga",
			Best:        dir * gen.Best.Fitness,
			BestData:    gen.Best.Position,
			BestStep:    gen.Best.Step,
			Steps:       gen.Index,
			Evaluations: evals,
			Series:      series,
			Duration:    time.Since(start),
		}
	}

	for g := 1; g <= s.Cfg.Generations; g++ {
		if err := ctx.Err(); err != nil {
			slog.Warn("GA stopped", "generation", gen.Index, "error", err)
			return result(), err
		}
		gen, err = s.next(prob, settings, gen)
		if err != nil {
			return nil, err
		}
		evals += len(gen.Pool)
		series = append(series, opt.Point{Step: gen.Index, Best: dir * gen.Best.Fitness})
	}

	res := result()
	slog.Info("GA complete",
		"best", res.Best,
		"best_generation", res.BestStep,
		"evaluations", res.Evaluations,
		"elapsed", res.Duration,
	)
	return res, nil
}

// initial creates a random population and evaluates it at generation 0.
func (s *Solver) initial(prob *problem.Problem, settings []Setting) (Generation, error) {
	length := TotalBits(settings)
	pool := make([]Chromosome, s.Cfg.Population)
	for i := range pool {
		pool[i] = NewChromosome(length, s.Rng)
	}
	return s.evaluate(prob, settings, pool, 0, opt.Best{})
}

// next performs one generation: roulette table, reproduction, mutation and
// evaluation. prev is not modified.
func (s *Solver) next(prob *problem.Problem, settings []Setting, prev Generation) (Generation, error) {
	table, degenerate := BuildTable(values(prev.Pool))
	if degenerate {
		slog.Debug("Uniform roulette table", "generation", prev.Index, "error", problem.ErrDegenerate)
	}
	pool := s.reproduce(prev.Pool, table)
	s.mutate(pool)
	return s.evaluate(prob, settings, pool, prev.Index+1, prev.Best)
}

// reproduce draws parent pairs until the next population is full. A pair that
// fails the crossover draw yields nothing and another pair is drawn; with a
// zero crossover rate the parents are copied through instead.
func (s *Solver) reproduce(pool []Chromosome, table Table) []Chromosome {
	n := len(pool)
	next := make([]Chromosome, 0, n)
	for len(next) < n {
		a := pool[table.Lookup(s.Rng.Float64())]
		b := pool[table.Lookup(s.Rng.Float64())]

		var c1, c2 Chromosome
		switch {
		case s.Cfg.CrossoverRate == 0:
			c1, c2 = a.Clone(), b.Clone()
		case s.Rng.Float64() < s.Cfg.CrossoverRate:
			c1, c2 = a.Crossover(b, s.Cfg.Crossover, s.Rng)
		default:
			continue
		}

		next = append(next, c1)
		if len(next) < n {
			next = append(next, c2)
		}
	}
	return next
}

func (s *Solver) mutate(pool []Chromosome) {
	for i := range pool {
		if s.Rng.Float64() < s.Cfg.MutationRate {
			pool[i].Mutate(s.Rng)
		}
	}
}

// evaluate stores the fitness of every chromosome and folds the generation's
// best into best, which only moves on strict improvement.
func (s *Solver) evaluate(prob *problem.Problem, settings []Setting, pool []Chromosome, index int, best opt.Best) (Generation, error) {
	for i := range pool {
		v, err := prob.CalculateGA(Decode(pool[i].Genes, settings), index)
		if err != nil {
			return Generation{}, err
		}
		pool[i].Value = v
	}

	top := floats.MaxIdx(values(pool))
	best, improved := best.Improve(pool[top].Value, Decode(pool[top].Genes, settings), index)
	if improved {
		slog.Debug("GA improved", "generation", index, "fitness", best.Fitness)
	}
	return Generation{Index: index, Pool: pool, Best: best}, nil
}

func values(pool []Chromosome) []float64 {
	v := make([]float64, len(pool))
	for i, c := range pool {
		v[i] = c.Value
	}
	return v
}
