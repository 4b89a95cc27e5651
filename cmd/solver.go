package main

import (
	"fmt"
	"math/rand"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cwbudde/gapso/internal/ga"
	"github.com/cwbudde/gapso/internal/opt"
	"github.com/cwbudde/gapso/internal/problem"
	"github.com/cwbudde/gapso/internal/pso"
	"github.com/cwbudde/gapso/internal/store"
)

var algorithms = []string{"ga", "pso", "mayfly"}

// addSolverFlags registers the problem and optimizer flags shared by run and bench.
func addSolverFlags(cmd *cobra.Command) {
	gaDefaults := ga.DefaultConfig()
	psoDefaults := pso.DefaultConfig()

	f := cmd.Flags()
	f.String("problem", "linear", fmt.Sprintf("Benchmark problem %v", problem.Names()))
	f.Int("dim", 1, "Problem dimension")
	f.Int("iters", gaDefaults.Generations, "Generations (ga), iterations (pso, mayfly)")
	f.Int("pop", gaDefaults.Population, "Population or swarm size")
	f.Int64("seed", 42, "Random seed")

	f.Float64("crossover-rate", gaDefaults.CrossoverRate, "GA crossover probability")
	f.Float64("mutation-rate", gaDefaults.MutationRate, "GA mutation probability")
	f.String("crossover", gaDefaults.Crossover.String(), "GA crossover operator: one-point, two-point")
	f.Float64("precision", gaDefaults.Precision, "GA resolution of every decoded variable")

	f.Float64("w", psoDefaults.W, "PSO inertia weight")
	f.Float64("c1", psoDefaults.C1, "PSO cognitive coefficient")
	f.Float64("c2", psoDefaults.C2, "PSO social coefficient")
}

// loadRunConfig merges flags, config file and environment into a RunConfig.
func loadRunConfig(cmd *cobra.Command) (store.RunConfig, error) {
	var rc store.RunConfig
	if err := bindFlags(cmd); err != nil {
		return rc, err
	}
	if err := viper.Unmarshal(&rc); err != nil {
		return rc, fmt.Errorf("failed to decode configuration: %w", err)
	}
	return rc, nil
}

// newOptimizer builds the backend named by rc.Algorithm. The returned run
// config has the knobs the backend does not use zeroed out.
func newOptimizer(rc store.RunConfig) (opt.Optimizer, store.RunConfig, error) {
	switch rc.Algorithm {
	case "ga":
		mode, err := ga.ParseCrossoverMode(rc.Crossover)
		if err != nil {
			return nil, rc, err
		}
		cfg := ga.DefaultConfig()
		cfg.Population = rc.PopSize
		cfg.Generations = rc.Iterations
		cfg.CrossoverRate = rc.CrossoverRate
		cfg.MutationRate = rc.MutationRate
		cfg.Crossover = mode
		cfg.Precision = rc.Precision

		rc.Crossover = mode.String()
		rc.W, rc.C1, rc.C2 = 0, 0, 0
		s, err := ga.New(cfg, rand.New(rand.NewSource(rc.Seed)))
		return s, rc, err

	case "pso":
		cfg := pso.DefaultConfig()
		cfg.Particles = rc.PopSize
		cfg.Iterations = rc.Iterations
		cfg.W = rc.W
		cfg.C1 = rc.C1
		cfg.C2 = rc.C2

		rc.CrossoverRate, rc.MutationRate, rc.Crossover, rc.Precision = 0, 0, "", 0
		s, err := pso.New(cfg, rand.New(rand.NewSource(rc.Seed)))
		return s, rc, err

	case "mayfly":
		rc.CrossoverRate, rc.MutationRate, rc.Crossover, rc.Precision = 0, 0, "", 0
		rc.W, rc.C1, rc.C2 = 0, 0, 0
		m, err := opt.NewMayfly(rc.Iterations, rc.PopSize, rc.Seed)
		return m, rc, err
	}
	return nil, rc, fmt.Errorf("%w: unknown algorithm %q (want one of %v)", problem.ErrInvalidArgument, rc.Algorithm, algorithms)
}
