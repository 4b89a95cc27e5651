package pso

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/gapso/internal/opt"
	"github.com/cwbudde/gapso/internal/problem"
)

func negSphere(t *testing.T) *problem.Problem {
	t.Helper()
	p, err := problem.New(2, problem.Maximize, func(x []float64) float64 {
		return -(x[0]*x[0] + x[1]*x[1])
	})
	require.NoError(t, err)
	require.NoError(t, p.SetBounds([]float64{-5, -5}, []float64{5, 5}))
	return p
}

func newSolver(t *testing.T, cfg Config, seed int64) *Solver {
	t.Helper()
	s, err := New(cfg, rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return s
}

func TestSolveNegSphereConverges(t *testing.T) {
	res, err := newSolver(t, DefaultConfig(), 42).Solve(context.Background(), negSphere(t))
	require.NoError(t, err)

	assert.Equal(t, "pso", res.Algorithm)
	assert.LessOrEqual(t, res.Best, 0.0)
	assert.Greater(t, res.Best, -0.05)
	require.Len(t, res.BestData, 2)
	assert.Less(t, math.Hypot(res.BestData[0], res.BestData[1]), 0.25)
	assert.Len(t, res.Series, 101)
	assert.Equal(t, 101*50, res.Evaluations)
}

func TestSwarmInvariants(t *testing.T) {
	p := negSphere(t)
	cfg := DefaultConfig()
	cfg.Particles = 13
	s := newSolver(t, cfg, 8)
	vmax := s.VMax(p)
	assert.InDeltaSlice(t, []float64{3, 3}, vmax, 1e-12)

	sw, err := s.initial(p, vmax)
	require.NoError(t, err)
	require.Len(t, sw.Particles, cfg.Particles)
	for _, pt := range sw.Particles {
		for d := range pt.Position {
			require.GreaterOrEqual(t, pt.Position[d], p.Lower()[d])
			require.Less(t, pt.Position[d], p.Upper()[d])
			require.GreaterOrEqual(t, pt.Velocity[d], 0.0)
			require.Less(t, pt.Velocity[d], vmax[d])
		}
	}

	for it := 0; it < 50; it++ {
		next, err := s.next(p, vmax, sw)
		require.NoError(t, err)
		require.Len(t, next.Particles, cfg.Particles)
		require.Equal(t, sw.Iteration+1, next.Iteration)
		require.GreaterOrEqual(t, next.Global.Fitness, sw.Global.Fitness, "global best never decreases")
		for _, pt := range next.Particles {
			require.GreaterOrEqual(t, pt.Best, pt.Fitness)
			for d, v := range pt.Velocity {
				require.LessOrEqual(t, math.Abs(v), vmax[d])
			}
		}
		if next.Global.Fitness > sw.Global.Fitness {
			require.Equal(t, next.Iteration, next.Global.Step)
		} else {
			require.Equal(t, sw.Global.Step, next.Global.Step)
		}
		sw = next
	}
}

func TestNextUsesPreviousGlobalBest(t *testing.T) {
	p := negSphere(t)
	cfg := DefaultConfig()
	cfg.Particles = 5
	s := newSolver(t, cfg, 21)
	vmax := s.VMax(p)

	sw, err := s.initial(p, vmax)
	require.NoError(t, err)
	before := sw.clone()

	_, err = s.next(p, vmax, sw)
	require.NoError(t, err)
	if diff := cmp.Diff(before.Particles, sw.Particles); diff != "" {
		t.Errorf("next modified its input swarm:\n%s", diff)
	}
	assert.Equal(t, before.Global.Fitness, sw.Global.Fitness)
}

func TestSolveMinimizeSignCorrected(t *testing.T) {
	p, err := problem.Lookup("sphere", 3)
	require.NoError(t, err)

	res, err := newSolver(t, DefaultConfig(), 3).Solve(context.Background(), p)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Best, 0.0)
	for i := 1; i < len(res.Series); i++ {
		require.LessOrEqual(t, res.Series[i].Best, res.Series[i-1].Best)
	}
}

func TestSolveDeterministic(t *testing.T) {
	res1, err := newSolver(t, DefaultConfig(), 77).Solve(context.Background(), negSphere(t))
	require.NoError(t, err)
	res2, err := newSolver(t, DefaultConfig(), 77).Solve(context.Background(), negSphere(t))
	require.NoError(t, err)

	if diff := cmp.Diff(res1, res2, cmpopts.IgnoreFields(opt.Result{}, "Duration")); diff != "" {
		t.Errorf("same seed produced different results (-first +second):\n%s", diff)
	}
}

func TestSolveCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := newSolver(t, DefaultConfig(), 1).Solve(ctx, negSphere(t))
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Steps)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"iterations", func(c *Config) { c.Iterations = -1 }},
		{"particles", func(c *Config) { c.Particles = 0 }},
		{"inertia", func(c *Config) { c.W = -1 }},
		{"coefficients", func(c *Config) { c.C2 = -2 }},
		{"vmax", func(c *Config) { c.VMaxFactor = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), problem.ErrInvalidArgument)
		})
	}
}
