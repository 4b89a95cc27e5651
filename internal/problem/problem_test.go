package problem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v
	}
	return s
}

func newUnitProblem(t *testing.T, dir Direction) *Problem {
	t.Helper()
	p, err := New(2, dir, sum)
	require.NoError(t, err)
	require.NoError(t, p.SetBounds([]float64{0, 0}, []float64{1, 1}))
	return p
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New(0, Maximize, sum)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(2, Direction(3), sum)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = New(2, Maximize, nil)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestSetBoundsValidation(t *testing.T) {
	p, err := New(2, Maximize, sum)
	require.NoError(t, err)

	err = p.SetBounds([]float64{0}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	err = p.SetBounds([]float64{0, 2}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.ErrorIs(t, p.Validate(), ErrInvalidArgument, "bounds not attached yet")
	require.NoError(t, p.SetBounds([]float64{0, -1}, []float64{1, 1}))
	assert.NoError(t, p.Validate())
	assert.Equal(t, 2.0, p.Range(1))
}

func TestCalculateWrongLength(t *testing.T) {
	p := newUnitProblem(t, Maximize)
	_, err := p.Calculate([]float64{1}, 0)
	require.Error(t, err)

	var iae *InvalidArgumentError
	require.True(t, errors.As(err, &iae))
	assert.Equal(t, "data", iae.Field)
}

func TestCalculateDirection(t *testing.T) {
	maxP := newUnitProblem(t, Maximize)
	minP := newUnitProblem(t, Minimize)

	v, err := maxP.Calculate([]float64{0.25, 0.5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 0.75, v, 1e-12)

	v, err = minP.Calculate([]float64{0.25, 0.5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, -0.75, v, 1e-12)
}

func TestSatisfiedConstraintsCostNothing(t *testing.T) {
	p := newUnitProblem(t, Maximize)
	p.AddConstraint(func(x []float64) float64 { return x[0] - 0.5 })

	v, err := p.Calculate([]float64{0.5, 0.5}, 100)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, v, 1e-12)

	v, err = p.Calculate([]float64{0.1, 0.5}, 100)
	require.NoError(t, err)
	assert.InDelta(t, 0.6, v, 1e-12, "negative constraint output is satisfied")
}

func TestPenaltyTightensWithStep(t *testing.T) {
	for _, dir := range []Direction{Maximize, Minimize} {
		p := newUnitProblem(t, dir)
		p.AddConstraint(func(x []float64) float64 { return x[0] - 0.5 })
		x := []float64{1, 0}

		prev, err := p.Calculate(x, 1)
		require.NoError(t, err)
		for step := 2; step < 10; step++ {
			v, err := p.Calculate(x, step)
			require.NoError(t, err)
			assert.Less(t, v, prev, "%s step %d", dir, step)
			prev = v
		}
	}
}

func TestPenaltyFormula(t *testing.T) {
	p := newUnitProblem(t, Maximize)
	p.Penalty = Penalty{Scale: 0.5, Exponent: 2, ConstraintExponent: 2}
	p.AddConstraint(func(x []float64) float64 { return x[0] - 0.5 })
	p.AddConstraint(func(x []float64) float64 { return x[1] - 0.5 })

	// (0.5*4)^2 * (0.5^2 + 0.5^2) = 4 * 0.5 = 2
	v, err := p.Calculate([]float64{1, 1}, 4)
	require.NoError(t, err)
	assert.InDelta(t, 2-2.0, v, 1e-12)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("min")
	require.NoError(t, err)
	assert.Equal(t, Minimize, d)
	assert.Equal(t, "minimize", d.String())

	_, err = ParseDirection("sideways")
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		dim := 2
		p, err := Lookup(name, dim)
		require.NoError(t, err, name)
		require.NoError(t, p.Validate())
		assert.Equal(t, name, p.Name)
	}

	_, err := Lookup("nope", 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Lookup("constrained", 3)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	p, err := Lookup("constrained", 2)
	require.NoError(t, err)
	assert.Equal(t, 1, p.NumConstraints())
}

func TestCalculateGAKeepsDirectionOutsidePenalty(t *testing.T) {
	p, err := New(1, Minimize, func(x []float64) float64 { return x[0] })
	require.NoError(t, err)
	require.NoError(t, p.SetBounds([]float64{0}, []float64{31}))
	p.AddConstraint(func(x []float64) float64 { return x[0] - 1 })

	// weight (0.5*2)^2 = 1, violation (3-1)^2 = 4
	swarm, err := p.Calculate([]float64{3}, 2)
	require.NoError(t, err)
	assert.InDelta(t, -7.0, swarm, 1e-12, "-(3) - 1*4")

	genetic, err := p.CalculateGA([]float64{3}, 2)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, genetic, 1e-12, "-(3 - 1*4)")

	// feasible points agree
	a, err := p.Calculate([]float64{0.5}, 2)
	require.NoError(t, err)
	b, err := p.CalculateGA([]float64{0.5}, 2)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	_, err = p.CalculateGA([]float64{1, 2}, 0)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCalculateGAMatchesWhenMaximizing(t *testing.T) {
	p := newUnitProblem(t, Maximize)
	p.AddConstraint(func(x []float64) float64 { return x[0] - 0.5 })

	for step := 0; step < 5; step++ {
		a, err := p.Calculate([]float64{1, 0.25}, step)
		require.NoError(t, err)
		b, err := p.CalculateGA([]float64{1, 0.25}, step)
		require.NoError(t, err)
		assert.InDelta(t, a, b, 1e-12, "step %d", step)
	}
}
