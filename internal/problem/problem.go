package problem

import (
	"fmt"
	"math"
)

// Func maps a decision vector to a scalar. Objectives and constraints share it.
type Func func(x []float64) float64

// Direction selects maximization (+1) or minimization (-1).
type Direction int

const (
	Maximize Direction = 1
	Minimize Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Maximize:
		return "maximize"
	case Minimize:
		return "minimize"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts "max"/"maximize" and "min"/"minimize".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "max", "maximize":
		return Maximize, nil
	case "min", "minimize":
		return Minimize, nil
	}
	return 0, invalid("direction", fmt.Sprintf("must be max or min (got %q)", s))
}

// Penalty is the generation-dependent penalty schedule. A violation v > 0
// costs (Scale*step)^Exponent * v^ConstraintExponent.
type Penalty struct {
	Scale              float64 `json:"scale" mapstructure:"scale"`
	Exponent           float64 `json:"exponent" mapstructure:"exponent"`
	ConstraintExponent float64 `json:"constraintExponent" mapstructure:"constraint-exponent"`
}

// DefaultPenalty returns the (0.5, 2, 2) schedule.
func DefaultPenalty() Penalty {
	return Penalty{Scale: 0.5, Exponent: 2, ConstraintExponent: 2}
}

// Weight returns the multiplier applied to the summed violation at step.
func (p Penalty) Weight(step int) float64 {
	return math.Pow(p.Scale*float64(step), p.Exponent)
}

// Problem is a bound-constrained optimization problem with soft constraints.
// Bounds and constraints are attached after construction and before the first
// evaluation; after that a Problem is only read.
type Problem struct {
	Name      string
	Dim       int
	Direction Direction
	Penalty   Penalty

	objective   Func
	constraints []Func
	lower       []float64
	upper       []float64
}

// New creates a problem with the default penalty schedule.
func New(dim int, dir Direction, objective Func) (*Problem, error) {
	if dim <= 0 {
		return nil, invalid("dim", fmt.Sprintf("must be positive (got %d)", dim))
	}
	if dir != Maximize && dir != Minimize {
		return nil, invalid("direction", fmt.Sprintf("must be +1 or -1 (got %d)", int(dir)))
	}
	if objective == nil {
		return nil, invalid("objective", "cannot be nil")
	}
	return &Problem{
		Dim:       dim,
		Direction: dir,
		Penalty:   DefaultPenalty(),
		objective: objective,
	}, nil
}

// SetBounds attaches per-dimension bounds. lower[i] must be strictly below upper[i].
func (p *Problem) SetBounds(lower, upper []float64) error {
	if len(lower) != p.Dim || len(upper) != p.Dim {
		return invalid("bounds", fmt.Sprintf("need %d entries (got %d lower, %d upper)", p.Dim, len(lower), len(upper)))
	}
	for i := range lower {
		if !(lower[i] < upper[i]) {
			return invalid("bounds", fmt.Sprintf("lower[%d]=%g must be < upper[%d]=%g", i, lower[i], i, upper[i]))
		}
	}
	p.lower = append([]float64(nil), lower...)
	p.upper = append([]float64(nil), upper...)
	return nil
}

// AddConstraint appends a constraint. Positive output is the violation magnitude.
func (p *Problem) AddConstraint(c Func) {
	if c != nil {
		p.constraints = append(p.constraints, c)
	}
}

func (p *Problem) Lower() []float64 { return p.lower }
func (p *Problem) Upper() []float64 { return p.upper }

// Range returns upper[i] - lower[i].
func (p *Problem) Range(i int) float64 { return p.upper[i] - p.lower[i] }

func (p *Problem) NumConstraints() int { return len(p.constraints) }

// Validate reports whether the problem is ready for an optimizer run.
func (p *Problem) Validate() error {
	if p == nil {
		return invalid("problem", "cannot be nil")
	}
	if p.objective == nil {
		return invalid("objective", "cannot be nil")
	}
	if len(p.lower) != p.Dim || len(p.upper) != p.Dim {
		return invalid("bounds", "must be set before evaluation")
	}
	return nil
}

// Violation returns the summed, exponentiated constraint violation at x.
// Satisfied constraints (c(x) <= 0) contribute nothing.
func (p *Problem) Violation(x []float64) float64 {
	var sum float64
	for _, c := range p.constraints {
		if v := c(x); v > 0 {
			sum += math.Pow(v, p.Penalty.ConstraintExponent)
		}
	}
	return sum
}

// Calculate returns the direction-adjusted, penalized fitness of x at the given
// generation or iteration: direction*f(x) - weight(step)*violation(x). Larger
// is always better. The particle swarm and mayfly backends use this form.
func (p *Problem) Calculate(x []float64, step int) (float64, error) {
	if err := p.check(x); err != nil {
		return 0, err
	}
	f := float64(p.Direction) * p.objective(x)
	penalty := p.Violation(x)
	if penalty == 0 {
		return f, nil
	}
	return f - p.Penalty.Weight(step)*penalty, nil
}

// CalculateGA returns the genetic algorithm's fitness of x at generation step:
// direction*(f(x) - weight(step)*violation(x)). It agrees with Calculate when
// maximizing or when no constraint is violated. When minimizing, violation
// raises the fitness instead of lowering it.
func (p *Problem) CalculateGA(x []float64, step int) (float64, error) {
	if err := p.check(x); err != nil {
		return 0, err
	}
	f := p.objective(x)
	if penalty := p.Violation(x); penalty != 0 {
		f -= p.Penalty.Weight(step) * penalty
	}
	return float64(p.Direction) * f, nil
}

func (p *Problem) check(x []float64) error {
	if p.objective == nil {
		return invalid("objective", "cannot be nil")
	}
	if len(x) != p.Dim {
		return invalid("data", fmt.Sprintf("length must be %d (got %d)", p.Dim, len(x)))
	}
	return nil
}

// Objective returns the raw objective value at x, without penalty or direction.
func (p *Problem) Objective(x []float64) float64 { return p.objective(x) }
