package problem

import (
	"fmt"
	"math"
	"sort"
)

type entry struct {
	dir   Direction
	lower float64
	upper float64
	obj   Func
	cons  []Func
	// fixed is the required dimension, 0 when any dimension is accepted.
	fixed int
}

var catalog = map[string]entry{
	"linear": {
		dir: Maximize, lower: 0, upper: 31,
		obj: func(x []float64) float64 {
			var s float64
			for _, v := range x {
				s += v
			}
			return s
		},
	},
	"sphere": {
		dir: Minimize, lower: -5, upper: 5,
		obj: sphere,
	},
	"neg-sphere": {
		dir: Maximize, lower: -5, upper: 5,
		obj: func(x []float64) float64 { return -sphere(x) },
	},
	"rastrigin": {
		dir: Minimize, lower: -5.12, upper: 5.12,
		obj: func(x []float64) float64 {
			s := 10 * float64(len(x))
			for _, v := range x {
				s += v*v - 10*math.Cos(2*math.Pi*v)
			}
			return s
		},
	},
	"rosenbrock": {
		dir: Minimize, lower: -2.048, upper: 2.048,
		obj: func(x []float64) float64 {
			var s float64
			for i := 0; i+1 < len(x); i++ {
				a := x[i+1] - x[i]*x[i]
				b := 1 - x[i]
				s += 100*a*a + b*b
			}
			return s
		},
	},
	// max x+y inside the unit disc, feasible optimum sqrt(2) at (1/sqrt2, 1/sqrt2).
	// The penalty weight is zero at step 0, so an infeasible initial point
	// (up to 4 at (2, 2)) can remain the reported best; check the violation.
	"constrained": {
		dir: Maximize, lower: -2, upper: 2, fixed: 2,
		obj: func(x []float64) float64 { return x[0] + x[1] },
		cons: []Func{
			func(x []float64) float64 { return x[0]*x[0] + x[1]*x[1] - 1 },
		},
	},
}

func sphere(x []float64) float64 {
	var s float64
	for _, v := range x {
		s += v * v
	}
	return s
}

// Names lists the catalog in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup builds a named benchmark problem of the given dimension with
// uniform bounds on every axis.
func Lookup(name string, dim int) (*Problem, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, invalid("problem", fmt.Sprintf("unknown name %q", name))
	}
	if e.fixed > 0 && dim != e.fixed {
		return nil, invalid("dim", fmt.Sprintf("%s requires dimension %d (got %d)", name, e.fixed, dim))
	}
	p, err := New(dim, e.dir, e.obj)
	if err != nil {
		return nil, err
	}
	p.Name = name
	lower := make([]float64, dim)
	upper := make([]float64, dim)
	for i := range lower {
		lower[i], upper[i] = e.lower, e.upper
	}
	if err := p.SetBounds(lower, upper); err != nil {
		return nil, err
	}
	for _, c := range e.cons {
		p.AddConstraint(c)
	}
	return p, nil
}
