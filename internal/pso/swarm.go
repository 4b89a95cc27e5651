package pso

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/gapso/internal/opt"
)

// Swarm is the complete state between two iterations.
type Swarm struct {
	Iteration int
	Particles []Particle
	Global    opt.Best
}

func (s Swarm) clone() Swarm {
	ps := make([]Particle, len(s.Particles))
	for i, p := range s.Particles {
		ps[i] = p.clone()
	}
	return Swarm{Iteration: s.Iteration, Particles: ps, Global: s.Global}
}

// bestIndex returns the first particle holding the largest personal best.
func (s Swarm) bestIndex() int {
	bests := make([]float64, len(s.Particles))
	for i, p := range s.Particles {
		bests[i] = p.Best
	}
	return floats.MaxIdx(bests)
}
