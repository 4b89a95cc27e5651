package pso

import (
	"fmt"

	"github.com/cwbudde/gapso/internal/problem"
)

type Config struct {
	Iterations int
	Particles  int

	W  float64
	C1 float64
	C2 float64

	// VMaxFactor sets vmax_i as a fraction of the range of dimension i.
	VMaxFactor float64
}

func DefaultConfig() Config {
	return Config{
		Iterations: 100,
		Particles:  50,

		W:  0.8,
		C1: 2,
		C2: 2,

		VMaxFactor: 0.3,
	}
}

func (c Config) Validate() error {
	if c.Iterations < 0 {
		return fmt.Errorf("%w: iterations must be >= 0 (got %d)", problem.ErrInvalidArgument, c.Iterations)
	}
	if c.Particles <= 0 {
		return fmt.Errorf("%w: particles must be > 0 (got %d)", problem.ErrInvalidArgument, c.Particles)
	}
	if c.W < 0 {
		return fmt.Errorf("%w: w must be >= 0 (got %f)", problem.ErrInvalidArgument, c.W)
	}
	if c.C1 < 0 || c.C2 < 0 {
		return fmt.Errorf("%w: c1 and c2 must be >= 0 (got %f, %f)", problem.ErrInvalidArgument, c.C1, c.C2)
	}
	if !(c.VMaxFactor > 0) {
		return fmt.Errorf("%w: vmax factor must be > 0 (got %f)", problem.ErrInvalidArgument, c.VMaxFactor)
	}
	return nil
}
