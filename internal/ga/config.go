package ga

import (
	"fmt"

	"github.com/cwbudde/gapso/internal/problem"
)

// CrossoverMode selects the crossover operator.
type CrossoverMode int

const (
	OnePoint CrossoverMode = iota
	TwoPoint
)

func (m CrossoverMode) String() string {
	switch m {
	case OnePoint:
		return "one-point"
	case TwoPoint:
		return "two-point"
	default:
		return fmt.Sprintf("CrossoverMode(%d)", int(m))
	}
}

// ParseCrossoverMode accepts "one-point"/"1" and "two-point"/"2".
func ParseCrossoverMode(s string) (CrossoverMode, error) {
	switch s {
	case "one-point", "one", "1":
		return OnePoint, nil
	case "two-point", "two", "2":
		return TwoPoint, nil
	}
	return 0, fmt.Errorf("%w: unknown crossover mode %q", problem.ErrInvalidArgument, s)
}

type Config struct {
	Population    int
	Generations   int
	CrossoverRate float64
	MutationRate  float64
	Crossover     CrossoverMode
	// Precision is the requested resolution of every decoded variable.
	Precision float64
}

func (c Config) Validate() error {
	if c.Population <= 1 {
		return fmt.Errorf("%w: population must be > 1 (got %d)", problem.ErrInvalidArgument, c.Population)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must be >= 0 (got %d)", problem.ErrInvalidArgument, c.Generations)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf("%w: crossover rate must be in [0,1] (got %f)", problem.ErrInvalidArgument, c.CrossoverRate)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf("%w: mutation rate must be in [0,1] (got %f)", problem.ErrInvalidArgument, c.MutationRate)
	}
	if c.Crossover != OnePoint && c.Crossover != TwoPoint {
		return fmt.Errorf("%w: unknown crossover mode %d", problem.ErrInvalidArgument, int(c.Crossover))
	}
	if !(c.Precision > 0) {
		return fmt.Errorf("%w: precision must be > 0 (got %g)", problem.ErrInvalidArgument, c.Precision)
	}
	return nil
}

func DefaultConfig() Config {
	return Config{
		Population:    50,
		Generations:   200,
		CrossoverRate: 0.8,
		MutationRate:  0.1,
		Crossover:     OnePoint,
		Precision:     1e-4,
	}
}
