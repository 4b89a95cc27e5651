package opt

import (
	"context"

	"github.com/cwbudde/gapso/internal/problem"
)

// Optimizer defines an optimization algorithm interface
type Optimizer interface {
	// Solve runs the optimizer to its configured step count.
	// prob: a validated problem (bounds attached)
	// Returns: the result artifact, or the best-so-far artifact plus the
	// context error when ctx is cancelled mid-run.
	Solve(ctx context.Context, prob *problem.Problem) (*Result, error)
}
