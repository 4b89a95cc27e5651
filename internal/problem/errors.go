package problem

import "errors"

// ErrInvalidArgument is returned for shape and arity errors: mismatched bounds,
// a missing objective, or a decision vector of the wrong length.
// Use errors.Is(err, ErrInvalidArgument) to check for this error.
var ErrInvalidArgument = &InvalidArgumentError{}

// ErrDegenerate marks a configuration that was accepted but had to be resolved
// by a fallback policy (uniform roulette table, minimum bit count). It is only
// ever reported through logs, never returned from an optimizer run.
var ErrDegenerate = errors.New("degenerate configuration")

// InvalidArgumentError describes which argument was rejected and why.
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	if e.Field == "" {
		return "invalid argument"
	}
	return "invalid argument: " + e.Field + " " + e.Reason
}

func (e *InvalidArgumentError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentError)
	return ok
}

func invalid(field, reason string) error {
	return &InvalidArgumentError{Field: field, Reason: reason}
}
