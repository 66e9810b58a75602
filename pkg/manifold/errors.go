package manifold

import (
	"errors"
	"fmt"
)

// ErrDegenerate is returned when a geometric operation fails to produce a
// real result.
var ErrDegenerate = errors.New("degenerate manifold")

// DegenerateError reports which operation failed on which manifold.
type DegenerateError struct {
	Op       string
	Manifold Manifold
}

func (e *DegenerateError) Error() string {
	return fmt.Sprintf("%s: %v: %s", e.Op, ErrDegenerate, e.Manifold)
}

func (e *DegenerateError) Unwrap() error { return ErrDegenerate }

func degenerate(op string, m Manifold) error {
	return &DegenerateError{Op: op, Manifold: m}
}
