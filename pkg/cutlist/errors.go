package cutlist

import (
	"errors"
	"fmt"
)

// Sentinel errors for cut list problems.
var (
	ErrNoManifest    = errors.New("cut list not found")
	ErrMissingField  = errors.New("missing required field")
	ErrUnknownKind   = errors.New("unknown cut kind")
	ErrBadRemove     = errors.New("invalid remove value")
	ErrDimension     = errors.New("dimension mismatch")
	ErrBadDimensions = errors.New("ndim out of range")
	ErrLabelSide     = errors.New("label needs exactly one kept side")
)

// CutError reports a failure applying the cut at Index.
type CutError struct {
	Index int
	Err   error
}

func (e *CutError) Error() string {
	return fmt.Sprintf("cut %d: %v", e.Index, e.Err)
}

func (e *CutError) Unwrap() error { return e.Err }

// ValidationError is a single problem found by Validate. Index is -1 for
// problems with the manifest header.
type ValidationError struct {
	Index int
	Field string
	Err   error
}

func (e ValidationError) Error() string {
	switch {
	case e.Index < 0 && e.Field != "":
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	case e.Index < 0:
		return e.Err.Error()
	case e.Field != "":
		return fmt.Sprintf("cut %d: %s: %v", e.Index, e.Field, e.Err)
	default:
		return fmt.Sprintf("cut %d: %v", e.Index, e.Err)
	}
}

func (e ValidationError) Unwrap() error { return e.Err }
