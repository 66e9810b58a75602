package shape

import (
	"errors"
	"fmt"

	"github.com/chazu/hypershape/pkg/manifold"
)

var (
	// ErrRankMismatch is returned when a boundary element does not have
	// exactly one dimension less than its parent.
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrFlushAtRoot is returned when a root shape, or a face of a root
	// shape, coincides with the cut.
	ErrFlushAtRoot = errors.New("root shape is flush with cut")

	// ErrAmbiguousIntersection is returned when more than one boundary
	// element of a shape is flush with the cut.
	ErrAmbiguousIntersection = errors.New("multiple intersection shapes")

	// ErrDegenerateManifold is returned when a geometric operation fails to
	// produce a real result.
	ErrDegenerateManifold = manifold.ErrDegenerate

	// ErrStaleHandle is returned when a handle does not refer to a live
	// shape.
	ErrStaleHandle = errors.New("stale shape handle")
)

// RankMismatchError describes a rejected boundary element.
type RankMismatchError struct {
	Child      ID
	ChildNDim  int
	ParentNDim int
}

func (e *RankMismatchError) Error() string {
	return fmt.Sprintf("%v: boundary element %s has dimension %d, want %d",
		ErrRankMismatch, e.Child, e.ChildNDim, e.ParentNDim-1)
}

func (e *RankMismatchError) Unwrap() error { return ErrRankMismatch }

// FlushAtRootError names the root that coincides with the cut.
type FlushAtRootError struct {
	Root Ref
}

func (e *FlushAtRootError) Error() string {
	return fmt.Sprintf("%v: root %s", ErrFlushAtRoot, e.Root)
}

func (e *FlushAtRootError) Unwrap() error { return ErrFlushAtRoot }

// AmbiguousIntersectionError names the shape with several flush boundary
// elements.
type AmbiguousIntersectionError struct {
	Shape ID
	First Ref
	Other Ref
}

func (e *AmbiguousIntersectionError) Error() string {
	return fmt.Sprintf("%v: shape %s has flush boundary elements %s and %s",
		ErrAmbiguousIntersection, e.Shape, e.First, e.Other)
}

func (e *AmbiguousIntersectionError) Unwrap() error { return ErrAmbiguousIntersection }

// StaleHandleError names a handle that no longer refers to a live shape.
type StaleHandleError struct {
	ID ID
}

func (e *StaleHandleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrStaleHandle, e.ID)
}

func (e *StaleHandleError) Unwrap() error { return ErrStaleHandle }

// DegenerateManifoldError names the geometric operation that failed.
type DegenerateManifoldError = manifold.DegenerateError
