package cutlist

import (
	"fmt"

	"github.com/chazu/hypershape/pkg/cga"
)

// Validate checks a cut list for structural correctness: a dimension in
// range, a known kind for every cut, vectors matching the dimension, a
// valid remove value and a label only where one side is kept. Geometry is not checked beyond obvious degeneracy.
func (cl *CutList) Validate() []ValidationError {
	var errs []ValidationError

	if cl.NDim < 1 || cl.NDim > cga.MaxNDim {
		errs = append(errs, ValidationError{
			Index: -1,
			Field: "ndim",
			Err:   fmt.Errorf("%w: %d not in [1, %d]", ErrBadDimensions, cl.NDim, cga.MaxNDim),
		})
		// Nothing else can be checked against an invalid dimension.
		return errs
	}

	for i, c := range cl.Cuts {
		switch c.Kind {
		case "":
			errs = append(errs, ValidationError{Index: i, Field: "kind", Err: ErrMissingField})
		case KindPlane:
			errs = append(errs, checkVector(i, "normal", c.Normal, cl.NDim)...)
			if len(c.Normal) == cl.NDim && isZero(c.Normal) {
				errs = append(errs, ValidationError{Index: i, Field: "normal", Err: fmt.Errorf("normal is zero")})
			}
		case KindSphere:
			errs = append(errs, checkVector(i, "center", c.Center, cl.NDim)...)
			if cga.IsApproxZero(c.Radius) {
				errs = append(errs, ValidationError{Index: i, Field: "radius", Err: fmt.Errorf("radius is zero")})
			}
		default:
			errs = append(errs, ValidationError{Index: i, Field: "kind", Err: fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)})
		}

		switch c.Remove {
		case RemoveInside, RemoveOutside:
		case "", RemoveNone:
			if c.Label != "" {
				errs = append(errs, ValidationError{Index: i, Field: "label", Err: fmt.Errorf("%w: both sides are kept, use inside_label and outside_label", ErrLabelSide)})
			}
		default:
			errs = append(errs, ValidationError{Index: i, Field: "remove", Err: fmt.Errorf("%w: %q", ErrBadRemove, c.Remove)})
		}
	}

	return errs
}

func checkVector(i int, field string, v []float64, ndim int) []ValidationError {
	if len(v) == 0 {
		return []ValidationError{{Index: i, Field: field, Err: ErrMissingField}}
	}
	if len(v) != ndim {
		return []ValidationError{{
			Index: i,
			Field: field,
			Err:   fmt.Errorf("%w: %d components, ndim is %d", ErrDimension, len(v), ndim),
		}}
	}
	return nil
}

func isZero(v []float64) bool {
	for _, x := range v {
		if !cga.IsApproxZero(x) {
			return false
		}
	}
	return true
}
