package shape

import (
	"fmt"

	"github.com/chazu/hypershape/pkg/cga"
)

// ValidationSeverity indicates whether a validation finding means the arena
// is corrupt or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // arena invariant broken
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ID       ID                 // which shape has the problem (zero if arena-level)
	Message  string             // human-readable description
	Severity ValidationSeverity // error or warning
}

func (e ValidationError) Error() string {
	if e.ID.IsZero() {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] shape %s: %s", e.Severity, e.ID, e.Message)
}

// Validate checks the structural invariants of the arena and returns every
// finding. An empty slice means the arena is valid. It never mutates the
// arena.
func (a *Arena) Validate() []ValidationError {
	var errs []ValidationError
	errs = append(errs, a.validateRoots()...)
	errs = append(errs, a.validateBoundaries()...)
	errs = append(errs, a.validateDAG()...)
	errs = append(errs, a.validateReachable()...)
	errs = append(errs, a.validatePolygons()...)
	return errs
}

func (a *Arena) liveIDs() []ID {
	ids := make([]ID, 0, a.Len())
	it := a.live.Iterator()
	for it.HasNext() {
		idx := it.Next()
		ids = append(ids, ID{index: idx, gen: a.slots[idx].gen})
	}
	return ids
}

func (a *Arena) validateRoots() []ValidationError {
	var errs []ValidationError
	if len(a.roots) == 0 {
		errs = append(errs, ValidationError{
			Message:  "arena has no roots",
			Severity: SeverityWarning,
		})
	}
	seen := make(map[ID]bool, len(a.roots))
	for _, r := range a.roots {
		s, err := a.get(r.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Message:  fmt.Sprintf("root %s does not exist", r),
				Severity: SeverityError,
			})
			continue
		}
		if s.NDim() != a.NDim() {
			errs = append(errs, ValidationError{
				ID:       r.ID,
				Message:  fmt.Sprintf("root has dimension %d, want %d", s.NDim(), a.NDim()),
				Severity: SeverityError,
			})
		}
		if seen[r.ID] {
			errs = append(errs, ValidationError{
				ID:       r.ID,
				Message:  "shape appears more than once among the roots",
				Severity: SeverityError,
			})
		}
		seen[r.ID] = true
	}
	return errs
}

// validateBoundaries checks that every boundary element is live and has
// exactly one dimension less than its parent.
func (a *Arena) validateBoundaries() []ValidationError {
	var errs []ValidationError
	for _, id := range a.liveIDs() {
		s := &a.slots[id.index].shape
		if s.Manifold.SpaceNDim() != a.NDim() {
			errs = append(errs, ValidationError{
				ID:       id,
				Message:  fmt.Sprintf("manifold lives in %d dimensions, want %d", s.Manifold.SpaceNDim(), a.NDim()),
				Severity: SeverityError,
			})
		}
		for _, r := range s.Boundary.Refs() {
			child, err := a.get(r.ID)
			if err != nil {
				errs = append(errs, ValidationError{
					ID:       id,
					Message:  fmt.Sprintf("boundary reference %s is stale", r),
					Severity: SeverityError,
				})
				continue
			}
			if child.NDim()+1 != s.NDim() {
				errs = append(errs, ValidationError{
					ID:       id,
					Message:  fmt.Sprintf("boundary element %s has dimension %d, want %d", r, child.NDim(), s.NDim()-1),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

// validateDAG checks for cycles using DFS with 3-color marking.
func (a *Arena) validateDAG() []ValidationError {
	const (
		white = iota
		gray
		black
	)

	color := make(map[ID]int)
	var errs []ValidationError

	var visit func(id ID) bool
	visit = func(id ID) bool {
		switch color[id] {
		case black:
			return false
		case gray:
			errs = append(errs, ValidationError{
				ID:       id,
				Message:  "cycle detected through boundary references",
				Severity: SeverityError,
			})
			return true
		}

		color[id] = gray
		s, err := a.get(id)
		if err != nil {
			// Stale reference; handled by validateBoundaries.
			color[id] = black
			return false
		}
		for _, r := range s.Boundary.Refs() {
			if visit(r.ID) {
				return true
			}
		}
		color[id] = black
		return false
	}

	for _, id := range a.liveIDs() {
		if color[id] == white && visit(id) {
			break
		}
	}
	return errs
}

// validateReachable warns about live shapes no root reaches. They are
// removed by the next collection.
func (a *Arena) validateReachable() []ValidationError {
	marked := a.mark(a.roots)
	var errs []ValidationError
	for _, id := range a.liveIDs() {
		if !marked.Contains(id.index) {
			errs = append(errs, ValidationError{
				ID:       id,
				Message:  "shape is not reachable from any root (garbage)",
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// validatePolygons warns about two-dimensional shapes whose edges do not
// close up. Every endpoint of every edge must meet another edge's endpoint,
// so after cancelling matching pairs nothing may remain.
func (a *Arena) validatePolygons() []ValidationError {
	var errs []ValidationError
	for _, id := range a.liveIDs() {
		s := &a.slots[id.index].shape
		if s.NDim() != 2 {
			continue
		}
		var open []cga.Point
		for _, edge := range s.Boundary.Refs() {
			e, err := a.get(edge.ID)
			if err != nil {
				continue
			}
			for _, pp := range e.Boundary.Refs() {
				pts, err := a.endpoints(pp)
				if err != nil {
					errs = append(errs, ValidationError{
						ID:       id,
						Message:  fmt.Sprintf("edge %s: %v", edge, err),
						Severity: SeverityWarning,
					})
					continue
				}
				for _, p := range pts {
					open = cancelPoint(open, p)
				}
			}
		}
		if len(open) > 0 {
			errs = append(errs, ValidationError{
				ID:       id,
				Message:  fmt.Sprintf("polygon is not closed, %d unmatched vertices", len(open)),
				Severity: SeverityWarning,
			})
		}
	}
	return errs
}

// cancelPoint removes a point matching p from pts, or appends p if there is
// none.
func cancelPoint(pts []cga.Point, p cga.Point) []cga.Point {
	for i, q := range pts {
		if q.ApproxEq(p) {
			return append(pts[:i], pts[i+1:]...)
		}
	}
	return append(pts, p)
}
