package shape

import (
	"github.com/chazu/hypershape/pkg/cga"
	"github.com/chazu/hypershape/pkg/manifold"
)

// ContainsPoint reports whether p lies on r's manifold and in the closed
// intersection of the half-spaces bounded by r's boundary manifolds. A point
// on a boundary manifold is accepted at once when that face contains it.
// This is membership in r only when r is that intersection, as a convex
// piece is; a non-convex shape can be misreported. The sign of r is ignored.
func (a *Arena) ContainsPoint(r Ref, p cga.Point) (bool, error) {
	s, err := a.get(r.ID)
	if err != nil {
		return false, err
	}
	if !cga.PointMV(p).Wedge(s.Manifold.OPNS()).IsZero() {
		return false, nil
	}
	for _, b := range s.Boundary.Refs() {
		m, err := a.Manifold(b)
		if err != nil {
			return false, err
		}
		switch m.HasPoint(p, s.Manifold) {
		case manifold.Outside:
			return false, nil
		case manifold.On:
			ok, err := a.ContainsPoint(b, p)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
	}
	return true, nil
}
