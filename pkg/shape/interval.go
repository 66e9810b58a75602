package shape

import (
	"github.com/chazu/hypershape/pkg/cga"
	"github.com/chazu/hypershape/pkg/manifold"
)

// The boundary of a one-dimensional shape is a set of point pairs. Each
// point pair, read as a hypersurface of the line or circle, selects one
// closed interval: its inside. The shape is the intersection of all those
// intervals, so its boundary is kept as a minimal set of point pairs that
// describes the same region.

// MergeKind is the outcome of merging two intervals.
type MergeKind int

const (
	// MergeNoIntersection means the intervals cannot be merged into one.
	MergeNoIntersection MergeKind = iota
	// MergeOld means the union is one of the two input intervals.
	MergeOld
	// MergeNew means the union is a new interval.
	MergeNew
	// MergeWholeSpace means the union covers the whole locus.
	MergeWholeSpace
)

// MergeResult is the result of TryMerge.
type MergeResult struct {
	Kind     MergeKind
	Old      Ref
	Manifold manifold.Manifold
}

// endpoints returns the ordered endpoints of a point pair ref.
func (a *Arena) endpoints(r Ref) ([2]cga.Point, error) {
	m, err := a.Manifold(r)
	if err != nil {
		return [2]cga.Point{}, err
	}
	pts, ok := m.PointPair()
	if !ok {
		return [2]cga.Point{}, &DegenerateManifoldError{Op: "point pair endpoints", Manifold: m}
	}
	return pts, nil
}

// closedContains reports whether p lies in the closed interval selected by
// the point pair r.
func (a *Arena) closedContains(r Ref, p cga.Point, space manifold.Manifold) (bool, error) {
	m, err := a.Manifold(r)
	if err != nil {
		return false, err
	}
	return m.HasPoint(p, space) != manifold.Outside, nil
}

// TryMerge computes the union of the intervals selected by the point pairs
// ab and pq on the one-dimensional manifold space. It relies only on point
// containment, never on coordinate order, so it works on circles too.
func (a *Arena) TryMerge(ab, pq Ref, space manifold.Manifold) (MergeResult, error) {
	abPts, err := a.endpoints(ab)
	if err != nil {
		return MergeResult{}, err
	}
	pqPts, err := a.endpoints(pq)
	if err != nil {
		return MergeResult{}, err
	}
	ea, eb := abPts[0], abPts[1]
	ep, eq := pqPts[0], pqPts[1]

	if ea.ApproxEq(ep) && eb.ApproxEq(eq) {
		return MergeResult{Kind: MergeOld, Old: ab}, nil
	}

	var flags [4]bool
	checks := []struct {
		r Ref
		p cga.Point
	}{{ab, ep}, {ab, eq}, {pq, ea}, {pq, eb}}
	for i, chk := range checks {
		if flags[i], err = a.closedContains(chk.r, chk.p, space); err != nil {
			return MergeResult{}, err
		}
	}
	abHasP, abHasQ, pqHasA, pqHasB := flags[0], flags[1], flags[2], flags[3]

	switch {
	case abHasP && abHasQ && pqHasA && pqHasB:
		return MergeResult{Kind: MergeWholeSpace}, nil
	case abHasP && abHasQ:
		return MergeResult{Kind: MergeOld, Old: ab}, nil
	case pqHasA && pqHasB:
		return MergeResult{Kind: MergeOld, Old: pq}, nil
	}

	var start, end cga.Point
	switch {
	case abHasP:
		start = ea
	case pqHasA:
		start = ep
	default:
		return MergeResult{Kind: MergeNoIntersection}, nil
	}
	switch {
	case abHasQ:
		end = eb
	case pqHasB:
		end = eq
	default:
		return MergeResult{Kind: MergeNoIntersection}, nil
	}

	m, err := manifold.NewPointPair(a.NDim(), start, end)
	if err != nil {
		return MergeResult{}, err
	}
	return MergeResult{Kind: MergeNew, Manifold: m}, nil
}

// incrementalSimplify intersects the region bounded by existing with the
// interval selected by next. It returns false when the intersection is
// empty.
//
// Intersections are computed as complements of unions: each existing
// interval is merged with next after negating both.
func (a *Arena) incrementalSimplify(existing RefSet, next Ref, space manifold.Manifold) (RefSet, bool, error) {
	pts, err := a.endpoints(next)
	if err != nil {
		return RefSet{}, false, err
	}
	if pts[0].ApproxEq(pts[1]) {
		return a.degenerateInterval(existing, next, pts[0], space)
	}

	var out RefSet
	for _, e := range existing.Refs() {
		res, err := a.TryMerge(e.Neg(), next.Neg(), space)
		if err != nil {
			return RefSet{}, false, err
		}
		switch res.Kind {
		case MergeOld:
			next = res.Old.Neg()
		case MergeNew:
			id, err := a.add(res.Manifold.Flip(), RefSet{}, "", "")
			if err != nil {
				return RefSet{}, false, err
			}
			next = Pos(id)
		case MergeWholeSpace:
			return RefSet{}, false, nil
		case MergeNoIntersection:
			out.Insert(e)
		}
	}
	out.Insert(next)
	return out, true, nil
}

// degenerateInterval handles a point pair whose two points coincide. Such
// a pair selects either the whole locus or nothing, which is decided by
// testing one other point of the locus.
func (a *Arena) degenerateInterval(existing RefSet, next Ref, touch cga.Point, space manifold.Manifold) (RefSet, bool, error) {
	probe := cga.Infinity
	if !space.IsFlat() {
		c, _, ok := cga.CenterRadius(space.OPNS())
		if !ok || touch.IsInfinite() {
			m, _ := a.Manifold(next)
			return RefSet{}, false, &DegenerateManifoldError{Op: "degenerate interval", Manifold: m}
		}
		coords := make([]float64, a.NDim())
		for i := range coords {
			coords[i] = 2*c.At(i) - touch.At(i)
		}
		probe = cga.NewPoint(coords...)
	}
	m, err := a.Manifold(next)
	if err != nil {
		return RefSet{}, false, err
	}
	if m.HasPoint(probe, space) == manifold.Inside {
		return existing, true, nil
	}
	return RefSet{}, false, nil
}

// simplifyIntervals reduces a set of point pairs to a minimal set bounding
// the same region of space. It returns false when the region is empty.
func (a *Arena) simplifyIntervals(intervals RefSet, space manifold.Manifold) (RefSet, bool, error) {
	var out RefSet
	for _, iv := range intervals.Refs() {
		next, ok, err := a.incrementalSimplify(out, iv, space)
		if err != nil {
			return RefSet{}, false, err
		}
		if !ok {
			return RefSet{}, false, nil
		}
		out = next
	}
	return out, true, nil
}
