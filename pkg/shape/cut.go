package shape

import (
	"context"
	"fmt"

	"github.com/chazu/hypershape/pkg/manifold"
)

// CutParams describes one cut.
type CutParams struct {
	// Cut is the hypersurface splitting every root.
	Cut manifold.Manifold
	// RemoveInside drops the pieces inside the cut.
	RemoveInside bool
	// RemoveOutside drops the pieces outside the cut.
	RemoveOutside bool
	// InsideLabel names every new shape lying on the cut as seen from the
	// inside. It is ignored when the inside is removed.
	InsideLabel string
	// OutsideLabel names every new shape lying on the cut as seen from the
	// outside. It is ignored when the outside is removed.
	OutsideLabel string
}

// LabelKept labels the new shapes on the cut for the one side the cut
// keeps. It fails when both sides or neither side are kept.
func (p *CutParams) LabelKept(label string) error {
	switch {
	case p.RemoveInside && p.RemoveOutside:
		return fmt.Errorf("label %q: both sides are removed", label)
	case p.RemoveOutside:
		p.InsideLabel = label
	case p.RemoveInside:
		p.OutsideLabel = label
	default:
		return fmt.Errorf("label %q: both sides are kept, label each side instead", label)
	}
	return nil
}

// labels returns the labels of the inside and outside orientation of new
// intersection shapes. A removed side carries no label.
func (p CutParams) labels() (inside, outside string) {
	if !p.RemoveInside {
		inside = p.InsideLabel
	}
	if !p.RemoveOutside {
		outside = p.OutsideLabel
	}
	return inside, outside
}

// SplitResult is the outcome of cutting one shape. Flush means the shape
// lies on the cut. Otherwise Inside and Outside hold the parts of the shape
// on either side of the cut and Intersection holds the part on the cut;
// each may be the zero Ref.
type SplitResult struct {
	Flush        bool
	Inside       Ref
	Outside      Ref
	Intersection Ref
}

// Mul applies an orientation to a result. Flipping a shape does not move
// it across the cut, so a Neg sign negates every ref in place.
func (r SplitResult) Mul(s manifold.Sign) SplitResult {
	if r.Flush || s == manifold.Pos {
		return r
	}
	return SplitResult{
		Inside:       r.Inside.Neg(),
		Outside:      r.Outside.Neg(),
		Intersection: r.Intersection.Neg(),
	}
}

func (r SplitResult) String() string {
	if r.Flush {
		return "Flush"
	}
	return fmt.Sprintf("NonFlush{inside: %s, outside: %s, intersection: %s}", r.Inside, r.Outside, r.Intersection)
}

// cutter holds the state of a single cut pass. Its cache is keyed by
// unsigned handle and never outlives the pass.
type cutter struct {
	a      *Arena
	params CutParams
	cache  map[ID]SplitResult
}

func newCutter(a *Arena, params CutParams) *cutter {
	return &cutter{a: a, params: params, cache: make(map[ID]SplitResult)}
}

// Cut splits every root by params.Cut, keeps the requested sides as the new
// roots and collects everything else. On error the roots are left
// unchanged.
func (a *Arena) Cut(params CutParams) error {
	if params.Cut.SpaceNDim() != a.NDim() || params.Cut.NDim() != a.NDim()-1 {
		return fmt.Errorf("cut: %s is not a hypersurface of %s", params.Cut, a.space)
	}

	before, added := len(a.roots), a.added
	roots, err := a.cutRoots(params)
	if err != nil {
		a.Collect()
		a.log.LogCut(context.Background(), params, before, before, 0, 0, err)
		return fmt.Errorf("cut %s: %w", params.Cut, err)
	}
	a.roots = roots
	collected := a.Collect()
	a.log.LogCut(context.Background(), params, before, len(roots), a.added-added, collected, nil)
	return nil
}

func (a *Arena) cutRoots(params CutParams) ([]Ref, error) {
	c := newCutter(a, params)
	var roots []Ref
	for _, root := range a.roots {
		if err := c.checkRoot(root); err != nil {
			return nil, err
		}
		res, err := c.cutShape(root)
		if err != nil {
			return nil, err
		}
		if res.Flush {
			return nil, &FlushAtRootError{Root: root}
		}
		if !res.Inside.IsZero() && !params.RemoveInside {
			roots = append(roots, res.Inside)
		}
		if !res.Outside.IsZero() && !params.RemoveOutside {
			roots = append(roots, res.Outside)
		}
	}
	return roots, nil
}

// checkRoot rejects a cut lying on one of the faces of a root.
func (c *cutter) checkRoot(root Ref) error {
	s, err := c.a.get(root.ID)
	if err != nil {
		return err
	}
	for _, face := range s.Boundary.Refs() {
		m, err := c.a.Manifold(face)
		if err != nil {
			return err
		}
		if _, ok := m.RelativeOrientation(c.params.Cut); ok {
			return &FlushAtRootError{Root: root}
		}
	}
	return nil
}

// Split cuts a single shape without touching the roots. Shapes it creates
// stay in the arena until the next collection.
func (a *Arena) Split(r Ref, params CutParams) (SplitResult, error) {
	if _, err := a.get(r.ID); err != nil {
		return SplitResult{}, err
	}
	return newCutter(a, params).cutShape(r)
}

func (c *cutter) cutShape(r Ref) (SplitResult, error) {
	res, ok := c.cache[r.ID]
	if !ok {
		var err error
		res, err = c.cutShapeUncached(r.ID)
		if err != nil {
			return SplitResult{}, fmt.Errorf("shape %s: %w", r.ID, err)
		}
		c.cache[r.ID] = res
	}
	return res.Mul(r.Sign), nil
}

func (c *cutter) cutShapeUncached(id ID) (SplitResult, error) {
	s, err := c.a.get(id)
	if err != nil {
		return SplitResult{}, err
	}
	split, err := s.Manifold.Split(c.params.Cut, c.a.space)
	if err != nil {
		return SplitResult{}, err
	}
	switch split.Kind {
	case manifold.SplitFlush:
		return SplitResult{Flush: true}, nil
	case manifold.SplitInside:
		return SplitResult{Inside: Pos(id)}, nil
	case manifold.SplitOutside:
		return SplitResult{Outside: Pos(id)}, nil
	}

	// One-dimensional shapes may have a disconnected boundary, so they go
	// through the interval simplifier instead.
	if s.NDim() == 1 {
		return c.cut1D(id, *s, split.Intersection)
	}
	return c.cutND(id, *s, split.Intersection)
}

func (c *cutter) cut1D(id ID, s Shape, im manifold.Manifold) (SplitResult, error) {
	in, out := c.params.labels()
	ixID, err := c.a.add(im, RefSet{}, in, out)
	if err != nil {
		return SplitResult{}, err
	}
	ix := Pos(ixID)

	var res SplitResult
	inside, ok, err := c.a.incrementalSimplify(s.Boundary, ix, s.Manifold)
	if err != nil {
		return SplitResult{}, err
	}
	if ok {
		sub, err := c.a.addSubshape(id, inside)
		if err != nil {
			return SplitResult{}, err
		}
		res.Inside = Pos(sub)
	}

	outside, ok, err := c.a.incrementalSimplify(s.Boundary, ix.Neg(), s.Manifold)
	if err != nil {
		return SplitResult{}, err
	}
	if ok {
		sub, err := c.a.addSubshape(id, outside)
		if err != nil {
			return SplitResult{}, err
		}
		res.Outside = Pos(sub)
	}

	// The intersection belongs to the shape only if the shape is really
	// split, or if it touches the cut at one of its endpoints.
	if res.Inside.IsZero() || res.Outside.IsZero() {
		touching, err := c.a.touches(s, im)
		if err != nil {
			return SplitResult{}, err
		}
		if !touching {
			return res, nil
		}
	}
	res.Intersection = ix
	return res, nil
}

// touches reports whether any finite point of the point pair im lies in the
// closed one-dimensional shape s.
func (a *Arena) touches(s Shape, im manifold.Manifold) (bool, error) {
	pts, ok := im.PointPair()
	if !ok {
		return false, nil
	}
outer:
	for _, p := range pts {
		if p.IsInfinite() {
			continue
		}
		for _, b := range s.Boundary.Refs() {
			m, err := a.Manifold(b)
			if err != nil {
				return false, err
			}
			if m.HasPoint(p, s.Manifold) == manifold.Outside {
				continue outer
			}
		}
		return true, nil
	}
	return false, nil
}

func (c *cutter) cutND(id ID, s Shape, im manifold.Manifold) (SplitResult, error) {
	var insideBoundary, outsideBoundary, intersectionBoundary RefSet
	var flushChild Ref

	for _, child := range s.Boundary.Refs() {
		res, err := c.cutShape(child)
		if err != nil {
			return SplitResult{}, err
		}
		if res.Flush {
			if !flushChild.IsZero() {
				return SplitResult{}, &AmbiguousIntersectionError{Shape: id, First: flushChild, Other: child}
			}
			flushChild = child
			continue
		}
		insideBoundary.Insert(res.Inside)
		outsideBoundary.Insert(res.Outside)
		intersectionBoundary.Insert(res.Intersection.Neg())
	}

	if im.NDim() == 1 {
		simplified, ok, err := c.a.simplifyIntervals(intersectionBoundary, im)
		if err != nil {
			return SplitResult{}, err
		}
		if !ok {
			simplified = RefSet{}
		}
		intersectionBoundary = simplified
	}

	anyInside, anyOutside := true, true
	intersection := flushChild
	if !flushChild.IsZero() {
		m, err := c.a.Manifold(flushChild)
		if err != nil {
			return SplitResult{}, err
		}
		sign, ok := m.RelativeOrientation(im)
		if !ok {
			return SplitResult{}, &DegenerateManifoldError{Op: "orient flush boundary", Manifold: m}
		}
		if sign == manifold.Pos {
			anyOutside = false
		} else {
			anyInside = false
		}
	} else {
		nonEmpty := intersectionBoundary.Len() > 0
		if !nonEmpty {
			var err error
			if nonEmpty, err = c.a.containsManifold(s, im); err != nil {
				return SplitResult{}, err
			}
		}
		if nonEmpty {
			in, out := c.params.labels()
			x, err := c.a.add(im, intersectionBoundary, in, out)
			if err != nil {
				return SplitResult{}, err
			}
			intersection = Pos(x)
		}
	}

	if !intersection.IsZero() {
		insideBoundary.Insert(intersection)
		outsideBoundary.Insert(intersection.Neg())
	}

	var res SplitResult
	res.Intersection = intersection
	if anyInside && insideBoundary.Len() > 0 {
		sub, err := c.a.addSubshape(id, insideBoundary)
		if err != nil {
			return SplitResult{}, err
		}
		res.Inside = Pos(sub)
	}
	if anyOutside && outsideBoundary.Len() > 0 {
		sub, err := c.a.addSubshape(id, outsideBoundary)
		if err != nil {
			return SplitResult{}, err
		}
		res.Outside = Pos(sub)
	}
	return res, nil
}

// containsManifold reports whether m, a hypersurface of the shape's
// manifold, lies entirely within the shape: no boundary element may have
// any part of m on its outside.
func (a *Arena) containsManifold(s Shape, m manifold.Manifold) (bool, error) {
	for _, b := range s.Boundary.Refs() {
		bs, err := a.get(b.ID)
		if err != nil {
			return false, err
		}
		w, err := m.WhichSide(bs.Manifold, s.Manifold)
		if err != nil {
			return false, err
		}
		if w.Mul(b.Sign).IsAnyOutside {
			return false, nil
		}
	}
	return true, nil
}

// Carve cuts every root and keeps only the inside of cut. The new faces
// are labelled as seen from the kept inside.
func (a *Arena) Carve(cut manifold.Manifold, label string) error {
	return a.Cut(CutParams{Cut: cut, RemoveOutside: true, InsideLabel: label})
}

// Slice cuts every root and keeps both sides of cut. The new faces carry
// inside as seen from the inside pieces and outside as seen from the
// outside pieces; either may be empty.
func (a *Arena) Slice(cut manifold.Manifold, inside, outside string) error {
	return a.Cut(CutParams{Cut: cut, InsideLabel: inside, OutsideLabel: outside})
}
