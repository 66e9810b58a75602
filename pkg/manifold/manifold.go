// Package manifold provides oriented geometric loci encoded as conformal
// blades, together with the exact predicates the shape kernel needs:
// orientation, side classification and intersection.
//
// A Manifold knows nothing about boundaries. It is an immutable value that
// may be compared, flipped and intersected freely.
package manifold

import (
	"fmt"
	"math"

	"github.com/chazu/hypershape/pkg/cga"
)

// Manifold is an oriented, connected locus of dimension NDim embedded in a
// Euclidean space of dimension SpaceNDim. It is stored as an OPNS blade of
// grade NDim+2.
type Manifold struct {
	spaceNDim int
	ndim      int
	opns      cga.Multivector
}

// WholeSpace returns the positively oriented n-dimensional space.
func WholeSpace(n int) Manifold {
	return Manifold{spaceNDim: n, ndim: n, opns: cga.Pseudoscalar(n)}
}

// FromOPNS wraps an OPNS blade living in an n-dimensional space.
func FromOPNS(n int, opns cga.Multivector) (Manifold, error) {
	m := Manifold{spaceNDim: n, opns: opns}
	if n < 1 || n > cga.MaxNDim {
		return m, fmt.Errorf("manifold: space dimension %d out of range", n)
	}
	if opns.IsZero() || opns.Grade() < 2 || opns.Grade() > n+2 {
		return m, degenerate("from opns", m)
	}
	m.ndim = opns.Grade() - 2
	return m, nil
}

// FromIPNS wraps an IPNS blade living in an n-dimensional space.
func FromIPNS(n int, ipns cga.Multivector) (Manifold, error) {
	return FromOPNS(n, cga.IPNSToOPNS(ipns, cga.Pseudoscalar(n)))
}

// Hyperplane returns the hyperplane {p : n·p = distance} where n is normal
// scaled to unit length. Its inside is the half-space n·p < distance.
func Hyperplane(normal []float64, distance float64) (Manifold, error) {
	var norm2 float64
	for _, x := range normal {
		norm2 += x * x
	}
	if cga.IsApproxZero(norm2) {
		return Manifold{spaceNDim: len(normal)}, fmt.Errorf("hyperplane: %w: zero normal", ErrDegenerate)
	}
	return FromIPNS(len(normal), cga.IPNSPlane(normal, distance))
}

// Hypersphere returns the hypersphere with the given center and radius.
// Its inside is the ball when radius is positive and the complement of the
// ball when radius is negative.
func Hypersphere(center []float64, radius float64) (Manifold, error) {
	if cga.IsApproxZero(radius) {
		return Manifold{spaceNDim: len(center)}, fmt.Errorf("hypersphere: %w: zero radius", ErrDegenerate)
	}
	return FromIPNS(len(center), cga.IPNSSphere(cga.NewPoint(center...), radius))
}

// NewPointPair returns the 0-dimensional manifold through a and b, oriented
// from a to b.
func NewPointPair(n int, a, b cga.Point) (Manifold, error) {
	return FromOPNS(n, cga.PointMV(a).Wedge(cga.PointMV(b)))
}

// SpaceNDim returns the dimension of the ambient Euclidean space.
func (m Manifold) SpaceNDim() int { return m.spaceNDim }

// NDim returns the intrinsic dimension of the manifold.
func (m Manifold) NDim() int { return m.ndim }

// OPNS returns the OPNS blade of the manifold.
func (m Manifold) OPNS() cga.Multivector { return m.opns }

// Flip returns the same locus with the opposite orientation.
func (m Manifold) Flip() Manifold {
	m.opns = m.opns.Neg()
	return m
}

// Mul flips m when s is Neg.
func (m Manifold) Mul(s Sign) Manifold {
	if s == Neg {
		return m.Flip()
	}
	return m
}

// IsFlat reports whether the manifold passes through infinity.
func (m Manifold) IsFlat() bool {
	return cga.OPNSIsFlat(m.opns)
}

// IPNS returns the IPNS blade of m within the whole space.
func (m Manifold) IPNS() cga.Multivector {
	return cga.OPNSToIPNS(m.opns, cga.Pseudoscalar(m.spaceNDim))
}

// IPNSIn returns the IPNS blade of m within space.
func (m Manifold) IPNSIn(space Manifold) cga.Multivector {
	return cga.OPNSToIPNS(m.opns, space.opns)
}

// RelativeOrientation returns the sign relating m to o if they are the same
// locus, or false otherwise.
func (m Manifold) RelativeOrientation(o Manifold) (Sign, bool) {
	if m.ndim != o.ndim {
		return Pos, false
	}
	f, ok := cga.ScaleFactorTo(m.opns, o.opns)
	if !ok {
		return Pos, false
	}
	if f < 0 {
		return Neg, true
	}
	return Pos, true
}

// ApproxEq reports whether m and o are the same locus with the same
// orientation.
func (m Manifold) ApproxEq(o Manifold) bool {
	s, ok := m.RelativeOrientation(o)
	return ok && s == Pos
}

// HasPoint classifies p against m, where m is a hypersurface of space.
func (m Manifold) HasPoint(p cga.Point, space Manifold) PointWhichSide {
	switch cga.IPNSQueryPoint(m.IPNSIn(space), p) {
	case 1:
		return Inside
	case -1:
		return Outside
	}
	return On
}

// PointPair returns the two ordered points of a 0-dimensional manifold.
func (m Manifold) PointPair() ([2]cga.Point, bool) {
	if m.ndim != 0 {
		return [2]cga.Point{}, false
	}
	return cga.PointPairToPoints(m.opns)
}

// WhichSide reports whether m, a submanifold of space, has any points
// strictly inside or strictly outside cut, a hypersurface of space.
//
// Two representative points of m are chosen so that they straddle cut
// whenever m crosses it, and each is classified against cut.
func (m Manifold) WhichSide(cut, space Manifold) (ManifoldWhichSide, error) {
	if m.ndim == space.ndim {
		return ManifoldWhichSide{IsAnyInside: true, IsAnyOutside: true}, nil
	}

	cutIPNS := cut.IPNSIn(space)
	var pts [2]cga.Point
	if m.ndim == 0 {
		pp, ok := cga.PointPairToPoints(m.opns)
		if !ok {
			if pp, ok = m.canonicalPointPair(); !ok {
				return ManifoldWhichSide{}, degenerate("which side", m)
			}
		}
		pts = pp
	} else {
		selfIPNS := m.IPNSIn(space)
		perp := selfIPNS.Wedge(cutIPNS)
		if perp.IsZero() {
			return ManifoldWhichSide{}, nil
		}
		pp, ok := m.straddlingPointPair(perp, selfIPNS, space)
		if !ok {
			if pp, ok = m.canonicalPointPair(); !ok {
				return ManifoldWhichSide{}, degenerate("which side", m)
			}
		}
		pts = pp
	}

	var ret ManifoldWhichSide
	for _, p := range pts {
		switch cga.IPNSQueryPoint(cutIPNS, p) {
		case 1:
			ret.IsAnyInside = true
		case -1:
			ret.IsAnyOutside = true
		}
	}
	return ret, nil
}

// straddlingPointPair intersects m with a manifold perpendicular to both m
// and the cut. The candidate points through which the perpendicular
// manifold may pass are tried in a fixed order until one produces a real
// point pair.
func (m Manifold) straddlingPointPair(perp, selfIPNS cga.Multivector, space Manifold) ([2]cga.Point, bool) {
	candidates := make([]cga.Multivector, 0, m.spaceNDim+2)
	for i := 0; i < m.spaceNDim; i++ {
		unit := make([]float64, i+1)
		unit[i] = 1
		candidates = append(candidates, cga.PointMV(cga.NewPoint(unit...)))
	}
	candidates = append(candidates, cga.NO(), cga.NI())

	for _, c := range candidates {
		pm := perp.Wedge(c)
		if cga.IsApproxZero(pm.Mag2()) {
			continue
		}
		pair := cga.IPNSToOPNS(selfIPNS.Wedge(cga.OPNSToIPNS(pm, space.opns)), space.opns)
		if pts, ok := cga.PointPairToPoints(pair); ok {
			return pts, true
		}
	}
	return [2]cga.Point{}, false
}

// canonicalPointPair returns two fixed points on a hypersurface: the poles
// of a hypersphere along the first axis, or the foot of the perpendicular
// from the origin of a hyperplane together with the point at infinity.
func (m Manifold) canonicalPointPair() ([2]cga.Point, bool) {
	s, ok := m.Surface()
	if !ok {
		return [2]cga.Point{}, false
	}
	switch s.Kind {
	case SurfaceSphere:
		a := s.Center.Coords()
		b := s.Center.Coords()
		if len(a) == 0 {
			a, b = make([]float64, 1), make([]float64, 1)
		}
		a[0] += s.Radius
		b[0] -= s.Radius
		return [2]cga.Point{cga.NewPoint(a...), cga.NewPoint(b...)}, true
	default:
		foot := make([]float64, len(s.Normal))
		for i, x := range s.Normal {
			foot[i] = x * s.Distance
		}
		return [2]cga.Point{cga.NewPoint(foot...), cga.Infinity}, true
	}
}

// Intersect returns the intersection of m with cut, both submanifolds of
// space, or false if the intersection is not real.
func (m Manifold) Intersect(cut, space Manifold) (Manifold, bool, error) {
	if m.ndim == space.ndim {
		s, ok := m.RelativeOrientation(space)
		if !ok {
			return Manifold{}, false, degenerate("intersect", m)
		}
		return cut.Mul(s), true, nil
	}
	x := cga.IPNSToOPNS(cut.IPNSIn(space).Wedge(m.IPNSIn(space)), space.opns)
	if !cga.OPNSIsReal(x) {
		return Manifold{}, false, nil
	}
	return Manifold{spaceNDim: m.spaceNDim, ndim: m.ndim - 1, opns: x}, true, nil
}

// Split classifies m against cut and, if the cut crosses m, computes the
// intersection.
func (m Manifold) Split(cut, space Manifold) (Split, error) {
	w, err := m.WhichSide(cut, space)
	if err != nil {
		return Split{}, err
	}
	switch {
	case !w.IsAnyInside && !w.IsAnyOutside:
		return Split{Kind: SplitFlush}, nil
	case !w.IsAnyOutside:
		return Split{Kind: SplitInside}, nil
	case !w.IsAnyInside:
		return Split{Kind: SplitOutside}, nil
	}
	x, ok, err := m.Intersect(cut, space)
	if err != nil {
		return Split{}, err
	}
	if !ok {
		return Split{}, fmt.Errorf("cannot split disconnected manifold: %w", degenerate("split", m))
	}
	return Split{Kind: SplitCrossing, Intersection: x}, nil
}

// Bounds returns the axis-aligned bounding box of a round manifold. Flat
// manifolds are unbounded and return false.
func (m Manifold) Bounds() (lo, hi []float64, ok bool) {
	if m.IsFlat() {
		return nil, nil, false
	}
	c, r, ok := cga.CenterRadius(m.opns)
	if !ok {
		return nil, nil, false
	}
	lo = make([]float64, m.spaceNDim)
	hi = make([]float64, m.spaceNDim)
	for i := range lo {
		lo[i] = c.At(i) - r
		hi[i] = c.At(i) + r
	}
	return lo, hi, true
}

func (m Manifold) String() string {
	switch {
	case m.ndim == m.spaceNDim:
		if m.opns.Get(cga.Axes(1)<<(m.spaceNDim+2)-1) < 0 {
			return fmt.Sprintf("-space(%d)", m.spaceNDim)
		}
		return fmt.Sprintf("space(%d)", m.spaceNDim)
	case m.ndim == 0:
		if pts, ok := cga.PointPairToPoints(m.opns); ok {
			return fmt.Sprintf("pair(%s, %s)", pts[0], pts[1])
		}
	case m.ndim == m.spaceNDim-1:
		if s, ok := m.Surface(); ok {
			return s.String()
		}
	}
	return fmt.Sprintf("manifold%d{%s}", m.ndim, m.opns)
}

func fmtVec(v []float64) string {
	return cga.NewPoint(v...).String()
}

func norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
