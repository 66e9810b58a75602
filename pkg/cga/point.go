package cga

import (
	"fmt"
	"math"
	"strings"
)

// Point is a Euclidean point or the point at infinity.
type Point struct {
	coords   []float64
	infinite bool
}

// Infinity is the conformal point at infinity.
var Infinity = Point{infinite: true}

// NewPoint returns the finite point with the given coordinates.
func NewPoint(coords ...float64) Point {
	return Point{coords: append([]float64(nil), coords...)}
}

// IsInfinite reports whether p is the point at infinity.
func (p Point) IsInfinite() bool { return p.infinite }

// Coords returns a copy of the coordinates of a finite point.
func (p Point) Coords() []float64 { return append([]float64(nil), p.coords...) }

// At returns coordinate i, treating missing trailing coordinates as zero.
func (p Point) At(i int) float64 {
	if i < len(p.coords) {
		return p.coords[i]
	}
	return 0
}

// NDim returns the number of stored coordinates.
func (p Point) NDim() int { return len(p.coords) }

// ApproxEq reports whether p and q are the same point within Epsilon.
func (p Point) ApproxEq(q Point) bool {
	if p.infinite || q.infinite {
		return p.infinite == q.infinite
	}
	n := max(len(p.coords), len(q.coords))
	for i := 0; i < n; i++ {
		if !ApproxEq(p.At(i), q.At(i)) {
			return false
		}
	}
	return true
}

// Dist returns the Euclidean distance between two finite points.
func (p Point) Dist(q Point) float64 {
	n := max(len(p.coords), len(q.coords))
	var sum float64
	for i := 0; i < n; i++ {
		d := p.At(i) - q.At(i)
		sum += d * d
	}
	return math.Sqrt(sum)
}

func (p Point) String() string {
	if p.infinite {
		return "∞"
	}
	parts := make([]string, len(p.coords))
	for i, c := range p.coords {
		parts[i] = fmt.Sprintf("%g", c)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// NO returns the null vector representing the origin.
func NO() Multivector {
	return FromTerms(Term{Coef: 0.5, Axes: EMinus}, Term{Coef: -0.5, Axes: EPlus})
}

// NI returns the null vector representing the point at infinity.
func NI() Multivector {
	return FromTerms(Term{Coef: 1, Axes: EMinus}, Term{Coef: 1, Axes: EPlus})
}

// Vector returns the Euclidean vector with the given components.
func Vector(v []float64) Multivector {
	terms := make([]Term, len(v))
	for i, x := range v {
		terms[i] = Term{Coef: x, Axes: Euclidean(i)}
	}
	return FromTerms(terms...)
}

// Pseudoscalar returns the unit pseudoscalar of the conformal algebra of an
// n-dimensional Euclidean space.
func Pseudoscalar(n int) Multivector {
	return FromTerms(Term{Coef: 1, Axes: Axes(1)<<(n+2) - 1})
}

// PointMV returns the conformal embedding of p.
func PointMV(p Point) Multivector {
	if p.infinite {
		return NI()
	}
	var norm2 float64
	for _, x := range p.coords {
		norm2 += x * x
	}
	return Vector(p.coords).Add(NO()).Add(NI().Scale(0.5 * norm2))
}

// NormalizePoint scales a point-like 1-blade so that its NO coefficient is
// one, or its NI coefficient if it has no NO component.
func NormalizePoint(b Multivector) Multivector {
	if no := b.NOCoef(); !IsApproxZero(no) {
		return b.Scale(1 / no)
	}
	if ni := b.NICoef(); !IsApproxZero(ni) {
		return b.Scale(1 / ni)
	}
	return b
}

// ToPoint extracts the point represented by a 1-blade. It returns false for
// the zero blade.
func ToPoint(b Multivector) (Point, bool) {
	if b.IsZero() {
		return Point{}, false
	}
	no := b.NOCoef()
	if IsApproxZero(no) {
		return Infinity, true
	}
	v := b.ToVector()
	for i := range v {
		if v[i] != 0 {
			v[i] /= no
		}
	}
	return Point{coords: v}, true
}
