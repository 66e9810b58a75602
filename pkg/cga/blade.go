package cga

import "math"

// IPNSPlane returns the IPNS blade of the hyperplane with the given normal
// and distance from the origin. Points p with normal·p < distance are
// inside.
func IPNSPlane(normal []float64, distance float64) Multivector {
	var norm2 float64
	for _, x := range normal {
		norm2 += x * x
	}
	mag := math.Sqrt(norm2)
	unit := make([]float64, len(normal))
	for i, x := range normal {
		unit[i] = x / mag
	}
	return Vector(unit).Neg().Sub(NI().Scale(distance))
}

// IPNSSphere returns the IPNS blade of the hypersphere with the given center
// and radius. Points closer than |radius| to the center are inside when the
// radius is positive and outside when it is negative.
func IPNSSphere(center Point, radius float64) Multivector {
	s := PointMV(center).Sub(NI().Scale(0.5 * radius * radius))
	if radius < 0 {
		return s.Neg()
	}
	return s
}

// OPNSToIPNS converts an OPNS blade to IPNS within space.
func OPNSToIPNS(b, space Multivector) Multivector {
	inv, ok := space.Inverse()
	if !ok {
		return Zero()
	}
	return b.LeftContract(inv)
}

// IPNSToOPNS converts an IPNS blade to OPNS within space.
func IPNSToOPNS(b, space Multivector) Multivector {
	return b.LeftContract(space)
}

// OPNSIsFlat reports whether an OPNS blade passes through infinity.
func OPNSIsFlat(b Multivector) bool {
	return b.Wedge(NI()).IsZero()
}

// IPNSIsFlat reports whether an IPNS blade passes through infinity.
func IPNSIsFlat(b Multivector) bool {
	return NI().LeftContract(b).IsZero()
}

// IPNSMag2 returns the squared magnitude of an IPNS blade, corrected for
// grade so that real rounds are positive.
func IPNSMag2(b Multivector) float64 {
	switch b.Grade() % 4 {
	case 0, 1:
		return b.Mag2()
	default:
		return -b.Mag2()
	}
}

// OPNSIsReal reports whether an OPNS blade represents a real (not
// imaginary) object.
func OPNSIsReal(b Multivector) bool {
	return -IPNSMag2(b) > Epsilon
}

// IPNSQueryPoint classifies p against an IPNS blade: 1 if inside, -1 if
// outside and 0 if on the blade.
func IPNSQueryPoint(b Multivector, p Point) int {
	return ApproxCmp(b.Dot(PointMV(p)))
}

// PointPairToPoints factors a point pair into its two points. A flat point
// pair yields its finite point and Infinity. It returns false when the pair
// is imaginary or degenerate.
func PointPairToPoints(b Multivector) ([2]Point, bool) {
	if b.IsZero() || b.Grade() != 2 {
		return [2]Point{}, false
	}

	if OPNSIsFlat(b) {
		fp, ok := ToPoint(NO().LeftContract(b))
		if !ok {
			return [2]Point{}, false
		}
		if b.Get(EMinus|EPlus) < 0 {
			return [2]Point{Infinity, fp}, true
		}
		return [2]Point{fp, Infinity}, true
	}

	mag2 := b.Mag2()
	if mag2 < -Epsilon {
		return [2]Point{}, false
	}
	r := Scalar(math.Sqrt(math.Max(mag2, 0)))
	mult, ok := NI().LeftContract(b).Inverse()
	if !ok {
		return [2]Point{}, false
	}
	a, okA := ToPoint(b.Sub(r).Mul(mult))
	c, okC := ToPoint(b.Add(r).Mul(mult))
	if !okA || !okC {
		return [2]Point{}, false
	}
	return [2]Point{a, c}, true
}

// ScaleFactorTo returns the scalar f such that a scaled by f is
// approximately b, or false if there is none.
func ScaleFactorTo(a, b Multivector) (float64, bool) {
	if a.IsZero() || b.IsZero() || a.Grade() != b.Grade() {
		return 0, false
	}
	t, _ := a.MostSignificantTerm()
	f := b.Get(t.Axes) / t.Coef
	if IsApproxZero(f) {
		return 0, false
	}
	if !a.Scale(f).ApproxEq(b) {
		return 0, false
	}
	return f, true
}

// CenterRadius returns the center and radius of a round OPNS blade (a point
// pair, circle, sphere, ...). It returns false for flats.
func CenterRadius(b Multivector) (Point, float64, bool) {
	ni := NI()
	d := ni.LeftContract(b)
	dd := d.Mul(d).Get(0)
	if IsApproxZero(dd) {
		return Point{}, 0, false
	}
	center, ok := ToPoint(NormalizePoint(b.Mul(ni).Mul(b)))
	if !ok || center.IsInfinite() {
		return Point{}, 0, false
	}
	r2 := b.Mul(b).Get(0) / dd
	return center, math.Sqrt(math.Abs(r2)), true
}
