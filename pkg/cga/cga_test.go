package cga

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasisSquares(t *testing.T) {
	tests := []struct {
		name string
		axes Axes
		want float64
	}{
		{"e-", EMinus, -1},
		{"e+", EPlus, 1},
		{"e1", Euclidean(0), 1},
		{"e1e2", Euclidean(0) | Euclidean(1), -1},
		{"e-e+", EMinus | EPlus, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := Term{Coef: 1, Axes: tt.axes}
			sq := u.Mul(u)
			assert.Equal(t, Axes(0), sq.Axes)
			assert.InDelta(t, tt.want, sq.Coef, 1e-12)
		})
	}
}

func TestNullVectors(t *testing.T) {
	no, ni := NO(), NI()
	assert.InDelta(t, 0, no.Mag2(), 1e-12)
	assert.InDelta(t, 0, ni.Mag2(), 1e-12)
	assert.InDelta(t, -1, no.Dot(ni), 1e-12)

	assert.InDelta(t, 1, no.NOCoef(), 1e-12)
	assert.InDelta(t, 0, no.NICoef(), 1e-12)
	assert.InDelta(t, 0, ni.NOCoef(), 1e-12)
	assert.InDelta(t, 1, ni.NICoef(), 1e-12)
}

func TestPointEmbeddingDistance(t *testing.T) {
	p := NewPoint(1, 2, 3)
	q := NewPoint(-2, 0, 5)

	// The inner product of two conformal points is -d²/2.
	got := PointMV(p).Dot(PointMV(q))
	assert.InDelta(t, -0.5*math.Pow(p.Dist(q), 2), got, 1e-9)

	back, ok := ToPoint(PointMV(p))
	require.True(t, ok)
	assert.True(t, back.ApproxEq(p), "round trip: %v", back)

	inf, ok := ToPoint(NI())
	require.True(t, ok)
	assert.True(t, inf.IsInfinite())
}

func TestWedgeAndContraction(t *testing.T) {
	e1 := Vector([]float64{1})
	e2 := Vector([]float64{0, 1})

	w := e1.Wedge(e2)
	assert.Equal(t, 2, w.Grade())
	assert.True(t, e2.Wedge(e1).ApproxEq(w.Neg()), "anticommutative")
	assert.True(t, e1.Wedge(e1).IsZero())

	assert.True(t, e1.LeftContract(w).ApproxEq(e2))
	assert.True(t, w.LeftContract(e1).IsZero())
}

func TestInverse(t *testing.T) {
	for n := 1; n <= 5; n++ {
		ps := Pseudoscalar(n)
		inv, ok := ps.Inverse()
		require.True(t, ok)
		assert.True(t, ps.Mul(inv).ApproxEq(Scalar(1)), "n=%d", n)
	}

	_, ok := NI().Inverse()
	assert.False(t, ok, "null vectors have no inverse")
}

func TestIPNSQueryPoint(t *testing.T) {
	plane := IPNSPlane([]float64{0, 2, 0}, 1)
	assert.Equal(t, 1, IPNSQueryPoint(plane, NewPoint(5, 0, 5)))
	assert.Equal(t, -1, IPNSQueryPoint(plane, NewPoint(0, 3, 0)))
	assert.Equal(t, 0, IPNSQueryPoint(plane, NewPoint(7, 1, -2)))

	sphere := IPNSSphere(NewPoint(1, 1), 2)
	assert.Equal(t, 1, IPNSQueryPoint(sphere, NewPoint(1, 2)))
	assert.Equal(t, -1, IPNSQueryPoint(sphere, NewPoint(4, 1)))
	assert.Equal(t, 0, IPNSQueryPoint(sphere, NewPoint(1, 3)))
	assert.Equal(t, -1, IPNSQueryPoint(sphere, Infinity))

	inverted := IPNSSphere(NewPoint(1, 1), -2)
	assert.Equal(t, -1, IPNSQueryPoint(inverted, NewPoint(1, 2)))
	assert.Equal(t, 1, IPNSQueryPoint(inverted, Infinity))
}

func TestPointPairToPoints(t *testing.T) {
	t.Run("round", func(t *testing.T) {
		a, b := NewPoint(1, 0), NewPoint(3, 0)
		pts, ok := PointPairToPoints(PointMV(a).Wedge(PointMV(b)))
		require.True(t, ok)
		assert.True(t, pts[0].ApproxEq(a), "got %v", pts[0])
		assert.True(t, pts[1].ApproxEq(b), "got %v", pts[1])

		swapped, ok := PointPairToPoints(PointMV(b).Wedge(PointMV(a)))
		require.True(t, ok)
		assert.True(t, swapped[0].ApproxEq(b))
		assert.True(t, swapped[1].ApproxEq(a))
	})

	t.Run("flat", func(t *testing.T) {
		a := NewPoint(2, -1)
		pts, ok := PointPairToPoints(PointMV(a).Wedge(NI()))
		require.True(t, ok)
		assert.True(t, pts[0].ApproxEq(a))
		assert.True(t, pts[1].IsInfinite())

		pts, ok = PointPairToPoints(NI().Wedge(PointMV(a)))
		require.True(t, ok)
		assert.True(t, pts[0].IsInfinite())
		assert.True(t, pts[1].ApproxEq(a))
	})

	t.Run("not a pair", func(t *testing.T) {
		_, ok := PointPairToPoints(Zero())
		assert.False(t, ok)
		_, ok = PointPairToPoints(Pseudoscalar(2))
		assert.False(t, ok)
	})
}

func TestScaleFactorTo(t *testing.T) {
	s := IPNSSphere(NewPoint(0, 1, 2), 3)

	f, ok := ScaleFactorTo(s, s.Scale(-2.5))
	require.True(t, ok)
	assert.InDelta(t, -2.5, f, 1e-9)

	_, ok = ScaleFactorTo(s, IPNSSphere(NewPoint(0, 1, 2), 4))
	assert.False(t, ok)

	_, ok = ScaleFactorTo(s, s.Wedge(Vector([]float64{1})))
	assert.False(t, ok, "different grades")
}

func TestCenterRadius(t *testing.T) {
	space := Pseudoscalar(3)
	sphere := IPNSToOPNS(IPNSSphere(NewPoint(1, 2, 3), 2), space)
	plane := IPNSToOPNS(IPNSPlane([]float64{0, 0, 1}, 3.5), space)

	c, r, ok := CenterRadius(sphere)
	require.True(t, ok)
	assert.True(t, c.ApproxEq(NewPoint(1, 2, 3)), "center %v", c)
	assert.InDelta(t, 2, r, 1e-9)

	// The circle where the plane z=3.5 meets the sphere.
	circle := IPNSToOPNS(IPNSPlane([]float64{0, 0, 1}, 3.5).Wedge(IPNSSphere(NewPoint(1, 2, 3), 2)), space)
	c, r, ok = CenterRadius(circle)
	require.True(t, ok)
	assert.True(t, c.ApproxEq(NewPoint(1, 2, 3.5)), "center %v", c)
	assert.InDelta(t, math.Sqrt(3.75), r, 1e-9)

	_, _, ok = CenterRadius(plane)
	assert.False(t, ok, "flats have no center")
}
