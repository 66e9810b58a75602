package shape

import (
	"testing"

	"github.com/chazu/hypershape/pkg/cga"
	"github.com/chazu/hypershape/pkg/manifold"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interval adds the point pair from lo to hi to a one-dimensional arena.
// Its inside is the closed segment between them.
func interval(t *testing.T, a *Arena, lo, hi float64) Ref {
	t.Helper()
	m, err := manifold.NewPointPair(1, cga.NewPoint(lo), cga.NewPoint(hi))
	require.NoError(t, err)
	id, err := a.add(m, RefSet{}, "", "")
	require.NoError(t, err)
	return Pos(id)
}

func endpointsOf(t *testing.T, a *Arena, r Ref) [2]cga.Point {
	t.Helper()
	pts, err := a.endpoints(r)
	require.NoError(t, err)
	return pts
}

func TestTryMerge(t *testing.T) {
	a, err := NewArena(1)
	require.NoError(t, err)
	space := a.Space()

	i02 := interval(t, a, 0, 2)
	i13 := interval(t, a, 1, 3)
	i56 := interval(t, a, 5, 6)
	inner := interval(t, a, 0.5, 1)

	tests := []struct {
		name   string
		ab, pq Ref
		kind   MergeKind
		old    Ref
		points [2]cga.Point
	}{
		{"overlapping", i02, i13, MergeNew, Ref{}, [2]cga.Point{cga.NewPoint(0), cga.NewPoint(3)}},
		{"overlapping swapped", i13, i02, MergeNew, Ref{}, [2]cga.Point{cga.NewPoint(0), cga.NewPoint(3)}},
		{"disjoint", i02, i56, MergeNoIntersection, Ref{}, [2]cga.Point{}},
		{"contains", i02, inner, MergeOld, i02, [2]cga.Point{}},
		{"contained", inner, i02, MergeOld, i02, [2]cga.Point{}},
		{"same", i02, i02, MergeOld, i02, [2]cga.Point{}},
		{"complement", i02, i02.Neg(), MergeWholeSpace, Ref{}, [2]cga.Point{}},
		{"outer rays", i02.Neg(), i13.Neg(), MergeNew, Ref{}, [2]cga.Point{cga.NewPoint(2), cga.NewPoint(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := a.TryMerge(tt.ab, tt.pq, space)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, res.Kind)
			switch tt.kind {
			case MergeOld:
				assert.Equal(t, tt.old, res.Old)
			case MergeNew:
				pts, ok := res.Manifold.PointPair()
				require.True(t, ok)
				assert.True(t, pts[0].ApproxEq(tt.points[0]), "start %s", pts[0])
				assert.True(t, pts[1].ApproxEq(tt.points[1]), "end %s", pts[1])
			}
		})
	}
}

func TestIncrementalSimplify(t *testing.T) {
	a, err := NewArena(1)
	require.NoError(t, err)
	space := a.Space()

	i02 := interval(t, a, 0, 2)
	i13 := interval(t, a, 1, 3)
	i56 := interval(t, a, 5, 6)
	inner := interval(t, a, 0.5, 1)

	t.Run("overlap narrows", func(t *testing.T) {
		got, ok, err := a.incrementalSimplify(NewRefSet(i02), i13, space)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 1, got.Len())
		pts := endpointsOf(t, a, got.Refs()[0])
		assert.True(t, pts[0].ApproxEq(cga.NewPoint(1)))
		assert.True(t, pts[1].ApproxEq(cga.NewPoint(2)))
	})

	t.Run("disjoint is empty", func(t *testing.T) {
		_, ok, err := a.incrementalSimplify(NewRefSet(i02), i56, space)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("contained keeps the smaller", func(t *testing.T) {
		got, ok, err := a.incrementalSimplify(NewRefSet(i02), inner, space)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, NewRefSet(inner), got)
	})

	t.Run("empty set", func(t *testing.T) {
		got, ok, err := a.incrementalSimplify(RefSet{}, i56, space)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, NewRefSet(i56), got)
	})

	t.Run("hole leaves two intervals", func(t *testing.T) {
		got, ok, err := a.incrementalSimplify(NewRefSet(i02), inner.Neg(), space)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, NewRefSet(i02, inner.Neg()), got)
	})

	t.Run("simplify reduces a set", func(t *testing.T) {
		got, ok, err := a.simplifyIntervals(NewRefSet(i02, i13, inner.Neg()), space)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, 1, got.Len())
		pts := endpointsOf(t, a, got.Refs()[0])
		assert.True(t, pts[0].ApproxEq(cga.NewPoint(1)))
		assert.True(t, pts[1].ApproxEq(cga.NewPoint(2)))
	})
}

func TestLineCuts(t *testing.T) {
	a, err := NewArena(1)
	require.NoError(t, err)

	require.NoError(t, a.Carve(mustPlane(t, []float64{1}, 3), ""))
	require.NoError(t, a.Carve(mustPlane(t, []float64{-1}, 1), ""))
	roots := a.Roots()
	require.Len(t, roots, 1)

	b, err := a.Boundary(roots[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, b.Len(), "two rays merge into one segment")
	pts := endpointsOf(t, a, b.Refs()[0])
	assert.True(t, pts[0].ApproxEq(cga.NewPoint(-1)))
	assert.True(t, pts[1].ApproxEq(cga.NewPoint(3)))

	require.NoError(t, a.Carve(mustPlane(t, []float64{1}, 2), ""))
	b, err = a.Boundary(a.Roots()[0].ID)
	require.NoError(t, err)
	require.Equal(t, 1, b.Len())
	pts = endpointsOf(t, a, b.Refs()[0])
	assert.True(t, pts[1].ApproxEq(cga.NewPoint(2)))

	require.NoError(t, a.Slice(mustPlane(t, []float64{1}, 0), "", ""))
	roots = a.Roots()
	require.Len(t, roots, 2)
	want := [][2]float64{{-1, 0}, {0, 2}}
	for i, r := range roots {
		b, err := a.Boundary(r.ID)
		require.NoError(t, err)
		require.Equal(t, 1, b.Len())
		pts := endpointsOf(t, a, b.Refs()[0])
		assert.True(t, pts[0].ApproxEq(cga.NewPoint(want[i][0])), "root %d start %s", i, pts[0])
		assert.True(t, pts[1].ApproxEq(cga.NewPoint(want[i][1])), "root %d end %s", i, pts[1])
	}
	requireValid(t, a)
}
