package manifold

import (
	"fmt"
	"math"

	"github.com/chazu/hypershape/pkg/cga"
)

// SurfaceKind distinguishes flat and round hypersurfaces.
type SurfaceKind int

const (
	SurfacePlane SurfaceKind = iota
	SurfaceSphere
)

// Surface holds the Euclidean parameters of a hypersurface.
//
// A plane is {p : Normal·p = Distance} with inside Normal·p < Distance.
// A sphere has a Center and a signed Radius; a negative radius means the
// inside is the complement of the ball.
type Surface struct {
	Kind     SurfaceKind
	Normal   []float64
	Distance float64
	Center   cga.Point
	Radius   float64
}

// Surface returns the parameters of m when m is a hypersurface of the
// whole space.
func (m Manifold) Surface() (Surface, bool) {
	if m.ndim != m.spaceNDim-1 {
		return Surface{}, false
	}
	ipns := m.IPNS()
	if ipns.IsZero() || ipns.Grade() != 1 {
		return Surface{}, false
	}

	if cga.IPNSIsFlat(ipns) {
		v := pad(ipns.ToVector(), m.spaceNDim)
		mag := norm(v)
		if cga.IsApproxZero(mag) {
			return Surface{}, false
		}
		normal := make([]float64, len(v))
		for i, x := range v {
			if x != 0 {
				normal[i] = -x / mag
			}
		}
		return Surface{
			Kind:     SurfacePlane,
			Normal:   normal,
			Distance: -ipns.NICoef() / mag,
		}, true
	}

	no := ipns.NOCoef()
	center, ok := cga.ToPoint(ipns)
	if !ok || center.IsInfinite() {
		return Surface{}, false
	}
	mag2 := cga.IPNSMag2(ipns)
	if mag2 < 0 {
		return Surface{}, false
	}
	return Surface{
		Kind:   SurfaceSphere,
		Center: cga.NewPoint(pad(center.Coords(), m.spaceNDim)...),
		Radius: math.Sqrt(mag2) / no,
	}, true
}

// SignedDistance returns the signed Euclidean distance from p to the
// surface: negative inside, positive outside.
func (s Surface) SignedDistance(p []float64) float64 {
	switch s.Kind {
	case SurfaceSphere:
		d := cga.NewPoint(p...).Dist(s.Center)
		if s.Radius < 0 {
			return -(d + s.Radius)
		}
		return d - s.Radius
	default:
		var dot float64
		for i, n := range s.Normal {
			if i < len(p) {
				dot += n * p[i]
			}
		}
		return dot - s.Distance
	}
}

func (s Surface) String() string {
	if s.Kind == SurfaceSphere {
		return fmt.Sprintf("sphere(%s, %g)", s.Center, s.Radius)
	}
	return fmt.Sprintf("plane(%s, %g)", fmtVec(s.Normal), s.Distance)
}

func pad(v []float64, n int) []float64 {
	for len(v) < n {
		v = append(v, 0)
	}
	return v
}
