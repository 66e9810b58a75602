package kernel

import (
	"errors"
	"fmt"
	"math"

	"github.com/chazu/hypershape/pkg/manifold"
	"github.com/chazu/hypershape/pkg/shape"
)

var (
	// ErrNotThreeD is returned for arenas that are not three-dimensional.
	ErrNotThreeD = errors.New("kernel: arena is not three-dimensional")
	// ErrUnbounded is returned for pieces with no finite bounding box.
	ErrUnbounded = errors.New("kernel: piece is unbounded")
)

// Face is one oriented face of a piece. The piece lies on the inside of
// Surface, and Label is the face's label as seen from the piece.
type Face struct {
	Ref     shape.Ref
	Surface manifold.Surface
	Label   string
}

// PieceFaces returns the faces of a root of a 3D arena, oriented so that
// the piece is inside each of them.
func PieceFaces(a *shape.Arena, root shape.Ref) ([]Face, error) {
	if a.NDim() != 3 {
		return nil, fmt.Errorf("%w: ndim %d", ErrNotThreeD, a.NDim())
	}
	boundary, err := a.Boundary(root.ID)
	if err != nil {
		return nil, err
	}
	faces := make([]Face, 0, boundary.Len())
	for _, f := range boundary.Refs() {
		ref := f.Mul(root.Sign)
		m, err := a.Manifold(ref)
		if err != nil {
			return nil, err
		}
		s, ok := m.Surface()
		if !ok {
			return nil, fmt.Errorf("face %s: %s is not a surface", ref, m)
		}
		label, err := a.Label(ref)
		if err != nil {
			return nil, err
		}
		faces = append(faces, Face{Ref: ref, Surface: s, Label: label})
	}
	return faces, nil
}

// PieceBounds returns the axis-aligned bounding box of a root of a 3D
// arena. Round shapes contribute the box of their sphere and flat shapes
// the bounds of their own boundary, down to the vertices.
func PieceBounds(a *shape.Arena, root shape.Ref) (min, max [3]float64, err error) {
	if a.NDim() != 3 {
		return min, max, fmt.Errorf("%w: ndim %d", ErrNotThreeD, a.NDim())
	}
	b := newBox()
	if err := b.addShape(a, root.ID, make(map[shape.ID]bool)); err != nil {
		return min, max, err
	}
	if b.empty() {
		return min, max, fmt.Errorf("%w: root %s", ErrUnbounded, root)
	}
	return b.min, b.max, nil
}

type box struct {
	min, max [3]float64
}

func newBox() *box {
	inf := math.Inf(1)
	return &box{
		min: [3]float64{inf, inf, inf},
		max: [3]float64{-inf, -inf, -inf},
	}
}

func (b *box) empty() bool { return b.min[0] > b.max[0] }

func (b *box) addPoint(p [3]float64) {
	for i := range p {
		b.min[i] = math.Min(b.min[i], p[i])
		b.max[i] = math.Max(b.max[i], p[i])
	}
}

func (b *box) addShape(a *shape.Arena, id shape.ID, seen map[shape.ID]bool) error {
	if seen[id] {
		return nil
	}
	seen[id] = true

	s, err := a.Shape(id)
	if err != nil {
		return err
	}
	if s.NDim() == 0 {
		pts, ok := s.Manifold.PointPair()
		if !ok {
			return fmt.Errorf("shape %s: %w", id, shape.ErrDegenerateManifold)
		}
		for _, p := range pts {
			if p.IsInfinite() {
				return fmt.Errorf("%w: shape %s reaches infinity", ErrUnbounded, id)
			}
			b.addPoint([3]float64{p.At(0), p.At(1), p.At(2)})
		}
		return nil
	}
	if lo, hi, ok := s.Manifold.Bounds(); ok {
		b.addPoint([3]float64{lo[0], lo[1], lo[2]})
		b.addPoint([3]float64{hi[0], hi[1], hi[2]})
		return nil
	}
	if s.Boundary.Len() == 0 {
		return fmt.Errorf("%w: flat shape %s has no boundary", ErrUnbounded, id)
	}
	for _, child := range s.Boundary.Refs() {
		if err := b.addShape(a, child.ID, seen); err != nil {
			return err
		}
	}
	return nil
}
