// Package shape implements the boundary representation kernel: an arena of
// shared, immutable shapes, the recursive cut that splits every live shape
// by a manifold, the one-dimensional interval simplifier, and mark-sweep
// garbage collection of unreachable shapes.
//
// A shape is a manifold together with a set of signed references to
// shapes of exactly one dimension less that bound it. Shapes form a DAG
// rooted at the arena's roots, the live pieces.
package shape

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/chazu/hypershape/pkg/cga"
	"github.com/chazu/hypershape/pkg/manifold"
)

// Shape is a manifold bounded by lower-dimensional shapes. Each
// orientation carries its own label: PosLabel names the shape as seen from
// its inside, NegLabel as seen from its outside.
type Shape struct {
	Manifold manifold.Manifold
	Boundary RefSet
	PosLabel string
	NegLabel string
}

// NDim returns the dimension of the shape's manifold.
func (s Shape) NDim() int { return s.Manifold.NDim() }

// LabelOf returns the label of the shape in the given orientation.
func (s Shape) LabelOf(sign manifold.Sign) string {
	if sign == manifold.Neg {
		return s.NegLabel
	}
	return s.PosLabel
}

type slot struct {
	shape Shape
	gen   uint32
	live  bool
}

// Arena owns every shape of one model. It is not safe for concurrent
// mutation; read-only queries may run concurrently once cutting is done.
type Arena struct {
	space manifold.Manifold
	slots []slot
	live  *roaring.Bitmap
	free  []uint32
	roots []Ref
	added int
	log   *Logger
}

// Option configures an Arena.
type Option func(*Arena)

// WithLogger sets the logger used by the arena.
func WithLogger(l *Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.log = l
		}
	}
}

// NewArena returns an arena of the given dimension holding one root: the
// whole space with an empty boundary.
func NewArena(ndim int, opts ...Option) (*Arena, error) {
	if ndim < 1 || ndim > cga.MaxNDim {
		return nil, fmt.Errorf("shape: dimension %d out of range [1, %d]", ndim, cga.MaxNDim)
	}
	a := &Arena{
		space: manifold.WholeSpace(ndim),
		slots: make([]slot, 1), // index 0 is the zero ID
		live:  roaring.New(),
		log:   NoopLogger(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.log = a.log.WithDimension(ndim)

	id, err := a.add(a.space, RefSet{}, "", "")
	if err != nil {
		return nil, err
	}
	a.roots = []Ref{Pos(id)}
	return a, nil
}

// NDim returns the dimension of the arena's space.
func (a *Arena) NDim() int { return a.space.NDim() }

// Space returns the whole-space manifold of the arena.
func (a *Arena) Space() manifold.Manifold { return a.space }

// Roots returns the current roots in order.
func (a *Arena) Roots() []Ref {
	return append([]Ref(nil), a.roots...)
}

// Len returns the number of live shapes.
func (a *Arena) Len() int {
	return int(a.live.GetCardinality())
}

// IsLive reports whether id refers to a live shape.
func (a *Arena) IsLive(id ID) bool {
	if id.IsZero() || int(id.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[id.index]
	return s.live && s.gen == id.gen
}

func (a *Arena) get(id ID) (*Shape, error) {
	if !a.IsLive(id) {
		return nil, &StaleHandleError{ID: id}
	}
	return &a.slots[id.index].shape, nil
}

// Shape returns the shape with the given handle.
func (a *Arena) Shape(id ID) (Shape, error) {
	s, err := a.get(id)
	if err != nil {
		return Shape{}, err
	}
	return *s, nil
}

// Manifold returns the manifold of r, flipped if r is negative.
func (a *Arena) Manifold(r Ref) (manifold.Manifold, error) {
	s, err := a.get(r.ID)
	if err != nil {
		return manifold.Manifold{}, err
	}
	return s.Manifold.Mul(r.Sign), nil
}

// Boundary returns the boundary of the shape with the given handle.
func (a *Arena) Boundary(id ID) (RefSet, error) {
	s, err := a.get(id)
	if err != nil {
		return RefSet{}, err
	}
	return s.Boundary, nil
}

// Label returns the label of r in its orientation. A face of a piece is
// labelled by the cut that made it for the side the piece lies on.
func (a *Arena) Label(r Ref) (string, error) {
	s, err := a.get(r.ID)
	if err != nil {
		return "", err
	}
	return s.LabelOf(r.Sign), nil
}

// add inserts a new shape after checking the rank of every boundary
// element.
func (a *Arena) add(m manifold.Manifold, boundary RefSet, posLabel, negLabel string) (ID, error) {
	for _, r := range boundary.Refs() {
		child, err := a.get(r.ID)
		if err != nil {
			return ID{}, err
		}
		if child.NDim()+1 != m.NDim() {
			return ID{}, &RankMismatchError{Child: r.ID, ChildNDim: child.NDim(), ParentNDim: m.NDim()}
		}
	}

	sh := Shape{Manifold: m, Boundary: boundary, PosLabel: posLabel, NegLabel: negLabel}
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
		a.slots[idx].shape = sh
		a.slots[idx].live = true
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot{shape: sh, live: true})
	}
	a.live.Add(idx)
	a.added++
	return ID{index: idx, gen: a.slots[idx].gen}, nil
}

// addSubshape returns a shape over the same manifold as parent with the
// given boundary, reusing parent itself when the boundary is unchanged. A
// new subshape keeps both labels of parent.
func (a *Arena) addSubshape(parent ID, boundary RefSet) (ID, error) {
	p, err := a.get(parent)
	if err != nil {
		return ID{}, err
	}
	if p.Boundary.Equal(boundary) {
		return parent, nil
	}
	return a.add(p.Manifold, boundary, p.PosLabel, p.NegLabel)
}

// Counts returns the number of distinct shapes of each dimension reachable
// from r, including r itself. The result is indexed by dimension.
func (a *Arena) Counts(r Ref) ([]int, error) {
	root, err := a.get(r.ID)
	if err != nil {
		return nil, err
	}
	counts := make([]int, root.NDim()+1)
	seen := roaring.New()
	stack := []ID{r.ID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.CheckedAdd(id.index) {
			continue
		}
		s, err := a.get(id)
		if err != nil {
			return nil, err
		}
		counts[s.NDim()]++
		for _, c := range s.Boundary.Refs() {
			stack = append(stack, c.ID)
		}
	}
	return counts, nil
}
