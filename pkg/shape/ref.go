package shape

import (
	"fmt"
	"sort"

	"github.com/chazu/hypershape/pkg/manifold"
)

// ID is a generational handle to a shape stored in an Arena. The zero ID
// refers to no shape.
type ID struct {
	index uint32
	gen   uint32
}

// IsZero reports whether id refers to no shape.
func (id ID) IsZero() bool { return id.index == 0 }

// Index returns the slot index of the handle.
func (id ID) Index() uint32 { return id.index }

func (id ID) less(o ID) bool {
	if id.index != o.index {
		return id.index < o.index
	}
	return id.gen < o.gen
}

func (id ID) String() string {
	if id.gen == 0 {
		return fmt.Sprintf("#%d", id.index)
	}
	return fmt.Sprintf("#%d.%d", id.index, id.gen)
}

// Ref is a signed reference to a shape. A Neg reference uses the shape with
// its orientation flipped, which also swaps the inside and outside of its
// manifold. The zero Ref refers to no shape.
type Ref struct {
	ID   ID
	Sign manifold.Sign
}

// Pos returns the positive reference to id.
func Pos(id ID) Ref { return Ref{ID: id, Sign: manifold.Pos} }

// IsZero reports whether r refers to no shape.
func (r Ref) IsZero() bool { return r.ID.IsZero() }

// Neg returns r with the opposite sign.
func (r Ref) Neg() Ref {
	if r.IsZero() {
		return r
	}
	return Ref{ID: r.ID, Sign: r.Sign.Flip()}
}

// Mul returns r with its sign multiplied by s.
func (r Ref) Mul(s manifold.Sign) Ref {
	if s == manifold.Neg {
		return r.Neg()
	}
	return r
}

func (r Ref) less(o Ref) bool {
	if r.ID != o.ID {
		return r.ID.less(o.ID)
	}
	return r.Sign < o.Sign
}

func (r Ref) String() string {
	if r.IsZero() {
		return "<none>"
	}
	return r.Sign.String() + r.ID.String()
}

// RefSet is an ordered set of refs. Iteration order is deterministic,
// which keeps shape creation order reproducible.
type RefSet struct {
	refs []Ref
}

// NewRefSet returns a set containing refs.
func NewRefSet(refs ...Ref) RefSet {
	var s RefSet
	for _, r := range refs {
		s.Insert(r)
	}
	return s
}

// Len returns the number of refs in the set.
func (s RefSet) Len() int { return len(s.refs) }

// Refs returns the refs in order. The returned slice must not be modified.
func (s RefSet) Refs() []Ref { return s.refs }

func (s RefSet) search(r Ref) int {
	return sort.Search(len(s.refs), func(i int) bool { return !s.refs[i].less(r) })
}

// Contains reports whether r is in the set.
func (s RefSet) Contains(r Ref) bool {
	i := s.search(r)
	return i < len(s.refs) && s.refs[i] == r
}

// Insert adds r to the set. The zero Ref is ignored.
func (s *RefSet) Insert(r Ref) {
	if r.IsZero() {
		return
	}
	i := s.search(r)
	if i < len(s.refs) && s.refs[i] == r {
		return
	}
	refs := make([]Ref, 0, len(s.refs)+1)
	refs = append(refs, s.refs[:i]...)
	refs = append(refs, r)
	refs = append(refs, s.refs[i:]...)
	s.refs = refs
}

// Equal reports whether s and o contain the same refs.
func (s RefSet) Equal(o RefSet) bool {
	if len(s.refs) != len(o.refs) {
		return false
	}
	for i := range s.refs {
		if s.refs[i] != o.refs[i] {
			return false
		}
	}
	return true
}

func (s RefSet) String() string {
	return fmt.Sprint(s.refs)
}
