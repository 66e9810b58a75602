// Package kernel defines the interface between a 3D shape arena and a
// solid-modeling backend. A backend turns each root of the arena (a piece)
// into an opaque Solid and meshes it for rendering. The kernel abstraction
// allows swapping backends without changing the rest of the system.
package kernel

import "github.com/chazu/hypershape/pkg/shape"

// Solid is an opaque handle to a backend solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract rendering kernel interface.
type Kernel interface {
	// Piece builds the solid enclosed by one root of a 3D arena.
	Piece(a *shape.Arena, root shape.Ref) (Solid, error)

	// Union returns the union of two solids.
	Union(a, b Solid) Solid

	// Translate moves a solid by (x, y, z).
	Translate(s Solid, x, y, z float64) Solid

	// ToMesh triangulates a solid.
	ToMesh(s Solid) (*Mesh, error)
}
