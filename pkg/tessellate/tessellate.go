// Package tessellate turns the pieces of a 3D arena into triangle meshes
// using a geometry kernel. One mesh is produced per root, in root order.
package tessellate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/hypershape/pkg/kernel"
	"github.com/chazu/hypershape/pkg/shape"
)

// DefaultWorkers is the number of pieces meshed concurrently when
// Options.Workers is not positive.
const DefaultWorkers = 4

// Options controls tessellation.
type Options struct {
	// Workers bounds the number of concurrent ToMesh calls.
	Workers int
	// Explode pushes every piece away from the origin by this multiple of
	// its bounding-box center. Zero leaves pieces in place.
	Explode float64
}

// piece is a root prepared for meshing.
type piece struct {
	solid       kernel.Solid
	name        string
	fingerprint string
}

// Tessellate produces one triangle mesh per root of a. Solids are built
// sequentially since they only read the arena; meshing runs concurrently.
// The tessellator is read-only and never mutates the arena.
func Tessellate(ctx context.Context, a *shape.Arena, k kernel.Kernel, opts Options) ([]*kernel.Mesh, error) {
	if a == nil {
		return nil, nil
	}

	roots := a.Roots()
	pieces := make([]piece, len(roots))
	for i, root := range roots {
		p, err := preparePiece(a, k, root, opts.Explode)
		if err != nil {
			return nil, fmt.Errorf("tessellate: root %d (%s): %w", i, root, err)
		}
		p.name = fmt.Sprintf("piece-%d", i)
		pieces[i] = p
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	meshes := make([]*kernel.Mesh, len(pieces))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, p := range pieces {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mesh, err := k.ToMesh(p.solid)
			if err != nil {
				return fmt.Errorf("tessellate: ToMesh failed for %s: %w", p.name, err)
			}
			mesh.PartName = p.name
			mesh.Fingerprint = p.fingerprint
			meshes[i] = mesh
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return meshes, nil
}

// preparePiece builds the solid of one root and applies the explode offset.
func preparePiece(a *shape.Arena, k kernel.Kernel, root shape.Ref, explode float64) (piece, error) {
	solid, err := k.Piece(a, root)
	if err != nil {
		return piece{}, err
	}
	fp, err := a.Fingerprint(root)
	if err != nil {
		return piece{}, err
	}

	if explode != 0 {
		min, max := solid.BoundingBox()
		var off [3]float64
		for i := range off {
			off[i] = explode * (min[i] + max[i]) / 2
		}
		if off != [3]float64{} {
			solid = k.Translate(solid, off[0], off[1], off[2])
		}
	}

	return piece{solid: solid, fingerprint: fp.Short()}, nil
}
