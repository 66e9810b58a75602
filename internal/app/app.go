// Package app runs the end-to-end pipeline behind the CLI: a cut script or
// cut list is turned into an arena, the arena is summarized and, for 3D
// arenas, its pieces are tessellated into colored meshes.
package app

import (
	"context"
	"fmt"

	"github.com/chazu/hypershape/pkg/cutlist"
	"github.com/chazu/hypershape/pkg/engine"
	"github.com/chazu/hypershape/pkg/kernel"
	"github.com/chazu/hypershape/pkg/shape"
	"github.com/chazu/hypershape/pkg/tessellate"
)

// colorPalette is a default palette used to assign distinct colors to pieces.
var colorPalette = []string{
	"#4A90D9", "#E67E22", "#2ECC71", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F39C12", "#3498DB",
}

// App holds the collaborators of the pipeline.
type App struct {
	engine *engine.Engine
	kernel kernel.Kernel
	mesh   tessellate.Options
	log    *shape.Logger
}

// MeshData is the JSON-serializable mesh format written by the CLI.
type MeshData struct {
	Vertices    []float32 `json:"vertices"`
	Normals     []float32 `json:"normals"`
	Indices     []uint32  `json:"indices"`
	PartName    string    `json:"partName"`
	Fingerprint string    `json:"fingerprint"`
	Color       string    `json:"color"`
}

// EvalErrorData is a JSON-serializable evaluation error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// PieceData summarizes one root of the arena.
type PieceData struct {
	Name        string `json:"name"`
	Ref         string `json:"ref"`
	Counts      []int  `json:"counts"`
	Fingerprint string `json:"fingerprint"`
}

// Result is the full outcome of one run.
type Result struct {
	NDim     int             `json:"ndim"`
	Pieces   []PieceData     `json:"pieces"`
	Meshes   []MeshData      `json:"meshes"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`

	// Arena is the arena the run produced, nil on error.
	Arena *shape.Arena `json:"-"`
}

// Option configures an App.
type Option func(*App)

// WithMeshOptions sets the tessellation options.
func WithMeshOptions(o tessellate.Options) Option {
	return func(a *App) { a.mesh = o }
}

// WithLogger sets the logger used by the app and the arenas it builds.
func WithLogger(l *shape.Logger) Option {
	return func(a *App) {
		if l != nil {
			a.log = l
		}
	}
}

// New creates an App evaluating scripts with e and meshing with k.
func New(e *engine.Engine, k kernel.Kernel, opts ...Option) *App {
	a := &App{engine: e, kernel: k, log: shape.NoopLogger()}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func newResult() Result {
	return Result{
		Pieces:   []PieceData{},
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}
}

// EvaluateScript runs cut-script source through the pipeline. When mesh is
// false the pieces are summarized but not tessellated.
func (a *App) EvaluateScript(ctx context.Context, source string, mesh bool) Result {
	result := newResult()

	// Step 1: Evaluate the script into an arena.
	arena, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate fatal error", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result
	}

	a.finish(ctx, arena, mesh, &result)
	return result
}

// BuildCutList runs a cut list through the pipeline.
func (a *App) BuildCutList(ctx context.Context, cl *cutlist.CutList, mesh bool) Result {
	result := newResult()

	arena, err := cl.Build(shape.WithLogger(a.log))
	if err != nil {
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result
	}

	a.finish(ctx, arena, mesh, &result)
	return result
}

// finish summarizes the pieces of arena and optionally meshes them.
func (a *App) finish(ctx context.Context, arena *shape.Arena, mesh bool, result *Result) {
	result.Arena = arena
	result.NDim = arena.NDim()

	// Step 3: Summarize every piece.
	for i, root := range arena.Roots() {
		counts, err := arena.Counts(root)
		if err != nil {
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			return
		}
		fp, err := arena.Fingerprint(root)
		if err != nil {
			result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
			return
		}
		result.Pieces = append(result.Pieces, PieceData{
			Name:        fmt.Sprintf("piece-%d", i),
			Ref:         root.String(),
			Counts:      counts,
			Fingerprint: fp.String(),
		})
	}
	for _, v := range arena.Validate() {
		result.Warnings = append(result.Warnings, EvalErrorData{Message: v.Error()})
	}

	if !mesh {
		return
	}
	if arena.NDim() != 3 {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Message: fmt.Sprintf("arena is %d-dimensional; only 3D arenas are meshed", arena.NDim()),
		})
		return
	}

	// Step 4: Tessellate the pieces into triangle meshes.
	meshes, err := tessellate.Tessellate(ctx, arena, a.kernel, a.mesh)
	if err != nil {
		a.log.Error("tessellate error", "error", err)
		result.Errors = append(result.Errors, EvalErrorData{
			Message: "tessellation failed: " + err.Error(),
		})
		return
	}

	// Step 5: Convert kernel meshes to the output format.
	for i, m := range meshes {
		result.Meshes = append(result.Meshes, MeshData{
			Vertices:    m.Vertices,
			Normals:     m.Normals,
			Indices:     m.Indices,
			PartName:    m.PartName,
			Fingerprint: m.Fingerprint,
			Color:       colorPalette[i%len(colorPalette)],
		})
	}
}
