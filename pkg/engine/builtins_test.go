package engine

import (
	"strings"
	"testing"

	"github.com/chazu/hypershape/pkg/shape"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(cut m :label "red")`,
			expect: `(cut m "__kw_label" "red")`,
		},
		{
			name:   "keyword as value",
			input:  `(cut m :remove :outside)`,
			expect: `(cut m "__kw_remove" "__kw_outside")`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(root-count)`,
			expect: `(root_count)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative number preserved",
			input:  `(plane [-1 0] -2)`,
			expect: `(plane [-1 0] -2)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `:remove-side`,
			expect: `"__kw_remove-side"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := preprocessSource(tt.input)
			if got != tt.expect {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func mustEvaluate(t *testing.T, source string) *shape.Arena {
	t.Helper()
	a, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	if a == nil {
		t.Fatal("expected non-nil arena")
	}
	return a
}

func mustFail(t *testing.T, source, want string) {
	t.Helper()
	a, evalErrs, err := NewEngine().Evaluate(source)
	if err != nil {
		t.Fatalf("expected non-fatal eval error, got fatal: %v", err)
	}
	if a != nil {
		t.Fatal("expected nil arena on eval error")
	}
	if len(evalErrs) == 0 {
		t.Fatal("expected at least one eval error")
	}
	if !strings.Contains(evalErrs[0].Message, want) {
		t.Errorf("error %q does not mention %q", evalErrs[0].Message, want)
	}
}

// ---------------------------------------------------------------------------
// Cut builtins
// ---------------------------------------------------------------------------

const cubeSource = `
; the cube [-1, 1]^3
(space 3)
(carve (plane [1 0 0] 1) :label "right")
(carve (plane [-1 0 0] 1) :label "left")
(carve (plane [0 1 0] 1) :label "top")
(carve (plane [0 -1 0] 1) :label "bottom")
(carve (plane [0 0 1] 1) :label "front")
(carve (plane [0 0 -1] 1) :label "back")
`

func TestCube(t *testing.T) {
	a := mustEvaluate(t, cubeSource)

	if a.NDim() != 3 {
		t.Fatalf("expected 3 dimensions, got %d", a.NDim())
	}
	roots := a.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	counts, err := a.Counts(roots[0])
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[2] != 6 || counts[1] != 12 {
		t.Errorf("expected 6 faces and 12 edges, got %v", counts)
	}

	faces, err := a.Boundary(roots[0].ID)
	if err != nil {
		t.Fatalf("boundary: %v", err)
	}
	labels := map[string]bool{}
	for _, f := range faces.Refs() {
		l, err := a.Label(f.Mul(roots[0].Sign))
		if err != nil {
			t.Fatalf("label: %v", err)
		}
		labels[l] = true
	}
	for _, want := range []string{"right", "left", "top", "bottom", "front", "back"} {
		if !labels[want] {
			t.Errorf("missing face labelled %q", want)
		}
	}
}

func TestSliceAndCounts(t *testing.T) {
	source := cubeSource + `
(slice (plane [1 0 0] 0.3))
(slice (plane [0 1 0] 0.3) :inside-label "upper" :outside-label "lower")
(def pieces (root-count))
(def shapes (shape-count))
`
	a := mustEvaluate(t, source)
	if n := len(a.Roots()); n != 4 {
		t.Errorf("expected 4 pieces, got %d", n)
	}
}

func TestSliceLabelsEachSide(t *testing.T) {
	a := mustEvaluate(t, `
(space 2)
(carve (plane [1 0] 1)) (carve (plane [-1 0] 1))
(carve (plane [0 1] 1)) (carve (plane [0 -1] 1))
(slice (plane [1 0] 0) :inside-label "west" :outside-label "east")
`)
	roots := a.Roots()
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	seen := map[string]int{}
	for _, r := range roots {
		faces, err := a.Boundary(r.ID)
		if err != nil {
			t.Fatalf("boundary: %v", err)
		}
		for _, f := range faces.Refs() {
			l, err := a.Label(f.Mul(r.Sign))
			if err != nil {
				t.Fatalf("label: %v", err)
			}
			if l != "" {
				seen[l]++
			}
		}
	}
	if seen["west"] != 1 || seen["east"] != 1 || len(seen) != 2 {
		t.Errorf("expected one west and one east face, got %v", seen)
	}
}

func TestCarveLabelNamesKeptSide(t *testing.T) {
	a := mustEvaluate(t, `(space 2) (cut (plane [1 0] 0) :remove :inside :label "rest")`)
	roots := a.Roots()
	if len(roots) != 1 {
		t.Fatalf("expected 1 root, got %d", len(roots))
	}
	faces, err := a.Boundary(roots[0].ID)
	if err != nil {
		t.Fatalf("boundary: %v", err)
	}
	for _, f := range faces.Refs() {
		if l, _ := a.Label(f.Mul(roots[0].Sign)); l != "rest" {
			t.Errorf("face %s label = %q, want rest", f, l)
		}
		if l, _ := a.Label(f.Mul(roots[0].Sign).Neg()); l != "" {
			t.Errorf("removed side of %s has label %q", f, l)
		}
	}
}

func TestCutRemoveKeywords(t *testing.T) {
	tests := []struct {
		name  string
		cut   string
		roots int
	}{
		{"remove outside", `(cut (sphere [0 0] 0.5) :remove :outside)`, 1},
		{"remove inside", `(cut (sphere [0 0] 0.5) :remove :inside)`, 1},
		{"remove none", `(cut (sphere [0 0] 0.5) :remove :none)`, 2},
		{"no remove", `(cut (sphere [0 0] 0.5))`, 2},
		{"flipped carve", `(carve (flip (sphere [0 0] 0.5)))`, 1},
		{"keyword arguments", `(slice (plane :normal [1 1] :distance 0))`, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := `
(space 2)
(carve (plane [1 0] 1))
(carve (plane [-1 0] 1))
(carve (plane [0 1] 1))
(carve (plane [0 -1] 1))
` + tt.cut
			a := mustEvaluate(t, source)
			if n := len(a.Roots()); n != tt.roots {
				t.Errorf("expected %d roots, got %d", tt.roots, n)
			}
		})
	}
}

func TestDefaultSpace(t *testing.T) {
	a := mustEvaluate(t, `(carve (sphere [0 0 0] 2))`)
	if a.NDim() != DefaultNDim {
		t.Errorf("expected %d dimensions, got %d", DefaultNDim, a.NDim())
	}
}

func TestFourDimensions(t *testing.T) {
	source := `
(space 4)
(carve (plane [1 0 0 0] 1)) (carve (plane [-1 0 0 0] 1))
(carve (plane [0 1 0 0] 1)) (carve (plane [0 -1 0 0] 1))
(carve (plane [0 0 1 0] 1)) (carve (plane [0 0 -1 0] 1))
(carve (plane [0 0 0 1] 1)) (carve (plane [0 0 0 -1] 1))
`
	a := mustEvaluate(t, source)
	counts, err := a.Counts(a.Roots()[0])
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if counts[3] != 8 {
		t.Errorf("expected 8 cells, got %v", counts)
	}
}

func TestBuiltinErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"space twice", `(space 2) (space 3)`, "only once"},
		{"space after cut", `(carve (sphere [0 0 0] 1)) (space 3)`, "only once"},
		{"fractional space", `(space 2.5)`, "integer"},
		{"bad space", `(space 0)`, "out of range"},
		{"negative space", `(space -1)`, "out of range"},
		{"space too large", `(space 31)`, "out of range"},
		{"wrong normal length", `(space 2) (plane [1 0 0] 1)`, "components"},
		{"wrong center length", `(space 2) (sphere [1] 1)`, "components"},
		{"zero normal", `(space 2) (plane [0 0] 1)`, "zero normal"},
		{"zero radius", `(space 2) (sphere [0 0] 0)`, "zero radius"},
		{"missing distance", `(space 2) (plane [1 0])`, "requires"},
		{"bad remove", `(space 2) (cut (plane [1 0] 0) :remove :both)`, "invalid remove"},
		{"remove on carve", `(space 2) (carve (plane [1 0] 0) :remove :inside)`, "only accepted by cut"},
		{"cut needs manifold", `(space 2) (cut 42)`, "expected manifold"},
		{"flush root", `(space 2) (carve (plane [1 0] 0)) (carve (plane [1 0] 0))`, "flush"},
		{"label on slice", `(space 2) (slice (plane [1 0] 0) :label "x")`, "both sides are kept"},
		{"label on cut", `(space 2) (cut (plane [1 0] 0) :label "x")`, "both sides are kept"},
		{"bad inside label", `(space 2) (slice (plane [1 0] 0) :inside-label 3)`, "inside-label"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mustFail(t, tt.source, tt.want)
		})
	}
}

func TestCutRejectsNonManifold(t *testing.T) {
	_, evalErrs, err := NewEngine().Evaluate(`(space 2) (cut "plane")`)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 || !strings.Contains(evalErrs[0].Message, "expected manifold") {
		t.Errorf("expected a manifold type error, got %v", evalErrs)
	}
}

func TestArenaLoggerIsUsed(t *testing.T) {
	var buf strings.Builder
	log := shape.NewTextLogger(&buf, -4)
	a, evalErrs, err := NewEngine(WithLogger(log)).Evaluate(`(space 2) (slice (plane [1 0] 0))`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("evaluate: %v %v", err, evalErrs)
	}
	if len(a.Roots()) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(a.Roots()))
	}
	if !strings.Contains(buf.String(), "cut completed") {
		t.Errorf("expected cut log record, got %q", buf.String())
	}
}

func TestSliceTakesPrecedenceOverArraySlice(t *testing.T) {
	funcs := sandboxFunctions()
	for _, name := range builtinNames {
		if _, ok := funcs[name]; ok {
			t.Errorf("sandbox still provides %q", name)
		}
	}
	if _, ok := funcs["+"]; !ok {
		t.Error("sandbox lost unrelated functions")
	}

	a, evalErrs, err := NewEngine().Evaluate(`(space 2) (slice (plane [1 0] 0))`)
	if err != nil || len(evalErrs) > 0 {
		t.Fatalf("evaluate: %v %v", err, evalErrs)
	}
	if len(a.Roots()) != 2 {
		t.Errorf("expected 2 roots, got %d", len(a.Roots()))
	}
}
