package engine

import (
	"fmt"
	"strings"

	"github.com/chazu/hypershape/pkg/cga"
	"github.com/chazu/hypershape/pkg/manifold"
	"github.com/chazu/hypershape/pkg/shape"
	zygo "github.com/glycerine/zygomys/zygo"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms cut-script source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: root-count -> root_count
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpManifold wraps a manifold.Manifold so it can be returned from `plane`
// and `sphere` and consumed by the cut builtins.
type sexpManifold struct {
	m manifold.Manifold
}

func (m *sexpManifold) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(manifold %s)", m.m)
}
func (m *sexpManifold) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value is a flag.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_z) and plain strings ("z").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toManifold extracts a Manifold from a sexpManifold.
func toManifold(s zygo.Sexp) (manifold.Manifold, error) {
	if m, ok := s.(*sexpManifold); ok {
		return m.m, nil
	}
	return manifold.Manifold{}, fmt.Errorf("expected manifold, got %T (%s)", s, s.SexpString(nil))
}

// toVector extracts a list or array of numbers.
func toVector(s zygo.Sexp) ([]float64, error) {
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, err
	}
	v := make([]float64, len(items))
	for i, item := range items {
		if v[i], err = toFloat64(item); err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
	}
	return v, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

// ---------------------------------------------------------------------------
// Arena builder
// ---------------------------------------------------------------------------

// builder holds the arena a script is cutting. The arena is created by
// (space n) or, failing that, by the first builtin that needs it.
type builder struct {
	arena *shape.Arena
	log   *shape.Logger
	ndim  int
}

func (b *builder) ensureArena() error {
	if b.arena != nil {
		return nil
	}
	n := b.ndim
	if n == 0 {
		n = DefaultNDim
	}
	a, err := shape.NewArena(n, shape.WithLogger(b.log))
	if err != nil {
		return err
	}
	b.arena = a
	return nil
}

// dim returns the dimension of the space being cut.
func (b *builder) dim() int {
	if b.arena != nil {
		return b.arena.NDim()
	}
	if b.ndim != 0 {
		return b.ndim
	}
	return DefaultNDim
}

// cutOptions reads :remove, :label, :inside-label and :outside-label.
// :label names the one side the cut keeps.
func cutOptions(op string, pa kwArgs, params *shape.CutParams) error {
	if v, ok := pa.kw["remove"]; ok {
		side, err := toKeywordString(v)
		if err != nil {
			return fmt.Errorf("%s: remove: %w", op, err)
		}
		switch side {
		case "inside":
			params.RemoveInside = true
		case "outside":
			params.RemoveOutside = true
		case "none":
		default:
			return fmt.Errorf("%s: invalid remove %q, expected inside, outside or none", op, side)
		}
	}
	for _, key := range []string{"inside-label", "outside-label"} {
		v, ok := pa.kw[key]
		if !ok {
			continue
		}
		label, err := toKeywordString(v)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", op, key, err)
		}
		if key == "inside-label" {
			params.InsideLabel = label
		} else {
			params.OutsideLabel = label
		}
	}
	if v, ok := pa.kw["label"]; ok {
		label, err := toKeywordString(v)
		if err != nil {
			return fmt.Errorf("%s: label: %w", op, err)
		}
		if err := params.LabelKept(label); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// builtinNames lists every function registerBuiltins installs.
var builtinNames = []string{
	"space", "plane", "sphere", "flip",
	"cut", "carve", "slice",
	"root_count", "shape_count",
}

// sandboxFunctions returns the zygomys sandbox functions minus those whose
// names the cut-script builtins take over. zygomys resolves its own builtins
// before globals, so a clashing name (such as its array "slice") would
// otherwise shadow ours.
func sandboxFunctions() map[string]zygo.ZlispUserFunction {
	funcs := zygo.SandboxSafeFunctions()
	for _, name := range builtinNames {
		delete(funcs, name)
	}
	return funcs
}

// registerBuiltins installs all cut-script builtins into a zygomys
// environment. The builtins cut the arena held by b during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, b *builder) {

	// -----------------------------------------------------------------------
	// (space 3)
	// -----------------------------------------------------------------------
	env.AddFunction("space", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("space requires exactly 1 argument, got %d", len(args))
		}
		if b.arena != nil || b.ndim != 0 {
			return zygo.SexpNull, fmt.Errorf("space: must come first and only once")
		}
		f, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("space: %w", err)
		}
		n := int(f)
		if float64(n) != f {
			return zygo.SexpNull, fmt.Errorf("space: dimension must be an integer, got %g", f)
		}
		if n < 1 || n > cga.MaxNDim {
			return zygo.SexpNull, fmt.Errorf("space: dimension %d out of range [1, %d]", n, cga.MaxNDim)
		}
		b.ndim = n
		if err := b.ensureArena(); err != nil {
			b.ndim = 0
			return zygo.SexpNull, fmt.Errorf("space: %w", err)
		}
		return &zygo.SexpInt{Val: int64(n)}, nil
	})

	// -----------------------------------------------------------------------
	// (plane [1 0 0] 1) or (plane :normal [1 0 0] :distance 1)
	// -----------------------------------------------------------------------
	env.AddFunction("plane", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		normalArg, distArg := pa.kw["normal"], pa.kw["distance"]
		if len(pa.positional) > 0 {
			normalArg = pa.positional[0]
		}
		if len(pa.positional) > 1 {
			distArg = pa.positional[1]
		}
		if normalArg == nil || distArg == nil {
			return zygo.SexpNull, fmt.Errorf("plane requires a normal and a distance")
		}

		normal, err := toVector(normalArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: normal: %w", err)
		}
		if len(normal) != b.dim() {
			return zygo.SexpNull, fmt.Errorf("plane: normal has %d components, space has %d", len(normal), b.dim())
		}
		d, err := toFloat64(distArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: distance: %w", err)
		}
		m, err := manifold.Hyperplane(normal, d)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("plane: %w", err)
		}
		return &sexpManifold{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (sphere [0 0 0] 1.5) or (sphere :center [0 0 0] :radius 1.5)
	// -----------------------------------------------------------------------
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		centerArg, radiusArg := pa.kw["center"], pa.kw["radius"]
		if len(pa.positional) > 0 {
			centerArg = pa.positional[0]
		}
		if len(pa.positional) > 1 {
			radiusArg = pa.positional[1]
		}
		if centerArg == nil || radiusArg == nil {
			return zygo.SexpNull, fmt.Errorf("sphere requires a center and a radius")
		}

		center, err := toVector(centerArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: center: %w", err)
		}
		if len(center) != b.dim() {
			return zygo.SexpNull, fmt.Errorf("sphere: center has %d components, space has %d", len(center), b.dim())
		}
		r, err := toFloat64(radiusArg)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		m, err := manifold.Hypersphere(center, r)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpManifold{m: m}, nil
	})

	// -----------------------------------------------------------------------
	// (flip m)
	// -----------------------------------------------------------------------
	env.AddFunction("flip", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("flip requires exactly 1 argument, got %d", len(args))
		}
		m, err := toManifold(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("flip: %w", err)
		}
		return &sexpManifold{m: m.Flip()}, nil
	})

	// -----------------------------------------------------------------------
	// (cut m :remove :outside :label "red")
	// (carve m :label "red")   keeps the inside
	// (slice m :inside-label "a" :outside-label "b")   keeps both sides
	// -----------------------------------------------------------------------
	addCut := func(op string, base shape.CutParams, allowRemove bool) {
		env.AddFunction(op, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			pa := parseArgs(args)
			if len(pa.positional) != 1 {
				return zygo.SexpNull, fmt.Errorf("%s requires a manifold argument", op)
			}
			if _, ok := pa.kw["remove"]; ok && !allowRemove {
				return zygo.SexpNull, fmt.Errorf("%s: :remove is only accepted by cut", op)
			}
			m, err := toManifold(pa.positional[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			params := base
			params.Cut = m
			if err := cutOptions(op, pa, &params); err != nil {
				return zygo.SexpNull, err
			}
			if err := b.ensureArena(); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			if err := b.arena.Cut(params); err != nil {
				return zygo.SexpNull, fmt.Errorf("%s: %w", op, err)
			}
			return &zygo.SexpInt{Val: int64(len(b.arena.Roots()))}, nil
		})
	}
	addCut("cut", shape.CutParams{}, true)
	addCut("carve", shape.CutParams{RemoveOutside: true}, false)
	addCut("slice", shape.CutParams{}, false)

	// -----------------------------------------------------------------------
	// (root-count) (shape-count)
	// -----------------------------------------------------------------------
	env.AddFunction("root_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := b.ensureArena(); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(len(b.arena.Roots()))}, nil
	})
	env.AddFunction("shape_count", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := b.ensureArena(); err != nil {
			return zygo.SexpNull, err
		}
		return &zygo.SexpInt{Val: int64(b.arena.Len())}, nil
	})
}
