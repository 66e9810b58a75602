// Package cutlist reads declarative cut lists: TOML manifests naming a space
// dimension and an ordered sequence of plane and sphere cuts. A cut list
// builds the same arena a cut script would, without an interpreter.
package cutlist

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/chazu/hypershape/pkg/manifold"
	"github.com/chazu/hypershape/pkg/shape"
)

// Cut kinds.
const (
	KindPlane  = "plane"
	KindSphere = "sphere"
)

// Values accepted by Cut.Remove.
const (
	RemoveNone    = "none"
	RemoveInside  = "inside"
	RemoveOutside = "outside"
)

// CutList is the top-level manifest.
type CutList struct {
	Name string `toml:"name"`
	NDim int    `toml:"ndim"`
	Cuts []Cut  `toml:"cut"`
}

// Cut is one [[cut]] table.
type Cut struct {
	Kind     string    `toml:"kind"`
	Normal   []float64 `toml:"normal,omitempty"`
	Distance float64   `toml:"distance,omitempty"`
	Center   []float64 `toml:"center,omitempty"`
	Radius   float64   `toml:"radius,omitempty"`
	Flip     bool      `toml:"flip,omitempty"`
	Remove   string    `toml:"remove,omitempty"`

	// Label names the kept side and is only valid when one side is removed.
	Label        string `toml:"label,omitempty"`
	InsideLabel  string `toml:"inside_label,omitempty"`
	OutsideLabel string `toml:"outside_label,omitempty"`
}

// Parse decodes a manifest. It does not validate it.
func Parse(data []byte) (*CutList, error) {
	var cl CutList
	if err := toml.Unmarshal(data, &cl); err != nil {
		return nil, fmt.Errorf("parsing cut list: %w", err)
	}
	return &cl, nil
}

// Load reads and decodes the manifest at path.
func Load(path string) (*CutList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cl, nil
}

// Marshal encodes a cut list as TOML.
func Marshal(cl *CutList) ([]byte, error) {
	return toml.Marshal(cl)
}

// Manifold returns the oriented cutting manifold described by c.
func (c Cut) Manifold() (manifold.Manifold, error) {
	var (
		m   manifold.Manifold
		err error
	)
	switch c.Kind {
	case KindPlane:
		m, err = manifold.Hyperplane(c.Normal, c.Distance)
	case KindSphere:
		m, err = manifold.Hypersphere(c.Center, c.Radius)
	default:
		return m, fmt.Errorf("%w: %q", ErrUnknownKind, c.Kind)
	}
	if err != nil {
		return m, err
	}
	if c.Flip {
		m = m.Flip()
	}
	return m, nil
}

// Params returns the cut parameters for c.
func (c Cut) Params() (shape.CutParams, error) {
	m, err := c.Manifold()
	if err != nil {
		return shape.CutParams{}, err
	}
	p := shape.CutParams{Cut: m, InsideLabel: c.InsideLabel, OutsideLabel: c.OutsideLabel}
	switch c.Remove {
	case "", RemoveNone:
	case RemoveInside:
		p.RemoveInside = true
	case RemoveOutside:
		p.RemoveOutside = true
	default:
		return p, fmt.Errorf("%w: %q", ErrBadRemove, c.Remove)
	}
	if c.Label != "" {
		if err := p.LabelKept(c.Label); err != nil {
			return p, fmt.Errorf("%w: %w", ErrLabelSide, err)
		}
	}
	return p, nil
}

// Build validates the cut list and applies its cuts, in order, to a fresh
// arena of dimension NDim.
func (cl *CutList) Build(opts ...shape.Option) (*shape.Arena, error) {
	if errs := cl.Validate(); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, errors.Join(joined...)
	}

	a, err := shape.NewArena(cl.NDim, opts...)
	if err != nil {
		return nil, err
	}
	for i, c := range cl.Cuts {
		p, err := c.Params()
		if err != nil {
			return nil, &CutError{Index: i, Err: err}
		}
		if err := a.Cut(p); err != nil {
			return nil, &CutError{Index: i, Err: err}
		}
	}
	return a, nil
}
