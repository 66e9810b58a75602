package shape

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes the shape tree under every root to w, one shape per line,
// indented by depth. Shared shapes are printed each time they are reached.
func (a *Arena) Dump(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "arena in %s\n", a.space); err != nil {
		return err
	}
	for _, r := range a.roots {
		if err := a.dumpRef(w, r, 1); err != nil {
			return err
		}
	}
	return nil
}

// DumpRef writes the shape tree under r to w.
func (a *Arena) DumpRef(w io.Writer, r Ref) error {
	return a.dumpRef(w, r, 0)
}

func (a *Arena) dumpRef(w io.Writer, r Ref, depth int) error {
	s, err := a.get(r.ID)
	if err != nil {
		return err
	}
	label := ""
	if l := s.LabelOf(r.Sign); l != "" {
		label += fmt.Sprintf(" [in=%s]", l)
	}
	if l := s.LabelOf(r.Sign.Flip()); l != "" {
		label += fmt.Sprintf(" [out=%s]", l)
	}
	if _, err := fmt.Fprintf(w, "%s%s %s%s\n", strings.Repeat("  ", depth), r, s.Manifold.Mul(r.Sign), label); err != nil {
		return err
	}
	for _, c := range s.Boundary.Refs() {
		if err := a.dumpRef(w, c.Mul(r.Sign), depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (a *Arena) String() string {
	var b strings.Builder
	if err := a.Dump(&b); err != nil {
		return fmt.Sprintf("arena in %s: %v", a.space, err)
	}
	return b.String()
}
