package cga

import "fmt"

// Term is a scaled unit blade.
type Term struct {
	Coef float64
	Axes Axes
}

// Mul returns the geometric product of two terms.
func (t Term) Mul(u Term) Term {
	return Term{
		Coef: t.Coef * u.Coef * productSign(t.Axes, u.Axes),
		Axes: t.Axes ^ u.Axes,
	}
}

// Wedge returns the outer product of two terms, which is zero unless the
// terms share no axes.
func (t Term) Wedge(u Term) (Term, bool) {
	if t.Axes&u.Axes != 0 {
		return Term{}, false
	}
	return t.Mul(u), true
}

// LeftContract returns the left contraction of u by t, which is zero unless
// every axis of t is also in u.
func (t Term) LeftContract(u Term) (Term, bool) {
	if t.Axes&u.Axes != t.Axes {
		return Term{}, false
	}
	return t.Mul(u), true
}

// Grade returns the number of basis vectors in the term.
func (t Term) Grade() int {
	return t.Axes.Count()
}

func (t Term) String() string {
	if t.Axes == 0 {
		return fmt.Sprintf("%g", t.Coef)
	}
	return fmt.Sprintf("%g*%s", t.Coef, t.Axes)
}
