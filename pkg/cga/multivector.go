package cga

import (
	"math"
	"sort"
	"strings"
)

// Multivector is a sparse sum of terms, sorted by axes with at most one term
// per axes value. Terms whose coefficient is approximately zero are dropped
// on construction. The zero value is the zero multivector.
type Multivector struct {
	terms []Term
}

// Zero returns the zero multivector.
func Zero() Multivector { return Multivector{} }

// Scalar returns a grade-0 multivector.
func Scalar(x float64) Multivector {
	return FromTerms(Term{Coef: x})
}

// FromTerms sums the given terms into a multivector.
func FromTerms(terms ...Term) Multivector {
	acc := make(map[Axes]float64, len(terms))
	for _, t := range terms {
		acc[t.Axes] += t.Coef
	}
	return fromMap(acc)
}

func fromMap(acc map[Axes]float64) Multivector {
	terms := make([]Term, 0, len(acc))
	for axes, coef := range acc {
		if !IsApproxZero(coef) {
			terms = append(terms, Term{Coef: coef, Axes: axes})
		}
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Axes < terms[j].Axes })
	return Multivector{terms: terms}
}

// Terms returns a copy of the terms of m.
func (m Multivector) Terms() []Term {
	return append([]Term(nil), m.terms...)
}

// Get returns the coefficient of the given axes.
func (m Multivector) Get(axes Axes) float64 {
	i := sort.Search(len(m.terms), func(i int) bool { return m.terms[i].Axes >= axes })
	if i < len(m.terms) && m.terms[i].Axes == axes {
		return m.terms[i].Coef
	}
	return 0
}

// IsZero reports whether every coefficient of m is approximately zero.
func (m Multivector) IsZero() bool {
	for _, t := range m.terms {
		if !IsApproxZero(t.Coef) {
			return false
		}
	}
	return true
}

// ApproxEq reports whether m and o differ by approximately zero.
func (m Multivector) ApproxEq(o Multivector) bool {
	return m.Sub(o).IsZero()
}

// Grade returns the grade of the first term of m. Blades have a single
// grade, so this is the grade of the blade.
func (m Multivector) Grade() int {
	if len(m.terms) == 0 {
		return 0
	}
	return m.terms[0].Grade()
}

// NDim returns the smallest Euclidean dimension containing every term of m.
func (m Multivector) NDim() int {
	n := 0
	for _, t := range m.terms {
		if d := t.Axes.NDim(); d > n {
			n = d
		}
	}
	return n
}

// Add returns m + o.
func (m Multivector) Add(o Multivector) Multivector {
	acc := make(map[Axes]float64, len(m.terms)+len(o.terms))
	for _, t := range m.terms {
		acc[t.Axes] += t.Coef
	}
	for _, t := range o.terms {
		acc[t.Axes] += t.Coef
	}
	return fromMap(acc)
}

// Sub returns m - o.
func (m Multivector) Sub(o Multivector) Multivector {
	return m.Add(o.Neg())
}

// Neg returns -m.
func (m Multivector) Neg() Multivector {
	return m.Scale(-1)
}

// Scale multiplies every coefficient of m by x.
func (m Multivector) Scale(x float64) Multivector {
	terms := make([]Term, 0, len(m.terms))
	for _, t := range m.terms {
		if c := t.Coef * x; !IsApproxZero(c) {
			terms = append(terms, Term{Coef: c, Axes: t.Axes})
		}
	}
	return Multivector{terms: terms}
}

// Mul returns the geometric product m o.
func (m Multivector) Mul(o Multivector) Multivector {
	acc := make(map[Axes]float64)
	for _, a := range m.terms {
		for _, b := range o.terms {
			t := a.Mul(b)
			acc[t.Axes] += t.Coef
		}
	}
	return fromMap(acc)
}

// Wedge returns the outer product m ∧ o.
func (m Multivector) Wedge(o Multivector) Multivector {
	acc := make(map[Axes]float64)
	for _, a := range m.terms {
		for _, b := range o.terms {
			if t, ok := a.Wedge(b); ok {
				acc[t.Axes] += t.Coef
			}
		}
	}
	return fromMap(acc)
}

// LeftContract returns the left contraction m ⌋ o.
func (m Multivector) LeftContract(o Multivector) Multivector {
	acc := make(map[Axes]float64)
	for _, a := range m.terms {
		for _, b := range o.terms {
			if t, ok := a.LeftContract(b); ok {
				acc[t.Axes] += t.Coef
			}
		}
	}
	return fromMap(acc)
}

// Dot returns the scalar product of m and o.
func (m Multivector) Dot(o Multivector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(m.terms) && j < len(o.terms) {
		a, b := m.terms[i], o.terms[j]
		switch {
		case a.Axes < b.Axes:
			i++
		case a.Axes > b.Axes:
			j++
		default:
			sum += a.Mul(b).Coef
			i++
			j++
		}
	}
	return sum
}

// Mag2 returns the scalar product of m with itself.
func (m Multivector) Mag2() float64 {
	return m.Dot(m)
}

// Reverse returns the reversion of m.
func (m Multivector) Reverse() Multivector {
	terms := make([]Term, len(m.terms))
	for i, t := range m.terms {
		k := t.Grade()
		if (k*(k-1)/2)%2 == 1 {
			t.Coef = -t.Coef
		}
		terms[i] = t
	}
	return Multivector{terms: terms}
}

// Inverse returns the inverse of the blade m, or false if m is null.
func (m Multivector) Inverse() (Multivector, bool) {
	rev := m.Reverse()
	d := m.Dot(rev)
	if IsApproxZero(d) {
		return Multivector{}, false
	}
	return rev.Scale(1 / d), true
}

// MostSignificantTerm returns the term with the largest absolute
// coefficient.
func (m Multivector) MostSignificantTerm() (Term, bool) {
	if len(m.terms) == 0 {
		return Term{}, false
	}
	best := m.terms[0]
	for _, t := range m.terms[1:] {
		if math.Abs(t.Coef) > math.Abs(best.Coef) {
			best = t
		}
	}
	return best, true
}

// NOCoef returns the coefficient of NO in a 1-blade.
func (m Multivector) NOCoef() float64 {
	return m.Get(EMinus) - m.Get(EPlus)
}

// NICoef returns the coefficient of NI in a 1-blade.
func (m Multivector) NICoef() float64 {
	return (m.Get(EMinus) + m.Get(EPlus)) / 2
}

// ToVector returns the Euclidean components of a 1-blade.
func (m Multivector) ToVector() []float64 {
	n := m.NDim()
	v := make([]float64, n)
	for i := range v {
		v[i] = m.Get(Euclidean(i))
	}
	return v
}

func (m Multivector) String() string {
	if len(m.terms) == 0 {
		return "0"
	}
	parts := make([]string, len(m.terms))
	for i, t := range m.terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, " + ")
}
