package cga

import (
	"math/bits"
	"strconv"
	"strings"
)

// Axes is a bitmask of basis vectors. Bit 0 is e₋, bit 1 is e₊ and bit i+2
// is the Euclidean axis i.
type Axes uint32

const (
	// EMinus is the basis vector squaring to -1.
	EMinus Axes = 1 << 0
	// EPlus is the basis vector squaring to +1.
	EPlus Axes = 1 << 1
)

// MaxNDim is the largest Euclidean dimension representable by Axes.
const MaxNDim = 30

// Euclidean returns the basis vector of Euclidean axis i.
func Euclidean(i int) Axes {
	return Axes(1) << (i + 2)
}

// Count returns the number of basis vectors in the mask, i.e. the grade of
// a term with these axes.
func (a Axes) Count() int {
	return bits.OnesCount32(uint32(a))
}

// NDim returns the Euclidean dimension needed to contain every axis in the
// mask.
func (a Axes) NDim() int {
	n := bits.Len32(uint32(a)) - 2
	if n < 0 {
		return 0
	}
	return n
}

// productSign returns the sign of the geometric product of the unit blades
// a and b, taking into account both the reordering of basis vectors and the
// negative square of e₋.
func productSign(a, b Axes) float64 {
	swaps := 0
	for x := a >> 1; x != 0; x >>= 1 {
		swaps += bits.OnesCount32(uint32(x & b))
	}
	sign := 1.0
	if swaps%2 == 1 {
		sign = -1
	}
	if a&b&EMinus != 0 {
		sign = -sign
	}
	return sign
}

func (a Axes) String() string {
	if a == 0 {
		return "1"
	}
	var sb strings.Builder
	if a&EMinus != 0 {
		sb.WriteString("em")
	}
	if a&EPlus != 0 {
		sb.WriteString("ep")
	}
	for i := 0; i < MaxNDim; i++ {
		if a&Euclidean(i) != 0 {
			sb.WriteString("e")
			sb.WriteString(strconv.Itoa(i + 1))
		}
	}
	return sb.String()
}
