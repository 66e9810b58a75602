package manifold

// Sign is an orientation: Pos or Neg.
type Sign int8

const (
	Pos Sign = 1
	Neg Sign = -1
)

// Flip returns the opposite sign.
func (s Sign) Flip() Sign { return -s }

// Mul returns the product of two signs.
func (s Sign) Mul(o Sign) Sign { return s * o }

func (s Sign) String() string {
	if s == Neg {
		return "-"
	}
	return "+"
}

// PointWhichSide classifies a point against an oriented manifold.
type PointWhichSide int

const (
	On PointWhichSide = iota
	Inside
	Outside
)

// Mul flips Inside and Outside when s is Neg.
func (p PointWhichSide) Mul(s Sign) PointWhichSide {
	if s == Pos {
		return p
	}
	switch p {
	case Inside:
		return Outside
	case Outside:
		return Inside
	}
	return On
}

func (p PointWhichSide) String() string {
	switch p {
	case Inside:
		return "inside"
	case Outside:
		return "outside"
	}
	return "on"
}

// ManifoldWhichSide records whether any part of a manifold lies strictly
// inside and/or strictly outside a cut.
type ManifoldWhichSide struct {
	IsAnyInside  bool
	IsAnyOutside bool
}

// Mul swaps the two flags when s is Neg.
func (w ManifoldWhichSide) Mul(s Sign) ManifoldWhichSide {
	if s == Neg {
		return ManifoldWhichSide{IsAnyInside: w.IsAnyOutside, IsAnyOutside: w.IsAnyInside}
	}
	return w
}

// SplitKind is the outcome of splitting a manifold by a cut.
type SplitKind int

const (
	// SplitFlush means the manifold lies entirely on the cut.
	SplitFlush SplitKind = iota
	// SplitInside means the manifold lies entirely inside the cut.
	SplitInside
	// SplitOutside means the manifold lies entirely outside the cut.
	SplitOutside
	// SplitCrossing means the cut crosses the manifold; Intersection is set.
	SplitCrossing
)

func (k SplitKind) String() string {
	switch k {
	case SplitFlush:
		return "flush"
	case SplitInside:
		return "inside"
	case SplitOutside:
		return "outside"
	case SplitCrossing:
		return "split"
	}
	return "unknown"
}

// Split is the result of Manifold.Split.
type Split struct {
	Kind         SplitKind
	Intersection Manifold
}
