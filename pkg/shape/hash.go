package shape

import (
	"encoding/binary"
	"encoding/hex"
	"math"
	"sort"

	"github.com/chazu/hypershape/pkg/cga"
	"lukechampine.com/blake3"
)

// Fingerprint is a content hash of a shape and everything it reaches. Two
// shapes built by the same sequence of cuts have the same fingerprint even
// when their handles differ.
type Fingerprint [32]byte

func (f Fingerprint) String() string { return hex.EncodeToString(f[:]) }

// Short returns the first eight hex digits.
func (f Fingerprint) Short() string { return f.String()[:8] }

type hasher struct {
	a    *Arena
	memo map[ID]Fingerprint
}

// Fingerprint returns the content hash of r.
func (a *Arena) Fingerprint(r Ref) (Fingerprint, error) {
	h := &hasher{a: a, memo: make(map[ID]Fingerprint)}
	return h.ref(r)
}

// ArenaFingerprint hashes the roots in order.
func (a *Arena) ArenaFingerprint() (Fingerprint, error) {
	h := &hasher{a: a, memo: make(map[ID]Fingerprint)}
	hs := blake3.New(32, nil)
	writeInt(hs, int64(a.NDim()))
	for _, r := range a.roots {
		f, err := h.ref(r)
		if err != nil {
			return Fingerprint{}, err
		}
		hs.Write(f[:])
	}
	var out Fingerprint
	copy(out[:], hs.Sum(nil))
	return out, nil
}

func (h *hasher) ref(r Ref) (Fingerprint, error) {
	f, err := h.shape(r.ID)
	if err != nil {
		return Fingerprint{}, err
	}
	sign := byte('+')
	if r.Sign < 0 {
		sign = '-'
	}
	return blake3.Sum256(append([]byte{sign}, f[:]...)), nil
}

// shape hashes the manifold, both labels and the sorted fingerprints of the
// boundary. Boundary order follows handles, so it is sorted by hash first.
func (h *hasher) shape(id ID) (Fingerprint, error) {
	if f, ok := h.memo[id]; ok {
		return f, nil
	}
	s, err := h.a.get(id)
	if err != nil {
		return Fingerprint{}, err
	}

	children := make([]Fingerprint, 0, s.Boundary.Len())
	for _, r := range s.Boundary.Refs() {
		f, err := h.ref(r)
		if err != nil {
			return Fingerprint{}, err
		}
		children = append(children, f)
	}
	sort.Slice(children, func(i, j int) bool {
		return string(children[i][:]) < string(children[j][:])
	})

	hs := blake3.New(32, nil)
	hs.Write([]byte("shape\n"))
	writeInt(hs, int64(s.Manifold.SpaceNDim()))
	writeInt(hs, int64(s.NDim()))
	for _, t := range s.Manifold.OPNS().Terms() {
		writeInt(hs, int64(t.Axes))
		writeInt(hs, quantize(t.Coef))
	}
	for _, l := range []string{s.PosLabel, s.NegLabel} {
		writeInt(hs, int64(len(l)))
		hs.Write([]byte(l))
	}
	for _, c := range children {
		hs.Write(c[:])
	}

	var out Fingerprint
	copy(out[:], hs.Sum(nil))
	h.memo[id] = out
	return out, nil
}

func quantize(x float64) int64 {
	return int64(math.Round(x / cga.Epsilon))
}

func writeInt(hs *blake3.Hasher, v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	hs.Write(buf[:])
}
