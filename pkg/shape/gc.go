package shape

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"
)

// mark returns the set of slot indices reachable from the roots.
func (a *Arena) mark(roots []Ref) *roaring.Bitmap {
	marked := roaring.New()
	stack := make([]ID, 0, len(roots))
	for _, r := range roots {
		stack = append(stack, r.ID)
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !a.IsLive(id) || !marked.CheckedAdd(id.index) {
			continue
		}
		for _, c := range a.slots[id.index].shape.Boundary.Refs() {
			stack = append(stack, c.ID)
		}
	}
	return marked
}

// Collect removes every shape not reachable from the roots and returns the
// number of shapes removed. Handles to removed shapes become stale; live
// handles are never reassigned.
func (a *Arena) Collect() int {
	marked := a.mark(a.roots)
	dead := roaring.AndNot(a.live, marked)

	it := dead.Iterator()
	for it.HasNext() {
		idx := it.Next()
		s := &a.slots[idx]
		s.shape = Shape{}
		s.live = false
		s.gen++
		a.free = append(a.free, idx)
	}
	a.live.AndNot(dead)

	n := int(dead.GetCardinality())
	a.log.LogCollect(context.Background(), a.Len(), n)
	return n
}
