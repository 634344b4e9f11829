package quads

import (
	"container/heap"
	"math"
)

// DefaultSmallSize is the side length below which a region is considered
// small by the frontier.
const DefaultSmallSize = 4

// Compare orders quads by split priority and returns -1, 0 or +1 when a has
// lower, equal or higher priority than b.
//
// A quad whose width or height is below small always ranks under one that is
// not. Otherwise the higher Score wins; a NaN score ranks above every
// comparable score. Quads over the same rectangle are equal.
func Compare(a, b *Quad, small uint32) int {
	if a.Rect == b.Rect {
		return 0
	}

	aSmall, bSmall := isSmall(a.Rect, small), isSmall(b.Rect, small)
	switch {
	case aSmall && !bSmall:
		return -1
	case !aSmall && bSmall:
		return 1
	}

	sa, sb := a.Score(), b.Score()
	aNaN, bNaN := math.IsNaN(sa), math.IsNaN(sb)
	switch {
	case aNaN && bNaN:
		return 0
	case aNaN:
		return 1
	case bNaN:
		return -1
	case sa < sb:
		return -1
	case sa > sb:
		return 1
	}
	return 0
}

func isSmall(r Rect, small uint32) bool {
	return r.Width() < small || r.Height() < small
}

// Frontier is a max-priority queue of leaves waiting to be split, ordered
// by Compare. Push and Pop are O(log n).
//
// A Frontier is not safe for concurrent use.
type Frontier struct {
	h quadHeap
}

// NewFrontier returns an empty frontier using the given small-region size.
func NewFrontier(small uint32) *Frontier {
	return &Frontier{h: quadHeap{small: small}}
}

// Push adds q to the frontier.
func (f *Frontier) Push(q *Quad) {
	heap.Push(&f.h, q)
}

// Pop removes and returns the highest-priority quad, or nil if the
// frontier is empty.
func (f *Frontier) Pop() *Quad {
	if len(f.h.quads) == 0 {
		return nil
	}
	return heap.Pop(&f.h).(*Quad)
}

// Peek returns the highest-priority quad without removing it.
func (f *Frontier) Peek() *Quad {
	if len(f.h.quads) == 0 {
		return nil
	}
	return f.h.quads[0]
}

// Len returns the number of queued quads.
func (f *Frontier) Len() int {
	return len(f.h.quads)
}

// quadHeap implements heap.Interface as a max-heap.
type quadHeap struct {
	quads []*Quad
	small uint32
}

func (h *quadHeap) Len() int { return len(h.quads) }

func (h *quadHeap) Less(i, j int) bool {
	return Compare(h.quads[i], h.quads[j], h.small) > 0
}

func (h *quadHeap) Swap(i, j int) { h.quads[i], h.quads[j] = h.quads[j], h.quads[i] }

func (h *quadHeap) Push(x any) { h.quads = append(h.quads, x.(*Quad)) }

func (h *quadHeap) Pop() any {
	n := len(h.quads)
	q := h.quads[n-1]
	h.quads[n-1] = nil
	h.quads = h.quads[:n-1]
	return q
}
