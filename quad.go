package quads

import (
	"errors"
	"fmt"
	"math"
)

// Errors returned by the quadtree.
var (
	// ErrDegenerateRect is returned when a region has zero width or height.
	ErrDegenerateRect = errors.New("quads: degenerate rectangle")

	// ErrTooSmall is returned when splitting a region narrower or shorter
	// than 2 pixels, which would produce empty children.
	ErrTooSmall = errors.New("quads: region too small to split")

	// ErrEmptySource is returned when a Model is built from an image
	// without pixels.
	ErrEmptySource = errors.New("quads: empty source image")
)

// Quad is one node of the quadtree: a region of the source image, the flat
// color approximating it and the error of that approximation.
//
// A Quad is immutable once built, except for the single transition from
// leaf to split node.
type Quad struct {
	Rect  Rect
	Color Color
	Error float32

	children []*Quad
}

// Leaf is the value form of a leaf, as stored in snapshots.
type Leaf struct {
	Rect  Rect
	Color Color
}

// NewQuad analyzes region r of src.
func NewQuad(src Source, r Rect) (*Quad, error) {
	if r.Empty() {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateRect, r)
	}
	if int(r.Right) > src.Width() || int(r.Bottom) > src.Height() {
		return nil, fmt.Errorf("%w: %v outside %dx%d", ErrDegenerateRect, r, src.Width(), src.Height())
	}
	c, e := Analyze(src.Crop(r))
	return &Quad{Rect: r, Color: c, Error: e}, nil
}

// Split replaces the children of q with the four quadrants of its region.
// Regions with a side shorter than 2 pixels are refused with ErrTooSmall.
func (q *Quad) Split(src Source) error {
	return q.split(src, nil)
}

// split analyzes the quadrants through run, which may execute the four
// analyses concurrently but must return only after all of them finished.
// The children are attached only once every one of them is ready.
func (q *Quad) split(src Source, run func(tasks ...func())) error {
	if !q.CanSplit() {
		return fmt.Errorf("%w: %v", ErrTooSmall, q.Rect)
	}

	parts := q.Rect.Quadrants()
	children := make([]*Quad, len(parts))
	errs := make([]error, len(parts))

	tasks := make([]func(), len(parts))
	for i, r := range parts {
		tasks[i] = func() {
			children[i], errs[i] = NewQuad(src, r)
		}
	}
	if run == nil {
		for _, task := range tasks {
			task()
		}
	} else {
		run(tasks...)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	q.children = children
	return nil
}

// CanSplit reports whether both sides of q are at least 2 pixels long.
func (q *Quad) CanSplit() bool {
	return q.Rect.Width() >= 2 && q.Rect.Height() >= 2
}

// Children returns the four children of a split node, or nil for a leaf.
// The order is top-left, top-right, bottom-left, bottom-right.
func (q *Quad) Children() []*Quad {
	return q.children
}

// IsLeaf reports whether q has not been split.
func (q *Quad) IsLeaf() bool {
	return len(q.children) == 0
}

// Area returns the number of pixels in q.
func (q *Quad) Area() uint64 {
	return q.Rect.Area()
}

// Score is the splittability of q: error × area^¼.
func (q *Quad) Score() float64 {
	return float64(q.Error) * math.Pow(float64(q.Area()), 0.25)
}

// Leaf returns the rectangle and color of q by value.
func (q *Quad) Leaf() Leaf {
	return Leaf{Rect: q.Rect, Color: q.Color}
}

// Leaves appends the leaves below q, in depth-first child order, to dst.
func (q *Quad) Leaves(dst []Leaf) []Leaf {
	if q.IsLeaf() {
		return append(dst, q.Leaf())
	}
	for _, c := range q.children {
		dst = c.Leaves(dst)
	}
	return dst
}
