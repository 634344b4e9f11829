package quads

import (
	"fmt"
	"image"
)

// Rect is a half-open pixel rectangle [Left, Right) × [Top, Bottom).
//
// A Rect that belongs to a Quad is never empty: Right > Left and
// Bottom > Top.
type Rect struct {
	Left, Top, Right, Bottom uint32
}

// R is shorthand for Rect{left, top, right, bottom}.
func R(left, top, right, bottom uint32) Rect {
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// Width returns Right - Left, or 0 for an inverted rectangle.
func (r Rect) Width() uint32 {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns Bottom - Top, or 0 for an inverted rectangle.
func (r Rect) Height() uint32 {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// Area returns the number of pixels covered by r.
func (r Rect) Area() uint64 {
	return uint64(r.Width()) * uint64(r.Height())
}

// Empty reports whether r covers no pixels.
func (r Rect) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Overlaps reports whether r and s share at least one pixel.
func (r Rect) Overlaps(s Rect) bool {
	return !r.Empty() && !s.Empty() &&
		r.Left < s.Right && s.Left < r.Right &&
		r.Top < s.Bottom && s.Top < r.Bottom
}

// Contains reports whether s lies entirely within r.
func (r Rect) Contains(s Rect) bool {
	return s.Left >= r.Left && s.Right <= r.Right &&
		s.Top >= r.Top && s.Bottom <= r.Bottom
}

// Quadrants splits r at its integer midpoints into top-left, top-right,
// bottom-left and bottom-right parts.
//
// The midpoints are Left + Width/2 and Top + Height/2, so for odd sizes the
// top-left part is the smaller one. The four parts partition r exactly; any
// of them is empty when the corresponding side of r is shorter than 2.
func (r Rect) Quadrants() [4]Rect {
	midX := r.Left + r.Width()/2
	midY := r.Top + r.Height()/2
	return [4]Rect{
		{r.Left, r.Top, midX, midY},
		{midX, r.Top, r.Right, midY},
		{r.Left, midY, midX, r.Bottom},
		{midX, midY, r.Right, r.Bottom},
	}
}

// Image converts r to an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.Left), int(r.Top), int(r.Right), int(r.Bottom))
}

func (r Rect) String() string {
	return fmt.Sprintf("[%d,%d)x[%d,%d)", r.Left, r.Right, r.Top, r.Bottom)
}
