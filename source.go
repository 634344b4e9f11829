package quads

import (
	"fmt"
	"image"

	intImage "github.com/gogpu/quads/internal/image"
)

// Source is the read-only pixel raster a Model approximates.
//
// Crop returns a Source covering r, addressed from (0, 0). Implementations
// must be safe for concurrent reads, since child regions of a split may be
// analyzed in parallel.
type Source interface {
	Width() int
	Height() int
	RGB(x, y int) (r, g, b uint8)
	Crop(r Rect) Source
}

// bufSource adapts the internal RGB8 arena to Source.
type bufSource struct {
	buf *intImage.ImageBuf
}

// NewSource copies img into a packed RGB8 buffer and returns it as a Source.
// Every crop of the returned Source is a view into that single buffer.
func NewSource(img image.Image) (Source, error) {
	buf, err := intImage.FromStdImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmptySource, err)
	}
	return bufSource{buf: buf}, nil
}

func (s bufSource) Width() int  { return s.buf.Width() }
func (s bufSource) Height() int { return s.buf.Height() }

func (s bufSource) RGB(x, y int) (r, g, b uint8) {
	return s.buf.RGB(x, y)
}

// Crop panics if r is empty or extends past the source bounds.
func (s bufSource) Crop(r Rect) Source {
	sub := s.buf.SubImage(int(r.Left), int(r.Top), int(r.Width()), int(r.Height()))
	if sub == nil {
		panic(fmt.Sprintf("quads: crop %v outside %dx%d source", r, s.buf.Width(), s.buf.Height()))
	}
	return bufSource{buf: sub}
}
