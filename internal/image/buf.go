// Package image provides the pixel storage behind quadtree sources.
//
// A decoded picture is copied once into a tightly packed RGB8 arena
// (ImageBuf). Every region of the quadtree reads from that arena through
// SubImage views, so the pixel data is never duplicated or mutated after
// the arena has been filled.
package image

import "errors"

// ErrInvalidDimensions is returned when width or height is non-positive.
var ErrInvalidDimensions = errors.New("image: invalid dimensions")

// BytesPerPixel is the size of one RGB8 pixel.
const BytesPerPixel = 3

// ImageBuf is an RGB8 pixel buffer, 3 bytes per pixel, rows stride bytes apart.
//
// Views created with SubImage share the parent's data and keep its stride.
//
// Thread safety: ImageBuf is safe for concurrent read access. Only
// FromStdImage writes to a buffer, before it is shared.
type ImageBuf struct {
	data   []byte
	width  int
	height int
	stride int
}

// NewImageBuf creates a zeroed buffer with the given dimensions.
func NewImageBuf(width, height int) (*ImageBuf, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}

	stride := width * BytesPerPixel
	return &ImageBuf{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
	}, nil
}

// Width returns the image width in pixels.
func (b *ImageBuf) Width() int {
	return b.width
}

// Height returns the image height in pixels.
func (b *ImageBuf) Height() int {
	return b.height
}

// RowBytes returns the pixel bytes of row y, without stride padding.
// Returns nil if y is out of bounds.
func (b *ImageBuf) RowBytes(y int) []byte {
	if y < 0 || y >= b.height {
		return nil
	}
	start := y * b.stride
	return b.data[start : start+b.width*BytesPerPixel]
}

// PixelOffset returns the byte offset of pixel (x, y) in the data slice.
// Returns -1 if coordinates are out of bounds.
func (b *ImageBuf) PixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*BytesPerPixel
}

// RGB returns the channels of pixel (x, y).
// Returns (0, 0, 0) if coordinates are out of bounds.
func (b *ImageBuf) RGB(x, y int) (r, g, bl uint8) {
	off := b.PixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0
	}
	return b.data[off], b.data[off+1], b.data[off+2]
}

// SubImage returns a view into a rectangular region of the image.
// The returned ImageBuf shares the underlying data with the original.
// Returns nil if the bounds are empty or outside the image.
func (b *ImageBuf) SubImage(x, y, width, height int) *ImageBuf {
	if x < 0 || y < 0 || width <= 0 || height <= 0 {
		return nil
	}
	if x+width > b.width || y+height > b.height {
		return nil
	}

	offset := y*b.stride + x*BytesPerPixel
	// The last row is not padded out to the full stride.
	end := (y+height-1)*b.stride + (x+width)*BytesPerPixel

	return &ImageBuf{
		data:   b.data[offset:end],
		width:  width,
		height: height,
		stride: b.stride,
	}
}
