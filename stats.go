package quads

import (
	"image/color"
	"math"
)

// Channel weights of the error blend. The constant floor keeps the error of
// a perfectly flat region above zero so its area still counts in the score.
const (
	redWeight   = 0.3
	greenWeight = 0.6
	blueWeight  = 1.0
	errorFloor  = 0.1
)

// Color is a flat 8-bit RGB color.
type Color struct {
	R, G, B uint8
}

// RGBA implements color.Color. Colors are always opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA returns c as an opaque color.NRGBA.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Histogram counts the 8-bit intensities of a region, one table per
// channel in R, G, B order.
type Histogram [3][256]uint32

// HistogramOf scans every pixel of src.
func HistogramOf(src Source) *Histogram {
	h := new(Histogram)

	// Packed arena rows avoid an interface call per pixel.
	if bs, ok := src.(bufSource); ok {
		w := bs.buf.Width()
		for y := range bs.buf.Height() {
			row := bs.buf.RowBytes(y)
			for x := 0; x < w*3; x += 3 {
				h[0][row[x]]++
				h[1][row[x+1]]++
				h[2][row[x+2]]++
			}
		}
		return h
	}

	for y := range src.Height() {
		for x := range src.Width() {
			r, g, b := src.RGB(x, y)
			h[0][r]++
			h[1][g]++
			h[2][b]++
		}
	}
	return h
}

// Stats returns the representative color of the histogram and its blended
// error 0.3·R + 0.6·G + 1.0·B + 0.1 over the per-channel deviations.
// An empty histogram yields black with zero error.
func (h *Histogram) Stats() (Color, float32) {
	r, rd := WeightedAverage(&h[0])
	g, gd := WeightedAverage(&h[1])
	b, bd := WeightedAverage(&h[2])

	if h.Total() == 0 {
		return Color{}, 0
	}
	return Color{R: r, G: g, B: b}, redWeight*rd + greenWeight*gd + blueWeight*bd + errorFloor
}

// Total returns the number of pixels counted.
func (h *Histogram) Total() uint64 {
	var n uint64
	for _, c := range h[0] {
		n += uint64(c)
	}
	return n
}

// WeightedAverage returns the mean intensity of counts, truncated toward
// zero, and the root-mean-square deviation from that truncated mean.
//
// Both sums are accumulated in 64 bits. The mean square is divided as an
// integer before the square root is taken, so results are reproducible
// bit for bit. An empty table yields (0, 0).
func WeightedAverage(counts *[256]uint32) (uint8, float32) {
	var sum, total uint64
	for i, c := range counts {
		sum += uint64(i) * uint64(c)
		total += uint64(c)
	}
	if total == 0 {
		return 0, 0
	}
	avg := sum / total

	var sq uint64
	for i, c := range counts {
		d := int64(avg) - int64(i)
		sq += uint64(c) * uint64(d*d)
	}

	return uint8(min(avg, math.MaxUint8)), float32(math.Sqrt(float64(sq / total)))
}

// Analyze computes the flat color and error of a whole region.
func Analyze(src Source) (Color, float32) {
	return HistogramOf(src).Stats()
}
