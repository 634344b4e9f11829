package quads

import (
	"image"
	"image/color"
	"testing"
)

// sourceFunc builds a w×h Source whose pixel colors come from f.
func sourceFunc(t testing.TB, w, h int, f func(x, y int) Color) Source {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			c := f(x, y)
			img.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	src, err := NewSource(img)
	if err != nil {
		t.Fatalf("NewSource() error = %v", err)
	}
	return src
}

func solidSource(t testing.TB, w, h int, c Color) Source {
	return sourceFunc(t, w, h, func(int, int) Color { return c })
}

// gradientSource has distinct statistics almost everywhere, so every region
// carries a different score.
func gradientSource(t testing.TB, w, h int) Source {
	return sourceFunc(t, w, h, func(x, y int) Color {
		return Color{
			R: uint8((x * 17) ^ (y * 31)),
			G: uint8((x * 43) + (y * 13)),
			B: uint8((x * 7) ^ (y * 11)),
		}
	})
}

// checkTiling fails unless leaves cover [0,w)×[0,h) exactly once.
func checkTiling(t *testing.T, leaves []Leaf, w, h int) {
	t.Helper()
	cover := make([]int, w*h)
	for _, l := range leaves {
		if l.Rect.Empty() {
			t.Errorf("empty leaf %v", l.Rect)
			continue
		}
		for y := int(l.Rect.Top); y < int(l.Rect.Bottom); y++ {
			for x := int(l.Rect.Left); x < int(l.Rect.Right); x++ {
				if x >= w || y >= h {
					t.Errorf("leaf %v outside %dx%d", l.Rect, w, h)
					return
				}
				cover[y*w+x]++
			}
		}
	}
	for i, n := range cover {
		if n != 1 {
			t.Errorf("pixel (%d, %d) covered %d times, want 1", i%w, i/w, n)
			return
		}
	}
}

// funcSource is a Source without the packed-buffer fast path.
type funcSource struct {
	w, h int
	f    func(x, y int) Color
}

func (s funcSource) Width() int  { return s.w }
func (s funcSource) Height() int { return s.h }

func (s funcSource) RGB(x, y int) (r, g, b uint8) {
	c := s.f(x, y)
	return c.R, c.G, c.B
}

func (s funcSource) Crop(r Rect) Source {
	return funcSource{
		w: int(r.Width()),
		h: int(r.Height()),
		f: func(x, y int) Color { return s.f(x+int(r.Left), y+int(r.Top)) },
	}
}
