package quads

import (
	"image"

	xdraw "golang.org/x/image/draw"

	intImage "github.com/gogpu/quads/internal/image"
)

// Render composites leaves into a new width × height raster.
//
// The leaves are first filled into a raster of the source size srcW × srcH.
// With pad set that raster grows by one pixel on each axis and every leaf is
// shifted right and down by one pixel while keeping its right and bottom
// edge, leaving a one-pixel border around each region. Border pixels stay
// transparent black. The raster is then scaled to the target size with
// nearest-neighbor sampling, which keeps region edges crisp.
//
// Non-positive width or height default to the source size. The leaves must
// not overlap; their order does not matter.
func Render(leaves []Leaf, srcW, srcH, width, height int, pad bool) *image.RGBA {
	if width <= 0 {
		width = srcW
	}
	if height <= 0 {
		height = srcH
	}

	border := 0
	if pad {
		border = 1
	}

	canvas := intImage.GetCanvas(srcW+border, srcH+border)
	if canvas == nil {
		return image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	}

	for _, l := range leaves {
		r := image.Rect(
			int(l.Rect.Left)+border, int(l.Rect.Top)+border,
			int(l.Rect.Right), int(l.Rect.Bottom),
		).Intersect(canvas.Rect)
		if r.Empty() {
			continue
		}
		xdraw.Draw(canvas, r, image.NewUniform(l.Color), image.Point{}, xdraw.Src)
	}

	if canvas.Rect.Dx() == width && canvas.Rect.Dy() == height {
		return canvas
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.NearestNeighbor.Scale(dst, dst.Rect, canvas, canvas.Rect, xdraw.Src, nil)
	intImage.PutCanvas(canvas)
	return dst
}
