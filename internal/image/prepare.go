package image

import (
	"image"

	"github.com/disintegration/gift"
	"github.com/nfnt/resize"
)

// Thumbnail downscales img so that neither side exceeds maxSize, keeping
// the aspect ratio. Images already within bounds, or a maxSize of zero or
// less, are returned unchanged.
// Sampling is nearest-neighbor, so every output pixel is a source pixel.
func Thumbnail(img image.Image, maxSize int) image.Image {
	if maxSize <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() <= maxSize && b.Dy() <= maxSize {
		return img
	}
	return resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.NearestNeighbor)
}

// Blur applies a Gaussian blur with the given sigma.
// Non-positive sigma returns img unchanged.
func Blur(img image.Image, sigma float32) image.Image {
	if sigma <= 0 {
		return img
	}
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
