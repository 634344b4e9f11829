package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif" // register GIF decoder
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when an output extension has no encoder.
	ErrUnsupportedFormat = errors.New("image: unsupported format")
)

// DefaultJPEGQuality is used by Save for .jpg and .jpeg outputs.
const DefaultJPEGQuality = 90

// LoadImage decodes the image file at path, detecting the format from its
// content. PNG, JPEG, GIF, BMP, TIFF and WebP are supported.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("image: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Decode(f)
}

// Decode decodes an image from the given reader, auto-detecting the format.
func Decode(r io.Reader) (image.Image, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}
	return img, nil
}

// FromStdImage copies a standard library image into a new RGB8 buffer.
// Alpha is discarded; color channels are taken non-premultiplied.
func FromStdImage(img image.Image) (*ImageBuf, error) {
	bounds := img.Bounds()
	buf, err := NewImageBuf(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	// Fast paths for the layouts decoders produce most often.
	switch src := img.(type) {
	case *image.NRGBA:
		for y := range buf.height {
			row := buf.RowBytes(y)
			pix := src.Pix[y*src.Stride:]
			for x := range buf.width {
				copy(row[x*BytesPerPixel:x*BytesPerPixel+3], pix[x*4:x*4+3])
			}
		}
		return buf, nil

	case *image.YCbCr:
		for y := range buf.height {
			row := buf.RowBytes(y)
			for x := range buf.width {
				c := src.YCbCrAt(bounds.Min.X+x, bounds.Min.Y+y)
				r, g, b := color.YCbCrToRGB(c.Y, c.Cb, c.Cr)
				row[x*BytesPerPixel] = r
				row[x*BytesPerPixel+1] = g
				row[x*BytesPerPixel+2] = b
			}
		}
		return buf, nil
	}

	for y := range buf.height {
		row := buf.RowBytes(y)
		for x := range buf.width {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			row[x*BytesPerPixel] = c.R
			row[x*BytesPerPixel+1] = c.G
			row[x*BytesPerPixel+2] = c.B
		}
	}
	return buf, nil
}

// Encode writes img to w in the format implied by ext (".png", ".jpg", ".jpeg").
func Encode(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(ext) {
	case ".png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("image: encode PNG: %w", err)
		}
	case ".jpg", ".jpeg":
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: DefaultJPEGQuality}); err != nil {
			return fmt.Errorf("image: encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return nil
}

// Save encodes img to path, choosing the encoder from the file extension.
func Save(path string, img image.Image) error {
	ext := filepath.Ext(path)
	switch strings.ToLower(ext) {
	case ".png", ".jpg", ".jpeg":
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("image: create file: %w", err)
	}

	if err := Encode(f, img, ext); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
