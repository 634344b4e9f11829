package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestFromStdImage_NRGBA(t *testing.T) {
	nrgba := image.NewNRGBA(image.Rect(0, 0, 10, 10))
	nrgba.Set(3, 3, color.NRGBA{R: 128, G: 64, B: 32, A: 200})

	buf, err := FromStdImage(nrgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}

	if buf.Width() != 10 || buf.Height() != 10 {
		t.Errorf("Dimensions = (%d, %d), want (10, 10)", buf.Width(), buf.Height())
	}

	// Channels are kept non-premultiplied, alpha is dropped.
	r, g, b := buf.RGB(3, 3)
	if r != 128 || g != 64 || b != 32 {
		t.Errorf("Pixel = (%d, %d, %d), want (128, 64, 32)", r, g, b)
	}
}

func TestFromStdImage_OffsetBounds(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(5, 5, 9, 8))
	rgba.SetRGBA(5, 5, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	rgba.SetRGBA(8, 7, color.RGBA{R: 4, G: 5, B: 6, A: 255})

	buf, err := FromStdImage(rgba)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}
	if buf.Width() != 4 || buf.Height() != 3 {
		t.Fatalf("Dimensions = (%d, %d), want (4, 3)", buf.Width(), buf.Height())
	}
	if r, g, b := buf.RGB(0, 0); r != 1 || g != 2 || b != 3 {
		t.Errorf("RGB(0, 0) = (%d, %d, %d), want (1, 2, 3)", r, g, b)
	}
	if r, g, b := buf.RGB(3, 2); r != 4 || g != 5 || b != 6 {
		t.Errorf("RGB(3, 2) = (%d, %d, %d), want (4, 5, 6)", r, g, b)
	}
}

func TestFromStdImage_Gray(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 10, 10))
	gray.SetGray(5, 5, color.Gray{Y: 128})

	buf, err := FromStdImage(gray)
	if err != nil {
		t.Fatalf("FromStdImage() error = %v", err)
	}

	r, g, b := buf.RGB(5, 5)
	if r != 128 || g != 128 || b != 128 {
		t.Errorf("Pixel = (%d, %d, %d), want (128, 128, 128)", r, g, b)
	}
}

func TestFromStdImage_Empty(t *testing.T) {
	if _, err := FromStdImage(image.NewRGBA(image.Rectangle{})); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("FromStdImage(empty) error = %v, want ErrInvalidDimensions", err)
	}
}

func TestEncodeDecode_PNGRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 4))
	src.SetRGBA(1, 2, color.RGBA{R: 200, G: 10, B: 30, A: 255})

	var b bytes.Buffer
	if err := Encode(&b, src, ".PNG"); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	img, err := Decode(&b)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if img.Bounds() != src.Bounds() {
		t.Errorf("Bounds() = %v, want %v", img.Bounds(), src.Bounds())
	}
	r, g, bl, _ := img.At(1, 2).RGBA()
	if r>>8 != 200 || g>>8 != 10 || bl>>8 != 30 {
		t.Errorf("At(1, 2) = (%d, %d, %d), want (200, 10, 30)", r>>8, g>>8, bl>>8)
	}
}

func TestEncode_Unsupported(t *testing.T) {
	var b bytes.Buffer
	err := Encode(&b, image.NewRGBA(image.Rect(0, 0, 1, 1)), ".xyz")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestDecode_Garbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("Decode(garbage) error = nil, want error")
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 5, 5))
	src.SetRGBA(4, 4, color.RGBA{R: 9, G: 9, B: 9, A: 255})

	path := filepath.Join(dir, "out.png")
	if err := Save(path, src); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	img, err := LoadImage(path)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	if img.Bounds().Dx() != 5 || img.Bounds().Dy() != 5 {
		t.Errorf("loaded bounds = %v, want 5x5", img.Bounds())
	}

	if err := Save(filepath.Join(dir, "out.bmp"), src); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Save(.bmp) error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "out.bmp")); !os.IsNotExist(err) {
		t.Error("Save(.bmp) created a file")
	}
}

func TestLoadImage_Missing(t *testing.T) {
	if _, err := LoadImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("LoadImage(missing) error = nil, want error")
	}
}
