package main

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	intImage "github.com/gogpu/quads/internal/image"
	"github.com/gogpu/quads/quadfile"
)

func writeInput(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 20))
	for y := range 20 {
		for x := range 40 {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 6), G: uint8(y * 12), B: 90, A: 0xff})
		}
	}
	path := filepath.Join(dir, "in.png")
	if err := intImage.Save(path, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun_Still(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		input:   writeInput(t, dir),
		output:  filepath.Join(dir, "out.png"),
		iters:   15,
		padding: true,
		maxSize: 16,
		dump:    filepath.Join(dir, "out.quad"),
		workers: 2,
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	out, err := intImage.LoadImage(cfg.output)
	if err != nil {
		t.Fatalf("LoadImage() error = %v", err)
	}
	// Rendered back at the original size despite the downscale.
	if b := out.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("output size = %v, want 40x20", b)
	}

	f, err := quadfile.Load(cfg.dump)
	if err != nil {
		t.Fatalf("quadfile.Load() error = %v", err)
	}
	if f.Width != 16 || f.Height != 8 {
		t.Errorf("dumped size = %dx%d, want 16x8", f.Width, f.Height)
	}
	if len(f.Leaves) != 1+3*15 {
		t.Errorf("dumped %d leaves, want %d", len(f.Leaves), 1+3*15)
	}
}

func TestRun_GIF(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		input:   writeInput(t, dir),
		output:  filepath.Join(dir, "output.png"),
		iters:   5,
		gif:     true,
		blur:    1,
		workers: 1,
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	in, err := os.Open(filepath.Join(dir, "output.gif"))
	if err != nil {
		t.Fatalf("animation not written next to the output: %v", err)
	}
	defer in.Close()
	g, err := gif.DecodeAll(in)
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}
	if len(g.Image) != 6 {
		t.Errorf("gif has %d frames, want 6", len(g.Image))
	}

	// The still image is written as well, in its own format.
	still, err := os.Open(cfg.output)
	if err != nil {
		t.Fatalf("still output missing: %v", err)
	}
	defer still.Close()
	img, err := png.Decode(still)
	if err != nil {
		t.Fatalf("still output is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 20 {
		t.Errorf("still size = %v, want 40x20", b)
	}
}

func TestRun_APNG(t *testing.T) {
	dir := t.TempDir()
	cfg := config{
		input:   writeInput(t, dir),
		output:  filepath.Join(dir, "output.jpg"),
		iters:   3,
		apng:    true,
		workers: 2,
	}
	if err := run(context.Background(), cfg); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	for _, name := range []string{"output.apng", "output.jpg"} {
		if _, err := intImage.LoadImage(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestAnimationPath(t *testing.T) {
	tests := []struct {
		output string
		apng   bool
		want   string
	}{
		{"output.png", false, "output.gif"},
		{"dir/run.jpeg", false, "dir/run.gif"},
		{"output.png", true, "output.apng"},
		{"noext", false, "noext.gif"},
	}
	for _, tt := range tests {
		if got := animationPath(config{output: tt.output, gif: !tt.apng, apng: tt.apng}); got != tt.want {
			t.Errorf("animationPath(%q, apng=%v) = %q, want %q", tt.output, tt.apng, got, tt.want)
		}
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		cfg  config
	}{
		{"missing input", config{input: filepath.Join(dir, "none.png"), output: filepath.Join(dir, "o.png")}},
		{"gif and apng", config{input: writeInput(t, dir), output: filepath.Join(dir, "o.png"), gif: true, apng: true}},
		{"animation overwrites output", config{input: writeInput(t, dir), output: filepath.Join(dir, "o.gif"), gif: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := run(context.Background(), tt.cfg); err == nil {
				t.Error("run() succeeded, want error")
			}
		})
	}
}
