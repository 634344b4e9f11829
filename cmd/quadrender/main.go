// Command quadrender renders a saved .quad file at any resolution.
package main

import (
	"flag"
	"log"

	intImage "github.com/gogpu/quads/internal/image"
	"github.com/gogpu/quads/quadfile"
)

func main() {
	var (
		input   = flag.String("input", "", ".quad file written by quads -dump")
		output  = flag.String("output", "render.png", "output image (.png or .jpg)")
		width   = flag.Int("width", 0, "output width (0 = source width)")
		height  = flag.Int("height", 0, "output height (0 = source height)")
		padding = flag.Bool("p", false, "draw a border between regions")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		log.Fatal("missing -input")
	}

	f, err := quadfile.Load(*input)
	if err != nil {
		log.Fatalf("Failed to load: %v", err)
	}

	img := f.Render(*width, *height, *padding)
	if err := intImage.Save(*output, img); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Rendered %d leaves to %s (%dx%d)\n", len(f.Leaves), *output, img.Bounds().Dx(), img.Bounds().Dy())
}
