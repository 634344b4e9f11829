// Command quads approximates an image with a quadtree of flat-colored
// rectangles and writes the result as a still image, optionally together
// with an animation of the refinement.
//
// Usage:
//
//	quads -i photo.jpg -o out.png -iters 2048 -p
//	quads -i photo.jpg -o out.png -g -max-size 256   # out.png and out.gif
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/quads"
	"github.com/gogpu/quads/animate"
	intImage "github.com/gogpu/quads/internal/image"
	"github.com/gogpu/quads/internal/parallel"
	"github.com/gogpu/quads/quadfile"
)

type config struct {
	input   string
	output  string
	iters   int
	padding bool
	gif     bool
	apng    bool
	maxSize int
	blur    float64
	dump    string
	workers int
	verbose bool
}

func parseFlags() config {
	var c config
	flag.StringVar(&c.input, "i", "", "input image (shorthand)")
	flag.StringVar(&c.input, "input", "", "input image")
	flag.StringVar(&c.output, "o", "output.png", "output file (shorthand)")
	flag.StringVar(&c.output, "output", "output.png", "output file")
	flag.IntVar(&c.iters, "iters", 1024, "number of splits")
	flag.BoolVar(&c.padding, "p", false, "draw a border between regions (shorthand)")
	flag.BoolVar(&c.padding, "padding", false, "draw a border between regions")
	flag.BoolVar(&c.gif, "g", false, "also write an animated GIF next to the output, one frame per split (shorthand)")
	flag.BoolVar(&c.gif, "gif", false, "also write an animated GIF next to the output, one frame per split")
	flag.BoolVar(&c.apng, "apng", false, "also write an animated PNG (.apng) next to the output, one frame per split")
	flag.IntVar(&c.maxSize, "max-size", 0, "downscale the input to fit this size before modelling (0 = off)")
	flag.Float64Var(&c.blur, "blur", 0, "gaussian blur sigma applied before modelling")
	flag.StringVar(&c.dump, "dump", "", "also save the final leaves to this .quad file")
	flag.IntVar(&c.workers, "workers", runtime.GOMAXPROCS(0), "goroutines analyzing regions (1 = sequential)")
	flag.BoolVar(&c.verbose, "v", false, "log every split")
	flag.Parse()
	return c
}

func main() {
	cfg := parseFlags()

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	quads.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if cfg.input == "" {
		fmt.Fprintln(os.Stderr, "quads: missing -input")
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		quads.Logger().Error("failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	if cfg.gif && cfg.apng {
		return errors.New("-gif and -apng are mutually exclusive")
	}
	if (cfg.gif || cfg.apng) && animationPath(cfg) == cfg.output {
		return fmt.Errorf("animation would overwrite the still output %s", cfg.output)
	}

	src, err := intImage.LoadImage(cfg.input)
	if err != nil {
		return err
	}
	width, height := src.Bounds().Dx(), src.Bounds().Dy()

	img := intImage.Thumbnail(src, cfg.maxSize)
	if cfg.blur > 0 {
		img = intImage.Blur(img, float32(cfg.blur))
	}

	opts := []quads.Option{}
	var pool *parallel.WorkerPool
	if cfg.workers > 1 {
		pool = parallel.NewWorkerPool(cfg.workers)
		defer pool.Close()
		opts = append(opts, quads.WithExecutor(pool))
	}

	m, err := quads.FromImage(img, opts...)
	if err != nil {
		return err
	}

	start := time.Now()
	var frames int
	if cfg.gif || cfg.apng {
		frames, err = record(ctx, m, cfg, pool, width, height)
		if err != nil {
			return err
		}
	} else {
		m.Steps(cfg.iters)
	}

	// The still image is always written, also after an animation.
	if err := intImage.Save(cfg.output, m.Render(width, height, cfg.padding)); err != nil {
		return err
	}

	if cfg.dump != "" {
		if err := quadfile.Save(cfg.dump, quadfile.FromModel(m)); err != nil {
			return err
		}
	}

	summarize(m, cfg, pool, frames, time.Since(start))
	return nil
}

// animationPath swaps the extension of the still output for the
// animation's own.
func animationPath(cfg config) string {
	ext := ".gif"
	if cfg.apng {
		ext = ".apng"
	}
	return strings.TrimSuffix(cfg.output, filepath.Ext(cfg.output)) + ext
}

func record(ctx context.Context, m *quads.Model, cfg config, pool *parallel.WorkerPool, width, height int) (n int, err error) {
	out, err := os.Create(animationPath(cfg))
	if err != nil {
		return 0, err
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	var sink animate.Sink
	if cfg.apng {
		sink = animate.NewAPNGSink(out)
	} else {
		sink = animate.NewGIFSink(out, pool, animate.DefaultDelay)
	}

	return animate.Run(ctx, m, animate.Config{
		Frames:  cfg.iters + 1,
		Width:   width,
		Height:  height,
		Padding: cfg.padding,
	}, sink)
}

func summarize(m *quads.Model, cfg config, pool *parallel.WorkerPool, frames int, elapsed time.Duration) {
	p := message.NewPrinter(language.English)
	b := m.Bounds()
	p.Printf("%d splits, %d leaves over %dx%d", m.StepCount(), m.Leaves(), b.Width(), b.Height())
	if frames > 0 {
		p.Printf(", %d frames -> %s", frames, animationPath(cfg))
	}
	if m.Converged() {
		p.Printf(" (converged)")
	}
	p.Printf(" in %v -> %s\n", elapsed.Round(time.Millisecond), cfg.output)

	if pool != nil {
		quads.Logger().Info("worker pool", "workers", pool.Workers(), "tasks", pool.Completed())
	}
}
