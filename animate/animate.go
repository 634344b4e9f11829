// Package animate records the refinement of a quads.Model as an animation,
// one frame per split, starting from the single-color initial state.
//
// Frames are rendered on one goroutine and handed to the Sink on another
// through a bounded channel, so encoding overlaps with modelling.
package animate

import (
	"context"
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/quads"
)

// DefaultDelay is the frame delay in hundredths of a second.
const DefaultDelay = 2

// DefaultBuffer is the number of rendered frames that may wait for the sink.
const DefaultBuffer = 4

// ErrNoFrames is returned when a Config asks for no frames at all.
var ErrNoFrames = errors.New("animate: no frames requested")

// Sink consumes rendered frames in order.
//
// A Sink owns every frame passed to Add. Close finishes the output and is
// called exactly once by Run, also when recording failed.
type Sink interface {
	Add(frame *image.RGBA) error
	Close() error
}

// Config describes one recording.
type Config struct {
	// Frames is the total number of frames, including the initial one.
	// Recording stops early once the model converges.
	Frames int

	// Width and Height of each frame. Non-positive values use the source size.
	Width, Height int

	// Padding draws a one-pixel border between regions.
	Padding bool

	// Buffer bounds the frames waiting for the sink. Zero means DefaultBuffer.
	Buffer int
}

func (c Config) buffer() int {
	if c.Buffer <= 0 {
		return DefaultBuffer
	}
	return c.Buffer
}

// Run renders up to cfg.Frames frames of m into sink, stepping the model
// once between frames. It returns the number of frames delivered.
//
// Run owns m while it executes. Canceling ctx stops both the stepping and
// the delivery; the sink is closed either way.
func Run(ctx context.Context, m *quads.Model, cfg Config, sink Sink) (int, error) {
	if cfg.Frames <= 0 {
		return 0, ErrNoFrames
	}

	log := quads.Logger()
	frames := make(chan *image.RGBA, cfg.buffer())
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(frames)
		for i := range cfg.Frames {
			if err := ctx.Err(); err != nil {
				return err
			}
			if i > 0 && !m.Step() {
				log.Info("animation converged", "frames", i, "leaves", m.Leaves())
				return nil
			}
			frame := m.Render(cfg.Width, cfg.Height, cfg.Padding)
			select {
			case frames <- frame:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	delivered := 0
	g.Go(func() error {
		for frame := range frames {
			if err := sink.Add(frame); err != nil {
				return fmt.Errorf("animate: frame %d: %w", delivered, err)
			}
			delivered++
			if delivered%100 == 0 {
				log.Info("animation progress", "frames", delivered, "of", cfg.Frames)
			}
		}
		return nil
	})

	err := g.Wait()
	if cerr := sink.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("animate: close sink: %w", cerr)
	}
	return delivered, err
}
