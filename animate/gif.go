package animate

import (
	"fmt"
	"image"
	"image/gif"
	"io"

	"github.com/andybons/gogif"

	"github.com/gogpu/quads"
	"github.com/gogpu/quads/internal/parallel"
)

// GIFSink quantizes frames to 256-color palettes with a median-cut
// quantizer and writes them as an infinitely looping GIF.
//
// Frames are quantized in batches on a worker pool; the file is written
// on Close.
type GIFSink struct {
	w     io.Writer
	pool  *parallel.WorkerPool
	delay int

	pending []*image.RGBA
	anim    gif.GIF
}

// NewGIFSink returns a sink writing to w. A nil pool quantizes on the
// calling goroutine. Non-positive delays use DefaultDelay.
func NewGIFSink(w io.Writer, pool *parallel.WorkerPool, delay int) *GIFSink {
	if delay <= 0 {
		delay = DefaultDelay
	}
	batch := 1
	if pool != nil {
		batch = pool.Workers()
	}
	return &GIFSink{
		w:       w,
		pool:    pool,
		delay:   delay,
		pending: make([]*image.RGBA, 0, batch),
		anim:    gif.GIF{LoopCount: 0},
	}
}

// Add queues frame and quantizes the queue once a full batch is waiting.
func (s *GIFSink) Add(frame *image.RGBA) error {
	s.pending = append(s.pending, frame)
	if len(s.pending) == cap(s.pending) {
		s.flush()
	}
	return nil
}

func (s *GIFSink) flush() {
	out := make([]*image.Paletted, len(s.pending))
	s.pool.Each(len(s.pending), func(i int) {
		out[i] = toPaletted(s.pending[i])
	})
	for _, pm := range out {
		s.anim.Image = append(s.anim.Image, pm)
		s.anim.Delay = append(s.anim.Delay, s.delay)
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// Close quantizes the remaining frames and encodes the animation.
func (s *GIFSink) Close() error {
	if len(s.pending) > 0 {
		s.flush()
	}
	if len(s.anim.Image) == 0 {
		return fmt.Errorf("animate: gif: %w", ErrNoFrames)
	}
	if err := gif.EncodeAll(s.w, &s.anim); err != nil {
		return fmt.Errorf("animate: gif: %w", err)
	}
	quads.Logger().Debug("gif written", "frames", len(s.anim.Image))
	return nil
}

func toPaletted(img image.Image) *image.Paletted {
	b := img.Bounds()
	pm := image.NewPaletted(b, nil)
	q := &gogif.MedianCutQuantizer{NumColor: 256}
	q.Quantize(pm, b, img, image.Point{})
	return pm
}
