package animate

import (
	"fmt"
	"image"
	"io"

	"github.com/kettek/apng"

	"github.com/gogpu/quads"
)

// APNGSink collects frames and encodes them as an infinitely looping
// animated PNG on Close.
type APNGSink struct {
	w     io.Writer
	delay uint16
	anim  apng.APNG
}

// NewAPNGSink returns a sink writing to w. Every frame is shown for
// DefaultDelay hundredths of a second.
func NewAPNGSink(w io.Writer) *APNGSink {
	return &APNGSink{w: w, delay: DefaultDelay}
}

func (s *APNGSink) Add(frame *image.RGBA) error {
	s.anim.Frames = append(s.anim.Frames, apng.Frame{
		Image:            frame,
		DelayNumerator:   s.delay,
		DelayDenominator: 100,
	})
	return nil
}

// Close encodes the collected frames.
func (s *APNGSink) Close() error {
	if len(s.anim.Frames) == 0 {
		return fmt.Errorf("animate: apng: %w", ErrNoFrames)
	}
	if err := apng.Encode(s.w, s.anim); err != nil {
		return fmt.Errorf("animate: apng: %w", err)
	}
	quads.Logger().Debug("apng written", "frames", len(s.anim.Frames))
	s.anim.Frames = nil
	return nil
}

