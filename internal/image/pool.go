package image

import (
	"image"
	"sync"
)

// CanvasPool is a thread-safe pool of *image.RGBA canvases.
//
// Canvases are grouped by size. Animation rendering composites every frame
// into an intermediate raster of the same size, so reusing them keeps GC
// pressure flat over thousands of frames.
//
// Thread safety: All methods are safe for concurrent use.
type CanvasPool struct {
	mu      sync.Mutex
	buckets map[image.Point][]*image.RGBA
	maxSize int // max canvases per bucket
}

// NewCanvasPool creates a pool retaining at most maxPerBucket canvases of
// each size. A maxPerBucket of 0 means unlimited.
func NewCanvasPool(maxPerBucket int) *CanvasPool {
	return &CanvasPool{
		buckets: make(map[image.Point][]*image.RGBA),
		maxSize: maxPerBucket,
	}
}

// Get returns a zeroed (transparent black) canvas with bounds (0,0)-(width,height).
// Returns nil if the dimensions are not positive.
func (p *CanvasPool) Get(width, height int) *image.RGBA {
	if width <= 0 || height <= 0 {
		return nil
	}
	key := image.Point{X: width, Y: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		canvas := bucket[n-1]
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()

		clear(canvas.Pix)
		return canvas
	}
	p.mu.Unlock()

	return image.NewRGBA(image.Rect(0, 0, width, height))
}

// Put returns a canvas to the pool. The caller must not use it afterwards.
// Canvases with a non-zero origin are discarded.
func (p *CanvasPool) Put(canvas *image.RGBA) {
	if canvas == nil || canvas.Rect.Min != (image.Point{}) {
		return
	}
	key := canvas.Rect.Max

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, canvas)
}

// defaultPool is the package-level pool for convenient usage.
var defaultPool = NewCanvasPool(8)

// GetCanvas retrieves a canvas from the default pool.
func GetCanvas(width, height int) *image.RGBA {
	return defaultPool.Get(width, height)
}

// PutCanvas returns a canvas to the default pool.
func PutCanvas(canvas *image.RGBA) {
	defaultPool.Put(canvas)
}
