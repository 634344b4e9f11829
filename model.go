package quads

import (
	"cmp"
	"context"
	"fmt"
	"image"
	"log/slog"
	"slices"
)

// Model approximates a source image with a quadtree of flat-colored
// rectangles, refining the worst region one split at a time.
//
// The current leaves always tile the source exactly: every Step replaces
// one leaf with the four quadrants of its region.
//
// A Model is not safe for concurrent use. Step, Snapshot and Render must
// not overlap.
type Model struct {
	src      Source
	root     *Quad
	frontier *Frontier
	leaves   map[*Quad]struct{}
	opts     options
	log      *slog.Logger
	steps    int
}

// New builds a model whose single leaf covers all of src.
func New(src Source, opts ...Option) (*Model, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if src == nil || src.Width() <= 0 || src.Height() <= 0 {
		return nil, ErrEmptySource
	}

	bounds := R(0, 0, uint32(src.Width()), uint32(src.Height()))
	root, err := NewQuad(src, bounds)
	if err != nil {
		return nil, fmt.Errorf("quads: analyze root: %w", err)
	}

	m := &Model{
		src:      src,
		root:     root,
		frontier: NewFrontier(o.smallSize),
		leaves:   map[*Quad]struct{}{root: {}},
		opts:     o,
		log:      o.logger,
	}
	if m.log == nil {
		m.log = Logger()
	}
	if m.splittable(root) {
		m.frontier.Push(root)
	}

	m.log.Info("model created", "width", src.Width(), "height", src.Height(), "error", root.Error)
	return m, nil
}

// FromImage copies img into a Source and builds a model over it.
func FromImage(img image.Image, opts ...Option) (*Model, error) {
	src, err := NewSource(img)
	if err != nil {
		return nil, err
	}
	return New(src, opts...)
}

// splittable reports whether q may enter the frontier.
func (m *Model) splittable(q *Quad) bool {
	return q.Rect.Width()/2 >= m.opts.minLeafSize && q.Rect.Height()/2 >= m.opts.minLeafSize
}

// Step splits the highest-priority leaf into four. It returns false, and
// leaves the model unchanged, once no leaf can be split any further.
func (m *Model) Step() bool {
	q := m.frontier.Pop()
	if q == nil {
		return false
	}

	var run func(tasks ...func())
	if m.opts.executor != nil {
		run = m.opts.executor.Run
	}
	if err := q.split(m.src, run); err != nil {
		// Only splittable quads are queued, so the quadrants are never empty.
		panic(fmt.Sprintf("quads: split %v: %v", q.Rect, err))
	}

	delete(m.leaves, q)
	for _, c := range q.children {
		m.leaves[c] = struct{}{}
		if m.splittable(c) {
			m.frontier.Push(c)
		}
	}
	m.steps++

	if m.log.Enabled(context.Background(), slog.LevelDebug) {
		m.log.Debug("split", "rect", q.Rect.String(), "score", q.Score(), "leaves", len(m.leaves))
	}
	if m.frontier.Len() == 0 {
		m.log.Info("converged", "steps", m.steps, "leaves", len(m.leaves))
	}
	return true
}

// Steps calls Step up to n times and returns the number of splits made.
func (m *Model) Steps(n int) int {
	done := 0
	for ; done < n; done++ {
		if !m.Step() {
			break
		}
	}
	return done
}

// Snapshot returns the current leaves ordered by top edge, then left edge.
// The slice is a copy; later steps do not affect it.
func (m *Model) Snapshot() []Leaf {
	out := make([]Leaf, 0, len(m.leaves))
	for q := range m.leaves {
		out = append(out, q.Leaf())
	}
	slices.SortFunc(out, func(a, b Leaf) int {
		if c := cmp.Compare(a.Rect.Top, b.Rect.Top); c != 0 {
			return c
		}
		return cmp.Compare(a.Rect.Left, b.Rect.Left)
	})
	return out
}

// Bounds returns the rectangle of the whole source image.
func (m *Model) Bounds() Rect {
	return m.root.Rect
}

// Root returns the root of the quadtree. Split nodes keep their children,
// so the full tree can be walked from here.
func (m *Model) Root() *Quad {
	return m.root
}

// Leaves returns the number of current leaves.
func (m *Model) Leaves() int {
	return len(m.leaves)
}

// Pending returns the number of leaves that may still be split.
func (m *Model) Pending() int {
	return m.frontier.Len()
}

// StepCount returns the number of splits performed so far.
func (m *Model) StepCount() int {
	return m.steps
}

// Converged reports whether no leaf can be split any further.
func (m *Model) Converged() bool {
	return m.frontier.Len() == 0
}

// Render composites the current leaves at width × height, drawing a
// one-pixel border between regions when pad is set. Non-positive sizes
// default to the source size.
func (m *Model) Render(width, height int, pad bool) *image.RGBA {
	b := m.Bounds()
	return Render(m.Snapshot(), int(b.Width()), int(b.Height()), width, height, pad)
}
