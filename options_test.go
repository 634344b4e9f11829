package quads

import (
	"slices"
	"sync/atomic"
	"testing"
)

// mockExecutor is a test executor for DI testing.
type mockExecutor struct {
	batches atomic.Int32
	tasks   atomic.Int32
}

func (m *mockExecutor) Run(tasks ...func()) {
	m.batches.Add(1)
	// Run in reverse so results cannot depend on task order.
	for i := len(tasks) - 1; i >= 0; i-- {
		m.tasks.Add(1)
		tasks[i]()
	}
}

// TestNewDefaultOptions tests the defaults applied without options.
func TestNewDefaultOptions(t *testing.T) {
	m, err := New(solidSource(t, 8, 8, red))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if m.opts.smallSize != DefaultSmallSize {
		t.Errorf("smallSize = %d, want %d", m.opts.smallSize, DefaultSmallSize)
	}
	if m.opts.minLeafSize != 1 {
		t.Errorf("minLeafSize = %d, want 1", m.opts.minLeafSize)
	}
	if m.opts.executor != nil {
		t.Error("executor is set, expected sequential analysis")
	}
}

// TestWithExecutor tests dependency injection of a custom executor.
func TestWithExecutor(t *testing.T) {
	mock := &mockExecutor{}
	src := gradientSource(t, 32, 32)

	m, _ := New(src, WithExecutor(mock))
	ref, _ := New(src)

	m.Steps(10)
	ref.Steps(10)

	if got := mock.batches.Load(); got != 10 {
		t.Errorf("executor ran %d batches, want 10", got)
	}
	if got := mock.tasks.Load(); got != 40 {
		t.Errorf("executor ran %d tasks, want 40", got)
	}
	if !slices.Equal(m.Snapshot(), ref.Snapshot()) {
		t.Error("executor changed the leaf set")
	}
}

func TestWithMinLeafSize_Clamped(t *testing.T) {
	o := defaultOptions()
	WithMinLeafSize(0)(&o)
	if o.minLeafSize != 1 {
		t.Errorf("minLeafSize = %d, want 1", o.minLeafSize)
	}
}

// TestMultipleOptions tests that later options override earlier ones.
func TestMultipleOptions(t *testing.T) {
	m, _ := New(solidSource(t, 8, 8, red),
		WithSmallSize(8),
		WithMinLeafSize(2),
		WithSmallSize(2),
	)
	if m.opts.smallSize != 2 || m.opts.minLeafSize != 2 {
		t.Errorf("options = %+v, want smallSize 2, minLeafSize 2", m.opts)
	}
}
