package quads

import "log/slog"

// Option configures a Model during creation.
//
// Example:
//
//	// Stop refining once leaves would shrink below 4x4 pixels
//	m, err := quads.New(src, quads.WithMinLeafSize(4))
type Option func(*options)

// Executor runs a batch of tasks and returns once all of them completed.
// The tasks may run concurrently.
type Executor interface {
	Run(tasks ...func())
}

// options holds optional configuration for Model creation.
type options struct {
	smallSize   uint32
	minLeafSize uint32
	executor    Executor
	logger      *slog.Logger
}

// defaultOptions returns the default model options.
func defaultOptions() options {
	return options{
		smallSize:   DefaultSmallSize,
		minLeafSize: 1,
	}
}

// WithSmallSize sets the side length below which a region yields priority
// to every region that is not small. Zero disables the guard.
func WithSmallSize(n uint32) Option {
	return func(o *options) {
		o.smallSize = n
	}
}

// WithMinLeafSize stops splitting regions whose quadrants would be narrower
// or shorter than n pixels. The minimum, and default, is 1: regions with a
// side shorter than 2 pixels are never split.
func WithMinLeafSize(n uint32) Option {
	return func(o *options) {
		o.minLeafSize = max(n, 1)
	}
}

// WithExecutor analyzes the four quadrants of each split through e.
// Children are attached to the model only after all four are analyzed.
func WithExecutor(e Executor) Option {
	return func(o *options) {
		o.executor = e
	}
}

// WithLogger overrides the package logger for one model.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
