// Package parallel provides the goroutine pool used to analyze image regions
// and prepare animation frames concurrently.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines pulling tasks from a shared queue.
//
// The pool is used for short CPU-bound batches: the four child regions of a
// split, or a group of animation frames waiting for palette quantization.
// Callers submit a batch with Run and block until every task of the batch has
// finished, so results written by the tasks are visible to the caller as a
// unit once Run returns.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int

	// queue is shared by all workers. Its buffer hides submission latency
	// for batches that are larger than the worker count.
	queue chan func()

	// mu keeps submissions and Close apart: tasks are only enqueued while
	// the workers are guaranteed to drain the queue.
	mu      sync.RWMutex
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// completed counts finished tasks for diagnostics.
	completed atomic.Int64
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), queueSize),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}

	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.done:
			// Drain what was queued before Close so no Run call is left waiting.
			for {
				select {
				case task := <-p.queue:
					task()
				default:
					return
				}
			}
		case task := <-p.queue:
			task()
		}
	}
}

// Run executes tasks on the pool and waits for all of them to complete.
//
// Run never drops work: if the pool has been closed, or the receiver is nil,
// the tasks are executed on the calling goroutine instead.
func (p *WorkerPool) Run(tasks ...func()) {
	if len(tasks) == 0 {
		return
	}
	if p == nil {
		runInline(tasks)
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		runInline(tasks)
		return
	}

	var batch sync.WaitGroup
	for _, task := range tasks {
		if task == nil {
			continue
		}
		batch.Add(1)
		wrapped := func() {
			defer batch.Done()
			task()
			p.completed.Add(1)
		}

		p.queue <- wrapped
	}
	p.mu.RUnlock()

	batch.Wait()
}

func runInline(tasks []func()) {
	for _, task := range tasks {
		if task != nil {
			task()
		}
	}
}

// Each runs fn(i) for i in [0, n) on the pool and waits for completion.
func (p *WorkerPool) Each(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	tasks := make([]func(), n)
	for i := range tasks {
		tasks[i] = func() { fn(i) }
	}
	p.Run(tasks...)
}

// Close stops the workers after the queued tasks have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// Completed returns the number of tasks the workers have finished.
func (p *WorkerPool) Completed() int64 {
	return p.completed.Load()
}
