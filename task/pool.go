// Package task provides the worker pool used for background page
// generation.
//
// The pool is an explicit service with a documented lifecycle rather
// than an ambient singleton: create it with NewPool, stop it with
// Shutdown, and hand it to a renderer with the WithTaskPool option. A
// shared default pool is available through Default for callers that do
// not manage their own; shut it down at process exit with
// ShutdownDefault.
package task

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pool runs submitted tasks on background goroutines, optionally
// bounded by a concurrency limit. Pool is safe for concurrent use.
type Pool struct {
	g      *errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

// NewPool creates a pool. limit bounds concurrent tasks; limit <= 0
// means unbounded.
func NewPool(limit int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	return &Pool{g: g, ctx: ctx, cancel: cancel}
}

// Submit schedules fn on the pool and returns a handle to join or
// cancel it. fn receives a context that is cancelled by Handle.Cancel
// and by pool shutdown; cooperative tasks should check it between units
// of work. On a bounded pool Submit blocks while all slots are busy.
func (p *Pool) Submit(fn func(context.Context) error) *Handle {
	ctx, cancel := context.WithCancel(p.ctx)
	h := &Handle{done: make(chan struct{}), cancel: cancel}
	p.g.Go(func() error {
		h.err = fn(ctx)
		cancel()
		close(h.done)
		// Task errors stay on the handle: a failed task must not cancel
		// the pool context and take unrelated tasks down with it.
		return nil
	})
	return h
}

// Shutdown cancels all running tasks and waits for them to stop.
func (p *Pool) Shutdown() {
	p.cancel()
	_ = p.g.Wait()
}

// Handle joins or cancels one submitted task.
type Handle struct {
	done   chan struct{}
	err    error
	cancel context.CancelFunc
}

// Cancel requests cooperative cancellation of the task.
func (h *Handle) Cancel() {
	h.cancel()
}

// Wait blocks until the task finishes and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Done reports whether the task has finished without blocking.
func (h *Handle) Done() bool {
	select {
	case <-h.done:
		return true
	default:
		return false
	}
}

var (
	defaultMu   sync.Mutex
	defaultPool *Pool
)

// Default returns the shared process-wide pool, creating it on first
// use. The shared pool is unbounded, mirroring a cached thread pool.
func Default() *Pool {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultPool == nil {
		defaultPool = NewPool(0)
	}
	return defaultPool
}

// ShutdownDefault stops the shared pool. Intended for process exit; a
// later Default call returns a fresh pool.
func ShutdownDefault() {
	defaultMu.Lock()
	p := defaultPool
	defaultPool = nil
	defaultMu.Unlock()
	if p != nil {
		p.Shutdown()
	}
}
