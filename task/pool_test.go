package task

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSubmitAndWait(t *testing.T) {
	p := NewPool(0)
	defer p.Shutdown()

	h := p.Submit(func(ctx context.Context) error {
		return nil
	})
	if err := h.Wait(); err != nil {
		t.Errorf("Wait() = %v, want nil", err)
	}
	if !h.Done() {
		t.Error("Done() = false after Wait")
	}
}

func TestTaskErrorStaysOnHandle(t *testing.T) {
	p := NewPool(0)
	defer p.Shutdown()

	boom := errors.New("boom")
	failed := p.Submit(func(ctx context.Context) error {
		return boom
	})
	if err := failed.Wait(); !errors.Is(err, boom) {
		t.Errorf("Wait() = %v, want boom", err)
	}

	// an earlier failure must not poison later submissions
	ok := p.Submit(func(ctx context.Context) error {
		return ctx.Err()
	})
	if err := ok.Wait(); err != nil {
		t.Errorf("task after failure: Wait() = %v, want nil", err)
	}
}

func TestHandleCancel(t *testing.T) {
	p := NewPool(0)
	defer p.Shutdown()

	running := make(chan struct{})
	h := p.Submit(func(ctx context.Context) error {
		close(running)
		<-ctx.Done()
		return ctx.Err()
	})

	select {
	case <-running:
	case <-time.After(5 * time.Second):
		t.Fatal("task never started")
	}

	h.Cancel()
	if err := h.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

func TestShutdownCancelsTasks(t *testing.T) {
	p := NewPool(0)

	running := make(chan struct{})
	h := p.Submit(func(ctx context.Context) error {
		close(running)
		<-ctx.Done()
		return ctx.Err()
	})
	<-running

	p.Shutdown()
	if err := h.Wait(); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() = %v, want context.Canceled", err)
	}
}

func TestPoolLimit(t *testing.T) {
	p := NewPool(1)
	defer p.Shutdown()

	gate := make(chan struct{})
	first := p.Submit(func(ctx context.Context) error {
		<-gate
		return nil
	})

	// With limit 1, submitting a second task blocks until the first
	// releases the slot.
	secondCh := make(chan *Handle)
	go func() {
		secondCh <- p.Submit(func(ctx context.Context) error {
			return nil
		})
	}()
	select {
	case <-secondCh:
		t.Error("second task was admitted while the first held the only slot")
	case <-time.After(50 * time.Millisecond):
	}

	close(gate)
	second := <-secondCh
	if err := first.Wait(); err != nil {
		t.Errorf("first: %v", err)
	}
	if err := second.Wait(); err != nil {
		t.Errorf("second: %v", err)
	}
}

func TestDefaultPool(t *testing.T) {
	a := Default()
	if a == nil {
		t.Fatal("Default() = nil")
	}
	if b := Default(); b != a {
		t.Error("Default() is not stable")
	}

	ShutdownDefault()
	if c := Default(); c == a {
		t.Error("Default() after shutdown returned the stopped pool")
	}
	ShutdownDefault()
}
