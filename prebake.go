package fontatlas

import "context"

// runPrebake generates pages for the configured eager character set on
// a pool worker. It holds the write lock for its entire run, so it
// fully serializes against the render thread; the first draw call
// joins it before proceeding. Cancellation is cooperative, checked
// between characters.
func (r *Renderer) runPrebake(ctx context.Context) error {
	Logger().Debug("fontatlas: prebake started", "chars", len(r.prebake))

	r.mu.Lock()
	defer r.mu.Unlock()
	defer Logger().Debug("fontatlas: prebake done")

	for _, c := range r.prebake {
		if err := ctx.Err(); err != nil {
			return err
		}
		r.locateLocked(c)
	}
	return nil
}

// waitPrebake joins a pending prebake task. Failures are swallowed:
// the glyphs simply have not been created, and the lazy path will
// create them later.
func (r *Renderer) waitPrebake() {
	r.taskMu.Lock()
	t := r.prebakeTask
	r.taskMu.Unlock()

	if t == nil || t.Done() {
		return
	}
	if err := t.Wait(); err != nil {
		Logger().Debug("fontatlas: prebake did not complete", "err", err)
	}
}
