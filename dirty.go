package carbon

// MarkDirty records that state changed and the tree needs another frame.
// State.Set calls it; call it directly after mutating anything else
// expressions read.
func (st *Store) MarkDirty() {
	st.dirty.Store(true)
}

// checkAndClearDirty reports whether the store was dirty and clears it.
func (st *Store) checkAndClearDirty() bool {
	return st.dirty.Swap(false)
}

// RequestFrame asks the engine to run another frame even if no state
// changed. A Conditional that buffers a branch switch calls it so the
// switch lands.
func (r *Runtime) RequestFrame() {
	r.wake = true
}

// takeWake reports and clears a pending RequestFrame.
func (r *Runtime) takeWake() bool {
	w := r.wake
	r.wake = false
	return w
}

// TickIfDirty runs a frame when one is needed: before the first frame,
// after the store attached with WithStore changed, or when the previous
// frame requested a follow-up. It reports whether a frame ran. A failed
// frame is retried by the next call.
func (e *Engine) TickIfDirty() (bool, error) {
	dirty := e.frame == 0 || e.runtime.takeWake()
	if e.store != nil && e.store.checkAndClearDirty() {
		dirty = true
	}
	if !dirty {
		return false, nil
	}
	if err := e.Tick(); err != nil {
		e.runtime.RequestFrame()
		return true, err
	}
	return true, nil
}
