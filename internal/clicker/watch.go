package clicker

import "sync"

// watcher is a conflating single-slot mailbox. An undelivered state is
// replaced by the newest one, so a slow reader only ever skips ahead.
type watcher struct {
	mu     sync.Mutex
	ch     chan GameState
	closed bool
}

func (w *watcher) deliver(s GameState) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	// Drop the stale value, if any. Only deliver sends, so the slot is free afterwards.
	select {
	case <-w.ch:
	default:
	}
	w.ch <- s
}

func (w *watcher) close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.closed {
		w.closed = true
		close(w.ch)
	}
}

// Watch returns a channel that always holds the latest published state.
// The channel starts with the current state. Cancel unsubscribes and closes it.
func (c *Controller) Watch() (<-chan GameState, func()) {
	w := &watcher{ch: make(chan GameState, 1)}
	unsubscribe := c.Subscribe(w.deliver)

	return w.ch, func() {
		unsubscribe()
		w.close()
	}
}
