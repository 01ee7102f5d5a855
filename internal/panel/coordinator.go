// Package panel tracks the chat overlay's mount and visibility state.
//
// Showing and hiding are two-phase: the panel mounts immediately but
// only becomes visible after a short delay, and on close it stays
// mounted for the hide animation before unmounting. The coordinator is
// a pure state machine; the caller schedules the returned delays and
// reports back with ConfirmShow and ConfirmUnmount. Tokens tie each
// confirmation to the generation that scheduled it, so a reopen during
// the unmount delay cancels the stale unmount.
package panel

import (
	"sync"
	"time"
)

// Animation timings.
const (
	ShowDelay    = 50 * time.Millisecond
	UnmountDelay = 300 * time.Millisecond
)

// Coordinator owns the panel lifecycle. The zero value is closed and
// unmounted.
type Coordinator struct {
	mu      sync.Mutex
	gen     int
	mounted bool
	visible bool
}

// Open mounts the panel and schedules the show transition. The caller
// waits the returned delay, then calls ConfirmShow with the token. If
// the panel is already visible the token is still valid; confirming it
// is a no-op.
func (c *Coordinator) Open() (time.Duration, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.mounted = true
	return ShowDelay, c.gen
}

// ConfirmShow makes the panel visible, unless a later Open or Close has
// superseded the token or the panel was unmounted in the meantime.
func (c *Coordinator) ConfirmShow(token int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen || !c.mounted {
		return
	}
	c.visible = true
}

// Close hides the panel immediately and schedules the unmount. The
// caller waits the returned delay, then calls ConfirmUnmount with the
// token.
func (c *Coordinator) Close() (time.Duration, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.visible = false
	return UnmountDelay, c.gen
}

// ConfirmUnmount unmounts the panel if the token is still the current
// generation. An Open issued during the delay bumps the generation and
// makes the pending unmount a no-op.
func (c *Coordinator) ConfirmUnmount(token int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if token != c.gen {
		return
	}
	c.mounted = false
	c.visible = false
}

// Mounted reports whether the panel is rendered at all.
func (c *Coordinator) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

// Visible reports whether the panel is shown. Visible implies mounted.
func (c *Coordinator) Visible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visible
}
