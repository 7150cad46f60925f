package watch

import (
	"sync"
	"time"
)

// Debouncer delays regeneration until file events have been quiet for a
// fixed wait. A burst of events yields one call carrying the newest path.
//
// A single timer is re-armed on every event. Stop is final: events that
// arrive afterwards are dropped.
type Debouncer struct {
	wait    time.Duration
	fn      func(path string)
	onPanic func(v any)

	mu      sync.Mutex
	timer   *time.Timer
	path    string
	pending bool
	stopped bool
}

// NewDebouncer returns a Debouncer that calls fn once wait has passed
// without a further Trigger.
func NewDebouncer(wait time.Duration, fn func(path string)) *Debouncer {
	return &Debouncer{wait: wait, fn: fn}
}

// Trigger records an event for path and pushes the deadline back.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.path, d.pending = path, true
	if d.timer == nil {
		d.timer = time.AfterFunc(d.wait, d.fire)
		return
	}
	d.timer.Reset(d.wait)
}

// fire runs on the timer goroutine. A fire that lost the race with Stop or
// with an earlier fire finds nothing pending and returns.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if !d.pending || d.stopped {
		d.mu.Unlock()
		return
	}
	path := d.path
	d.pending = false
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil && d.onPanic != nil {
			d.onPanic(r)
		}
	}()
	d.fn(path)
}

// Stop drops any pending call and disables the Debouncer.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped, d.pending = true, false
	if d.timer != nil {
		d.timer.Stop()
	}
}
