package typeahead

import (
	"sync"
	"time"
)

// Debouncer delays a callback until input has been quiet for the
// configured interval. Arming replaces and cancels any prior timer.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

func NewDebouncer() *Debouncer {
	return &Debouncer{}
}

// Arm schedules fn to run after delay, cancelling any pending callback.
func (d *Debouncer) Arm(delay time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(delay, fn)
}

// Cancel stops any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
