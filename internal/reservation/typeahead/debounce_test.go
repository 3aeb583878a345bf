package typeahead

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerFiresOnce(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	d.Arm(20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("fired %d times, want 1", got)
	}
}

func TestDebouncerArmReplacesPrior(t *testing.T) {
	d := NewDebouncer()
	var first, second int32

	d.Arm(30*time.Millisecond, func() {
		atomic.AddInt32(&first, 1)
	})
	time.Sleep(10 * time.Millisecond)
	d.Arm(30*time.Millisecond, func() {
		atomic.AddInt32(&second, 1)
	})

	time.Sleep(80 * time.Millisecond)

	if got := atomic.LoadInt32(&first); got != 0 {
		t.Errorf("replaced callback fired %d times, want 0", got)
	}
	if got := atomic.LoadInt32(&second); got != 1 {
		t.Errorf("latest callback fired %d times, want 1", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer()
	var fired int32

	d.Arm(20*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})
	d.Cancel()

	time.Sleep(60 * time.Millisecond)

	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("cancelled callback fired %d times, want 0", got)
	}
}

func TestDebouncerCancelWithoutArm(t *testing.T) {
	d := NewDebouncer()
	d.Cancel()
}
