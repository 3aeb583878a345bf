package controller

import (
	"context"
	"sync"
	"time"

	reserrors "fleetlease/internal/reservation/errors"
	"fleetlease/internal/reservation/notify"
	"fleetlease/internal/reservation/typeahead"
	"fleetlease/internal/reservation/validator"
	"fleetlease/pkg/logger"
	"fleetlease/pkg/model"
)

// FleetService is the slice of the fleet service the workflow consumes.
type FleetService interface {
	SearchVehicles(ctx context.Context, query model.VehicleQuery) ([]model.VehicleRecord, error)
	LoadCatalog(ctx context.Context) (*model.Catalog, error)
	MonthAvailability(ctx context.Context, vehicleID, monthKey string) ([]model.AvailabilityDay, error)
}

type ContactService interface {
	SearchContacts(ctx context.Context, term string) ([]model.Contact, error)
}

type LeaseService interface {
	CreateLease(ctx context.Context, req *model.LeaseBookingRequest) (*model.LeaseCreateResult, error)
}

// PressEvent reports a pointer press somewhere in the client surface.
type PressEvent struct {
	InsideContactRegion bool
}

// PressSource is a scoped subscription to press events. The release
// function must deregister the subscription; the controller acquires it
// when Run starts and releases it when Run returns.
type PressSource interface {
	Subscribe() (<-chan PressEvent, func())
}

type Deps struct {
	Fleet    FleetService
	Contacts ContactService
	Leases   LeaseService
	Notifier notify.Notifier
	Press    PressSource // optional

	Log       *logger.Logger
	SessionID string

	PageSize          int
	TypeaheadMinChars int
	TypeaheadDebounce time.Duration

	// Clock defaults to time.Now. Tests override it to pin "today".
	Clock func() time.Time
}

type task struct {
	fn   func()
	done chan struct{}
}

// Controller coordinates one reservation workflow pass. All state is
// owned by the Run loop: public operations enqueue onto a single task
// queue and block until the loop has executed them, so there is never
// concurrent mutation.
type Controller struct {
	deps Deps

	tasks     chan task
	closed    chan struct{}
	closeOnce sync.Once

	debouncer *typeahead.Debouncer
	bookingVd *validator.BookingValidator

	st state
}

func NewController(deps Deps) *Controller {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	if deps.PageSize <= 0 {
		deps.PageSize = 5
	}
	if deps.TypeaheadMinChars <= 0 {
		deps.TypeaheadMinChars = 4
	}
	if deps.TypeaheadDebounce <= 0 {
		deps.TypeaheadDebounce = 300 * time.Millisecond
	}

	return &Controller{
		deps:      deps,
		tasks:     make(chan task),
		closed:    make(chan struct{}),
		debouncer: typeahead.NewDebouncer(),
		bookingVd: validator.NewBookingValidator(),
		st:        newState(),
	}
}

// Run executes the workflow loop until ctx is cancelled or Close is
// called. The press subscription, when configured, lives exactly as long
// as this loop.
func (c *Controller) Run(ctx context.Context) {
	defer c.Close()
	defer c.debouncer.Cancel()

	var press <-chan PressEvent
	if c.deps.Press != nil {
		var release func()
		press, release = c.deps.Press.Subscribe()
		defer release()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.closed:
			return
		case t := <-c.tasks:
			t.fn()
			if t.done != nil {
				close(t.done)
			}
		case ev, ok := <-press:
			if !ok {
				press = nil
				continue
			}
			if !ev.InsideContactRegion {
				c.st.contactResultsVisible = false
			}
		}
	}
}

// Close stops the workflow. Pending and future operations return
// ErrNotRunning.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		close(c.closed)
	})
}

// do runs fn on the loop goroutine and waits for it to complete.
func (c *Controller) do(fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}

	select {
	case c.tasks <- t:
	case <-c.closed:
		return reserrors.ErrNotRunning
	}

	select {
	case <-t.done:
		return nil
	case <-c.closed:
		return reserrors.ErrNotRunning
	}
}

// post enqueues fn without waiting for completion. Used by debounce
// timer callbacks, which fire on their own goroutine.
func (c *Controller) post(fn func()) {
	select {
	case c.tasks <- task{fn: fn}:
	case <-c.closed:
	}
}
