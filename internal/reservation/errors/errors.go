package errors

import "errors"

var (
	// ErrNotRunning is returned by controller operations after Close.
	ErrNotRunning = errors.New("reservation controller is not running")

	// ErrSessionNotFound is returned when a session id is unknown or expired.
	ErrSessionNotFound = errors.New("session not found")

	// ErrNoVehicleSelected is returned when calendar or booking operations
	// run without a selected vehicle.
	ErrNoVehicleSelected = errors.New("no vehicle selected")

	// ErrNoResults is returned by page navigation when no search has produced
	// results yet.
	ErrNoResults = errors.New("no search results to paginate")
)
