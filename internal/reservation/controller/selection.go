package controller

import (
	"context"

	"fleetlease/internal/reservation/calendar"
	reserrors "fleetlease/internal/reservation/errors"
)

// SelectVehicle marks a vehicle as selected and fetches its availability
// calendar for the current month. An id with no match in the result set
// keeps the id but resolves to no record; that is allowed, not an error.
// Selecting invalidates any prior contact selection and confirmation.
func (c *Controller) SelectVehicle(ctx context.Context, vehicleID string) error {
	return c.do(func() {
		c.st.selectedVehicleID = vehicleID
		c.st.selectedVehicle = nil
		for i := range c.st.vehicles {
			if c.st.vehicles[i].ID == vehicleID {
				v := c.st.vehicles[i]
				c.st.selectedVehicle = &v
				break
			}
		}

		c.clearContact()
		c.clearConfirmation()
		c.st.bookingError = ""

		c.fetchAvailability(ctx)
		c.buildCalendar()
		c.st.calendarVisible = true
	})
}

// fetchAvailability loads the per-day availability for the selected
// vehicle and the current month. A failed fetch degrades to "no
// constraint data"; the calendar still renders with every day available.
func (c *Controller) fetchAvailability(ctx context.Context) {
	now := c.deps.Clock()
	monthKey := calendar.MonthKey(now)
	c.st.calendarMonth = monthKey

	days, err := c.deps.Fleet.MonthAvailability(ctx, c.st.selectedVehicleID, monthKey)
	if err != nil {
		c.deps.Log.Warn("Availability fetch failed, showing unconstrained calendar",
			"session_id", c.deps.SessionID,
			"vehicle_id", c.st.selectedVehicleID,
			"month", monthKey,
			"error", err,
		)
		c.st.availability = nil
		return
	}

	c.st.availability = days
}

func (c *Controller) buildCalendar() {
	now := c.deps.Clock()
	c.st.calendar = calendar.BuildMonth(now, now, c.st.availability)
	c.st.calendarBuilt = true
}

// ToggleCalendar flips calendar visibility, building the grid lazily on
// first show.
func (c *Controller) ToggleCalendar(ctx context.Context) error {
	var err error
	doErr := c.do(func() {
		if c.st.selectedVehicleID == "" {
			err = reserrors.ErrNoVehicleSelected
			return
		}

		c.st.calendarVisible = !c.st.calendarVisible
		if c.st.calendarVisible && !c.st.calendarBuilt {
			c.fetchAvailability(ctx)
			c.buildCalendar()
		}
	})
	if doErr != nil {
		return doErr
	}
	return err
}
