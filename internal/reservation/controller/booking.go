package controller

import (
	"context"
	"strings"

	reserrors "fleetlease/internal/reservation/errors"
	"fleetlease/internal/reservation/notify"
	"fleetlease/pkg/model"
)

const (
	msgBookingFailed  = "Failed to create lease. Please try again."
	titleBookingOK    = "Booking Confirmed"
	titleBookingError = "Booking Failed"
)

// SubmitBooking validates the booking preconditions in order (contact
// selected, dates present, start before end), short-circuiting with an
// error notification on the first failure, then submits the lease
// request. Success produces the confirmation record; logical and
// transport failures surface as an error notification. The in-progress
// flag clears on every path.
func (c *Controller) SubmitBooking(ctx context.Context) error {
	var err error
	doErr := c.do(func() {
		if c.st.selectedVehicle == nil {
			err = reserrors.ErrNoVehicleSelected
			return
		}

		req := &model.LeaseBookingRequest{
			VehicleID: c.st.selectedVehicle.ID,
			StartDate: c.st.filter.StartDate,
			EndDate:   c.st.filter.EndDate,
		}
		if c.st.selectedContact != nil {
			req.ContactID = c.st.selectedContact.ID
		}

		if verrs := c.bookingVd.Validate(req); verrs != nil {
			first := verrs.First()
			c.st.bookingError = first.Message
			c.notifyError(ctx, first.Message)
			return
		}

		c.st.bookingInProgress = true
		c.st.bookingError = ""

		result, callErr := c.deps.Leases.CreateLease(ctx, req)
		c.st.bookingInProgress = false

		if callErr != nil {
			c.deps.Log.Error("Lease creation failed",
				"session_id", c.deps.SessionID,
				"vehicle_id", req.VehicleID,
				"error", callErr,
			)
			c.st.bookingError = msgBookingFailed
			c.notifyError(ctx, msgBookingFailed)
			return
		}

		if !result.Success {
			message := result.Message
			if message == "" {
				message = msgBookingFailed
			}
			c.st.bookingError = message
			c.notifyError(ctx, message)
			return
		}

		contactName := ""
		if c.st.selectedContact != nil {
			contactName = c.st.selectedContact.Name
		}

		c.st.confirmation = &model.LeaseConfirmation{
			ID:          result.LeaseID,
			Number:      result.LeaseNumber,
			VehicleName: c.st.selectedVehicle.Name,
			ContactName: contactName,
			StartDate:   formatDisplayDate(req.StartDate),
			EndDate:     formatDisplayDate(req.EndDate),
		}
		c.st.showConfirmation = true

		c.deps.Log.Info("Lease created",
			"session_id", c.deps.SessionID,
			"lease_id", result.LeaseID,
			"lease_number", result.LeaseNumber,
		)
		c.notifySuccess(ctx, "Lease "+result.LeaseNumber+" created successfully")
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// formatDisplayDate rewrites YYYY-MM-DD as MM/DD/YYYY by string
// manipulation. Parsing through a time value here would shift the day
// in non-UTC zones.
func formatDisplayDate(date string) string {
	parts := strings.Split(date, "-")
	if len(parts) != 3 {
		return date
	}
	return parts[1] + "/" + parts[2] + "/" + parts[0]
}

func (c *Controller) notifySuccess(ctx context.Context, message string) {
	if c.deps.Notifier == nil {
		return
	}
	c.deps.Notifier.Notify(ctx, c.deps.SessionID, notify.Notification{
		Title:   titleBookingOK,
		Message: message,
		Variant: notify.VariantSuccess,
	})
}

func (c *Controller) notifyError(ctx context.Context, message string) {
	if c.deps.Notifier == nil {
		return
	}
	c.deps.Notifier.Notify(ctx, c.deps.SessionID, notify.Notification{
		Title:   titleBookingError,
		Message: message,
		Variant: notify.VariantError,
	})
}
