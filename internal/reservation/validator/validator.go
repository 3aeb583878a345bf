package validator

import (
	"time"

	"fleetlease/pkg/model"

	"github.com/go-playground/validator/v10"
)

// User-visible validation messages, surfaced in order of the checks.
const (
	MsgContactRequired = "Please select a contact before booking"
	MsgDatesRequired   = "Please provide both start and end dates"
	MsgDateOrder       = "Start date must be before end date"
)

const dateLayout = "2006-01-02"

// ValidationError is one failed booking precondition.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors is an ordered list of failed preconditions.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Message
}

// First returns the first failure, matching the short-circuit order the
// booking flow reports to the user.
func (e ValidationErrors) First() *ValidationError {
	if len(e) == 0 {
		return nil
	}
	return &e[0]
}

// BookingValidator checks lease booking requests before submission.
type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(bookingDateOrder, model.LeaseBookingRequest{})
	return &BookingValidator{validate: v}
}

func bookingDateOrder(sl validator.StructLevel) {
	req := sl.Current().Interface().(model.LeaseBookingRequest)

	start, errStart := time.Parse(dateLayout, req.StartDate)
	end, errEnd := time.Parse(dateLayout, req.EndDate)
	if errStart != nil || errEnd != nil {
		return
	}

	if !start.Before(end) {
		sl.ReportError(req.StartDate, "StartDate", "start_date", "dateorder", "")
	}
}

// Validate runs the ordered precondition checks: contact selected, dates
// present and well-formed, start strictly before end. It returns the
// failures in that order so callers can report the first one.
func (bv *BookingValidator) Validate(req *model.LeaseBookingRequest) ValidationErrors {
	var errs ValidationErrors

	err := bv.validate.Struct(req)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs = append(errs, ValidationError{Field: "request", Message: MsgDatesRequired})
		return errs
	}

	var contactMissing, datesInvalid, orderInvalid bool
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "ContactID":
			contactMissing = true
		case "StartDate", "EndDate":
			if fe.Tag() == "dateorder" {
				orderInvalid = true
			} else {
				datesInvalid = true
			}
		}
	}

	if contactMissing {
		errs = append(errs, ValidationError{Field: "contact_id", Message: MsgContactRequired})
	}
	if datesInvalid {
		errs = append(errs, ValidationError{Field: "dates", Message: MsgDatesRequired})
	}
	if orderInvalid {
		errs = append(errs, ValidationError{Field: "dates", Message: MsgDateOrder})
	}

	if len(errs) == 0 {
		errs = append(errs, ValidationError{Field: "request", Message: MsgDatesRequired})
	}

	return errs
}
