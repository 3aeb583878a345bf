package model

// LeaseBookingRequest is constructed only after local validation passes.
// Dates are date-only strings, YYYY-MM-DD.
type LeaseBookingRequest struct {
	VehicleID string `json:"vehicle_id" validate:"required"`
	ContactID string `json:"contact_id" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// LeaseCreateResult is the lease service response. Success false signals a
// logical failure carried in Message.
type LeaseCreateResult struct {
	Success     bool   `json:"success"`
	LeaseID     string `json:"lease_id,omitempty"`
	LeaseNumber string `json:"lease_number,omitempty"`
	Message     string `json:"message,omitempty"`
}

// LeaseConfirmation is the terminal confirmation state shown after a
// successful booking. Dates are display-formatted, MM/DD/YYYY.
type LeaseConfirmation struct {
	ID          string `json:"id"`
	Number      string `json:"number"`
	VehicleName string `json:"vehicle_name"`
	ContactName string `json:"contact_name"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
}
