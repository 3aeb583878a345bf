package model

import "time"

// VehicleRecord is the raw search-response shape from the fleet service.
// Records flagged unavailable are discarded at the search boundary.
type VehicleRecord struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	LocationName       string  `json:"location_name"`
	AvailabilityStatus string  `json:"availability_status"`
	IsAvailable        bool    `json:"is_available"`
	ImageURL           string  `json:"image_url"`
	HourlyRate         float64 `json:"hourly_rate"`
}

const (
	StatusClassAvailable   = "status-available"
	StatusClassUnavailable = "status-unavailable"
)

// Vehicle is the view shape kept in the controller's result set.
type Vehicle struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	LocationName       string  `json:"location_name"`
	AvailabilityStatus string  `json:"availability_status"`
	ImageURL           string  `json:"image_url"`
	HourlyRate         float64 `json:"hourly_rate"`
	StatusClass        string  `json:"status_class"`
}

// VehicleQuery is the fleet search request. Nil dates mean unconstrained.
type VehicleQuery struct {
	StartDate    *time.Time `json:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	ModelName    string     `json:"model_name,omitempty"`
	LocationName string     `json:"location_name,omitempty"`
}

type VehicleModel struct {
	Name string `json:"vehicle_model_name"`
}

type Location struct {
	Name string `json:"location_name"`
}

// Catalog backs the filter inputs with the known model and location names.
type Catalog struct {
	VehicleModels []VehicleModel `json:"vehicle_models"`
	Locations     []Location     `json:"locations"`
}

// AvailabilityDay is one vehicle's availability for one day of a month.
// The service sometimes returns the date with a time suffix; consumers must
// compare date-only.
type AvailabilityDay struct {
	Date        string `json:"date"`
	IsAvailable bool   `json:"is_available"`
}
