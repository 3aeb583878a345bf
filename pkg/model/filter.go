package model

type FilterField string

const (
	FilterModel     FilterField = "model"
	FilterLocation  FilterField = "location"
	FilterStartDate FilterField = "start_date"
	FilterEndDate   FilterField = "end_date"
)

// Filter holds the active search criteria. An empty field means
// unconstrained. Dates are date-only strings, YYYY-MM-DD.
type Filter struct {
	ModelName    string `json:"model_name"`
	LocationName string `json:"location_name"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
}
