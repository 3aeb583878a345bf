package controller

import (
	"context"
	"time"

	"fleetlease/internal/reservation/calendar"
	"fleetlease/pkg/model"
	"fleetlease/pkg/sanitizer"
)

// SetFilter stores one search criterion. Values are whitespace-normalized
// at this boundary; no other side effects.
func (c *Controller) SetFilter(field model.FilterField, value string) error {
	return c.do(func() {
		value = sanitizer.NormalizeFilterValue(value)
		switch field {
		case model.FilterModel:
			c.st.filter.ModelName = value
		case model.FilterLocation:
			c.st.filter.LocationName = value
		case model.FilterStartDate:
			c.st.filter.StartDate = value
		case model.FilterEndDate:
			c.st.filter.EndDate = value
		}
	})
}

// LoadCatalog fetches the model and location names backing the filter
// inputs.
func (c *Controller) LoadCatalog(ctx context.Context) error {
	return c.do(func() {
		cat, err := c.deps.Fleet.LoadCatalog(ctx)
		if err != nil {
			c.deps.Log.Warn("Catalog load failed", "session_id", c.deps.SessionID, "error", err)
			return
		}
		c.st.catalog = cat
	})
}

// Search runs a vehicle availability search for the current filter. On
// success it keeps only available records, resets pagination to page 1
// and invalidates any prior selection, contact and confirmation. On
// failure the result set is cleared and the error stored.
func (c *Controller) Search(ctx context.Context) error {
	return c.do(func() {
		c.st.loading = true
		c.st.searchError = ""

		// Model and location are matched case-insensitively by the fleet
		// service; lowercase the labels once, here.
		query := model.VehicleQuery{
			ModelName:    sanitizer.NormalizeLabel(c.st.filter.ModelName),
			LocationName: sanitizer.NormalizeLabel(c.st.filter.LocationName),
			StartDate:    startOfDay(c.st.filter.StartDate),
			EndDate:      endOfDay(c.st.filter.EndDate),
		}

		records, err := c.deps.Fleet.SearchVehicles(ctx, query)
		c.st.loading = false

		if err != nil {
			c.deps.Log.Error("Vehicle search failed", "session_id", c.deps.SessionID, "error", err)
			c.st.searchError = "Vehicle search failed. Please try again."
			c.st.vehicles = nil
			c.repaginate()
			return
		}

		vehicles := make([]model.Vehicle, 0, len(records))
		for _, rec := range records {
			if !rec.IsAvailable {
				continue
			}
			vehicles = append(vehicles, vehicleFromRecord(rec))
		}

		c.st.vehicles = vehicles
		c.st.currentPage = 1
		c.clearSelection()
		c.clearContact()
		c.clearConfirmation()
		c.st.bookingError = ""
		c.repaginate()

		c.deps.Log.Info("Vehicle search completed",
			"session_id", c.deps.SessionID,
			"results", len(vehicles),
			"total_pages", c.st.totalPages,
		)
	})
}

func vehicleFromRecord(rec model.VehicleRecord) model.Vehicle {
	statusClass := model.StatusClassUnavailable
	if rec.IsAvailable {
		statusClass = model.StatusClassAvailable
	}

	return model.Vehicle{
		ID:                 rec.ID,
		Name:               rec.Name,
		LocationName:       rec.LocationName,
		AvailabilityStatus: rec.AvailabilityStatus,
		ImageURL:           rec.ImageURL,
		HourlyRate:         rec.HourlyRate,
		StatusClass:        statusClass,
	}
}

// startOfDay normalizes a date-only string to midnight UTC, or nil when
// the field is unset or malformed.
func startOfDay(date string) *time.Time {
	t, err := time.Parse(calendar.DateLayout, date)
	if err != nil {
		return nil
	}
	return &t
}

// endOfDay normalizes a date-only string to the last second of the day.
func endOfDay(date string) *time.Time {
	t, err := time.Parse(calendar.DateLayout, date)
	if err != nil {
		return nil
	}
	end := t.Add(24*time.Hour - time.Second)
	return &end
}
