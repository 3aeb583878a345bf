package calendar

import (
	"strconv"
	"strings"
	"time"

	"fleetlease/pkg/model"
)

// DateLayout is the canonical date-only format used across the workflow.
const DateLayout = "2006-01-02"

// MonthKey formats a time as the YYYY-MM key the availability service expects.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DateOnly strips any time-of-day suffix from a date string, so that
// "2024-06-15T00:00:00Z" and "2024-06-15" compare equal.
func DateOnly(s string) string {
	if idx := strings.IndexByte(s, 'T'); idx >= 0 {
		return s[:idx]
	}
	if idx := strings.IndexByte(s, ' '); idx >= 0 {
		return s[:idx]
	}
	return s
}

// BuildMonth constructs the calendar grid for the month containing ref.
// The grid starts with empty cells padding to the weekday of the 1st and
// ends padded to a full week. Days with no availability record default
// to available; the cell matching today wins over availability state.
func BuildMonth(ref time.Time, today time.Time, days []model.AvailabilityDay) []model.CalendarCell {
	year, month, _ := ref.Date()
	first := time.Date(year, month, 1, 0, 0, 0, 0, ref.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	unavailable := make(map[string]bool, len(days))
	for _, d := range days {
		if !d.IsAvailable {
			unavailable[DateOnly(d.Date)] = true
		}
	}

	todayKey := today.Format(DateLayout)

	cells := make([]model.CalendarCell, 0, daysInMonth+13)

	for i := 0; i < int(first.Weekday()); i++ {
		cells = append(cells, model.CalendarCell{State: model.CellEmpty})
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, ref.Location()).Format(DateLayout)

		state := model.CellAvailable
		if unavailable[date] {
			state = model.CellUnavailable
		}
		if date == todayKey {
			state = model.CellToday
		}

		cells = append(cells, model.CalendarCell{
			Date:  date,
			Label: strconv.Itoa(day),
			State: state,
		})
	}

	for len(cells)%7 != 0 {
		cells = append(cells, model.CalendarCell{State: model.CellEmpty})
	}

	return cells
}
