package model

type CellState string

const (
	CellEmpty       CellState = "empty"
	CellToday       CellState = "today"
	CellAvailable   CellState = "available"
	CellUnavailable CellState = "unavailable"
)

// CalendarCell is one day slot in the month grid. Padding cells carry no
// date and the empty state.
type CalendarCell struct {
	Date  string    `json:"date,omitempty"`
	Label string    `json:"label"`
	State CellState `json:"state"`
}
