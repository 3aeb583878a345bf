package controller

import (
	"fleetlease/internal/reservation/pagination"
	"fleetlease/pkg/model"
)

// state is the loop-owned workflow state. Only the Run goroutine touches
// it.
type state struct {
	filter  model.Filter
	catalog *model.Catalog

	vehicles     []model.Vehicle
	pageVehicles []model.Vehicle
	currentPage  int
	totalPages   int
	loading      bool
	searchError  string

	selectedVehicleID string
	selectedVehicle   *model.Vehicle
	availability      []model.AvailabilityDay
	calendar          []model.CalendarCell
	calendarMonth     string
	calendarVisible   bool
	calendarBuilt     bool

	contactInput          string
	contactResults        []model.Contact
	contactResultsVisible bool
	contactLoading        bool
	contactSeq            uint64
	selectedContact       *model.Contact

	bookingInProgress bool
	bookingError      string
	showConfirmation  bool
	confirmation      *model.LeaseConfirmation
}

func newState() state {
	return state{currentPage: 1}
}

// State is a point-in-time snapshot handed out to callers. Slices are
// copies; mutating a snapshot never touches the live workflow.
type State struct {
	Filter  model.Filter   `json:"filter"`
	Catalog *model.Catalog `json:"catalog,omitempty"`

	Vehicles     []model.Vehicle `json:"vehicles"`
	PageVehicles []model.Vehicle `json:"page_vehicles"`
	CurrentPage  int             `json:"current_page"`
	TotalPages   int             `json:"total_pages"`
	PageSize     int             `json:"page_size"`
	IsFirstPage  bool            `json:"is_first_page"`
	IsLastPage   bool            `json:"is_last_page"`
	Loading      bool            `json:"loading"`
	SearchError  string          `json:"search_error,omitempty"`

	SelectedVehicleID string               `json:"selected_vehicle_id,omitempty"`
	SelectedVehicle   *model.Vehicle       `json:"selected_vehicle,omitempty"`
	Calendar          []model.CalendarCell `json:"calendar,omitempty"`
	CalendarMonth     string               `json:"calendar_month,omitempty"`
	CalendarVisible   bool                 `json:"calendar_visible"`

	ContactInput          string          `json:"contact_input"`
	ContactResults        []model.Contact `json:"contact_results"`
	ContactResultsVisible bool            `json:"contact_results_visible"`
	ContactLoading        bool            `json:"contact_loading"`
	SelectedContact       *model.Contact  `json:"selected_contact,omitempty"`

	BookingInProgress bool                     `json:"booking_in_progress"`
	BookingError      string                   `json:"booking_error,omitempty"`
	ShowConfirmation  bool                     `json:"show_confirmation"`
	Confirmation      *model.LeaseConfirmation `json:"confirmation,omitempty"`
}

// Snapshot returns the current workflow state.
func (c *Controller) Snapshot() (State, error) {
	var snap State
	err := c.do(func() {
		snap = c.snapshotLocked()
	})
	return snap, err
}

func (c *Controller) snapshotLocked() State {
	snap := State{
		Filter:  c.st.filter,
		Catalog: c.st.catalog,

		Vehicles:     append([]model.Vehicle(nil), c.st.vehicles...),
		PageVehicles: append([]model.Vehicle(nil), c.st.pageVehicles...),
		CurrentPage:  c.st.currentPage,
		TotalPages:   c.st.totalPages,
		PageSize:     c.deps.PageSize,
		IsFirstPage:  pagination.IsFirst(c.st.currentPage),
		IsLastPage:   pagination.IsLast(c.st.currentPage, c.st.totalPages),
		Loading:      c.st.loading,
		SearchError:  c.st.searchError,

		SelectedVehicleID: c.st.selectedVehicleID,
		Calendar:          append([]model.CalendarCell(nil), c.st.calendar...),
		CalendarMonth:     c.st.calendarMonth,
		CalendarVisible:   c.st.calendarVisible,

		ContactInput:          c.st.contactInput,
		ContactResults:        append([]model.Contact(nil), c.st.contactResults...),
		ContactResultsVisible: c.st.contactResultsVisible,
		ContactLoading:        c.st.contactLoading,

		BookingInProgress: c.st.bookingInProgress,
		BookingError:      c.st.bookingError,
		ShowConfirmation:  c.st.showConfirmation,
	}

	if c.st.selectedVehicle != nil {
		v := *c.st.selectedVehicle
		snap.SelectedVehicle = &v
	}
	if c.st.selectedContact != nil {
		ct := *c.st.selectedContact
		snap.SelectedContact = &ct
	}
	if c.st.confirmation != nil {
		conf := *c.st.confirmation
		snap.Confirmation = &conf
	}

	return snap
}

// repaginate recomputes the visible page window. Runs after every change
// to the vehicle list or the current page.
func (c *Controller) repaginate() {
	c.st.totalPages = pagination.TotalPages(len(c.st.vehicles), c.deps.PageSize)
	if c.st.currentPage > c.st.totalPages {
		c.st.currentPage = 1
	}
	c.st.pageVehicles = pagination.Window(c.st.vehicles, c.st.currentPage, c.deps.PageSize)
}

// clearSelection drops the vehicle selection and its calendar.
func (c *Controller) clearSelection() {
	c.st.selectedVehicleID = ""
	c.st.selectedVehicle = nil
	c.st.availability = nil
	c.st.calendar = nil
	c.st.calendarMonth = ""
	c.st.calendarVisible = false
	c.st.calendarBuilt = false
}

// clearContact drops the typeahead input, results and selection. The
// sequence bump invalidates any debounce callback that already fired
// and queued its task behind the current one.
func (c *Controller) clearContact() {
	c.debouncer.Cancel()
	c.st.contactSeq++
	c.st.contactInput = ""
	c.st.contactResults = nil
	c.st.contactResultsVisible = false
	c.st.contactLoading = false
	c.st.selectedContact = nil
}

// clearConfirmation drops the terminal confirmation state. The record
// and the visible flag always move together.
func (c *Controller) clearConfirmation() {
	c.st.showConfirmation = false
	c.st.confirmation = nil
}
