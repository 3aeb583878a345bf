package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	reserrors "fleetlease/internal/reservation/errors"
	"fleetlease/internal/reservation/notify"
	"fleetlease/pkg/logger"
	"fleetlease/pkg/model"
)

type fakeFleet struct {
	searchFunc       func(ctx context.Context, query model.VehicleQuery) ([]model.VehicleRecord, error)
	catalogFunc      func(ctx context.Context) (*model.Catalog, error)
	availabilityFunc func(ctx context.Context, vehicleID, monthKey string) ([]model.AvailabilityDay, error)
}

func (f *fakeFleet) SearchVehicles(ctx context.Context, query model.VehicleQuery) ([]model.VehicleRecord, error) {
	if f.searchFunc != nil {
		return f.searchFunc(ctx, query)
	}
	return nil, nil
}

func (f *fakeFleet) LoadCatalog(ctx context.Context) (*model.Catalog, error) {
	if f.catalogFunc != nil {
		return f.catalogFunc(ctx)
	}
	return &model.Catalog{}, nil
}

func (f *fakeFleet) MonthAvailability(ctx context.Context, vehicleID, monthKey string) ([]model.AvailabilityDay, error) {
	if f.availabilityFunc != nil {
		return f.availabilityFunc(ctx, vehicleID, monthKey)
	}
	return nil, nil
}

type fakeContacts struct {
	mu         sync.Mutex
	calls      []string
	searchFunc func(ctx context.Context, term string) ([]model.Contact, error)
}

func (f *fakeContacts) SearchContacts(ctx context.Context, term string) ([]model.Contact, error) {
	f.mu.Lock()
	f.calls = append(f.calls, term)
	f.mu.Unlock()

	if f.searchFunc != nil {
		return f.searchFunc(ctx, term)
	}
	return nil, nil
}

func (f *fakeContacts) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeLeases struct {
	mu         sync.Mutex
	calls      []*model.LeaseBookingRequest
	createFunc func(ctx context.Context, req *model.LeaseBookingRequest) (*model.LeaseCreateResult, error)
}

func (f *fakeLeases) CreateLease(ctx context.Context, req *model.LeaseBookingRequest) (*model.LeaseCreateResult, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return &model.LeaseCreateResult{Success: true}, nil
}

func (f *fakeLeases) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []notify.Notification
}

func (f *fakeNotifier) Notify(_ context.Context, _ string, n notify.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

func (f *fakeNotifier) last() *notify.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.notifications) == 0 {
		return nil
	}
	n := f.notifications[len(f.notifications)-1]
	return &n
}

type fakePress struct {
	mu     sync.Mutex
	ch     chan PressEvent
	subbed bool
}

func (f *fakePress) Subscribe() (<-chan PressEvent, func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ch = make(chan PressEvent, 1)
	f.subbed = true
	return f.ch, func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.subbed = false
	}
}

func (f *fakePress) subscribed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.subbed
}

type testEnv struct {
	ctrl     *Controller
	fleet    *fakeFleet
	contacts *fakeContacts
	leases   *fakeLeases
	notifier *fakeNotifier
	press    *fakePress
	cancel   context.CancelFunc
}

func newTestEnv(t *testing.T, mutate func(*Deps)) *testEnv {
	t.Helper()

	env := &testEnv{
		fleet:    &fakeFleet{},
		contacts: &fakeContacts{},
		leases:   &fakeLeases{},
		notifier: &fakeNotifier{},
		press:    &fakePress{},
	}

	deps := Deps{
		Fleet:             env.fleet,
		Contacts:          env.contacts,
		Leases:            env.leases,
		Notifier:          env.notifier,
		Press:             env.press,
		Log:               logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Service: "test"}),
		SessionID:         "sess-test",
		PageSize:          5,
		TypeaheadMinChars: 4,
		TypeaheadDebounce: 30 * time.Millisecond,
	}
	if mutate != nil {
		mutate(&deps)
	}

	env.ctrl = NewController(deps)

	ctx, cancel := context.WithCancel(context.Background())
	env.cancel = cancel
	go env.ctrl.Run(ctx)
	t.Cleanup(func() {
		cancel()
		env.ctrl.Close()
	})

	return env
}

func availableRecords(n int) []model.VehicleRecord {
	records := make([]model.VehicleRecord, 0, n)
	for i := 1; i <= n; i++ {
		records = append(records, model.VehicleRecord{
			ID:          fmt.Sprintf("v-%d", i),
			Name:        fmt.Sprintf("Vehicle %d", i),
			IsAvailable: true,
		})
	}
	return records
}

func mustSnapshot(t *testing.T, c *Controller) State {
	t.Helper()
	snap, err := c.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	return snap
}

func TestSearchPaginatesResults(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(12), nil
	}

	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if len(snap.Vehicles) != 12 {
		t.Fatalf("vehicle count = %d, want 12", len(snap.Vehicles))
	}
	if snap.CurrentPage != 1 || snap.TotalPages != 3 {
		t.Errorf("page = %d/%d, want 1/3", snap.CurrentPage, snap.TotalPages)
	}
	if len(snap.PageVehicles) != 5 || snap.PageVehicles[0].ID != "v-1" || snap.PageVehicles[4].ID != "v-5" {
		t.Errorf("page 1 = %v, want vehicles 1-5", snap.PageVehicles)
	}
	if !snap.IsFirstPage || snap.IsLastPage {
		t.Errorf("boundary flags = first:%v last:%v, want first only", snap.IsFirstPage, snap.IsLastPage)
	}

	if err := env.ctrl.NextPage(); err != nil {
		t.Fatalf("next page: %v", err)
	}
	snap = mustSnapshot(t, env.ctrl)
	if snap.CurrentPage != 2 {
		t.Errorf("page = %d, want 2", snap.CurrentPage)
	}
	if len(snap.PageVehicles) != 5 || snap.PageVehicles[0].ID != "v-6" || snap.PageVehicles[4].ID != "v-10" {
		t.Errorf("page 2 = %v, want vehicles 6-10", snap.PageVehicles)
	}
	if snap.IsFirstPage || snap.IsLastPage {
		t.Errorf("boundary flags = first:%v last:%v, want neither", snap.IsFirstPage, snap.IsLastPage)
	}
}

func TestSearchDiscardsUnavailableRecords(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return []model.VehicleRecord{
			{ID: "v-1", Name: "Sedan", IsAvailable: true},
			{ID: "v-2", Name: "Truck", IsAvailable: false},
			{ID: "v-3", Name: "Van", IsAvailable: true},
		}, nil
	}

	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if len(snap.Vehicles) != 2 {
		t.Fatalf("vehicle count = %d, want 2", len(snap.Vehicles))
	}
	for _, v := range snap.Vehicles {
		if v.ID == "v-2" {
			t.Error("unavailable record v-2 survived the search filter")
		}
		if v.StatusClass != model.StatusClassAvailable {
			t.Errorf("vehicle %s status class = %q", v.ID, v.StatusClass)
		}
	}
}

func TestSearchNormalizesDateBoundaries(t *testing.T) {
	env := newTestEnv(t, nil)

	var captured model.VehicleQuery
	env.fleet.searchFunc = func(_ context.Context, query model.VehicleQuery) ([]model.VehicleRecord, error) {
		captured = query
		return nil, nil
	}

	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-01")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	if captured.StartDate == nil || !captured.StartDate.Equal(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start date = %v, want 2024-06-01 midnight", captured.StartDate)
	}
	if captured.EndDate == nil || !captured.EndDate.Equal(time.Date(2024, 6, 3, 23, 59, 59, 0, time.UTC)) {
		t.Errorf("end date = %v, want 2024-06-03 end of day", captured.EndDate)
	}
}

func TestSearchLowercasesLabelFields(t *testing.T) {
	env := newTestEnv(t, nil)

	var captured model.VehicleQuery
	env.fleet.searchFunc = func(_ context.Context, query model.VehicleQuery) ([]model.VehicleRecord, error) {
		captured = query
		return nil, nil
	}

	env.ctrl.SetFilter(model.FilterModel, "  Sedan  DeLuxe ")
	env.ctrl.SetFilter(model.FilterLocation, "Downtown")
	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	if captured.ModelName != "sedan deluxe" {
		t.Errorf("model name sent = %q, want normalized label", captured.ModelName)
	}
	if captured.LocationName != "downtown" {
		t.Errorf("location name sent = %q, want normalized label", captured.LocationName)
	}

	// The stored filter keeps the user's casing for display.
	snap := mustSnapshot(t, env.ctrl)
	if snap.Filter.ModelName != "Sedan DeLuxe" {
		t.Errorf("stored filter model = %q", snap.Filter.ModelName)
	}
}

func TestSearchFailureClearsResults(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(3), nil
	}
	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return nil, errors.New("fleet service down")
	}
	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if len(snap.Vehicles) != 0 {
		t.Errorf("vehicles retained after failed search: %v", snap.Vehicles)
	}
	if snap.SearchError == "" {
		t.Error("search error not stored")
	}
	if snap.Loading {
		t.Error("loading flag stuck after failure")
	}
}

func TestGoToPageOutOfRangeIsNoOp(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(12), nil
	}
	env.ctrl.Search(context.Background())

	env.ctrl.GoToPage(0)
	env.ctrl.GoToPage(4)

	snap := mustSnapshot(t, env.ctrl)
	if snap.CurrentPage != 1 {
		t.Errorf("page = %d after out-of-range jumps, want 1", snap.CurrentPage)
	}

	if err := env.ctrl.PreviousPage(); err != nil {
		t.Fatalf("previous page: %v", err)
	}
	snap = mustSnapshot(t, env.ctrl)
	if snap.CurrentPage != 1 {
		t.Errorf("page = %d after previous on first page, want 1", snap.CurrentPage)
	}
}

func TestSelectVehicleBuildsCalendar(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)
	}
	env := newTestEnv(t, func(d *Deps) { d.Clock = clock })

	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(3), nil
	}
	env.fleet.availabilityFunc = func(_ context.Context, vehicleID, monthKey string) ([]model.AvailabilityDay, error) {
		if vehicleID != "v-1" {
			t.Errorf("availability fetched for %s, want v-1", vehicleID)
		}
		if monthKey != "2024-06" {
			t.Errorf("month key = %q, want 2024-06", monthKey)
		}
		return []model.AvailabilityDay{{Date: "2024-06-15", IsAvailable: false}}, nil
	}

	env.ctrl.Search(context.Background())
	if err := env.ctrl.SelectVehicle(context.Background(), "v-1"); err != nil {
		t.Fatalf("select vehicle: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if snap.SelectedVehicleID != "v-1" || snap.SelectedVehicle == nil {
		t.Fatalf("selection = %q / %v", snap.SelectedVehicleID, snap.SelectedVehicle)
	}
	if !snap.CalendarVisible {
		t.Error("calendar not visible after selection")
	}

	var june15, june20 *model.CalendarCell
	for i := range snap.Calendar {
		switch snap.Calendar[i].Date {
		case "2024-06-15":
			june15 = &snap.Calendar[i]
		case "2024-06-20":
			june20 = &snap.Calendar[i]
		}
	}
	if june15 == nil || june15.State != model.CellUnavailable {
		t.Errorf("June 15 cell = %+v, want unavailable", june15)
	}
	if june20 == nil || june20.State != model.CellAvailable {
		t.Errorf("June 20 cell = %+v, want available", june20)
	}
}

func TestSelectVehicleWithUnknownIDKeepsDanglingSelection(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(2), nil
	}
	env.ctrl.Search(context.Background())

	if err := env.ctrl.SelectVehicle(context.Background(), "v-99"); err != nil {
		t.Fatalf("select vehicle: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if snap.SelectedVehicleID != "v-99" {
		t.Errorf("selected id = %q, want v-99", snap.SelectedVehicleID)
	}
	if snap.SelectedVehicle != nil {
		t.Errorf("resolved vehicle = %v, want nil", snap.SelectedVehicle)
	}
}

func TestAvailabilityFailureDegradesToAllAvailable(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(1), nil
	}
	env.fleet.availabilityFunc = func(_ context.Context, _, _ string) ([]model.AvailabilityDay, error) {
		return nil, errors.New("availability service down")
	}

	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")

	snap := mustSnapshot(t, env.ctrl)
	if !snap.CalendarVisible || len(snap.Calendar) == 0 {
		t.Fatal("calendar blocked by failed availability fetch")
	}
	for _, cell := range snap.Calendar {
		if cell.State == model.CellUnavailable {
			t.Errorf("cell %s unavailable despite failed fetch", cell.Date)
		}
	}
}

func TestSelectVehicleClearsContactAndConfirmation(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(2), nil
	}
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}

	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-01")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")

	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)
	env.ctrl.SelectContact("c-1")

	env.leases.createFunc = func(_ context.Context, _ *model.LeaseBookingRequest) (*model.LeaseCreateResult, error) {
		return &model.LeaseCreateResult{Success: true, LeaseID: "L1", LeaseNumber: "LN-001"}, nil
	}
	env.ctrl.SubmitBooking(context.Background())

	snap := mustSnapshot(t, env.ctrl)
	if snap.SelectedContact == nil || !snap.ShowConfirmation {
		t.Fatalf("setup failed: contact %v confirmation %v", snap.SelectedContact, snap.ShowConfirmation)
	}

	env.ctrl.SelectVehicle(context.Background(), "v-2")

	snap = mustSnapshot(t, env.ctrl)
	if snap.SelectedContact != nil {
		t.Error("contact selection survived vehicle change")
	}
	if snap.ShowConfirmation || snap.Confirmation != nil {
		t.Error("confirmation survived vehicle change")
	}
}

func TestToggleCalendarWithoutSelection(t *testing.T) {
	env := newTestEnv(t, nil)

	if err := env.ctrl.ToggleCalendar(context.Background()); !errors.Is(err, reserrors.ErrNoVehicleSelected) {
		t.Errorf("toggle error = %v, want ErrNoVehicleSelected", err)
	}
}

func TestShortContactInputNeverQueries(t *testing.T) {
	env := newTestEnv(t, nil)

	env.ctrl.SetContactInput("d")
	env.ctrl.SetContactInput("da")
	env.ctrl.SetContactInput("dan")
	time.Sleep(100 * time.Millisecond)

	if got := env.contacts.callCount(); got != 0 {
		t.Errorf("contact queries = %d, want 0 for short input", got)
	}

	snap := mustSnapshot(t, env.ctrl)
	if snap.ContactResultsVisible {
		t.Error("results visible for short input")
	}
}

func TestContactInputDebouncesToOneQuery(t *testing.T) {
	env := newTestEnv(t, nil)
	env.contacts.searchFunc = func(_ context.Context, term string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}

	env.ctrl.SetContactInput("dana")
	time.Sleep(10 * time.Millisecond)
	env.ctrl.SetContactInput("dana s")
	time.Sleep(10 * time.Millisecond)
	env.ctrl.SetContactInput("dana sm")

	time.Sleep(120 * time.Millisecond)

	if got := env.contacts.callCount(); got != 1 {
		t.Fatalf("contact queries = %d, want exactly 1", got)
	}
	env.contacts.mu.Lock()
	term := env.contacts.calls[0]
	env.contacts.mu.Unlock()
	if term != "dana sm" {
		t.Errorf("queried term = %q, want the last keystroke", term)
	}

	snap := mustSnapshot(t, env.ctrl)
	if !snap.ContactResultsVisible || len(snap.ContactResults) != 1 {
		t.Errorf("results = %v visible=%v", snap.ContactResults, snap.ContactResultsVisible)
	}
	if snap.ContactLoading {
		t.Error("contact loading flag stuck")
	}
}

func TestSearchResetDiscardsFiredContactQuery(t *testing.T) {
	env := newTestEnv(t, nil)
	env.contacts.searchFunc = func(_ context.Context, term string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-" + term, Name: term}}, nil
	}
	// The slow vehicle search outlives the debounce interval, so the
	// fired contact query queues behind it and executes only after the
	// search has already reset the contact state.
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		time.Sleep(80 * time.Millisecond)
		return availableRecords(1), nil
	}

	env.ctrl.SetContactInput("mark")
	if err := env.ctrl.Search(context.Background()); err != nil {
		t.Fatalf("search: %v", err)
	}
	time.Sleep(60 * time.Millisecond)

	snap := mustSnapshot(t, env.ctrl)
	if len(snap.ContactResults) != 0 {
		t.Errorf("stale contact query repopulated results after search reset: %v", snap.ContactResults)
	}
	if got := env.contacts.callCount(); got != 0 {
		t.Errorf("contact queries = %d, want 0 once the reset invalidated the input", got)
	}
}

func TestMultibyteContactInputCountsRunes(t *testing.T) {
	env := newTestEnv(t, nil)

	// Three runes, six bytes: still below the minimum input length.
	env.ctrl.SetContactInput("ééé")
	time.Sleep(100 * time.Millisecond)

	if got := env.contacts.callCount(); got != 0 {
		t.Errorf("contact queries = %d, want 0 for a 3-rune term", got)
	}
	snap := mustSnapshot(t, env.ctrl)
	if snap.ContactResultsVisible {
		t.Error("results visible for a 3-rune term")
	}

	// Four runes crosses the threshold.
	env.ctrl.SetContactInput("éééé")
	time.Sleep(100 * time.Millisecond)

	if got := env.contacts.callCount(); got != 1 {
		t.Errorf("contact queries = %d, want 1 for a 4-rune term", got)
	}
}

func TestStaleContactResponseDiscarded(t *testing.T) {
	env := newTestEnv(t, nil)
	env.contacts.searchFunc = func(_ context.Context, term string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-" + term, Name: term}}, nil
	}

	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)

	// New input after the first query settled invalidates its sequence;
	// clearing immediately after should leave no results behind.
	env.ctrl.SetContactInput("mark")
	env.ctrl.ClearContact()
	time.Sleep(120 * time.Millisecond)

	snap := mustSnapshot(t, env.ctrl)
	if len(snap.ContactResults) != 0 {
		t.Errorf("stale results survived: %v", snap.ContactResults)
	}
}

func TestSelectContactMirrorsNameAndClosesList(t *testing.T) {
	env := newTestEnv(t, nil)
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{
			{ID: "c-1", Name: "Dana Smith"},
			{ID: "c-2", Name: "Dana Jones"},
		}, nil
	}

	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)

	if err := env.ctrl.SelectContact("c-2"); err != nil {
		t.Fatalf("select contact: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if snap.SelectedContact == nil || snap.SelectedContact.ID != "c-2" {
		t.Fatalf("selected contact = %v, want c-2", snap.SelectedContact)
	}
	if snap.ContactInput != "Dana Jones" {
		t.Errorf("input = %q, want mirrored name", snap.ContactInput)
	}
	if snap.ContactResultsVisible {
		t.Error("results list still open after selection")
	}
}

func TestOutsidePressClosesContactResults(t *testing.T) {
	env := newTestEnv(t, nil)
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}

	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)

	if !env.press.subscribed() {
		t.Fatal("press source not subscribed while running")
	}

	env.press.ch <- PressEvent{InsideContactRegion: false}
	time.Sleep(30 * time.Millisecond)

	snap := mustSnapshot(t, env.ctrl)
	if snap.ContactResultsVisible {
		t.Error("results still visible after outside press")
	}

	env.cancel()
	time.Sleep(30 * time.Millisecond)
	if env.press.subscribed() {
		t.Error("press subscription leaked after shutdown")
	}
}

func TestBookingValidationShortCircuits(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(1), nil
	}
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}

	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-05")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")
	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)
	env.ctrl.SelectContact("c-1")

	if err := env.ctrl.SubmitBooking(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if got := env.leases.callCount(); got != 0 {
		t.Errorf("lease creation calls = %d, want 0 when dates are out of order", got)
	}
	last := env.notifier.last()
	if last == nil || last.Variant != notify.VariantError {
		t.Errorf("notification = %v, want error variant", last)
	}
}

func TestBookingSuccessBuildsConfirmation(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(1), nil
	}
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}
	env.leases.createFunc = func(_ context.Context, req *model.LeaseBookingRequest) (*model.LeaseCreateResult, error) {
		if req.VehicleID != "v-1" || req.ContactID != "c-1" {
			t.Errorf("request = %+v", req)
		}
		return &model.LeaseCreateResult{Success: true, LeaseID: "L1", LeaseNumber: "LN-001"}, nil
	}

	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-01")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")
	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)
	env.ctrl.SelectContact("c-1")

	if err := env.ctrl.SubmitBooking(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if !snap.ShowConfirmation || snap.Confirmation == nil {
		t.Fatal("confirmation not shown after successful booking")
	}
	conf := snap.Confirmation
	if conf.ID != "L1" || conf.Number != "LN-001" {
		t.Errorf("confirmation ids = %s/%s", conf.ID, conf.Number)
	}
	if conf.StartDate != "06/01/2024" || conf.EndDate != "06/03/2024" {
		t.Errorf("confirmation dates = %s..%s, want MM/DD/YYYY", conf.StartDate, conf.EndDate)
	}
	if conf.VehicleName != "Vehicle 1" || conf.ContactName != "Dana Smith" {
		t.Errorf("confirmation names = %s/%s", conf.VehicleName, conf.ContactName)
	}
	if snap.BookingInProgress {
		t.Error("in-progress flag stuck after success")
	}

	last := env.notifier.last()
	if last == nil || last.Variant != notify.VariantSuccess {
		t.Errorf("notification = %v, want success variant", last)
	}
}

func TestBookingLogicalFailureSurfacesServerMessage(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(1), nil
	}
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}
	env.leases.createFunc = func(_ context.Context, _ *model.LeaseBookingRequest) (*model.LeaseCreateResult, error) {
		return &model.LeaseCreateResult{Success: false, Message: "Vehicle unavailable"}, nil
	}

	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-01")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")
	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)
	env.ctrl.SelectContact("c-1")

	if err := env.ctrl.SubmitBooking(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if snap.ShowConfirmation || snap.Confirmation != nil {
		t.Error("confirmation set despite logical failure")
	}
	if snap.BookingInProgress {
		t.Error("in-progress flag stuck after logical failure")
	}

	last := env.notifier.last()
	if last == nil || last.Message != "Vehicle unavailable" || last.Variant != notify.VariantError {
		t.Errorf("notification = %v, want the server message", last)
	}
}

func TestBookingTransportFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(1), nil
	}
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}
	env.leases.createFunc = func(_ context.Context, _ *model.LeaseBookingRequest) (*model.LeaseCreateResult, error) {
		return nil, errors.New("connection refused")
	}

	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-01")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")
	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)
	env.ctrl.SelectContact("c-1")

	if err := env.ctrl.SubmitBooking(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	snap := mustSnapshot(t, env.ctrl)
	if snap.BookingInProgress {
		t.Error("in-progress flag stuck after transport failure")
	}
	last := env.notifier.last()
	if last == nil || last.Variant != notify.VariantError {
		t.Errorf("notification = %v, want error variant", last)
	}
}

func TestBackToSearchIsIdempotent(t *testing.T) {
	env := newTestEnv(t, nil)
	env.fleet.searchFunc = func(_ context.Context, _ model.VehicleQuery) ([]model.VehicleRecord, error) {
		return availableRecords(3), nil
	}
	env.contacts.searchFunc = func(_ context.Context, _ string) ([]model.Contact, error) {
		return []model.Contact{{ID: "c-1", Name: "Dana Smith"}}, nil
	}

	env.ctrl.SetFilter(model.FilterModel, "Sedan")
	env.ctrl.SetFilter(model.FilterStartDate, "2024-06-01")
	env.ctrl.SetFilter(model.FilterEndDate, "2024-06-03")
	env.ctrl.Search(context.Background())
	env.ctrl.SelectVehicle(context.Background(), "v-1")
	env.ctrl.SetContactInput("dana")
	time.Sleep(100 * time.Millisecond)
	env.ctrl.SelectContact("c-1")
	env.ctrl.SubmitBooking(context.Background())

	if err := env.ctrl.BackToSearch(); err != nil {
		t.Fatalf("back to search: %v", err)
	}
	once := mustSnapshot(t, env.ctrl)

	if err := env.ctrl.BackToSearch(); err != nil {
		t.Fatalf("back to search twice: %v", err)
	}
	twice := mustSnapshot(t, env.ctrl)

	assertEmptyState(t, once)
	assertEmptyState(t, twice)
}

func assertEmptyState(t *testing.T, snap State) {
	t.Helper()

	if snap.Filter != (model.Filter{}) {
		t.Errorf("filter not cleared: %+v", snap.Filter)
	}
	if len(snap.Vehicles) != 0 || len(snap.PageVehicles) != 0 {
		t.Error("vehicle results not cleared")
	}
	if snap.CurrentPage != 1 || snap.TotalPages != 0 {
		t.Errorf("pagination = %d/%d, want 1/0", snap.CurrentPage, snap.TotalPages)
	}
	if snap.SelectedVehicleID != "" || snap.SelectedVehicle != nil {
		t.Error("selection not cleared")
	}
	if snap.SelectedContact != nil || snap.ContactInput != "" || len(snap.ContactResults) != 0 {
		t.Error("contact state not cleared")
	}
	if snap.ShowConfirmation || snap.Confirmation != nil {
		t.Error("confirmation not cleared")
	}
	if snap.SearchError != "" || snap.BookingError != "" {
		t.Error("error state not cleared")
	}
}

func TestOperationsAfterClose(t *testing.T) {
	env := newTestEnv(t, nil)
	env.ctrl.Close()

	if err := env.ctrl.Search(context.Background()); !errors.Is(err, reserrors.ErrNotRunning) {
		t.Errorf("search after close = %v, want ErrNotRunning", err)
	}
	if _, err := env.ctrl.Snapshot(); !errors.Is(err, reserrors.ErrNotRunning) {
		t.Errorf("snapshot after close = %v, want ErrNotRunning", err)
	}
}
