package pagination

import (
	"fmt"
	"testing"

	"fleetlease/pkg/model"
)

func makeVehicles(n int) []model.Vehicle {
	vehicles := make([]model.Vehicle, 0, n)
	for i := 1; i <= n; i++ {
		vehicles = append(vehicles, model.Vehicle{
			ID:   fmt.Sprintf("v-%d", i),
			Name: fmt.Sprintf("Vehicle %d", i),
		})
	}
	return vehicles
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		pageSize int
		want     int
	}{
		{"empty list", 0, 5, 0},
		{"exact multiple", 10, 5, 2},
		{"partial last page", 12, 5, 3},
		{"single item", 1, 5, 1},
		{"page size one", 4, 1, 4},
		{"invalid page size", 10, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPages(tt.count, tt.pageSize)
			if got != tt.want {
				t.Errorf("TotalPages(%d, %d) = %d, want %d", tt.count, tt.pageSize, got, tt.want)
			}
		})
	}
}

func TestWindowLengthInvariant(t *testing.T) {
	// For any list of length N and page size P, the window length is
	// min(P, max(0, N-(page-1)*P)) for all valid pages.
	for _, n := range []int{0, 1, 4, 5, 12, 23} {
		vehicles := makeVehicles(n)
		p := 5
		total := TotalPages(n, p)
		for page := 1; page <= total; page++ {
			want := n - (page-1)*p
			if want > p {
				want = p
			}
			got := len(Window(vehicles, page, p))
			if got != want {
				t.Errorf("n=%d page=%d: window length = %d, want %d", n, page, got, want)
			}
		}
	}
}

func TestWindowContents(t *testing.T) {
	vehicles := makeVehicles(12)

	page1 := Window(vehicles, 1, 5)
	if len(page1) != 5 || page1[0].ID != "v-1" || page1[4].ID != "v-5" {
		t.Errorf("page 1 = %v, want vehicles 1-5", page1)
	}

	page2 := Window(vehicles, 2, 5)
	if len(page2) != 5 || page2[0].ID != "v-6" || page2[4].ID != "v-10" {
		t.Errorf("page 2 = %v, want vehicles 6-10", page2)
	}

	page3 := Window(vehicles, 3, 5)
	if len(page3) != 2 || page3[0].ID != "v-11" {
		t.Errorf("page 3 = %v, want vehicles 11-12", page3)
	}

	if got := Window(vehicles, 4, 5); got != nil {
		t.Errorf("page beyond range = %v, want nil", got)
	}
}

func TestBoundaryFlags(t *testing.T) {
	total := TotalPages(12, 5)

	if !IsFirst(1) {
		t.Error("page 1 should be first")
	}
	if IsLast(1, total) {
		t.Error("page 1 of 3 should not be last")
	}
	if IsFirst(2) {
		t.Error("page 2 should not be first")
	}
	if !IsLast(3, total) {
		t.Error("page 3 of 3 should be last")
	}
}

func TestValidPage(t *testing.T) {
	if ValidPage(0, 3) {
		t.Error("page 0 should be invalid")
	}
	if ValidPage(4, 3) {
		t.Error("page 4 of 3 should be invalid")
	}
	if !ValidPage(2, 3) {
		t.Error("page 2 of 3 should be valid")
	}
}
