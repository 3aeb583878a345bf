package pagination

import "fleetlease/pkg/model"

// TotalPages returns the number of pages needed for count items.
// Zero items means zero pages.
func TotalPages(count, pageSize int) int {
	if count <= 0 || pageSize <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}

// ValidPage reports whether page is addressable for the given total.
func ValidPage(page, totalPages int) bool {
	return page >= 1 && page <= totalPages
}

// Window returns the slice of vehicles visible on the given page. The
// returned slice aliases the input; callers must not mutate it.
func Window(vehicles []model.Vehicle, page, pageSize int) []model.Vehicle {
	if pageSize <= 0 || page < 1 {
		return nil
	}

	start := (page - 1) * pageSize
	if start >= len(vehicles) {
		return nil
	}

	end := start + pageSize
	if end > len(vehicles) {
		end = len(vehicles)
	}

	return vehicles[start:end]
}

func IsFirst(page int) bool {
	return page <= 1
}

func IsLast(page, totalPages int) bool {
	return page >= totalPages
}
