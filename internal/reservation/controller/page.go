package controller

import (
	reserrors "fleetlease/internal/reservation/errors"
	"fleetlease/internal/reservation/pagination"
)

// GoToPage moves to the given page. Out-of-range pages are a no-op.
func (c *Controller) GoToPage(page int) error {
	return c.do(func() {
		if !pagination.ValidPage(page, c.st.totalPages) {
			return
		}
		c.st.currentPage = page
		c.st.pageVehicles = pagination.Window(c.st.vehicles, page, c.deps.PageSize)
	})
}

// NextPage advances one page, guarded at the last page.
func (c *Controller) NextPage() error {
	var err error
	doErr := c.do(func() {
		if c.st.totalPages == 0 {
			err = reserrors.ErrNoResults
			return
		}
		if pagination.IsLast(c.st.currentPage, c.st.totalPages) {
			return
		}
		c.st.currentPage++
		c.st.pageVehicles = pagination.Window(c.st.vehicles, c.st.currentPage, c.deps.PageSize)
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// PreviousPage moves back one page, guarded at the first page.
func (c *Controller) PreviousPage() error {
	var err error
	doErr := c.do(func() {
		if c.st.totalPages == 0 {
			err = reserrors.ErrNoResults
			return
		}
		if pagination.IsFirst(c.st.currentPage) {
			return
		}
		c.st.currentPage--
		c.st.pageVehicles = pagination.Window(c.st.vehicles, c.st.currentPage, c.deps.PageSize)
	})
	if doErr != nil {
		return doErr
	}
	return err
}
