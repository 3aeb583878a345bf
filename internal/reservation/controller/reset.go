package controller

import "fleetlease/pkg/model"

// BackToSearch returns the workflow to its initial pre-search state:
// confirmation, selection, contact, errors, results and pagination all
// clear. Calling it twice leaves the same state as calling it once.
func (c *Controller) BackToSearch() error {
	return c.do(func() {
		c.clearConfirmation()
		c.clearSelection()
		c.clearContact()

		c.st.filter = model.Filter{}
		c.st.vehicles = nil
		c.st.pageVehicles = nil
		c.st.currentPage = 1
		c.st.totalPages = 0
		c.st.loading = false
		c.st.searchError = ""
		c.st.bookingInProgress = false
		c.st.bookingError = ""
	})
}
