package controller

import (
	"context"
	"unicode/utf8"

	"fleetlease/pkg/sanitizer"
)

// SetContactInput records a typeahead keystroke. Terms below the
// minimum length hide and clear the results without querying; longer
// terms arm the debounce timer, replacing any pending one, and the
// query fires only after the input has been quiet for the full
// interval.
func (c *Controller) SetContactInput(term string) error {
	return c.do(func() {
		c.st.contactInput = term
		c.st.contactSeq++

		if utf8.RuneCountInString(term) < c.deps.TypeaheadMinChars {
			c.debouncer.Cancel()
			c.st.contactResults = nil
			c.st.contactResultsVisible = false
			c.st.contactLoading = false
			return
		}

		c.st.contactResultsVisible = true

		seq := c.st.contactSeq
		query := sanitizer.NormalizeSearchTerm(term)
		c.debouncer.Arm(c.deps.TypeaheadDebounce, func() {
			c.post(func() {
				c.performContactSearch(query, seq)
			})
		})
	})
}

// performContactSearch runs on the loop goroutine after the debounce
// interval. A stale sequence number means newer input arrived while the
// task was queued; the search is skipped so old results can never
// overwrite newer ones.
func (c *Controller) performContactSearch(term string, seq uint64) {
	if seq != c.st.contactSeq {
		return
	}

	c.st.contactLoading = true

	contacts, err := c.deps.Contacts.SearchContacts(context.Background(), term)
	c.st.contactLoading = false

	if seq != c.st.contactSeq {
		return
	}

	if err != nil {
		c.deps.Log.Warn("Contact search failed",
			"session_id", c.deps.SessionID,
			"term", term,
			"error", err,
		)
		c.st.contactResults = nil
		return
	}

	c.st.contactResults = contacts
}

// SelectContact picks a contact from the current results, mirrors its
// name into the input and closes the list. Unknown ids are ignored.
func (c *Controller) SelectContact(contactID string) error {
	return c.do(func() {
		for i := range c.st.contactResults {
			if c.st.contactResults[i].ID == contactID {
				ct := c.st.contactResults[i]
				c.st.selectedContact = &ct
				c.st.contactInput = ct.Name
				c.st.contactSeq++
				c.debouncer.Cancel()
				c.st.contactResultsVisible = false
				return
			}
		}
	})
}

// ClearContact resets input, selection and results together.
func (c *Controller) ClearContact() error {
	return c.do(func() {
		c.clearContact()
	})
}
