package model

// Contact is a renter contact. Opaque beyond id and name for the
// reservation workflow; extra fields pass through for display.
type Contact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}
