package models

// Profile holds the portal user fields used to prefill checkout and to
// show or update the profile page.
type Profile struct {
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	AddressLine1 string `json:"address_line1,omitempty"`
	City         string `json:"city,omitempty"`
	Country      string `json:"country,omitempty"`
}

// OrderResult is the outcome of a successfully placed order.
type OrderResult struct {
	// OrderID is the server-assigned sales order identifier.
	OrderID string

	// Warning carries non-fatal server-side notices (e.g. an item that
	// will ship late). Appended to the success message, never an error.
	Warning string
}
