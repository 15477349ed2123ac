package models

// Address is a server-side address book record. Name is the
// server-assigned identifier; it is empty for a record that has not
// been saved yet, and saving with a non-empty Name updates in place.
type Address struct {
	Name         string `json:"name,omitempty"`
	AddressTitle string `json:"address_title,omitempty"`
	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2,omitempty"`
	City         string `json:"city"`
	Country      string `json:"country"`
	Phone        string `json:"phone,omitempty"`
}

// AddressHistoryEntry is a previously used shipping address kept
// locally for checkout autofill. Entries are deduplicated by
// (AddressLine1, City) and capped to the five most recent.
type AddressHistoryEntry struct {
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	Country      string `json:"country"`
}
