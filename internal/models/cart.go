package models

// CartLine represents one cart entry. A cart holds at most one line per
// item code; adding the same item again increments Qty.
type CartLine struct {
	// ItemCode is the unique key for the line.
	ItemCode string `json:"item_code"`

	// ItemName is the display name captured when the item was added.
	ItemName string `json:"item_name"`

	// Route is the storefront path of the item page.
	Route string `json:"route"`

	// Image is an optional item image URL.
	Image string `json:"image,omitempty"`

	// Rate is the unit price snapshot. Overwritten by a price refresh
	// when the server reports a current price for the item.
	Rate float64 `json:"rate"`

	// Qty is the quantity, never below 1.
	Qty int `json:"qty"`
}

// Amount returns the line total (rate times quantity). Currency
// rounding happens at render time, not here.
func (l CartLine) Amount() float64 {
	return l.Rate * float64(l.Qty)
}

// ItemRef identifies an item being added to the cart or wishlist,
// carrying the display metadata snapshotted into the stores.
type ItemRef struct {
	ItemCode string  `json:"item_code"`
	ItemName string  `json:"item_name"`
	Route    string  `json:"route"`
	Image    string  `json:"image,omitempty"`
	Rate     float64 `json:"rate"`
}
