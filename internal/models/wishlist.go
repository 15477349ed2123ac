package models

// WishlistEntry represents a saved item. The wishlist is a set keyed by
// item code; there are no duplicates and no quantity.
type WishlistEntry struct {
	ItemCode string `json:"item_code"`
	ItemName string `json:"item_name"`
	Route    string `json:"route"`
	Image    string `json:"image,omitempty"`
}
