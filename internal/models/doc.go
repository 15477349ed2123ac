// Package models defines the core domain models for the storefront client.
//
// # Current Models
//
//   - CartLine: one cart entry, keyed by item code, with a price snapshot
//   - WishlistEntry: a saved item, set semantics by item code
//   - AddressHistoryEntry: a previously used shipping address (autofill)
//   - Address: a server-side address book record
//   - Profile: portal user profile fields used for checkout prefill
//   - OrderResult: outcome of a placed order
//
// # Design Principles
//
// 1. **Plain data**: models carry no behavior; services own the logic
// 2. **JSON stable**: field tags match both the stored layout and the
//    remote surface, so a stored cart round-trips unchanged
// 3. **Snapshot prices**: a CartLine keeps the rate seen at add time;
//    the cart service overwrites it from the server when refreshing
package models
