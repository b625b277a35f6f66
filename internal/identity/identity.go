// Package identity manages the registry of user handles and the single
// signed-in identity, persisted in the key-value store.
package identity

import "time"

// Identity is a registered user handle. The ID is an opaque, case-sensitive
// string chosen at registration; there is no credential attached to it.
type Identity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
}
