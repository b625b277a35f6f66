// Package codes manages the per-user collection of titled code snippets,
// persisted as a single cross-user blob in the key-value store.
package codes

import "time"

// Entry is one saved snippet. It is owned by exactly one identity for its
// entire lifetime; UserID never changes after creation.
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
