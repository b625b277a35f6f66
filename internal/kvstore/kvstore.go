// Package kvstore provides the persistent key-value medium underneath the
// identity and snippet stores: a handful of named blobs, always read and
// written whole.
//
// Every backend keeps the same contract: Get returns the full value or
// common.ErrNotFound, Set replaces the full value, Delete is idempotent.
// There are no partial writes and no cross-key transactions, so concurrent
// writers of the same key are last-writer-wins. The higher layers assume a
// single interactive session per store.
package kvstore

import "context"

// Store is a minimal key-value blob store.
type Store interface {
	// Get returns the value stored under key, or common.ErrNotFound if the
	// key has never been set (or was deleted).
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

// Closer is implemented by backends holding external resources (database
// pools, network clients). The composition root closes them on shutdown.
type Closer interface {
	Close() error
}
