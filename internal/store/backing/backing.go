// Package backing provides the durable blob store behind the trip store.
// Exactly one key is ever written: it holds the full engine image exported
// after each committed mutation.
package backing

import "context"

// Store is a key-value store for opaque byte blobs.
type Store interface {
	// Get returns the blob stored under key, or found=false when the key
	// has never been written.
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	// Put overwrites the blob stored under key.
	Put(ctx context.Context, key string, data []byte) error
}
