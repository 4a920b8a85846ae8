package store

import "context"

// Store is the only I/O boundary of the system: get/put/delete over
// named keys inside one local namespace. Values are opaque serialized
// documents; every write replaces the whole value for its key.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
