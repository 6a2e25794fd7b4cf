// Package metadata is the local key/value table the client keeps its
// credentials in. Values are opaque bytes; interpretation belongs to callers.
package metadata

import (
	"context"
)

// Entry is one key/value pair.
type Entry struct {
	Key   string
	Value []byte
}

// Repository is a durable key/value store.
//
// Get returns (nil, nil) for a missing key. Deleting missing keys is not an
// error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, entries ...Entry) error
	Delete(ctx context.Context, keys ...string) error
}
