package ports

import "context"

// SaveStore persists opaque save blobs under string keys.
// The engine only ever uses one well-known key; listing exists for tooling.
type SaveStore interface {
	// Put writes data under key, replacing any previous blob.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the blob stored under key.
	// Returns domain.ErrSlotNotFound if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns the stored keys.
	List(ctx context.Context) ([]string, error)
}
