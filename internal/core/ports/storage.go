package ports

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by DurableStorage.Get for an absent key.
var ErrKeyNotFound = errors.New("storage key not found")

// VersionedValue is a stored blob with its version token. Versions start at 1
// and grow by one on every write; 0 means "absent".
type VersionedValue struct {
	Data    []byte
	Version int64
}

// DurableStorage is the string-keyed store that outlives the process. It
// offers an atomic compare-and-set so that several writers sharing one
// backend cannot lose updates.
type DurableStorage interface {
	Get(ctx context.Context, key string) (VersionedValue, error)
	// CompareAndSet writes data only when the stored version equals expected
	// (0 = key must not exist) and returns the new version. A mismatch yields
	// domain.ErrVersionConflict.
	CompareAndSet(ctx context.Context, key string, data []byte, expected int64) (int64, error)
	// Set writes data unconditionally.
	Set(ctx context.Context, key string, data []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
