package repository

import (
	"context"
)

// Storage is a key -> serialized collection store. Get returns types.ErrNotFound
// when the key was never written.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
	// Name of the backing (memory, file, redis, s3)
	Name() string
}
