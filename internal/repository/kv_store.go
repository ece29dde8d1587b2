package repository

import "context"

// KVStore is the page-scoped key-value store workouts are kept in. Values are
// opaque bytes; Get returns ErrNotFound for missing keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
