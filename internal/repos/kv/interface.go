package kv

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("key not found")

// Store is the key-value capability the game components persist through.
// Values are opaque JSON documents.
type Store interface {
	Set(ctx context.Context, key string, value []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Remove(ctx context.Context, keys ...string) error
}
