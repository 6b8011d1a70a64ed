package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fastprodman/billionspend/internal/repos/kv"
)

var _ kv.Store = (*kvRepo)(nil)

type kvRepo struct {
	client *redis.Client
	prefix string
}

// New stores every key under prefix, so several games can share one Redis DB.
func New(client *redis.Client, prefix string) *kvRepo {
	return &kvRepo{client: client, prefix: prefix}
}

func (r *kvRepo) key(k string) string {
	return r.prefix + k
}

func (r *kvRepo) Set(ctx context.Context, key string, value []byte) error {
	err := r.client.Set(ctx, r.key(key), value, 0).Err()
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}

	return nil
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, kv.ErrNotFound
		}

		return nil, fmt.Errorf("get %q: %w", key, err)
	}

	return v, nil
}

func (r *kvRepo) Remove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}

	err := r.client.Del(ctx, full...).Err()
	if err != nil {
		return fmt.Errorf("del keys: %w", err)
	}

	return nil
}
