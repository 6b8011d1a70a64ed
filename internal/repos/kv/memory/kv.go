package kv

import (
	"context"
	"sync"

	"github.com/fastprodman/billionspend/internal/repos/kv"
)

var _ kv.Store = (*kvRepo)(nil)

type kvRepo struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New returns an in-process store. Values are copied on the way in and out.
func New() *kvRepo {
	return &kvRepo{data: make(map[string][]byte)}
}

func (r *kvRepo) Set(ctx context.Context, key string, value []byte) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	v := make([]byte, len(value))
	copy(v, value)

	r.mu.Lock()
	r.data[key] = v
	r.mu.Unlock()

	return nil
}

func (r *kvRepo) Get(ctx context.Context, key string) ([]byte, error) {
	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	v, ok := r.data[key]
	r.mu.RUnlock()

	if !ok {
		return nil, kv.ErrNotFound
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

func (r *kvRepo) Remove(ctx context.Context, keys ...string) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	r.mu.Lock()
	for _, key := range keys {
		delete(r.data, key)
	}
	r.mu.Unlock()

	return nil
}

// Keys lists the stored keys in no particular order.
func (r *kvRepo) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.data))
	for k := range r.data {
		out = append(out, k)
	}

	return out
}
