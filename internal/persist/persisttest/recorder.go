// Package persisttest provides an in-memory stand-in for persist.Writer that
// records every Save synchronously.
package persisttest

import (
	"context"
	"errors"
	"sync"

	json "github.com/goccy/go-json"
)

type Recorder struct {
	mu       sync.Mutex
	data     map[string][]byte
	saves    map[string]int
	LoadErr  error
	ClearErr error
}

func New() *Recorder {
	return &Recorder{
		data:  make(map[string][]byte),
		saves: make(map[string]int),
	}
}

func (r *Recorder) Save(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}

	r.mu.Lock()
	r.data[key] = b
	r.saves[key]++
	r.mu.Unlock()
}

func (r *Recorder) Load(_ context.Context, key string, dst any) (bool, error) {
	if r.LoadErr != nil {
		return false, r.LoadErr
	}

	r.mu.Lock()
	b, ok := r.data[key]
	r.mu.Unlock()

	if !ok {
		return false, nil
	}

	err := json.Unmarshal(b, dst)
	if err != nil {
		return false, errors.Join(errors.New("decode"), err)
	}

	return true, nil
}

// Clear drops keys. With ClearErr set nothing is dropped.
func (r *Recorder) Clear(_ context.Context, keys ...string) error {
	if r.ClearErr != nil {
		return r.ClearErr
	}

	r.mu.Lock()
	for _, k := range keys {
		delete(r.data, k)
	}
	r.mu.Unlock()

	return nil
}

// Has reports whether anything is stored under key.
func (r *Recorder) Has(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.data[key]

	return ok
}

// Put stores raw JSON under key without counting it as a save.
func (r *Recorder) Put(key, raw string) {
	r.mu.Lock()
	r.data[key] = []byte(raw)
	r.mu.Unlock()
}

// Raw returns the last JSON written under key.
func (r *Recorder) Raw(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return string(r.data[key])
}

// Saves is the number of Save calls made for key.
func (r *Recorder) Saves(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.saves[key]
}
