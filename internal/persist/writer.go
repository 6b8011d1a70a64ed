// Package persist applies state snapshots to a kv.Store in the background.
//
// Components call Save right after mutating their in-memory state. The
// snapshot is encoded immediately, so later mutations never leak into an
// earlier write, and the store write itself happens on the goroutine running
// Run. Pending writes to the same key are coalesced: only the newest snapshot
// is written. Store failures are logged and dropped; memory stays authoritative.
package persist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"github.com/fastprodman/billionspend/internal/repos/kv"
)

const DefaultTimeout = 3 * time.Second

type Writer struct {
	store   kv.Store
	timeout time.Duration

	mu       sync.Mutex
	pending  map[string][]byte
	order    []string
	inFlight int
	idle     chan struct{} // closed while nothing is pending or in flight

	wake chan struct{}
}

// New returns a Writer for store. Each store write gets its own timeout;
// a non-positive timeout means DefaultTimeout.
func New(store kv.Store, timeout time.Duration) *Writer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	idle := make(chan struct{})
	close(idle)

	return &Writer{
		store:   store,
		timeout: timeout,
		pending: make(map[string][]byte),
		idle:    idle,
		wake:    make(chan struct{}, 1),
	}
}

// Save encodes v and schedules it to be written under key. It never blocks
// on the store.
func (w *Writer) Save(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to encode state", "key", key, "error", err)
		return
	}

	w.mu.Lock()

	if w.isIdleLocked() {
		w.idle = make(chan struct{})
	}

	_, queued := w.pending[key]
	if !queued {
		w.order = append(w.order, key)
	}

	w.pending[key] = data

	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

// Run applies scheduled writes until ctx is done. A write already started
// when ctx is canceled still runs to completion under its own timeout.
func (w *Writer) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.wake:
			w.drain(ctx)
		}
	}
}

func (w *Writer) drain(ctx context.Context) {
	for {
		w.mu.Lock()

		if len(w.order) == 0 {
			w.mu.Unlock()
			return
		}

		key := w.order[0]
		w.order = w.order[1:]
		data := w.pending[key]
		delete(w.pending, key)
		w.inFlight++

		w.mu.Unlock()

		w.write(ctx, key, data)

		w.mu.Lock()
		w.inFlight--
		w.markIdleLocked()
		w.mu.Unlock()
	}
}

func (w *Writer) write(ctx context.Context, key string, data []byte) {
	wctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), w.timeout)
	defer cancel()

	err := w.store.Set(wctx, key, data)
	if err != nil {
		slog.Error("failed to save state", "key", key, "error", err)
		return
	}

	slog.Debug("state saved", "key", key, "bytes", len(data))
}

func (w *Writer) isIdleLocked() bool {
	select {
	case <-w.idle:
		return true
	default:
		return false
	}
}

func (w *Writer) markIdleLocked() {
	if len(w.order) == 0 && w.inFlight == 0 && !w.isIdleLocked() {
		close(w.idle)
	}
}

// Flush waits until every scheduled write has been applied (or dropped).
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	idle := w.idle
	w.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("flush writes: %w", ctx.Err())
	}
}

// Discard drops scheduled writes for keys that have not started yet.
func (w *Writer) Discard(keys ...string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, key := range keys {
		_, ok := w.pending[key]
		if !ok {
			continue
		}

		delete(w.pending, key)

		for i, k := range w.order {
			if k == key {
				w.order = append(w.order[:i], w.order[i+1:]...)
				break
			}
		}
	}

	w.markIdleLocked()
}

// Clear drops scheduled writes for keys, waits for in-flight writes and then
// removes keys from the store.
func (w *Writer) Clear(ctx context.Context, keys ...string) error {
	w.Discard(keys...)

	err := w.Flush(ctx)
	if err != nil {
		return err
	}

	err = w.store.Remove(ctx, keys...)
	if err != nil {
		return fmt.Errorf("remove keys: %w", err)
	}

	return nil
}

// Load decodes the value stored under key into dst. It reports false with a
// nil error when the key does not exist.
func (w *Writer) Load(ctx context.Context, key string, dst any) (bool, error) {
	data, err := w.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return false, nil
		}

		return false, fmt.Errorf("get %q: %w", key, err)
	}

	err = json.Unmarshal(data, dst)
	if err != nil {
		return false, fmt.Errorf("decode %q: %w", key, err)
	}

	return true, nil
}
