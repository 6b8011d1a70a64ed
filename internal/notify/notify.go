// Package notify is the change-notification helper embedded by the game
// components. Listeners take no arguments and re-read state through the
// component's accessors.
package notify

import "sync"

type listener struct {
	id uint64
	fn func()
}

// Broadcaster keeps an ordered list of listeners. The zero value is ready to use.
type Broadcaster struct {
	mu        sync.Mutex
	nextID    uint64
	listeners []listener
}

// Subscribe registers fn and returns a function that removes it again.
// The returned function is safe to call more than once.
func (b *Broadcaster) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, listener{id: id, fn: fn})

	var once sync.Once

	return func() {
		once.Do(func() { b.remove(id) })
	}
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, l := range b.listeners {
		if l.id == id {
			b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)

			return
		}
	}
}

// Notify calls every listener registered at the time of the call, in
// subscription order. Subscribing or unsubscribing from inside a listener
// takes effect on the next pass.
func (b *Broadcaster) Notify() {
	b.mu.Lock()
	snapshot := make([]listener, len(b.listeners))
	copy(snapshot, b.listeners)
	b.mu.Unlock()

	for _, l := range snapshot {
		l.fn()
	}
}

// Dispose drops every listener.
func (b *Broadcaster) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = nil
}
