package monitor

import "sync"

// History is the bounded, newest-first store of identified events.
//
// Push is the only mutation; eviction of the oldest entries is a side effect
// of pushing past capacity and happens inside the same critical section, so
// readers never observe a length above capacity or a half-evicted state.
type History struct {
	mu      sync.RWMutex
	cap     int
	entries []Entry
}

// NewHistory creates an empty history bounded at capacity (minimum 1).
func NewHistory(capacity int) *History {
	if capacity < 1 {
		capacity = 1
	}
	return &History{
		cap:     capacity,
		entries: make([]Entry, 0, capacity),
	}
}

// Push inserts e at the front. If the history is full, exactly enough tail
// entries are dropped to hold the bound.
func (h *History) Push(e Entry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, Entry{})
	copy(h.entries[1:], h.entries)
	h.entries[0] = e

	if len(h.entries) > h.cap {
		h.entries = h.entries[:h.cap]
	}
}

// Len returns the current number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// Cap returns the capacity bound.
func (h *History) Cap() int {
	return h.cap
}

// Snapshot returns a copy of the entries, newest first. The copy is detached
// from internal state; later pushes do not affect it.
func (h *History) Snapshot() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snap := make([]Entry, len(h.entries))
	copy(snap, h.entries)
	return snap
}
