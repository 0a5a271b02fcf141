// Package history keeps a bounded, most-recent-first log of search queries.
package history

import (
	"slices"
	"strings"
	"sync"
)

// DefaultCapacity is the number of queries kept when no capacity is configured.
const DefaultCapacity = 10

// History is a deduplicated list of recent queries, newest first. It is safe for concurrent use.
type History struct {
	mu       sync.Mutex
	capacity int
	entries  []string
}

// New creates a History that keeps at most capacity entries.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity, entries: make([]string, 0, capacity)}
}

// Add records query as the most recent entry. Blank queries are ignored. A query that is
// already present (exact, case-sensitive match) moves to the front instead of being duplicated.
// The oldest entries are evicted past capacity.
func (h *History) Add(query string) {
	if strings.TrimSpace(query) == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if i := slices.Index(h.entries, query); i >= 0 {
		h.entries = slices.Delete(h.entries, i, i+1)
	}
	h.entries = slices.Insert(h.entries, 0, query)
	if len(h.entries) > h.capacity {
		h.entries = h.entries[:h.capacity]
	}
}

// List returns a copy of the entries, most recent first.
func (h *History) List() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
