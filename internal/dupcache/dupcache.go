// Package dupcache suppresses the repeat transmissions RF senders emit
// for reliability. Entries are keyed by bit length and raw payload, so
// only byte-identical telegrams count as repeats.
package dupcache

import (
	"fmt"
	"time"

	"github.com/Digicrat/gorfxrx/internal/reading"
)

// Entry retains the first-seen decode of a telegram together with the
// time it was last observed. Seen advances on every repeat; the decoded
// content never changes.
type Entry struct {
	Type         string
	Device       string
	Measurements []reading.Measurement
	Seen         time.Time
}

// Cache is exclusively owned by one receiver session; no locking.
type Cache struct {
	window  time.Duration
	entries map[string]*Entry
}

// New returns an empty cache with the given duplicate window.
func New(window time.Duration) *Cache {
	return &Cache{window: window, entries: make(map[string]*Entry)}
}

// Key builds the cache key for a telegram.
func Key(bits int, payload []byte) string {
	return fmt.Sprintf("%d!%s", bits, payload)
}

// Lookup returns the entry for key, or nil.
func (c *Cache) Lookup(key string) *Entry {
	return c.entries[key]
}

// Touch refreshes the entry's timestamp and reports whether the sighting
// falls inside the duplicate window relative to the previous one.
func (c *Cache) Touch(e *Entry, now time.Time) bool {
	dup := now.Sub(e.Seen) < c.window
	e.Seen = now
	return dup
}

// Store inserts a freshly decoded telegram.
func (c *Cache) Store(key string, e *Entry, now time.Time) {
	e.Seen = now
	c.entries[key] = e
}

// Clear drops every entry. The session calls this after an idle gap
// longer than the duplicate window, so stale duplicate state cannot leak
// across long silences and the cache cannot grow without bound.
func (c *Cache) Clear() {
	c.entries = make(map[string]*Entry)
}

// Len reports the number of cached telegrams.
func (c *Cache) Len() int {
	return len(c.entries)
}
