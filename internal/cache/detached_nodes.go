// Package cache keeps subtrees that were cut out of the live layout tree so
// a later pop-in can put them back where they used to live.
package cache

import (
	"errors"
	"fmt"

	"github.com/bnema/dockpop/internal/domain/entity"
)

// ErrIndexOutOfRange is returned by RemoveAt for an invalid index.
var ErrIndexOutOfRange = errors.New("cache index out of range")

// DetachedEntry records one removed container.
type DetachedEntry struct {
	// Node is the removed container, kept in the tree arena but unreachable
	// from the root.
	Node entity.NodeRef
	// NodeID is the container's config id at removal time.
	NodeID string
	// ChildID is the id of the child that took the container's place.
	ChildID string
	// Element is the visual handle of that child, shared for splicing.
	Element *entity.Element
}

// DetachedNodeCache is an insertion-ordered store of detached entries.
// Not safe for concurrent use; it lives on the main loop with its tree.
type DetachedNodeCache struct {
	entries []DetachedEntry
}

// NewDetachedNodeCache creates an empty cache.
func NewDetachedNodeCache() *DetachedNodeCache {
	return &DetachedNodeCache{}
}

// Add appends an entry.
func (c *DetachedNodeCache) Add(entry DetachedEntry) {
	c.entries = append(c.entries, entry)
}

// Len returns the number of entries.
func (c *DetachedNodeCache) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in insertion order.
func (c *DetachedNodeCache) Entries() []DetachedEntry {
	out := make([]DetachedEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// TakeLatest removes and returns the most recently added entry.
func (c *DetachedNodeCache) TakeLatest() (DetachedEntry, bool) {
	if len(c.entries) == 0 {
		return DetachedEntry{}, false
	}
	last := len(c.entries) - 1
	entry := c.entries[last]
	c.entries[last] = DetachedEntry{}
	c.entries = c.entries[:last]
	return entry, true
}

// RemoveAt removes the entry at index.
func (c *DetachedNodeCache) RemoveAt(index int) error {
	if index < 0 || index >= len(c.entries) {
		return fmt.Errorf("remove %d of %d: %w", index, len(c.entries), ErrIndexOutOfRange)
	}
	c.entries = append(c.entries[:index], c.entries[index+1:]...)
	return nil
}

// FindLatest scans every entry in insertion order and returns the last one
// accepted by match.
func (c *DetachedNodeCache) FindLatest(match func(DetachedEntry) bool) (int, DetachedEntry, bool) {
	found := -1
	for i, entry := range c.entries {
		if match(entry) {
			found = i
		}
	}
	if found < 0 {
		return -1, DetachedEntry{}, false
	}
	return found, c.entries[found], true
}
