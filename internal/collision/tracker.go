package collision

import (
	"fmt"
	"slices"

	"github.com/arloliu/featx/errs"
	"github.com/arloliu/featx/internal/hash"
)

// Tracker keeps an ordered set of column names indexed by their 64-bit hash.
//
// Lookups go through the hash map. When two different names hash to the same
// value the collision flag is set and lookups fall back to a linear scan of the
// ordered name list, which stays correct for any input.
type Tracker struct {
	byHash       map[uint64]int // hash → position of the first name with that hash
	names        []string       // names in insertion order
	hasCollision bool
}

// NewTracker creates a tracker sized for capacity names.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		byHash: make(map[uint64]int, capacity),
		names:  make([]string, 0, capacity),
	}
}

// Track adds name at the next position.
// Returns ErrInvalidColumnName for an empty name and ErrDuplicateColumn when
// the name is already tracked.
func (t *Tracker) Track(name string) error {
	if name == "" {
		return errs.ErrInvalidColumnName
	}

	id := hash.ColumnID(name)
	if pos, exists := t.byHash[id]; exists {
		if t.names[pos] == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
		}
		t.hasCollision = true
	}
	if t.hasCollision && slices.Contains(t.names, name) {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateColumn, name)
	}

	if _, exists := t.byHash[id]; !exists {
		t.byHash[id] = len(t.names)
	}
	t.names = append(t.names, name)

	return nil
}

// Lookup returns the position of name.
func (t *Tracker) Lookup(name string) (int, bool) {
	if t.hasCollision {
		pos := slices.Index(t.names, name)
		return pos, pos >= 0
	}

	pos, ok := t.byHash[hash.ColumnID(name)]
	if !ok || t.names[pos] != name {
		return -1, false
	}

	return pos, true
}

// Contains reports whether name is tracked.
func (t *Tracker) Contains(name string) bool {
	_, ok := t.Lookup(name)
	return ok
}

// HasCollision reports whether two tracked names share a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order. The slice must not be modified.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Clone returns an independent copy of the tracker.
func (t *Tracker) Clone() *Tracker {
	c := &Tracker{
		byHash:       make(map[uint64]int, len(t.byHash)),
		names:        slices.Clone(t.names),
		hasCollision: t.hasCollision,
	}
	for k, v := range t.byHash {
		c.byHash[k] = v
	}

	return c
}
