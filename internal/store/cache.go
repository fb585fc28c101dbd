package store

import (
	"sync/atomic"
	"time"
)

// Snapshot is one immutable generation of the mirrored spreadsheet.
// Documents is the row-level search view (one entry per data row, original
// order); Unique is the statistics view, deduplicated by id with the first
// occurrence winning. Both always come from the same sync.
type Snapshot struct {
	Documents []Document
	Unique    []Document
	LastSync  time.Time
}

// Synced reports whether this snapshot came from a completed sync.
func (s *Snapshot) Synced() bool {
	return !s.LastSync.IsZero()
}

// Cache holds the current snapshot behind a single atomic pointer. Readers
// get a fully-formed generation and never a torn pair of views; writers
// publish a whole new snapshot in one swap.
type Cache struct {
	current atomic.Pointer[Snapshot]
}

// NewCache returns a cache holding an empty, never-synced snapshot.
func NewCache() *Cache {
	c := &Cache{}
	c.current.Store(&Snapshot{
		Documents: []Document{},
		Unique:    []Document{},
	})
	return c
}

// Current returns the live snapshot. Never nil.
func (c *Cache) Current() *Snapshot {
	return c.current.Load()
}

// Replace normalizes the fetched rows and publishes them as a new snapshot.
// An empty fetch is a no-op that keeps the previous generation, including its
// LastSync: a stale cache beats an empty one.
func (c *Cache) Replace(headers []string, rows [][]string) (*Snapshot, bool) {
	if len(rows) == 0 {
		return c.current.Load(), false
	}
	documents := NormalizeRows(headers, rows)
	next := &Snapshot{
		Documents: documents,
		Unique:    dedupeByID(documents),
		LastSync:  time.Now(),
	}
	c.current.Store(next)
	return next, true
}

func dedupeByID(documents []Document) []Document {
	seen := make(map[string]struct{}, len(documents))
	unique := make([]Document, 0, len(documents))
	for _, doc := range documents {
		if _, dup := seen[doc.ID]; dup {
			continue
		}
		seen[doc.ID] = struct{}{}
		unique = append(unique, doc)
	}
	return unique
}
