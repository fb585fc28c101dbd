// Package syncer refreshes the document cache from the upstream spreadsheet:
// once at startup, on a fixed interval, and on demand. All three paths run
// the same routine and concurrent requests share a single fetch.
package syncer

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"portaldocs/api/internal/store"
)

// Fetcher reads the upstream spreadsheet range.
type Fetcher interface {
	Fetch(ctx context.Context) (headers []string, rows [][]string, err error)
}

// Indexer receives each replaced cache generation.
type Indexer interface {
	IndexSnapshot(snapshot *store.Snapshot)
}

// Syncer owns refresh orchestration for a single cache.
type Syncer struct {
	fetcher  Fetcher
	cache    *store.Cache
	indexer  Indexer
	interval time.Duration
	group    singleflight.Group
}

// New creates a syncer. indexer may be nil.
func New(fetcher Fetcher, cache *store.Cache, indexer Indexer, interval time.Duration) *Syncer {
	return &Syncer{
		fetcher:  fetcher,
		cache:    cache,
		indexer:  indexer,
		interval: interval,
	}
}

// Run performs an initial sync and then one per interval until ctx is done.
// Failed scheduled syncs are logged and the schedule keeps going.
func (s *Syncer) Run(ctx context.Context) {
	if _, err := s.Sync(ctx); err != nil {
		log.Printf("syncer: initial sync failed: %v", err)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Sync(ctx); err != nil {
				log.Printf("syncer: scheduled sync failed: %v", err)
			}
		}
	}
}

// Sync fetches the sheet and replaces the cache. Calls arriving while a
// fetch is in flight are coalesced into it; there is never more than one
// upstream fetch running. A failed or empty fetch leaves the cache at its
// last-known-good generation.
func (s *Syncer) Sync(ctx context.Context) (*store.Snapshot, error) {
	result, err, _ := s.group.Do("sync", func() (any, error) {
		return s.syncOnce(ctx)
	})
	if err != nil {
		return s.cache.Current(), err
	}
	return result.(*store.Snapshot), nil
}

func (s *Syncer) syncOnce(ctx context.Context) (*store.Snapshot, error) {
	headers, rows, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, replaced := s.cache.Replace(headers, rows)
	if !replaced {
		log.Printf("syncer: sheet returned no rows, keeping previous cache (%d documents)",
			len(snapshot.Documents))
		return snapshot, nil
	}

	log.Printf("syncer: cache updated: %d rows, %d unique documents",
		len(snapshot.Documents), len(snapshot.Unique))
	if s.indexer != nil {
		s.indexer.IndexSnapshot(snapshot)
	}
	return snapshot, nil
}
