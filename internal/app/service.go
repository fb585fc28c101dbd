package app

import (
	"context"
	"time"

	"portaldocs/api/internal/config"
	"portaldocs/api/internal/search"
	"portaldocs/api/internal/stats"
	"portaldocs/api/internal/store"
)

// cacheSyncer triggers an on-demand refresh of the document cache.
type cacheSyncer interface {
	Sync(ctx context.Context) (*store.Snapshot, error)
}

// documentSearcher filters a search view by the supplied criteria.
type documentSearcher interface {
	Search(documents []store.Document, q search.Query) []store.Document
}

// Service is the portal's business layer: it reads snapshots from the cache,
// delegates filtering to the search facade, and forwards on-demand sync
// requests to the syncer. It never mutates the cache itself.
type Service struct {
	cfg       config.Config
	cache     *store.Cache
	syncer    cacheSyncer
	searcher  documentSearcher
	startedAt time.Time
}

func New(cfg config.Config, cache *store.Cache, syncer cacheSyncer, searcher documentSearcher) *Service {
	return &Service{
		cfg:       cfg,
		cache:     cache,
		syncer:    syncer,
		searcher:  searcher,
		startedAt: time.Now(),
	}
}

// Snapshot returns the current cache generation. Reads never trigger a
// fetch; freshness is the scheduler's job.
func (s *Service) Snapshot() *store.Snapshot {
	return s.cache.Current()
}

// SyncNow forces a refresh, sharing any fetch already in flight.
func (s *Service) SyncNow(ctx context.Context) (*store.Snapshot, error) {
	return s.syncer.Sync(ctx)
}

// Search filters the current search view. Zero criteria return the whole
// view in row order.
func (s *Service) Search(q search.Query) ([]store.Document, *store.Snapshot) {
	snapshot := s.cache.Current()
	return s.searcher.Search(snapshot.Documents, q), snapshot
}

// Stats aggregates the unique-document view of the current snapshot.
func (s *Service) Stats() (stats.Stats, *store.Snapshot) {
	snapshot := s.cache.Current()
	return stats.Aggregate(snapshot.Unique), snapshot
}

// Uptime reports how long the service has been running.
func (s *Service) Uptime() time.Duration {
	return time.Since(s.startedAt)
}

// Port exposes the configured listening port for the test endpoint.
func (s *Service) Port() int {
	return s.cfg.Port()
}
