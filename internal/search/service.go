package search

import (
	"log"

	"portaldocs/api/internal/store"
)

// Service is the facade over document filtering. Field filters always run
// through the in-memory matcher; the free-text leg goes to Meilisearch when
// it is configured and healthy, and falls back to substring matching
// otherwise.
type Service struct {
	meili *Meili
}

// NewService creates a search service. meili may be nil when Meilisearch is
// not configured; every query then runs fully in memory.
func NewService(meili *Meili) *Service {
	return &Service{meili: meili}
}

// Search filters the given search view by q, preserving row order.
func (s *Service) Search(documents []store.Document, q Query) []store.Document {
	if q.Text == "" || s.meili == nil || !s.meili.Healthy() {
		return Filter(documents, q)
	}

	ids, err := s.meili.SearchText(q.Text, int64(len(documents)))
	if err != nil {
		log.Printf("search: meilisearch error, falling back to in-memory: %v", err)
		return Filter(documents, q)
	}

	fieldOnly := q
	fieldOnly.Text = ""
	matched := []store.Document{}
	for _, doc := range documents {
		if _, hit := ids[doc.ID]; !hit {
			continue
		}
		if Matches(doc, fieldOnly) {
			matched = append(matched, doc)
		}
	}
	return matched
}

// IndexSnapshot pushes a new cache generation to Meilisearch,
// fire-and-forget. A nil or unhealthy client makes this a no-op.
func (s *Service) IndexSnapshot(snapshot *store.Snapshot) {
	if s.meili == nil || !s.meili.Healthy() || snapshot == nil {
		return
	}
	docs := snapshot.Documents
	go func() {
		if err := s.meili.IndexDocuments(docs); err != nil {
			log.Printf("search: index snapshot: %v", err)
		}
	}()
}

// Close releases the Meilisearch health monitor, if any.
func (s *Service) Close() {
	if s.meili != nil {
		s.meili.Close()
	}
}
