package search

import (
	"encoding/json"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	meili "github.com/meilisearch/meilisearch-go"

	"portaldocs/api/internal/store"
)

const idxDocuments = "portal_documents"

// Meili answers the free-text leg of queries via Meilisearch. Returns ids
// only; the in-memory matcher applies field filters on top.
type Meili struct {
	client  meili.ServiceManager
	healthy atomic.Bool
	done    chan struct{}
}

// meiliRecord is the subset of a document pushed into the index: the id plus
// the four free-text fields.
type meiliRecord struct {
	ID       string `json:"id"`
	Titulo   string `json:"titulo"`
	Assunto  string `json:"assunto"`
	Epigrafe string `json:"epigrafe"`
	Orgao    string `json:"orgao"`
}

// NewMeili creates a Meilisearch client and configures the documents index.
// An unreachable server is tolerated: the health loop keeps probing and the
// caller falls back to in-memory matching until it recovers.
func NewMeili(url, apiKey string) *Meili {
	client := meili.New(url, meili.WithAPIKey(apiKey))

	m := &Meili{
		client: client,
		done:   make(chan struct{}),
	}

	if _, err := client.Health(); err != nil {
		log.Printf("search: meilisearch unavailable at %s: %v", url, err)
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        idxDocuments,
		PrimaryKey: "id",
	}); err != nil {
		log.Printf("search: create index %s (may already exist): %v", idxDocuments, err)
	}

	searchable := []string{"titulo", "assunto", "epigrafe", "orgao"}
	if _, err := m.client.Index(idxDocuments).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("search: update searchable attrs for %s: %v", idxDocuments, err)
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				log.Println("search: meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// SearchText runs a free-text search over the documents index and returns
// the set of matching document ids.
func (m *Meili) SearchText(text string, limit int64) (map[string]struct{}, error) {
	if !m.healthy.Load() {
		return nil, fmt.Errorf("meilisearch unhealthy")
	}
	if limit <= 0 {
		limit = 1000
	}

	resp, err := m.client.Index(idxDocuments).Search(text, &meili.SearchRequest{Limit: limit})
	if err != nil {
		m.healthy.Store(false)
		return nil, fmt.Errorf("meilisearch search: %w", err)
	}

	ids := make(map[string]struct{}, len(resp.Hits))
	for _, hit := range resp.Hits {
		if id := decodeString(hit, "id"); id != "" {
			ids[id] = struct{}{}
		}
	}
	return ids, nil
}

// IndexDocuments replaces the index contents with the given cache
// generation. Old rows are dropped first so documents removed from the sheet
// do not linger.
func (m *Meili) IndexDocuments(docs []store.Document) error {
	if _, err := m.client.Index(idxDocuments).DeleteAllDocuments(nil); err != nil {
		return fmt.Errorf("meilisearch clear index: %w", err)
	}
	records := make([]meiliRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, meiliRecord{
			ID:       doc.ID,
			Titulo:   doc.Titulo,
			Assunto:  doc.Assunto,
			Epigrafe: doc.Epigrafe,
			Orgao:    doc.Orgao,
		})
	}
	if len(records) == 0 {
		return nil
	}
	_, err := m.client.Index(idxDocuments).AddDocuments(records, nil)
	return err
}

func decodeString(hit meili.Hit, key string) string {
	raw, ok := hit[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
