package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"portaldocs/api/internal/search"
	"portaldocs/api/internal/store"
)

type HTTPServer struct {
	service    *Service
	corsOrigin string
}

func NewHTTPServer(service *Service, corsOrigin string) *HTTPServer {
	return &HTTPServer{service: service, corsOrigin: corsOrigin}
}

func (s *HTTPServer) Handler() http.Handler {
	return s.withMiddleware(http.HandlerFunc(s.handle))
}

func (s *HTTPServer) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/documents":
		s.handleDocuments(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/sync":
		s.handleSync(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/search":
		s.handleSearch(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/stats":
		s.handleStats(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/status":
		s.handleStatus(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/test":
		s.handleTest(w, r)
	default:
		writeError(w, http.StatusNotFound, "Rota não encontrada", r.URL.Path)
	}
}

// handleDocuments serves the current snapshot as-is. It never fetches
// inline: the scheduler keeps the cache fresh, so reads stay cheap.
func (s *HTTPServer) handleDocuments(w http.ResponseWriter, r *http.Request) {
	snapshot := s.service.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"data":     snapshot.Documents,
		"lastSync": lastSyncValue(snapshot),
		"count":    len(snapshot.Documents),
	})
}

func (s *HTTPServer) handleSync(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.service.SyncNow(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Erro na sincronização", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"message":  "Sincronização realizada com sucesso",
		"count":    len(snapshot.Documents),
		"lastSync": lastSyncValue(snapshot),
	})
}

func (s *HTTPServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := search.Query{
		Setor:  params.Get("setor"),
		Tipo:   params.Get("tipo"),
		Status: params.Get("status"),
		Text:   params.Get("search"),
	}

	results, snapshot := s.service.Search(q)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    results,
		"count":   len(results),
		"total":   len(snapshot.Documents),
		"filters": map[string]string{
			"setor":  q.Setor,
			"tipo":   q.Tipo,
			"status": q.Status,
			"search": q.Text,
		},
		"lastSync": lastSyncValue(snapshot),
	})
}

func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	aggregated, snapshot := s.service.Stats()
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"totalDocuments": len(snapshot.Unique),
			"totalLines":     len(snapshot.Documents),
			"statistics":     aggregated,
			"lastSync":       lastSyncValue(snapshot),
			"summary":        aggregated.Summarize(),
		},
	})
}

func (s *HTTPServer) handleStatus(w http.ResponseWriter, r *http.Request) {
	snapshot := s.service.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"success":        true,
		"status":         "online",
		"lastSync":       lastSyncValue(snapshot),
		"documentsCount": len(snapshot.Unique),
		"totalLines":     len(snapshot.Documents),
		"uptime":         s.service.Uptime().Seconds(),
	})
}

func (s *HTTPServer) handleTest(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"message":   "Backend funcionando!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"port":      s.service.Port(),
	})
}

func (s *HTTPServer) withMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = randomRequestID()
		}
		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		started := time.Now()
		writer := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		setCORSHeaders(writer.Header(), s.corsOrigin)
		writer.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(writer, r)

		log.Printf(`{"request_id":"%s","method":"%s","path":"%s","status":%d,"duration_ms":%d}`,
			requestID,
			r.Method,
			r.URL.Path,
			writer.status,
			time.Since(started).Milliseconds(),
		)
	})
}

type requestIDKey struct{}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func randomRequestID() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}

func setCORSHeaders(header http.Header, corsOrigin string) {
	header.Set("Access-Control-Allow-Origin", corsOrigin)
	header.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
	header.Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
	header.Set("Cache-Control", "no-store")
	header.Set("Content-Type", "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError emits the portal's failure envelope: clients branch on the
// success flag, not the HTTP status.
func writeError(w http.ResponseWriter, status int, label, message string) {
	writeJSON(w, status, map[string]any{
		"success": false,
		"error":   label,
		"message": message,
	})
}

// lastSyncValue renders a snapshot's sync time as RFC3339, or nil when no
// sync has completed yet.
func lastSyncValue(snapshot *store.Snapshot) any {
	if !snapshot.Synced() {
		return nil
	}
	return snapshot.LastSync.UTC().Format(time.RFC3339)
}
