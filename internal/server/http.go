package server

import (
	"encoding/json"
	"net/http"

	"github.com/alfredjeanlab/maintgraph/internal/graph"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *GraphServer) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	mux.HandleFunc("GET /v1/graph", s.handleGetGraph)
	mux.HandleFunc("POST /v1/graph/rebuild", s.handleRebuild)
	mux.HandleFunc("GET /v1/nodes/{id}", s.handleGetNode)
	mux.HandleFunc("GET /v1/nodes/{id}/related", s.handleGetRelated)
	mux.HandleFunc("GET /v1/issues", s.handleListIssues)
	mux.HandleFunc("GET /v1/duplicates", s.handleListDuplicates)
	mux.HandleFunc("GET /v1/suggestions", s.handleListSuggestions)
	mux.HandleFunc("GET /v1/stats", s.handleGetStats)
	mux.HandleFunc("GET /v1/collections", s.handleListCollections)
	mux.HandleFunc("GET /v1/events/stream", s.handleEventStream)

	var h http.Handler = mux
	h = AuthMiddleware(authToken, h)
	h = LoggingMiddleware(s.logger, h)
	h = RecoveryMiddleware(s.logger, h)
	return h
}

// handleHealth handles GET /v1/health.
func (s *GraphServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"built":  s.analyzer.Current() != nil,
	})
}

// snapshot returns the current snapshot, or writes 503 and returns nil when
// no graph has been built yet.
func (s *GraphServer) snapshot(w http.ResponseWriter) *graph.Snapshot {
	snap := s.analyzer.Current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "graph not built yet")
	}
	return snap
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
