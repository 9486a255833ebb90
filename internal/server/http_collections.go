package server

import (
	"net/http"
	"time"
)

// defaultStaleAfter flags collections that have not changed for a day.
const defaultStaleAfter = 24 * time.Hour

// handleListCollections handles GET /v1/collections.
// Optional ?stale_after= takes a Go duration ("0" disables stale flags).
func (s *GraphServer) handleListCollections(w http.ResponseWriter, r *http.Request) {
	if s.activity == nil {
		writeError(w, http.StatusServiceUnavailable, "collection tracking not enabled")
		return
	}
	staleAfter, err := parseStaleAfter(r.URL.Query().Get("stale_after"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	entries := s.activity.List(staleAfter)
	writeJSON(w, http.StatusOK, map[string]any{
		"collections": entries,
		"total":       len(entries),
	})
}

func parseStaleAfter(v string) (time.Duration, error) {
	if v == "" {
		return defaultStaleAfter, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		return 0, inputError("invalid stale_after " + v + ": must be a non-negative duration")
	}
	return d, nil
}
