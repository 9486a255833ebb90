package server

import (
	"net/http"

	"github.com/alfredjeanlab/maintgraph/internal/model"
)

// handleGetGraph handles GET /v1/graph.
// Returns every node and edge with the build metadata.
func (s *GraphServer) handleGetGraph(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.Graph())
}

// handleRebuild handles POST /v1/graph/rebuild.
func (s *GraphServer) handleRebuild(w http.ResponseWriter, r *http.Request) {
	snap := s.analyzer.Rebuild(r.Context())
	writeJSON(w, http.StatusOK, snap.Metadata())
}

// handleGetNode handles GET /v1/nodes/{id}.
func (s *GraphServer) handleGetNode(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	n := snap.Node(r.PathValue("id"))
	if n == nil {
		writeError(w, http.StatusNotFound, "node not found")
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// handleGetRelated handles GET /v1/nodes/{id}/related.
// Unknown ids yield empty result lists rather than 404.
func (s *GraphServer) handleGetRelated(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.FindRelated(r.PathValue("id")))
}

// handleListIssues handles GET /v1/issues with an optional ?severity= filter.
func (s *GraphServer) handleListIssues(w http.ResponseWriter, r *http.Request) {
	severity, err := parseSeverity(r.URL.Query().Get("severity"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	snap := s.snapshot(w)
	if snap == nil {
		return
	}

	issues := snap.DetectInconsistencies()
	if severity != "" {
		filtered := make([]model.Issue, 0, len(issues))
		for _, is := range issues {
			if is.Severity == severity {
				filtered = append(filtered, is)
			}
		}
		issues = filtered
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"issues": issues,
		"total":  len(issues),
	})
}

func parseSeverity(v string) (model.Severity, error) {
	if v == "" {
		return "", nil
	}
	sev := model.Severity(v)
	if !sev.IsValid() {
		return "", inputError("invalid severity " + v + ": must be high, medium, or low")
	}
	return sev, nil
}

// handleListDuplicates handles GET /v1/duplicates.
func (s *GraphServer) handleListDuplicates(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.FindPotentialDuplicates())
}

// handleListSuggestions handles GET /v1/suggestions.
func (s *GraphServer) handleListSuggestions(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.SuggestLinks())
}

// handleGetStats handles GET /v1/stats.
func (s *GraphServer) handleGetStats(w http.ResponseWriter, _ *http.Request) {
	snap := s.snapshot(w)
	if snap == nil {
		return
	}
	writeJSON(w, http.StatusOK, snap.Stats())
}
