package web

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

// writeJSON serializes a response payload with the proper content type.
func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("web: encoding response: %v", err)
	}
}

// writeError serializes an error payload.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "store unreachable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := s.store.ListRuns(r.Context())
	if err != nil {
		log.Printf("web: listing runs: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list runs")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(runs),
		"runs":  runs,
	})
}

func (s *Server) handleRunResults(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]
	results, err := s.store.RunResults(r.Context(), runID)
	if err != nil {
		log.Printf("web: loading results for %s: %v", runID, err)
		writeError(w, http.StatusInternalServerError, "failed to load results")
		return
	}
	if len(results) == 0 {
		writeError(w, http.StatusNotFound, "no results for run "+runID)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"run_id":  runID,
		"count":   len(results),
		"results": results,
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	dataset := mux.Vars(r)["dataset"]
	metrics, err := s.store.Metrics(r.Context(), dataset)
	if err != nil {
		log.Printf("web: loading metrics for %s: %v", dataset, err)
		writeError(w, http.StatusInternalServerError, "failed to load metrics")
		return
	}
	if len(metrics) == 0 {
		writeError(w, http.StatusNotFound, "no metrics for dataset "+dataset)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"dataset": dataset,
		"metrics": metrics,
	})
}
