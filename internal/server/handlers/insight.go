// internal/server/handlers/insight.go

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"trendboard/internal/domain/dataset"
	insightService "trendboard/internal/service/insight"
)

// InsightHandler handles data-product HTTP requests
type InsightHandler struct {
	snapshots  *insightService.SnapshotService
	tableLimit int
}

// NewInsightHandler creates a new insight handler
func NewInsightHandler(snapshots *insightService.SnapshotService, tableLimit int) *InsightHandler {
	return &InsightHandler{
		snapshots:  snapshots,
		tableLimit: tableLimit,
	}
}

// GetSnapshot returns metadata about the current snapshot
func (h *InsightHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshots.Current(r.Context())
	if err != nil {
		respondWithLoadError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot.Meta())
}

// GetTrendOverlap returns the world/region/common trend sets
func (h *InsightHandler) GetTrendOverlap(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshots.Current(r.Context())
	if err != nil {
		respondWithLoadError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot.Overlap)
}

// GetEngagement returns the aggregated engagement table. The optional
// limit query parameter truncates to the top-N rows by followers; the
// configured table limit applies by default, limit=0 returns all rows.
func (h *InsightHandler) GetEngagement(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshots.Current(r.Context())
	if err != nil {
		respondWithLoadError(w, err)
		return
	}

	limit := h.tableLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 0 {
			respondWithError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = parsed
	}

	rows := snapshot.Engagement
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}

	respondWithJSON(w, http.StatusOK, rows)
}

// GetLanguages returns the language-frequency table
func (h *InsightHandler) GetLanguages(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.snapshots.Current(r.Context())
	if err != nil {
		respondWithLoadError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot.Languages)
}

// RefreshSnapshot explicitly invalidates the memoized snapshot and
// rebuilds it from the files on disk
func (h *InsightHandler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	h.snapshots.Invalidate()

	snapshot, err := h.snapshots.Current(r.Context())
	if err != nil {
		respondWithLoadError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, snapshot.Meta())
}

// respondWithLoadError maps corpus load failures onto the single
// user-facing failure surface: one 503 error body, no partial data
func respondWithLoadError(w http.ResponseWriter, err error) {
	if errors.Is(err, dataset.ErrDataUnavailable) || errors.Is(err, dataset.ErrMalformedTrendDocument) {
		respondWithError(w, http.StatusServiceUnavailable, "Dashboard data unavailable", err)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "Failed to build snapshot", err)
}

// Helper for JSON responses
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// Helper for error responses
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["detail"] = err.Error()
	}

	jsonResponse, _ := json.Marshal(response)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(jsonResponse)
}
