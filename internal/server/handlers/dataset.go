// internal/server/handlers/dataset.go

package handlers

import (
	"errors"
	"net/http"

	"trendboard/internal/service/social"
)

// DatasetHandler handles corpus-refresh requests
type DatasetHandler struct {
	refresher *social.Refresher
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(refresher *social.Refresher) *DatasetHandler {
	return &DatasetHandler{
		refresher: refresher,
	}
}

// RefreshDatasets regenerates the three corpus files from the Twitter
// API and invalidates the snapshot. Requires a configured bearer token.
func (h *DatasetHandler) RefreshDatasets(w http.ResponseWriter, r *http.Request) {
	if err := h.refresher.Refresh(r.Context()); err != nil {
		if errors.Is(err, social.ErrNotConfigured) {
			respondWithError(w, http.StatusConflict, "Twitter API not configured", err)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Failed to refresh datasets", err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
