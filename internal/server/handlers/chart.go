// internal/server/handlers/chart.go

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"trendboard/internal/service/charts"
	insightService "trendboard/internal/service/insight"
)

// ChartHandler serves renderable chart descriptors
type ChartHandler struct {
	snapshots *insightService.SnapshotService
}

// NewChartHandler creates a new chart handler
func NewChartHandler(snapshots *insightService.SnapshotService) *ChartHandler {
	return &ChartHandler{
		snapshots: snapshots,
	}
}

// GetChart returns the descriptor for the named dashboard panel
func (h *ChartHandler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	snapshot, err := h.snapshots.Current(r.Context())
	if err != nil {
		respondWithLoadError(w, err)
		return
	}

	switch name {
	case "trend-overlap":
		respondWithJSON(w, http.StatusOK, charts.TrendOverlap(snapshot.Overlap))
	case "engagement-scatter":
		respondWithJSON(w, http.StatusOK, charts.EngagementScatter(snapshot.Engagement))
	case "engagement-rate":
		respondWithJSON(w, http.StatusOK, charts.EngagementRateBar(snapshot.Engagement))
	case "language-map":
		respondWithJSON(w, http.StatusOK, charts.LanguageMap(snapshot.Languages))
	case "language-bar":
		respondWithJSON(w, http.StatusOK, charts.LanguageBar(snapshot.Languages))
	default:
		respondWithError(w, http.StatusNotFound, "Unknown chart", nil)
	}
}
