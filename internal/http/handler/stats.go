package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"dashinbox/internal/stats"
)

// StatsFetcher downloads chart tables.
type StatsFetcher interface {
	Fetch(ctx context.Context, feed stats.Feed) ([]stats.Chart, error)
}

// StatsHandler proxies the chart feeds.
type StatsHandler struct {
	fetcher StatsFetcher
}

// NewStatsHandler builds a StatsHandler.
func NewStatsHandler(f StatsFetcher) *StatsHandler {
	return &StatsHandler{fetcher: f}
}

// Feed handles GET /stats/{feed}.
func (h *StatsHandler) Feed(w http.ResponseWriter, r *http.Request) {
	feed, err := stats.Lookup(chi.URLParam(r, "feed"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, stats.ErrUnknownFeed) {
			status = http.StatusNotFound
		}
		writeError(w, status, err)
		return
	}

	charts, err := h.fetcher.Fetch(r.Context(), feed)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"feed": feed.Name, "charts": charts})
}
