package http

import (
	"errors"
	"net/http"
	"time"

	"mailmeter/internal/analytics"
	"mailmeter/internal/dataset"
)

type datasetItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Records   int       `json:"records"`
	CreatedAt time.Time `json:"createdAt"`
}

// handleCharts returns the three dashboard chart specs for a dataset at the
// requested granularity.
func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id := r.URL.Query().Get("dataset")
	if id == "" {
		writeError(w, http.StatusBadRequest, "dataset query parameter is required")
		return
	}
	period, err := analytics.ParsePeriod(r.URL.Query().Get("period"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := id + "|" + string(period)
	if charts, found := s.chartsCache.Get(key); found {
		s.logger.DebugContext(r.Context(), "Charts cache hit", "dataset", id, "period", period)
		writeJSON(w, http.StatusOK, charts)
		return
	}

	records, err := s.reader.Load(r.Context(), id)
	if err != nil {
		if errors.Is(err, dataset.ErrNotFound) {
			writeError(w, http.StatusNotFound, "dataset not found")
			return
		}
		s.logger.ErrorContext(r.Context(), "Dataset load failed", "dataset", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load dataset")
		return
	}

	charts := analytics.BuildAll(records, period)
	s.chartsCache.Set(key, charts)
	writeJSON(w, http.StatusOK, charts)
}

// handleDatasets lists stored datasets for the dashboard selector.
func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	metas, err := s.lister.List(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dataset list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list datasets")
		return
	}

	items := make([]datasetItem, 0, len(metas))
	for _, m := range metas {
		items = append(items, datasetItem{
			ID:        m.ID,
			Name:      m.Name,
			Records:   m.Records,
			CreatedAt: m.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, items)
}
