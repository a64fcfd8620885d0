// Package api serves the ledger read-only over HTTP as JSON.
package api

import (
	"net/http"

	"fjacquet/ledger-csv/internal/logging"

	"github.com/go-chi/chi/v5"
)

// NewRouter mounts every endpoint of h.
func NewRouter(h *Handler, logger logging.Logger) *chi.Mux {
	logger = logging.OrDefault(logger)

	r := chi.NewRouter()
	r.Use(Recovery(logger))
	r.Use(RequestID)
	r.Use(Logger(logger))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/months", h.Months)
		r.Get("/ledger", h.Ledger)
		r.Get("/compare", h.Compare)

		r.Route("/months/{month}", func(r chi.Router) {
			r.Get("/summary", h.Summary)
			r.Get("/projection", h.Projection)
			r.Get("/context", h.Context)
			r.Get("/trailing", h.Trailing)
			r.Get("/category-averages", h.CategoryAverages)
		})
	})

	return r
}
