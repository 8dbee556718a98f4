// Package api exposes the report pipeline over HTTP. Sessions carry the
// uploaded dataset between calls so a client can upload once and then
// pull analysis, reports, and notifications from it.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the session endpoints onto a chi router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", h.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Delete("/", h.DeleteSession)
			r.Post("/dataset", h.UploadDataset)
			r.Post("/reset", h.ResetSession)
			r.Get("/analysis", h.GetAnalysis)
			r.Get("/digest", h.GetDigest)
			r.Post("/reports", h.GenerateReports)
			r.Post("/notify", h.Notify)
		})
	})

	return r
}
