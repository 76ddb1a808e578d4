// Package httpapi exposes the figure service over JSON HTTP.
//
// Errors are written as a google.rpc.Status in protojson form, carrying an
// ErrorInfo with the domain code and a LocalizedMessage in the locale picked
// from the lang query parameter or the Accept-Language header.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/louisbranch/habbohub/internal/services/figure/service"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handler serves the figure HTTP API.
type Handler struct {
	svc *service.Service
}

// NewRouter returns the HTTP routes for svc.
func NewRouter(svc *service.Service) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.health)

	r.Route("/v1", func(r chi.Router) {
		r.Route("/catalog/families", func(r chi.Router) {
			r.Get("/", h.listFamilies)
			r.Get("/{family}/entries", h.listEntries)
			r.Get("/{family}/palette", h.getPalette)
		})

		r.Route("/figures", func(r chi.Router) {
			r.Post("/decode", h.decode)
			r.Post("/validate", h.validate)
			r.Post("/default", h.defaultFigure)
			r.Post("/random", h.random)
			r.Post("/edit", h.edit)
			r.Post("/image", h.image)
		})

		r.Get("/owners", h.listOwners)
		r.Route("/owners/{ownerID}/figure", func(r chi.Router) {
			r.Get("/", h.getOwnerFigure)
			r.Put("/", h.putOwnerFigure)
			r.Delete("/", h.deleteOwnerFigure)
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, r, notFound("route "+r.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorStatus(w, r, invalidArgument("method "+r.Method+" is not allowed on "+r.URL.Path), http.StatusMethodNotAllowed)
	})
	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
