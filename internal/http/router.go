package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the full API surface.
func NewRouter(listHandler *ListHandler, compareHandler *CompareHandler, requestTimeout time.Duration) chi.Router {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/lists", func(r chi.Router) {
			r.Get("/", listHandler.GetAllLists)
			r.Post("/", listHandler.CreateList)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", listHandler.GetList)
				r.Put("/", listHandler.RenameList)
				r.Delete("/", listHandler.DeleteList)
				r.Post("/duplicate", listHandler.DuplicateList)

				r.Post("/products", listHandler.AddProduct)
				r.Put("/products/{productID}", listHandler.UpdateProduct)
				r.Delete("/products/{productID}", listHandler.RemoveProduct)
				r.Post("/products/{productID}/toggle", listHandler.ToggleChecked)

				r.Put("/budget", listHandler.SetBudget)
				r.Put("/supermarket", listHandler.SelectSupermarket)

				r.Get("/sections", compareHandler.GetSections)
				r.Post("/compare", compareHandler.Compare)
			})
		})

		r.Route("/session", func(r chi.Router) {
			r.Get("/current-list", listHandler.GetCurrentList)
			r.Put("/current-list", listHandler.SetCurrentList)
		})
	})

	return r
}
