// Package handler adapts HTTP requests to the list service.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/infrastructure/http/response"
)

// ListHandler serves the list and item endpoints.
type ListHandler struct {
	service *lists.Service
}

// NewListHandler creates a new HTTP API handler.
func NewListHandler(service *lists.Service) *ListHandler {
	return &ListHandler{service: service}
}

// NewRouter returns the API routes, to be mounted under /api.
func NewRouter(service *lists.Service) http.Handler {
	h := NewListHandler(service)

	r := chi.NewRouter()
	r.NotFound(response.RouteNotFound)
	r.MethodNotAllowed(response.MethodNotAllowed)

	r.Route("/lists", func(r chi.Router) {
		r.Get("/", h.ListLists)
		r.Post("/", h.CreateList)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetList)
			r.Put("/", h.UpdateList)
			r.Delete("/", h.DeleteList)

			r.Route("/items", func(r chi.Router) {
				r.Get("/", h.ListItems)
				r.Post("/", h.AddItem)
				r.Patch("/{itemId}", h.UpdateItemCompletion)
				r.Put("/{itemId}", h.UpdateItem)
				r.Delete("/{itemId}", h.DeleteItem)
			})
		})
	})

	return r
}
