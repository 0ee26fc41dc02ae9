package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/listly/internal/infrastructure/http/response"
)

// ListLists handles GET /lists?categoria=&q=
func (h *ListHandler) ListLists(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	summaries, err := h.service.ListLists(r.Context(), query.Get("categoria"), query.Get("q"))
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list lists via HTTP", "error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapSummariesToDTO(summaries))
}

// CreateList handles POST /lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req ListRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	list, err := h.service.CreateList(r.Context(), req.toParams())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to create list via HTTP",
			"title", req.Titulo,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "list created via HTTP",
		"list_id", list.ID)

	response.Created(w, MapListToDTO(list))
}

// GetList handles GET /lists/{id}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	list, err := h.service.GetList(r.Context(), id)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to get list via HTTP",
			"list_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapListToDTO(list))
}

// UpdateList handles PUT /lists/{id}
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ListRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	list, err := h.service.UpdateList(r.Context(), id, req.toParams())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update list via HTTP",
			"list_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapListToDTO(list))
}

// DeleteList handles DELETE /lists/{id}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteList(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete list via HTTP",
			"list_id", id,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "list deleted via HTTP", "list_id", id)
	response.NoContent(w)
}
