package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/infrastructure/http/response"
)

// ListItems handles GET /lists/{id}/items
func (h *ListHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")

	items, err := h.service.ListItems(r.Context(), listID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to list items via HTTP",
			"list_id", listID,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapItemsToDTO(items))
}

// AddItem handles POST /lists/{id}/items
func (h *ListHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "id")

	var req CreateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.AddItem(r.Context(), listID, req.toParams())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to add item via HTTP",
			"list_id", listID,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "item added via HTTP",
		"list_id", listID,
		"item_id", item.ID)

	response.Created(w, MapItemToDTO(*item))
}

// UpdateItemCompletion handles PATCH /lists/{id}/items/{itemId}
func (h *ListHandler) UpdateItemCompletion(w http.ResponseWriter, r *http.Request) {
	listID, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")

	var req CompletionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Completado == nil {
		response.FromDomainError(w, r, domain.ErrCompletionRequired)
		return
	}

	item, err := h.service.UpdateItemCompletion(r.Context(), listID, itemID, *req.Completado)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update item completion via HTTP",
			"list_id", listID,
			"item_id", itemID,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapItemToDTO(*item))
}

// UpdateItem handles PUT /lists/{id}/items/{itemId}
func (h *ListHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	listID, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")

	var req UpdateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateItem(r.Context(), listID, itemID, req.toParams())
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to update item via HTTP",
			"list_id", listID,
			"item_id", itemID,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.OK(w, MapItemToDTO(*item))
}

// DeleteItem handles DELETE /lists/{id}/items/{itemId}
func (h *ListHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	listID, itemID := chi.URLParam(r, "id"), chi.URLParam(r, "itemId")

	if err := h.service.DeleteItem(r.Context(), listID, itemID); err != nil {
		slog.ErrorContext(r.Context(), "failed to delete item via HTTP",
			"list_id", listID,
			"item_id", itemID,
			"error", err)
		response.FromDomainError(w, r, err)
		return
	}

	response.NoContent(w)
}
