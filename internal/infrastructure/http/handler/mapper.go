package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/infrastructure/http/response"
)

// DTO → domain mappers

func (req ListRequest) toParams() domain.ListParams {
	return domain.ListParams{
		Title:       req.Titulo,
		Category:    req.Categoria,
		TargetDate:  req.FechaObjetivo,
		Description: req.Descripcion,
	}
}

func (req CreateItemRequest) toParams() domain.CreateItemParams {
	return domain.CreateItemParams{
		Text:     req.Texto,
		Assignee: req.Integrante,
		Status:   req.Estado,
		Priority: req.Prioridad,
	}
}

func (req UpdateItemRequest) toParams() domain.UpdateItemParams {
	return domain.UpdateItemParams{
		Text:      req.Texto,
		Assignee:  req.Integrante,
		Status:    req.Estado,
		Priority:  req.Prioridad,
		Completed: req.Completado,
	}
}

// Domain → DTO mappers

// MapSummaryToDTO converts a list summary.
func MapSummaryToDTO(s domain.ListSummary) ListSummaryResponse {
	return ListSummaryResponse{
		ID:            s.ID,
		Titulo:        s.Title,
		Categoria:     s.Category,
		FechaObjetivo: s.TargetDate,
		Descripcion:   s.Description,
	}
}

// MapSummariesToDTO converts summaries; the result is never nil.
func MapSummariesToDTO(summaries []domain.ListSummary) []ListSummaryResponse {
	out := make([]ListSummaryResponse, len(summaries))
	for i, s := range summaries {
		out[i] = MapSummaryToDTO(s)
	}
	return out
}

// MapListToDTO converts a full list including items.
func MapListToDTO(list *domain.List) ListResponse {
	return ListResponse{
		ListSummaryResponse: MapSummaryToDTO(list.Summary()),
		CreadaEn:            list.CreatedAt,
		ActualizadaEn:       list.UpdatedAt,
		Items:               MapItemsToDTO(list.Items),
	}
}

// MapItemToDTO converts one item.
func MapItemToDTO(item domain.Item) ItemResponse {
	return ItemResponse{
		ID:         item.ID,
		Texto:      item.Text,
		Completado: item.Completed,
		Integrante: item.Assignee,
		Estado:     string(item.Status),
		Prioridad:  item.Priority,
	}
}

// MapItemsToDTO converts items; the result is never nil.
func MapItemsToDTO(items []domain.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i, it := range items {
		out[i] = MapItemToDTO(it)
	}
	return out
}

// decodeJSON reads the request body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	switch {
	case err == nil:
		return true
	case errors.Is(err, io.EOF):
		response.ValidationError(w, "request body is required")
	default:
		response.ValidationError(w, "malformed JSON request: "+err.Error())
	}
	return false
}
