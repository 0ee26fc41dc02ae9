package handler

import (
	"time"

	"cloud.google.com/go/civil"
)

// ListRequest is the body of POST /lists and PUT /lists/{id}.
type ListRequest struct {
	Titulo        string      `json:"titulo"`
	Categoria     *string     `json:"categoria"`
	FechaObjetivo *civil.Date `json:"fechaObjetivo"` // YYYY-MM-DD
	Descripcion   *string     `json:"descripcion"`
}

// CreateItemRequest is the body of POST /lists/{id}/items.
type CreateItemRequest struct {
	Texto      string  `json:"texto"`
	Integrante *string `json:"integrante"`
	Estado     *string `json:"estado"`
	Prioridad  *int    `json:"prioridad"`
}

// CompletionRequest is the body of PATCH /lists/{id}/items/{itemId}.
type CompletionRequest struct {
	Completado *bool `json:"completado"`
}

// UpdateItemRequest is the body of PUT /lists/{id}/items/{itemId}.
// Absent or null fields are left unchanged.
type UpdateItemRequest struct {
	Texto      *string `json:"texto"`
	Integrante *string `json:"integrante"`
	Estado     *string `json:"estado"`
	Prioridad  *int    `json:"prioridad"`
	Completado *bool   `json:"completado"`
}

// ListSummaryResponse is a list without timestamps or items.
type ListSummaryResponse struct {
	ID            string      `json:"id"`
	Titulo        string      `json:"titulo"`
	Categoria     string      `json:"categoria"`
	FechaObjetivo *civil.Date `json:"fechaObjetivo"`
	Descripcion   *string     `json:"descripcion"`
}

// ListResponse is a full list with its items.
type ListResponse struct {
	ListSummaryResponse
	CreadaEn      time.Time      `json:"creadaEn"`
	ActualizadaEn time.Time      `json:"actualizadaEn"`
	Items         []ItemResponse `json:"items"`
}

// ItemResponse is one item.
type ItemResponse struct {
	ID         string  `json:"id"`
	Texto      string  `json:"texto"`
	Completado bool    `json:"completado"`
	Integrante *string `json:"integrante"`
	Estado     string  `json:"estado"`
	Prioridad  int     `json:"prioridad"`
}
