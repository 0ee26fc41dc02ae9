package handler

import (
	"encoding/json"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/ptr"
)

func TestMapListToDTO(t *testing.T) {
	created := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	list := &domain.List{
		ID:         "l1",
		Title:      "Mercado",
		Category:   "Hogar",
		TargetDate: &civil.Date{Year: 2026, Month: time.February, Day: 7},
		CreatedAt:  created,
		UpdatedAt:  created.Add(time.Minute),
		Items: []domain.Item{
			{ID: "i1", Text: "Pan", Assignee: ptr.To("Ana"), Status: domain.ItemStatusComprado, Priority: 1},
		},
	}

	data, err := json.Marshal(MapListToDTO(list))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"id": "l1",
		"titulo": "Mercado",
		"categoria": "Hogar",
		"fechaObjetivo": "2026-02-07",
		"descripcion": null,
		"creadaEn": "2026-02-01T09:00:00Z",
		"actualizadaEn": "2026-02-01T09:01:00Z",
		"items": [
			{"id": "i1", "texto": "Pan", "completado": false, "integrante": "Ana", "estado": "Comprado", "prioridad": 1}
		]
	}`, string(data))
}

func TestMapItemsToDTO_NeverNil(t *testing.T) {
	data, err := json.Marshal(MapItemsToDTO(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	data, err = json.Marshal(MapSummariesToDTO(nil))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestUpdateItemRequest_AbsentVersusPresent(t *testing.T) {
	var req UpdateItemRequest
	require.NoError(t, json.Unmarshal([]byte(`{"integrante":""}`), &req))

	params := req.toParams()
	assert.Nil(t, params.Text)
	require.NotNil(t, params.Assignee)
	assert.Equal(t, "", *params.Assignee)
	assert.Nil(t, params.Completed)
}
