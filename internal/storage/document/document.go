// Package document holds the persisted shape of a list document and the
// query semantics shared by stores that cannot push filters down to a
// query engine.
package document

import (
	"encoding/json"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rezkam/listly/internal/domain"
)

// List is the stored document: one per list, items embedded.
// Field names match the API so documents are readable in place.
type List struct {
	ID            string     `json:"id" bson:"-"`
	Titulo        string     `json:"titulo" bson:"titulo"`
	Categoria     string     `json:"categoria" bson:"categoria"`
	FechaObjetivo *time.Time `json:"fechaObjetivo,omitempty" bson:"fechaObjetivo,omitempty"` // midnight UTC
	Descripcion   *string    `json:"descripcion,omitempty" bson:"descripcion,omitempty"`
	CreadaEn      time.Time  `json:"creadaEn" bson:"creadaEn"`
	ActualizadaEn time.Time  `json:"actualizadaEn" bson:"actualizadaEn"`
	Items         []Item     `json:"items" bson:"items"`
}

// Item is an embedded item.
type Item struct {
	ID         string  `json:"id" bson:"id"`
	Texto      string  `json:"texto" bson:"texto"`
	Completado bool    `json:"completado" bson:"completado"`
	Integrante *string `json:"integrante,omitempty" bson:"integrante,omitempty"`
	Estado     string  `json:"estado" bson:"estado"`
	Prioridad  int     `json:"prioridad" bson:"prioridad"`
}

// FromDomain converts a domain list to its document.
func FromDomain(l *domain.List) List {
	doc := List{
		ID:            l.ID,
		Titulo:        l.Title,
		Categoria:     l.Category,
		FechaObjetivo: DateToTime(l.TargetDate),
		Descripcion:   l.Description,
		CreadaEn:      l.CreatedAt,
		ActualizadaEn: l.UpdatedAt,
		Items:         make([]Item, len(l.Items)),
	}
	for i, it := range l.Items {
		doc.Items[i] = Item{
			ID:         it.ID,
			Texto:      it.Text,
			Completado: it.Completed,
			Integrante: it.Assignee,
			Estado:     string(it.Status),
			Prioridad:  it.Priority,
		}
	}
	return doc
}

// ToDomain converts a document back to a domain list.
// Status and priority are re-normalized so documents written by other
// tools still satisfy the domain invariants.
func (d List) ToDomain() *domain.List {
	l := &domain.List{
		ID:          d.ID,
		Title:       d.Titulo,
		Category:    d.Categoria,
		TargetDate:  TimeToDate(d.FechaObjetivo),
		Description: d.Descripcion,
		CreatedAt:   d.CreadaEn.UTC(),
		UpdatedAt:   d.ActualizadaEn.UTC(),
		Items:       make([]domain.Item, len(d.Items)),
	}
	for i, it := range d.Items {
		priority := it.Prioridad
		l.Items[i] = domain.Item{
			ID:        it.ID,
			Text:      it.Texto,
			Completed: it.Completado,
			Assignee:  it.Integrante,
			Status:    domain.ParseItemStatus(it.Estado),
			Priority:  domain.NormalizePriority(&priority),
		}
	}
	return l
}

// DateToTime maps a calendar date to midnight UTC.
func DateToTime(d *civil.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.In(time.UTC)
	return &t
}

// TimeToDate takes the UTC calendar date of t.
func TimeToDate(t *time.Time) *civil.Date {
	if t == nil {
		return nil
	}
	d := civil.DateOf(t.UTC())
	return &d
}

// MarshalItems encodes items as the JSON array stored by row-based backends.
func MarshalItems(items []domain.Item) ([]byte, error) {
	return json.Marshal(FromDomain(&domain.List{Items: items}).Items)
}

// UnmarshalItems decodes a JSON array written by MarshalItems.
func UnmarshalItems(data []byte) ([]domain.Item, error) {
	var items []Item
	if len(data) > 0 {
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, err
		}
	}
	return List{Items: items}.ToDomain().Items, nil
}
