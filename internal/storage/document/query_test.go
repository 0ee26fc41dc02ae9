package document

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"

	"github.com/rezkam/listly/internal/domain"
)

func date(y int, m time.Month, d int) *civil.Date {
	return &civil.Date{Year: y, Month: m, Day: d}
}

func TestSelect_Ordering(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	lists := []*domain.List{
		{ID: "late", TargetDate: date(2026, 6, 1), CreatedAt: base},
		{ID: "undated-old", CreatedAt: base},
		{ID: "early-new", TargetDate: date(2026, 3, 1), CreatedAt: base.Add(2 * time.Hour)},
		{ID: "undated-new", CreatedAt: base.Add(time.Hour)},
		{ID: "early-old", TargetDate: date(2026, 3, 1), CreatedAt: base},
	}

	got := Select(lists, All())

	ids := make([]string, len(got))
	for i, l := range got {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"undated-new", "undated-old", "early-new", "early-old", "late"}, ids)
	assert.Equal(t, "late", lists[0].ID, "input must not be reordered")
}

func TestCategoryEquals(t *testing.T) {
	match := CategoryEquals("viaje")

	assert.True(t, match(&domain.List{Category: "Viaje"}))
	assert.True(t, match(&domain.List{Category: "VIAJE"}))
	assert.False(t, match(&domain.List{Category: "Viajes"}))
	assert.False(t, match(&domain.List{Category: "General"}))
}

func TestTitleContains(t *testing.T) {
	match := TitleContains("MERC")

	assert.True(t, match(&domain.List{Title: "Mercado semanal"}))
	assert.True(t, match(&domain.List{Title: "Supermercado"}))
	assert.False(t, match(&domain.List{Title: "Farmacia"}))
}

func TestTitleContains_LiteralMatch(t *testing.T) {
	match := TitleContains(".*")

	assert.False(t, match(&domain.List{Title: "Mercado"}))
	assert.True(t, match(&domain.List{Title: "Lista .* rara"}))
}
