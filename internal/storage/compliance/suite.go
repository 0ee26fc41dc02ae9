// Package compliance holds the behavioural test suite every list repository
// must pass, whatever the backend.
package compliance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloud.google.com/go/civil"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/ptr"
)

// RunRepositoryComplianceTest runs a standard set of tests against a Repository implementation.
// setup is a function that returns a fresh (clean) Repository instance for the test
// and a cleanup func that releases its resources.
func RunRepositoryComplianceTest(t *testing.T, setup func() (lists.Repository, func())) {
	t.Run("SaveAssignsIdentityAndTimestamps", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		saved, err := repo.Save(ctx, newList("Mercado", "Hogar"))
		require.NoError(t, err)

		assert.NotEmpty(t, saved.ID)
		assert.False(t, saved.CreatedAt.IsZero())
		assert.False(t, saved.UpdatedAt.Before(saved.CreatedAt))
		assert.NotNil(t, saved.Items)
	})

	t.Run("FindByIDReturnsSavedList", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		list := newList("Viaje", "Vacaciones")
		list.TargetDate = &civil.Date{Year: 2026, Month: time.July, Day: 15}
		list.Description = ptr.To("playa")
		list.Items = []domain.Item{
			{ID: "i-1", Text: "Bloqueador", Assignee: ptr.To("Ana"), Status: domain.ItemStatusPorComprar, Priority: 3},
			{ID: "i-2", Text: "Toallas", Completed: true, Status: domain.ItemStatusComprado, Priority: 1},
		}
		saved, err := repo.Save(ctx, list)
		require.NoError(t, err)

		fetched, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)

		assert.Equal(t, saved.ID, fetched.ID)
		assert.Equal(t, "Viaje", fetched.Title)
		assert.Equal(t, "Vacaciones", fetched.Category)
		require.NotNil(t, fetched.TargetDate)
		assert.Equal(t, *list.TargetDate, *fetched.TargetDate)
		assert.Equal(t, ptr.To("playa"), fetched.Description)
		assert.True(t, saved.CreatedAt.Equal(fetched.CreatedAt))
		assert.True(t, saved.UpdatedAt.Equal(fetched.UpdatedAt))
		assert.Equal(t, list.Items, fetched.Items)
	})

	t.Run("FindByIDMissing", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()

		_, err := repo.FindByID(context.Background(), missingID)
		assert.ErrorIs(t, err, domain.ErrListNotFound)
	})

	t.Run("SaveReplacesExisting", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		saved, err := repo.Save(ctx, newList("Original", "General"))
		require.NoError(t, err)

		saved.Title = "Renombrada"
		saved.AppendItem(domain.Item{ID: "i-1", Text: "Arroz", Status: domain.ItemStatusIdea, Priority: 2})
		updated, err := repo.Save(ctx, saved)
		require.NoError(t, err)

		assert.Equal(t, saved.ID, updated.ID)
		assert.True(t, saved.CreatedAt.Equal(updated.CreatedAt))
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

		fetched, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renombrada", fetched.Title)
		require.Len(t, fetched.Items, 1)
		assert.Equal(t, "Arroz", fetched.Items[0].Text)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("ExistsAndDelete", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		saved, err := repo.Save(ctx, newList("Temporal", "General"))
		require.NoError(t, err)

		exists, err := repo.ExistsByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		require.NoError(t, repo.DeleteByID(ctx, saved.ID))

		exists, err = repo.ExistsByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, exists)

		_, err = repo.FindByID(ctx, saved.ID)
		assert.ErrorIs(t, err, domain.ErrListNotFound)

		assert.NoError(t, repo.DeleteByID(ctx, saved.ID), "deleting a missing list is not an error")
	})

	t.Run("FindAllOrdering", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		late := newList("Tarde", "General")
		late.TargetDate = &civil.Date{Year: 2026, Month: time.December, Day: 1}
		early := newList("Temprano", "General")
		early.TargetDate = &civil.Date{Year: 2026, Month: time.March, Day: 1}

		ids := make(map[string]string)
		for _, l := range []*domain.List{late, newList("Sin fecha vieja", "General"), early, newList("Sin fecha nueva", "General")} {
			saved, err := repo.Save(ctx, l)
			require.NoError(t, err)
			ids[saved.Title] = saved.ID
			// Distinct creation times at millisecond precision.
			time.Sleep(5 * time.Millisecond)
		}

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)

		assert.Equal(t, []string{
			ids["Sin fecha nueva"],
			ids["Sin fecha vieja"],
			ids["Temprano"],
			ids["Tarde"],
		}, listIDs(all))
	})

	t.Run("FindByCategoryIgnoresCase", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		viaje, err := repo.Save(ctx, newList("Playa", "Viaje"))
		require.NoError(t, err)
		_, err = repo.Save(ctx, newList("Súper", "Hogar"))
		require.NoError(t, err)
		_, err = repo.Save(ctx, newList("Otro", "Viajes"))
		require.NoError(t, err)

		found, err := repo.FindByCategory(ctx, "VIAJE")
		require.NoError(t, err)
		assert.Equal(t, []string{viaje.ID}, listIDs(found))

		found, err = repo.FindByCategory(ctx, "nada")
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("FindByTitleContainingIgnoresCase", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		weekly, err := repo.Save(ctx, newList("Mercado semanal", "Hogar"))
		require.NoError(t, err)
		_, err = repo.Save(ctx, newList("Farmacia", "Salud"))
		require.NoError(t, err)

		found, err := repo.FindByTitleContaining(ctx, "MERCADO")
		require.NoError(t, err)
		assert.Equal(t, []string{weekly.ID}, listIDs(found))

		found, err = repo.FindByTitleContaining(ctx, "semanal")
		require.NoError(t, err)
		assert.Equal(t, []string{weekly.ID}, listIDs(found))
	})

	t.Run("FindByTitleContainingIsLiteral", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		_, err := repo.Save(ctx, newList("Mercado", "Hogar"))
		require.NoError(t, err)
		odd, err := repo.Save(ctx, newList("Lista 100% (.*)", "Hogar"))
		require.NoError(t, err)

		for _, q := range []string{".*", "100%", "(."} {
			found, err := repo.FindByTitleContaining(ctx, q)
			require.NoError(t, err)
			assert.Equal(t, []string{odd.ID}, listIDs(found), "query %q", q)
		}
	})

	t.Run("SaveDoesNotAliasCaller", func(t *testing.T) {
		repo, teardown := setup()
		defer teardown()
		ctx := context.Background()

		list := newList("Aislada", "General")
		saved, err := repo.Save(ctx, list)
		require.NoError(t, err)

		saved.Title = "Mutada fuera"
		list.Title = "Mutada también"

		fetched, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, "Aislada", fetched.Title)
	})
}

// missingID is shaped like the IDs every backend accepts so that lookups
// reach the store rather than failing ID parsing.
const missingID = "0000000000000000000000aa"

func newList(title, category string) *domain.List {
	return &domain.List{Title: title, Category: category, Items: []domain.Item{}}
}

func listIDs(ls []*domain.List) []string {
	ids := make([]string, len(ls))
	for i, l := range ls {
		ids[i] = l.ID
	}
	return ids
}
