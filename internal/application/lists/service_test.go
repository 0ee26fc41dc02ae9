package lists_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/ptr"
	"github.com/rezkam/listly/internal/storage/memory"
)

func newService(t *testing.T) (*lists.Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	return lists.NewService(store), store
}

func createList(t *testing.T, svc *lists.Service, params domain.ListParams) *domain.List {
	t.Helper()
	list, err := svc.CreateList(context.Background(), params)
	require.NoError(t, err)
	return list
}

func TestCreateList_NormalizesFields(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name     string
		params   domain.ListParams
		wantCat  string
		wantDesc *string
	}{
		{"absent category defaults", domain.ListParams{Title: "Mercado"}, "General", nil},
		{"blank category defaults", domain.ListParams{Title: "Mercado", Category: ptr.To("   ")}, "General", nil},
		{"category trimmed", domain.ListParams{Title: "Mercado", Category: ptr.To("  Hogar ")}, "Hogar", nil},
		{"blank description absent", domain.ListParams{Title: "Mercado", Description: ptr.To("  ")}, "General", nil},
		{"description trimmed", domain.ListParams{Title: "Mercado", Description: ptr.To(" semanal ")}, "General", ptr.To("semanal")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := createList(t, svc, tt.params)

			assert.NotEmpty(t, list.ID)
			assert.Equal(t, "Mercado", list.Title)
			assert.Equal(t, tt.wantCat, list.Category)
			assert.Equal(t, tt.wantDesc, list.Description)
			assert.Empty(t, list.Items)
			assert.NotNil(t, list.Items)
			assert.False(t, list.UpdatedAt.Before(list.CreatedAt))
		})
	}
}

func TestCreateList_TitleTrimmed(t *testing.T) {
	svc, _ := newService(t)

	list := createList(t, svc, domain.ListParams{Title: "  Viaje  "})

	assert.Equal(t, "Viaje", list.Title)
}

func TestCreateList_ValidationErrors(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		params  domain.ListParams
		wantErr error
	}{
		{"empty title", domain.ListParams{}, domain.ErrTitleRequired},
		{"blank title", domain.ListParams{Title: "   "}, domain.ErrTitleRequired},
		{"title too long", domain.ListParams{Title: strings.Repeat("a", 121)}, domain.ErrTitleTooLong},
		{"category too long", domain.ListParams{Title: "x", Category: ptr.To(strings.Repeat("c", 41))}, domain.ErrCategoryTooLong},
		{"description too long", domain.ListParams{Title: "x", Description: ptr.To(strings.Repeat("d", 501))}, domain.ErrDescriptionTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateList(ctx, tt.params)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}

	all, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "rejected input must not be stored")
}

func TestCreateList_TitleAtLimit(t *testing.T) {
	svc, _ := newService(t)

	list := createList(t, svc, domain.ListParams{Title: strings.Repeat("ñ", 120)})

	assert.Equal(t, 120, len([]rune(list.Title)))
}

func TestGetList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	created := createList(t, svc, domain.ListParams{Title: "Mercado"})

	got, err := svc.GetList(ctx, created.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(created, got); diff != "" {
		t.Errorf("GetList mismatch (-want +got):\n%s", diff)
	}

	_, err = svc.GetList(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrListNotFound)

	_, err = svc.GetList(ctx, "")
	assert.ErrorIs(t, err, domain.ErrListNotFound)
}

func TestListLists_Filters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	mercado := createList(t, svc, domain.ListParams{Title: "Mercado semanal", Category: ptr.To("Hogar")})
	viaje := createList(t, svc, domain.ListParams{Title: "Viaje a la playa", Category: ptr.To("Viaje")})
	farmacia := createList(t, svc, domain.ListParams{Title: "Farmacia", Category: ptr.To("hogar")})

	tests := []struct {
		name     string
		category string
		query    string
		want     []string
	}{
		{"category ignores case", "HOGAR", "", []string{farmacia.ID, mercado.ID}},
		{"query ignores case", "", "PLAYA", []string{viaje.ID}},
		{"query wins over category", "Hogar", "playa", []string{viaje.ID}},
		{"blank query falls back to category", "viaje", "   ", []string{viaje.ID}},
		{"no filters returns all", "", "", []string{farmacia.ID, viaje.ID, mercado.ID}},
		{"unknown category", "nada", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ListLists(ctx, tt.category, tt.query)
			require.NoError(t, err)

			ids := make([]string, len(got))
			for i, s := range got {
				ids[i] = s.ID
			}
			assert.ElementsMatch(t, tt.want, ids)
		})
	}
}

func TestListLists_ReturnsSummaries(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	date := civil.Date{Year: 2026, Month: time.March, Day: 14}
	created := createList(t, svc, domain.ListParams{Title: "Mercado", TargetDate: &date, Description: ptr.To("semanal")})

	got, err := svc.ListLists(ctx, "", "")
	require.NoError(t, err)

	assert.Equal(t, []domain.ListSummary{{
		ID:          created.ID,
		Title:       "Mercado",
		Category:    "General",
		TargetDate:  &date,
		Description: ptr.To("semanal"),
	}}, got)
}

func TestUpdateList_ReplacesFieldsKeepsItems(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	date := civil.Date{Year: 2026, Month: time.April, Day: 1}
	created := createList(t, svc, domain.ListParams{Title: "Mercado", Category: ptr.To("Hogar"), TargetDate: &date, Description: ptr.To("algo")})
	item, err := svc.AddItem(ctx, created.ID, domain.CreateItemParams{Text: "Leche"})
	require.NoError(t, err)

	updated, err := svc.UpdateList(ctx, created.ID, domain.ListParams{Title: " Súper "})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Súper", updated.Title)
	assert.Equal(t, "General", updated.Category, "update is a full replace")
	assert.Nil(t, updated.TargetDate)
	assert.Nil(t, updated.Description)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, item.ID, updated.Items[0].ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestUpdateList_ValidationBeforeLookup(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateList(context.Background(), "missing", domain.ListParams{Title: " "})

	assert.ErrorIs(t, err, domain.ErrTitleRequired)
}

func TestUpdateList_NotFound(t *testing.T) {
	svc, _ := newService(t)

	_, err := svc.UpdateList(context.Background(), "missing", domain.ListParams{Title: "x"})

	assert.ErrorIs(t, err, domain.ErrListNotFound)
}

func TestDeleteList(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	created := createList(t, svc, domain.ListParams{Title: "Temporal"})
	_, err := svc.AddItem(ctx, created.ID, domain.CreateItemParams{Text: "algo"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteList(ctx, created.ID))

	_, err = svc.GetList(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrListNotFound)
	_, err = svc.ListItems(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrListNotFound)

	assert.ErrorIs(t, svc.DeleteList(ctx, created.ID), domain.ErrListNotFound, "second delete reports not found")
}

func TestAddItem_Defaults(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})

	item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "  Leche  ", Assignee: ptr.To("  ")})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Leche", item.Text)
	assert.False(t, item.Completed)
	assert.Nil(t, item.Assignee)
	assert.Equal(t, domain.ItemStatusIdea, item.Status)
	assert.Equal(t, 2, item.Priority)
}

func TestAddItem_NormalizesStatusAndPriority(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})

	tests := []struct {
		status       *string
		priority     *int
		wantStatus   domain.ItemStatus
		wantPriority int
	}{
		{ptr.To("COMPRADO"), ptr.To(1), domain.ItemStatusComprado, 1},
		{ptr.To("porcomprar"), ptr.To(3), domain.ItemStatusPorComprar, 3},
		{ptr.To(" por comprar "), ptr.To(0), domain.ItemStatusPorComprar, 2},
		{ptr.To("desconocido"), ptr.To(4), domain.ItemStatusIdea, 2},
		{nil, ptr.To(-1), domain.ItemStatusIdea, 2},
	}

	for _, tt := range tests {
		item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "x", Status: tt.status, Priority: tt.priority})
		require.NoError(t, err)
		assert.Equal(t, tt.wantStatus, item.Status)
		assert.Equal(t, tt.wantPriority, item.Priority)
	}
}

func TestAddItem_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})

	_, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "  "})
	assert.ErrorIs(t, err, domain.ErrTextRequired)

	_, err = svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: strings.Repeat("t", 201)})
	assert.ErrorIs(t, err, domain.ErrTextTooLong)

	_, err = svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "x", Assignee: ptr.To(strings.Repeat("a", 61))})
	assert.ErrorIs(t, err, domain.ErrAssigneeTooLong)

	_, err = svc.AddItem(ctx, "missing", domain.CreateItemParams{Text: "x"})
	assert.ErrorIs(t, err, domain.ErrListNotFound)

	_, err = svc.AddItem(ctx, "missing", domain.CreateItemParams{Text: ""})
	assert.ErrorIs(t, err, domain.ErrTextRequired, "validation precedes lookup")
}

func TestListItems_InsertionOrder(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})

	empty, err := svc.ListItems(ctx, list.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	var want []string
	for _, text := range []string{"c", "a", "b"} {
		item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: text})
		require.NoError(t, err)
		want = append(want, item.ID)
	}

	items, err := svc.ListItems(ctx, list.ID)
	require.NoError(t, err)
	got := make([]string, len(items))
	for i, it := range items {
		got[i] = it.ID
	}
	assert.Equal(t, want, got)
}

func TestUpdateItemCompletion_OnlyTouchesFlag(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})
	item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "Leche", Assignee: ptr.To("Ana"), Status: ptr.To("comprado"), Priority: ptr.To(3)})
	require.NoError(t, err)

	updated, err := svc.UpdateItemCompletion(ctx, list.ID, item.ID, true)
	require.NoError(t, err)

	want := *item
	want.Completed = true
	assert.Equal(t, want, *updated)

	stored, err := svc.ListItems(ctx, list.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored[0])

	again, err := svc.UpdateItemCompletion(ctx, list.ID, item.ID, true)
	require.NoError(t, err)
	assert.Equal(t, want, *again, "setting the same value is idempotent")
}

func TestUpdateItemCompletion_NotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})

	_, err := svc.UpdateItemCompletion(ctx, list.ID, "missing", true)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	_, err = svc.UpdateItemCompletion(ctx, "missing", "missing", true)
	assert.ErrorIs(t, err, domain.ErrListNotFound)
}

func TestUpdateItem_PartialMerge(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})
	item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "Leche", Assignee: ptr.To("Ana"), Status: ptr.To("por comprar"), Priority: ptr.To(3)})
	require.NoError(t, err)

	tests := []struct {
		name   string
		params domain.UpdateItemParams
		mutate func(*domain.Item)
	}{
		{"empty patch", domain.UpdateItemParams{}, func(*domain.Item) {}},
		{"blank text ignored", domain.UpdateItemParams{Text: ptr.To("   ")}, func(*domain.Item) {}},
		{"text trimmed", domain.UpdateItemParams{Text: ptr.To(" Pan ")}, func(it *domain.Item) { it.Text = "Pan" }},
		{"blank assignee clears", domain.UpdateItemParams{Assignee: ptr.To(" ")}, func(it *domain.Item) { it.Assignee = nil }},
		{"assignee set", domain.UpdateItemParams{Assignee: ptr.To(" Luis ")}, func(it *domain.Item) { it.Assignee = ptr.To("Luis") }},
		{"unknown status becomes idea", domain.UpdateItemParams{Status: ptr.To("xyz")}, func(it *domain.Item) { it.Status = domain.ItemStatusIdea }},
		{"out of range priority becomes 2", domain.UpdateItemParams{Priority: ptr.To(7)}, func(it *domain.Item) { it.Priority = 2 }},
		{"completed set", domain.UpdateItemParams{Completed: ptr.To(true)}, func(it *domain.Item) { it.Completed = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, err := svc.ListItems(ctx, list.ID)
			require.NoError(t, err)
			want := before[0]
			tt.mutate(&want)

			got, err := svc.UpdateItem(ctx, list.ID, item.ID, tt.params)
			require.NoError(t, err)
			assert.Equal(t, want, *got)
		})
	}
}

func TestUpdateItem_Errors(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})
	item, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "Leche"})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, list.ID, item.ID, domain.UpdateItemParams{Text: ptr.To(strings.Repeat("t", 201))})
	assert.ErrorIs(t, err, domain.ErrTextTooLong)

	_, err = svc.UpdateItem(ctx, list.ID, item.ID, domain.UpdateItemParams{Status: ptr.To(strings.Repeat("s", 21))})
	assert.ErrorIs(t, err, domain.ErrStatusTooLong)

	_, err = svc.UpdateItem(ctx, list.ID, "missing", domain.UpdateItemParams{})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestDeleteItem(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	list := createList(t, svc, domain.ListParams{Title: "Mercado"})
	a, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "a"})
	require.NoError(t, err)
	b, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "b"})
	require.NoError(t, err)
	c, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "c"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItem(ctx, list.ID, b.ID))

	items, err := svc.ListItems(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, c.ID, items[1].ID)

	assert.ErrorIs(t, svc.DeleteItem(ctx, list.ID, b.ID), domain.ErrItemNotFound)
	assert.ErrorIs(t, svc.DeleteItem(ctx, "missing", a.ID), domain.ErrListNotFound)
}

func TestScenario_ShoppingTrip(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	list := createList(t, svc, domain.ListParams{Title: "Mercado", Category: ptr.To("Hogar")})
	leche, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "Leche", Status: ptr.To("por comprar")})
	require.NoError(t, err)
	pan, err := svc.AddItem(ctx, list.ID, domain.CreateItemParams{Text: "Pan", Priority: ptr.To(1)})
	require.NoError(t, err)

	_, err = svc.UpdateItemCompletion(ctx, list.ID, leche.ID, true)
	require.NoError(t, err)
	_, err = svc.UpdateItem(ctx, list.ID, pan.ID, domain.UpdateItemParams{Status: ptr.To("Comprado")})
	require.NoError(t, err)

	got, err := svc.GetList(ctx, list.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.True(t, got.Items[0].Completed)
	assert.Equal(t, domain.ItemStatusPorComprar, got.Items[0].Status)
	assert.False(t, got.Items[1].Completed)
	assert.Equal(t, domain.ItemStatusComprado, got.Items[1].Status)
	assert.Equal(t, 1, got.Items[1].Priority)

	found, err := svc.ListLists(ctx, "hogar", "")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, list.ID, found[0].ID)

	require.NoError(t, svc.DeleteList(ctx, list.ID))
	remaining, err := svc.ListLists(ctx, "", "")
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

// failingRepo fails every call with the same error.
type failingRepo struct {
	err error
}

func (f failingRepo) FindByID(context.Context, string) (*domain.List, error) { return nil, f.err }
func (f failingRepo) ExistsByID(context.Context, string) (bool, error)       { return false, f.err }
func (f failingRepo) DeleteByID(context.Context, string) error               { return f.err }
func (f failingRepo) Save(context.Context, *domain.List) (*domain.List, error) {
	return nil, f.err
}
func (f failingRepo) FindAll(context.Context) ([]*domain.List, error) { return nil, f.err }
func (f failingRepo) FindByCategory(context.Context, string) ([]*domain.List, error) {
	return nil, f.err
}
func (f failingRepo) FindByTitleContaining(context.Context, string) ([]*domain.List, error) {
	return nil, f.err
}

func TestService_StoreFailuresKeepSentinel(t *testing.T) {
	storeErr := errors.Join(domain.ErrStoreUnavailable, errors.New("connection reset"))
	svc := lists.NewService(failingRepo{err: storeErr})
	ctx := context.Background()

	calls := map[string]func() error{
		"ListLists": func() error { _, err := svc.ListLists(ctx, "", ""); return err },
		"CreateList": func() error {
			_, err := svc.CreateList(ctx, domain.ListParams{Title: "x"})
			return err
		},
		"GetList":    func() error { _, err := svc.GetList(ctx, "id"); return err },
		"DeleteList": func() error { return svc.DeleteList(ctx, "id") },
		"AddItem": func() error {
			_, err := svc.AddItem(ctx, "id", domain.CreateItemParams{Text: "x"})
			return err
		},
		"DeleteItem": func() error { return svc.DeleteItem(ctx, "id", "item") },
	}

	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			err := call()
			assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
			assert.NotErrorIs(t, err, domain.ErrListNotFound)
		})
	}
}

var _ lists.Repository = failingRepo{}
