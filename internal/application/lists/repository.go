package lists

import (
	"context"

	"github.com/rezkam/listly/internal/domain"
)

// Repository is the typed accessor over the document store.
// One document per list, items embedded. Implementations hold no business
// rules: filtering and ordering are the only logic they execute.
//
// Every query returns lists ordered by target date ascending (lists without
// a target date first), then by creation time descending.
//
// Driver failures are wrapped with domain.ErrStoreUnavailable.
type Repository interface {
	// FindByID returns the list document with its items.
	// Returns domain.ErrListNotFound if no document exists for id.
	FindByID(ctx context.Context, id string) (*domain.List, error)

	// ExistsByID reports whether a document exists for id.
	ExistsByID(ctx context.Context, id string) (bool, error)

	// DeleteByID removes the document and, with it, every embedded item.
	// Deleting a missing id is not an error.
	DeleteByID(ctx context.Context, id string) error

	// Save inserts the list when list.ID is empty, otherwise replaces the
	// stored document. On insert the store assigns ID and CreatedAt.
	// UpdatedAt is set on every call. Returns the list as persisted.
	Save(ctx context.Context, list *domain.List) (*domain.List, error)

	// FindAll returns every list.
	FindAll(ctx context.Context) ([]*domain.List, error)

	// FindByCategory returns lists whose category equals category, ignoring case.
	FindByCategory(ctx context.Context, category string) ([]*domain.List, error)

	// FindByTitleContaining returns lists whose title contains query, ignoring case.
	FindByTitleContaining(ctx context.Context, query string) ([]*domain.List, error)
}
