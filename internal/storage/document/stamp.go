package document

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rezkam/listly/internal/domain"
)

// Now returns the store clock: UTC truncated to milliseconds, the coarsest
// precision among the supported backends, so a saved list compares equal to
// its reloaded copy.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// NewID returns a new opaque list ID.
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// Stamp prepares list for Save the way every store does it: an empty ID
// means insert, so it assigns an ID and CreatedAt. UpdatedAt is always set
// and never precedes CreatedAt. Reports whether this is an insert.
func Stamp(list *domain.List, now time.Time, newID func() (string, error)) (bool, error) {
	inserted := list.ID == ""
	if inserted {
		id, err := newID()
		if err != nil {
			return false, err
		}
		list.ID = id
		list.CreatedAt = now
	}
	if list.CreatedAt.IsZero() {
		list.CreatedAt = now
	}

	list.UpdatedAt = now
	if list.UpdatedAt.Before(list.CreatedAt) {
		list.UpdatedAt = list.CreatedAt
	}

	if list.Items == nil {
		list.Items = []domain.Item{}
	}
	return inserted, nil
}
