package document

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rezkam/listly/internal/domain"
)

// ErrBlobNotFound is returned by Blobs.Get when no blob exists for a key.
var ErrBlobNotFound = errors.New("blob not found")

// Blobs is a flat key/value store of encoded list documents.
// Object stores, key/value stores and directories all fit this shape.
type Blobs interface {
	Get(ctx context.Context, id string) ([]byte, error)
	Put(ctx context.Context, id string, data []byte) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	Keys(ctx context.Context) ([]string, error)
}

// maxConcurrentReads bounds parallel blob reads during a scan.
const maxConcurrentReads = 20

// Collection implements the list repository on top of Blobs.
// Queries load every document and filter in process.
type Collection struct {
	blobs Blobs
	now   func() time.Time
	newID func() (string, error)

	// Serializes writers; readers go straight to the backend.
	mu sync.Mutex
}

// NewCollection creates a collection over blobs.
func NewCollection(blobs Blobs) *Collection {
	return &Collection{blobs: blobs, now: Now, newID: NewID}
}

// FindByID loads one list.
func (c *Collection) FindByID(ctx context.Context, id string) (*domain.List, error) {
	data, err := c.blobs.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return nil, domain.ErrListNotFound
		}
		return nil, unavailable(err)
	}
	return decode(id, data)
}

// ExistsByID reports whether a list exists.
func (c *Collection) ExistsByID(ctx context.Context, id string) (bool, error) {
	ok, err := c.blobs.Exists(ctx, id)
	if err != nil {
		return false, unavailable(err)
	}
	return ok, nil
}

// DeleteByID removes a list. Missing lists are ignored.
func (c *Collection) DeleteByID(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.blobs.Delete(ctx, id); err != nil && !errors.Is(err, ErrBlobNotFound) {
		return unavailable(err)
	}
	return nil
}

// Save inserts or replaces a list.
func (c *Collection) Save(ctx context.Context, list *domain.List) (*domain.List, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	saved := list.Clone()
	if _, err := Stamp(saved, c.now(), c.newID); err != nil {
		return nil, err
	}

	data, err := json.Marshal(FromDomain(saved))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list: %w", err)
	}
	if err := c.blobs.Put(ctx, saved.ID, data); err != nil {
		return nil, unavailable(err)
	}
	return saved, nil
}

// FindAll returns every list.
func (c *Collection) FindAll(ctx context.Context) ([]*domain.List, error) {
	return c.scan(ctx, All())
}

// FindByCategory returns lists in category, ignoring case.
func (c *Collection) FindByCategory(ctx context.Context, category string) ([]*domain.List, error) {
	return c.scan(ctx, CategoryEquals(category))
}

// FindByTitleContaining returns lists whose title contains query, ignoring case.
func (c *Collection) FindByTitleContaining(ctx context.Context, query string) ([]*domain.List, error) {
	return c.scan(ctx, TitleContains(query))
}

// scan loads every document in parallel. A blob deleted between Keys and
// Get is skipped; any other read or decode failure fails the scan.
func (c *Collection) scan(ctx context.Context, match Predicate) ([]*domain.List, error) {
	keys, err := c.blobs.Keys(ctx)
	if err != nil {
		return nil, unavailable(err)
	}

	lists := make([]*domain.List, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentReads)
	for i, key := range keys {
		g.Go(func() error {
			data, err := c.blobs.Get(gctx, key)
			if errors.Is(err, ErrBlobNotFound) {
				return nil
			}
			if err != nil {
				return unavailable(err)
			}
			list, err := decode(key, data)
			if err != nil {
				return err
			}
			lists[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := lists[:0]
	for _, l := range lists {
		if l != nil {
			found = append(found, l)
		}
	}
	return Select(found, match), nil
}

func decode(id string, data []byte) (*domain.List, error) {
	var doc List
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode list %s: %w", domain.ErrStoreUnavailable, id, err)
	}
	doc.ID = id
	return doc.ToDomain(), nil
}

func unavailable(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
