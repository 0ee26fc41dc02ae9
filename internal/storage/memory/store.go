// Package memory provides an in-process list repository.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/storage/document"
)

// Store keeps lists in a map. Every read and write clones, so callers never
// share memory with the store.
type Store struct {
	mu    sync.RWMutex
	lists map[string]*domain.List

	now   func() time.Time
	newID func() (string, error)
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		lists: make(map[string]*domain.List),
		now:   document.Now,
		newID: document.NewID,
	}
}

func (s *Store) FindByID(_ context.Context, id string) (*domain.List, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.lists[id]
	if !ok {
		return nil, domain.ErrListNotFound
	}
	return l.Clone(), nil
}

func (s *Store) ExistsByID(_ context.Context, id string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.lists[id]
	return ok, nil
}

func (s *Store) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lists, id)
	return nil
}

func (s *Store) Save(_ context.Context, list *domain.List) (*domain.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := list.Clone()
	if _, err := document.Stamp(saved, s.now(), s.newID); err != nil {
		return nil, err
	}
	s.lists[saved.ID] = saved
	return saved.Clone(), nil
}

func (s *Store) FindAll(_ context.Context) ([]*domain.List, error) {
	return s.selectLists(document.All()), nil
}

func (s *Store) FindByCategory(_ context.Context, category string) ([]*domain.List, error) {
	return s.selectLists(document.CategoryEquals(category)), nil
}

func (s *Store) FindByTitleContaining(_ context.Context, query string) ([]*domain.List, error) {
	return s.selectLists(document.TitleContains(query)), nil
}

func (s *Store) selectLists(match document.Predicate) []*domain.List {
	s.mu.RLock()
	all := make([]*domain.List, 0, len(s.lists))
	for _, l := range s.lists {
		all = append(all, l.Clone())
	}
	s.mu.RUnlock()

	return document.Select(all, match)
}
