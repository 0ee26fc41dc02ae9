// Package sqlite stores lists in a single SQLite file, items embedded as JSON.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/storage/document"
)

// Store is the SQLite implementation of lists.Repository.
//
// SQLite's lower() only folds ASCII, so lowercase copies of title and
// category are written alongside the originals and queried instead.
type Store struct {
	db    *sql.DB
	now   func() time.Time
	newID func() (string, error)
}

var _ lists.Repository = (*Store)(nil)

// NewStore wraps an open, migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: document.Now, newID: document.NewID}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

const (
	selectLists = `SELECT id, title, category, target_date, description, created_at, updated_at, items FROM lists`
	// NULL sorts before any value in SQLite ascending order.
	orderLists = ` ORDER BY target_date ASC, created_at DESC, id`

	upsertList = `INSERT INTO lists (id, title, title_folded, category, category_folded, target_date, description, created_at, updated_at, items)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    title = excluded.title,
    title_folded = excluded.title_folded,
    category = excluded.category,
    category_folded = excluded.category_folded,
    target_date = excluded.target_date,
    description = excluded.description,
    updated_at = excluded.updated_at,
    items = excluded.items`
)

func (s *Store) FindByID(ctx context.Context, id string) (*domain.List, error) {
	list, err := scanList(s.db.QueryRowContext(ctx, selectLists+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (s *Store) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM lists WHERE id = ?)`, id).Scan(&exists); err != nil {
		return false, unavailable(err)
	}
	return exists, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, id); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *Store) Save(ctx context.Context, list *domain.List) (_ *domain.List, err error) {
	saved := list.Clone()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable(err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if saved.ID != "" {
		var created int64
		err := tx.QueryRowContext(ctx, `SELECT created_at FROM lists WHERE id = ?`, saved.ID).Scan(&created)
		switch {
		case err == nil:
			saved.CreatedAt = time.UnixMilli(created).UTC()
		case !errors.Is(err, sql.ErrNoRows):
			return nil, unavailable(err)
		}
	}

	if _, err := document.Stamp(saved, s.now(), s.newID); err != nil {
		return nil, err
	}

	items, err := document.MarshalItems(saved.Items)
	if err != nil {
		return nil, fmt.Errorf("failed to encode items: %w", err)
	}

	_, err = tx.ExecContext(ctx, upsertList,
		saved.ID,
		saved.Title,
		strings.ToLower(saved.Title),
		saved.Category,
		strings.ToLower(saved.Category),
		formatDate(saved.TargetDate),
		saved.Description,
		saved.CreatedAt.UnixMilli(),
		saved.UpdatedAt.UnixMilli(),
		string(items),
	)
	if err != nil {
		return nil, unavailable(err)
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable(err)
	}
	return saved, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*domain.List, error) {
	return s.query(ctx, selectLists+orderLists)
}

func (s *Store) FindByCategory(ctx context.Context, category string) ([]*domain.List, error) {
	return s.query(ctx, selectLists+` WHERE category_folded = ?`+orderLists, strings.ToLower(category))
}

func (s *Store) FindByTitleContaining(ctx context.Context, query string) ([]*domain.List, error) {
	return s.query(ctx, selectLists+` WHERE instr(title_folded, ?) > 0`+orderLists, strings.ToLower(query))
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]*domain.List, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	result := []*domain.List{}
	for rows.Next() {
		list, err := scanList(rows)
		if err != nil {
			return nil, unavailable(err)
		}
		result = append(result, list)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return result, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanList(row scanner) (*domain.List, error) {
	var (
		list       domain.List
		targetDate sql.NullString
		created    int64
		updated    int64
		items      string
	)
	err := row.Scan(&list.ID, &list.Title, &list.Category, &targetDate, &list.Description, &created, &updated, &items)
	if err != nil {
		return nil, err
	}

	if targetDate.Valid {
		d, err := civil.ParseDate(targetDate.String)
		if err != nil {
			return nil, fmt.Errorf("invalid target date on list %s: %w", list.ID, err)
		}
		list.TargetDate = &d
	}
	list.CreatedAt = time.UnixMilli(created).UTC()
	list.UpdatedAt = time.UnixMilli(updated).UTC()
	list.Items, err = document.UnmarshalItems([]byte(items))
	if err != nil {
		return nil, fmt.Errorf("failed to decode items of list %s: %w", list.ID, err)
	}
	return &list, nil
}

// formatDate stores dates as ISO text so they sort chronologically.
func formatDate(d *civil.Date) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func unavailable(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
