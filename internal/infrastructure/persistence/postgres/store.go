// Package postgres stores lists as rows in PostgreSQL, items embedded as JSONB.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rezkam/listly/internal/application/lists"
	"github.com/rezkam/listly/internal/domain"
	"github.com/rezkam/listly/internal/storage/document"
)

// Store provides the PostgreSQL implementation of lists.Repository.
type Store struct {
	pool  *pgxpool.Pool
	now   func() time.Time
	newID func() (string, error)
}

var _ lists.Repository = (*Store)(nil)

// NewStore creates a new PostgreSQL store with the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:  pool,
		now:   document.Now,
		newID: document.NewID,
	}
}

// Pool returns the underlying connection pool.
func (s *Store) Pool() *pgxpool.Pool {
	return s.pool
}

// Close closes the database connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

const (
	selectLists = `SELECT id, title, category, target_date, description, created_at, updated_at, items FROM lists`
	orderLists  = ` ORDER BY target_date ASC NULLS FIRST, created_at DESC, id`

	upsertList = `INSERT INTO lists (id, title, category, target_date, description, created_at, updated_at, items)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
    title = EXCLUDED.title,
    category = EXCLUDED.category,
    target_date = EXCLUDED.target_date,
    description = EXCLUDED.description,
    updated_at = EXCLUDED.updated_at,
    items = EXCLUDED.items`
)

func (s *Store) FindByID(ctx context.Context, id string) (*domain.List, error) {
	row := s.pool.QueryRow(ctx, selectLists+` WHERE id = $1`, id)
	list, err := scanList(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrListNotFound
	}
	if err != nil {
		return nil, unavailable(err)
	}
	return list, nil
}

func (s *Store) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM lists WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, unavailable(err)
	}
	return exists, nil
}

func (s *Store) DeleteByID(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM lists WHERE id = $1`, id); err != nil {
		return unavailable(err)
	}
	return nil
}

// Save upserts the list. The stored created_at wins over the caller's copy
// so a stale CreatedAt can never move a list in the ordering.
func (s *Store) Save(ctx context.Context, list *domain.List) (*domain.List, error) {
	saved := list.Clone()

	err := s.executeInTransaction(ctx, "save_list", func(tx pgx.Tx) error {
		if saved.ID != "" {
			var created time.Time
			err := tx.QueryRow(ctx, `SELECT created_at FROM lists WHERE id = $1 FOR UPDATE`, saved.ID).Scan(&created)
			switch {
			case err == nil:
				saved.CreatedAt = created.UTC()
			case !errors.Is(err, pgx.ErrNoRows):
				return unavailable(err)
			}
		}

		if _, err := document.Stamp(saved, s.now(), s.newID); err != nil {
			return err
		}

		items, err := document.MarshalItems(saved.Items)
		if err != nil {
			return fmt.Errorf("failed to encode items: %w", err)
		}

		_, err = tx.Exec(ctx, upsertList,
			saved.ID,
			saved.Title,
			saved.Category,
			document.DateToTime(saved.TargetDate),
			saved.Description,
			saved.CreatedAt,
			saved.UpdatedAt,
			items,
		)
		if err != nil {
			return unavailable(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return saved, nil
}

func (s *Store) FindAll(ctx context.Context) ([]*domain.List, error) {
	return s.query(ctx, selectLists+orderLists)
}

func (s *Store) FindByCategory(ctx context.Context, category string) ([]*domain.List, error) {
	return s.query(ctx, selectLists+` WHERE lower(category) = lower($1)`+orderLists, category)
}

// FindByTitleContaining uses strpos rather than LIKE so the query is a
// literal substring.
func (s *Store) FindByTitleContaining(ctx context.Context, query string) ([]*domain.List, error) {
	return s.query(ctx, selectLists+` WHERE strpos(lower(title), lower($1)) > 0`+orderLists, query)
}

func (s *Store) query(ctx context.Context, sql string, args ...any) ([]*domain.List, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
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

func scanList(row pgx.Row) (*domain.List, error) {
	var (
		list       domain.List
		targetDate *time.Time
		items      []byte
	)
	err := row.Scan(
		&list.ID,
		&list.Title,
		&list.Category,
		&targetDate,
		&list.Description,
		&list.CreatedAt,
		&list.UpdatedAt,
		&items,
	)
	if err != nil {
		return nil, err
	}

	list.TargetDate = document.TimeToDate(targetDate)
	list.CreatedAt = list.CreatedAt.UTC()
	list.UpdatedAt = list.UpdatedAt.UTC()
	list.Items, err = document.UnmarshalItems(items)
	if err != nil {
		return nil, fmt.Errorf("failed to decode items of list %s: %w", list.ID, err)
	}
	return &list, nil
}

// finalizeTx handles transaction cleanup for normal error/success cases.
// Rolls back on error, commits on success.
func finalizeTx(ctx context.Context, tx pgx.Tx, err *error) {
	if *err != nil {
		slog.ErrorContext(ctx, "transaction failed, rolling back",
			"error", *err)
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			slog.ErrorContext(ctx, "rollback failed",
				"original_error", *err,
				"rollback_error", rbErr)
			*err = fmt.Errorf("transaction failed: %w (rollback error: %v)", *err, rbErr)
		}
	} else {
		if cErr := tx.Commit(ctx); cErr != nil {
			slog.ErrorContext(ctx, "transaction commit failed",
				"error", cErr)
			*err = unavailable(cErr)
		}
	}
}

// executeInTransaction runs fn within a transaction with logging and panic recovery.
func (s *Store) executeInTransaction(ctx context.Context, operationName string, fn func(tx pgx.Tx) error) (err error) {
	start := time.Now().UTC()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "failed to begin transaction",
			"operation", operationName,
			"error", err)
		return fmt.Errorf("failed to begin transaction: %w", unavailable(err))
	}

	defer func() {
		if p := recover(); p != nil {
			slog.ErrorContext(ctx, "transaction panic, rolling back",
				"operation", operationName,
				"panic", p)
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				slog.ErrorContext(ctx, "rollback after panic failed",
					"operation", operationName,
					"panic", p,
					"rollback_error", rbErr)
			}
			panic(p)
		}

		finalizeTx(ctx, tx, &err)
		if err == nil {
			slog.DebugContext(ctx, "transaction completed",
				"operation", operationName,
				"duration_ms", time.Since(start).Milliseconds())
		}
	}()

	err = fn(tx)
	return
}

func unavailable(err error) error {
	if errors.Is(err, domain.ErrStoreUnavailable) {
		return err
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}
