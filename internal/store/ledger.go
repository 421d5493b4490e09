package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const ledgerTable = "category_completions"

// ledgerRepo implements LedgerRepo. Increments run in a transaction so the
// returned count always includes the increment that produced it.
type ledgerRepo struct {
	mu sync.Mutex
	db *sql.DB
}

func (r *ledgerRepo) CompletionCount(ctx context.Context, categoryID string) (int, error) {
	return completionCount(ctx, r.db, categoryID)
}

func (r *ledgerRepo) IncrementCompletion(ctx context.Context, categoryID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin increment: %w", err)
	}
	defer tx.Rollback()

	query, args := builder().Insert(ledgerTable).
		Columns("category_id", "count", "last_completed_at").
		Values(categoryID, 1, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("category_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("count", 1)
				u.SetExcluded("last_completed_at")
			}),
		).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("increment completion %q: %w", categoryID, err)
	}

	n, err := completionCount(ctx, tx, categoryID)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit increment: %w", err)
	}
	return n, nil
}

func (r *ledgerRepo) AllCompletions(ctx context.Context) (map[string]int, error) {
	query, args := builder().Select("category_id", "count").
		From(entsql.Table(ledgerTable)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var (
			id string
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		out[id] = n
	}
	return out, rows.Err()
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func completionCount(ctx context.Context, q queryRower, categoryID string) (int, error) {
	query, args := builder().Select("count").
		From(entsql.Table(ledgerTable)).
		Where(entsql.EQ("category_id", categoryID)).
		Query()

	var n int
	err := q.QueryRowContext(ctx, query, args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("completion count %q: %w", categoryID, err)
	}
	return n, nil
}
