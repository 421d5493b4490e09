package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// wordRepo implements WordRepo.
type wordRepo struct {
	db *sql.DB
}

func (r *wordRepo) SaveCategory(ctx context.Context, c CategoryRecord) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	query, args := builder().Insert("custom_categories").
		Columns("id", "name", "emoji", "created_at").
		Values(c.ID, c.Name, c.Emoji, c.CreatedAt.UTC()).
		OnConflict(
			entsql.ConflictColumns("id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("name")
				u.SetExcluded("emoji")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save category %q: %w", c.ID, err)
	}
	return nil
}

func (r *wordRepo) ListCategories(ctx context.Context) ([]CategoryRecord, error) {
	query, args := builder().Select("id", "name", "emoji", "created_at").
		From(entsql.Table("custom_categories")).
		OrderBy("created_at", "id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []CategoryRecord
	for rows.Next() {
		var c CategoryRecord
		if err := rows.Scan(&c.ID, &c.Name, &c.Emoji, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *wordRepo) SaveWords(ctx context.Context, words []WordRecord) error {
	if len(words) == 0 {
		return nil
	}

	ins := builder().Insert("custom_words").
		Columns("id", "category_id", "text", "definition", "example", "emoji", "created_at")
	now := time.Now().UTC()
	for _, w := range words {
		created := w.CreatedAt
		if created.IsZero() {
			created = now
		}
		ins.Values(w.ID, w.CategoryID, w.Text, w.Definition, w.Example, w.Emoji, created.UTC())
	}

	query, args := ins.Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %d words: %w", len(words), err)
	}
	return nil
}

func (r *wordRepo) ListWords(ctx context.Context, categoryID string) ([]WordRecord, error) {
	sel := builder().Select("id", "category_id", "text", "definition", "example", "emoji", "created_at").
		From(entsql.Table("custom_words")).
		OrderBy("id")
	if categoryID != "" {
		sel.Where(entsql.EQ("category_id", categoryID))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list words: %w", err)
	}
	defer rows.Close()

	var out []WordRecord
	for rows.Next() {
		var w WordRecord
		if err := rows.Scan(&w.ID, &w.CategoryID, &w.Text, &w.Definition, &w.Example, &w.Emoji, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *wordRepo) NextWordID(ctx context.Context, floor int) (int, error) {
	query, args := builder().Select("COALESCE(MAX(id), 0)").
		From(entsql.Table("custom_words")).
		Query()

	var maxID int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&maxID); err != nil {
		return 0, fmt.Errorf("next word id: %w", err)
	}
	return max(maxID+1, floor), nil
}
