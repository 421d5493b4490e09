package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
)

const progressTable = "word_progress"

var progressColumns = []string{"word_id", "mastery_level", "last_reviewed", "next_review"}

// progressRepo implements ProgressRepo.
type progressRepo struct {
	db *sql.DB
}

func (r *progressRepo) Get(ctx context.Context, wordID int) (spacedrep.WordProgress, error) {
	query, args := builder().Select(progressColumns...).
		From(entsql.Table(progressTable)).
		Where(entsql.EQ("word_id", wordID)).
		Query()

	wp, err := scanProgress(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return spacedrep.NewWordProgress(wordID), nil
	}
	if err != nil {
		return spacedrep.WordProgress{}, fmt.Errorf("get progress %d: %w", wordID, err)
	}
	return wp, nil
}

func (r *progressRepo) List(ctx context.Context, wordIDs []int) ([]spacedrep.WordProgress, error) {
	if len(wordIDs) == 0 {
		return nil, nil
	}

	query, args := builder().Select(progressColumns...).
		From(entsql.Table(progressTable)).
		Where(entsql.InInts("word_id", wordIDs...)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	stored := make(map[int]spacedrep.WordProgress, len(wordIDs))
	for rows.Next() {
		wp, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		stored[wp.WordID] = wp
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	out := make([]spacedrep.WordProgress, len(wordIDs))
	for i, id := range wordIDs {
		if wp, ok := stored[id]; ok {
			out[i] = wp
		} else {
			out[i] = spacedrep.NewWordProgress(id)
		}
	}
	return out, nil
}

func (r *progressRepo) Save(ctx context.Context, wp spacedrep.WordProgress) error {
	query, args := builder().Insert(progressTable).
		Columns("word_id", "mastery_level", "last_reviewed", "next_review", "updated_at").
		Values(wp.WordID, wp.MasteryLevel, nullTime(wp.LastReviewed), nullTime(wp.NextReview), time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("word_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save progress %d: %w", wp.WordID, err)
	}
	return nil
}

func (r *progressRepo) Reset(ctx context.Context) error {
	query, args := builder().Delete(progressTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset progress: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProgress(row rowScanner) (spacedrep.WordProgress, error) {
	var (
		wp         spacedrep.WordProgress
		last, next sql.NullTime
	)
	if err := row.Scan(&wp.WordID, &wp.MasteryLevel, &last, &next); err != nil {
		return spacedrep.WordProgress{}, err
	}
	wp.LastReviewed = timePtr(last)
	wp.NextReview = timePtr(next)
	return wp, nil
}
