package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables. Per-table auto-increment ids can't order events of
// different types, so every event takes its sequence from this single
// counter. That gives:
//
//   - Cross-type ordering (was the review before or after the unlock?)
//   - Snapshot consistency (query all tables for sequence > snapshot.sequence)
//   - Append-only guarantees (events are never reordered)
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Last returns the most recently assigned sequence number, 0 if none.
func (sc *sequenceCounter) Last(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`SELECT next_val - 1 FROM global_sequence WHERE id = 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo backed by the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// appendEvent inserts one row into table, prefixing the shared sequence
// and timestamp columns.
func (r *eventRepo) appendEvent(ctx context.Context, table string, columns []string, values []any) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(table).
		Columns(append([]string{"sequence", "timestamp"}, columns...)...).
		Values(append([]any{seqNum, time.Now().UTC()}, values...)...).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendReviewEvent(ctx context.Context, data ReviewEventData) error {
	return r.appendEvent(ctx, "review_events",
		[]string{"session_id", "category_id", "word_id", "rating", "mastery_before", "mastery_after", "next_review"},
		[]any{data.SessionID, data.CategoryID, data.WordID, string(data.Rating), data.MasteryBefore, data.MasteryAfter, nullTime(data.NextReview)},
	)
}

func (r *eventRepo) AppendCategoryEvent(ctx context.Context, data CategoryEventData) error {
	return r.appendEvent(ctx, "category_events",
		[]string{"session_id", "category_id", "action", "words_reviewed", "total_words", "duration_secs"},
		[]any{data.SessionID, data.CategoryID, data.Action, data.WordsReviewed, data.TotalWords, data.DurationSecs},
	)
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.appendEvent(ctx, "llm_request_events",
		[]string{"provider", "model", "purpose", "input_tokens", "output_tokens", "latency_ms", "success", "error_message", "request_body", "response_body"},
		[]any{data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens, data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody},
	)
}

func (r *eventRepo) QueryCategoryEvents(ctx context.Context, opts QueryOpts) ([]CategoryEvent, error) {
	sel := builder().Select("sequence", "timestamp", "session_id", "category_id", "action", "words_reviewed", "total_words", "duration_secs").
		From(entsql.Table("category_events")).
		OrderBy("sequence")
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query category events: %w", err)
	}
	defer rows.Close()

	var out []CategoryEvent
	for rows.Next() {
		var e CategoryEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.CategoryID, &e.Action,
			&e.WordsReviewed, &e.TotalWords, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan category event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) ReviewCounts(ctx context.Context, opts QueryOpts) (map[spacedrep.Rating]int, error) {
	opts.Limit = 0
	sel := builder().Select("rating", entsql.Count("*")).
		From(entsql.Table("review_events")).
		GroupBy("rating")
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query review counts: %w", err)
	}
	defer rows.Close()

	out := make(map[spacedrep.Rating]int)
	for rows.Next() {
		var (
			rating string
			n      int
		)
		if err := rows.Scan(&rating, &n); err != nil {
			return nil, fmt.Errorf("scan review count: %w", err)
		}
		out[spacedrep.Rating(rating)] = n
	}
	return out, rows.Err()
}

func (r *eventRepo) LastSequence(ctx context.Context) (int64, error) {
	return r.seq.Last(ctx)
}

func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
