package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Every event table carries the shared sequence and timestamp columns,
// indexed for ordered and time-windowed queries.
const eventColumns = `
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	sequence INTEGER NOT NULL UNIQUE,
	timestamp DATETIME NOT NULL`

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS word_progress (
		word_id INTEGER PRIMARY KEY,
		mastery_level INTEGER NOT NULL DEFAULT 0 CHECK (mastery_level BETWEEN 0 AND 100),
		last_reviewed DATETIME,
		next_review DATETIME,
		updated_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS word_progress_next_review ON word_progress (next_review)`,

	`CREATE TABLE IF NOT EXISTS category_completions (
		category_id TEXT PRIMARY KEY,
		count INTEGER NOT NULL DEFAULT 0,
		last_completed_at DATETIME NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS review_events (` + eventColumns + `,
		session_id TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL DEFAULT '',
		word_id INTEGER NOT NULL,
		rating TEXT NOT NULL,
		mastery_before INTEGER NOT NULL,
		mastery_after INTEGER NOT NULL,
		next_review DATETIME
	)`,
	`CREATE INDEX IF NOT EXISTS review_events_timestamp ON review_events (timestamp)`,
	`CREATE INDEX IF NOT EXISTS review_events_word ON review_events (word_id)`,

	`CREATE TABLE IF NOT EXISTS category_events (` + eventColumns + `,
		session_id TEXT NOT NULL DEFAULT '',
		category_id TEXT NOT NULL,
		action TEXT NOT NULL,
		words_reviewed INTEGER NOT NULL DEFAULT 0,
		total_words INTEGER NOT NULL DEFAULT 0,
		duration_secs INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS category_events_category ON category_events (category_id)`,

	`CREATE TABLE IF NOT EXISTS llm_request_events (` + eventColumns + `,
		provider TEXT NOT NULL,
		model TEXT NOT NULL,
		purpose TEXT NOT NULL,
		input_tokens INTEGER NOT NULL DEFAULT 0,
		output_tokens INTEGER NOT NULL DEFAULT 0,
		latency_ms INTEGER NOT NULL DEFAULT 0,
		success BOOLEAN NOT NULL,
		error_message TEXT NOT NULL DEFAULT '',
		request_body TEXT NOT NULL DEFAULT '',
		response_body TEXT NOT NULL DEFAULT ''
	)`,

	`CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence INTEGER NOT NULL,
		timestamp DATETIME NOT NULL,
		data TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS snapshots_timestamp ON snapshots (timestamp)`,

	`CREATE TABLE IF NOT EXISTS custom_categories (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		emoji TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS custom_words (
		id INTEGER PRIMARY KEY,
		category_id TEXT NOT NULL REFERENCES custom_categories (id) ON DELETE CASCADE,
		text TEXT NOT NULL,
		definition TEXT NOT NULL DEFAULT '',
		example TEXT NOT NULL DEFAULT '',
		emoji TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS custom_words_category ON custom_words (category_id)`,
}

// migrate creates every table and index that does not exist yet.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
