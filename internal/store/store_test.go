package store

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/tracker"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "open test store")
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		require.NoError(t, db.QueryRow("PRAGMA "+tt.pragma).Scan(&got), "PRAGMA %s", tt.pragma)
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{
		"word_progress", "category_completions", "review_events", "category_events",
		"llm_request_events", "snapshots", "custom_categories", "custom_words", "global_sequence",
	} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.LedgerRepo().IncrementCompletion(ctx, "animals")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	n, err := s.LedgerRepo().CompletionCount(ctx, "animals")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	last, err := s.seq.Last(ctx)
	require.NoError(t, err)
	assert.Zero(t, last)

	for i := 1; i <= 5; i++ {
		seq, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(i), seq)
	}

	last, err = s.EventRepo().LastSequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), last)
}

func TestProgress_GetUnknownWordIsNew(t *testing.T) {
	s := openTestStore(t)

	wp, err := s.ProgressRepo().Get(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, spacedrep.NewWordProgress(42), wp)
	assert.True(t, wp.IsDue(time.Now()))
}

func TestProgress_SaveRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	reviewed := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	next := reviewed.AddDate(0, 0, 10)
	require.NoError(t, repo.Save(ctx, spacedrep.WordProgress{
		WordID: 7, MasteryLevel: 55, LastReviewed: &reviewed, NextReview: &next,
	}))

	got, err := repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 55, got.MasteryLevel)
	require.NotNil(t, got.LastReviewed)
	require.NotNil(t, got.NextReview)
	assert.True(t, got.LastReviewed.Equal(reviewed))
	assert.True(t, got.NextReview.Equal(next))

	// Saving again replaces the record.
	require.NoError(t, repo.Save(ctx, spacedrep.WordProgress{WordID: 7, MasteryLevel: 50, LastReviewed: &next, NextReview: &next}))
	got, err = repo.Get(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, 50, got.MasteryLevel)
}

func TestProgress_ListFillsMissing(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Save(ctx, spacedrep.WordProgress{WordID: 2, MasteryLevel: 30, LastReviewed: &now, NextReview: &now}))

	got, err := repo.List(ctx, []int{3, 2, 1})
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].WordID)
	assert.Nil(t, got[0].LastReviewed)
	assert.Equal(t, 2, got[1].WordID)
	assert.Equal(t, 30, got[1].MasteryLevel)
	assert.Equal(t, 1, got[2].WordID)

	empty, err := repo.List(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestProgress_Reset(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, spacedrep.WordProgress{WordID: 1, MasteryLevel: 80}))
	require.NoError(t, repo.Reset(ctx))

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, got.MasteryLevel)
}

func TestLedger_Increment(t *testing.T) {
	s := openTestStore(t)
	var ledger tracker.Ledger = s.LedgerRepo()
	ctx := context.Background()

	n, err := ledger.CompletionCount(ctx, "animals")
	require.NoError(t, err)
	assert.Zero(t, n)

	for want := 1; want <= 3; want++ {
		got, err := ledger.IncrementCompletion(ctx, "animals")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = ledger.IncrementCompletion(ctx, "colors")
	require.NoError(t, err)

	all, err := s.LedgerRepo().AllCompletions(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"animals": 3, "colors": 1}, all)
}

func TestLedger_ConcurrentIncrements(t *testing.T) {
	s := openTestStore(t)
	repo := s.LedgerRepo()
	ctx := context.Background()

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.IncrementCompletion(ctx, "food")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := repo.CompletionCount(ctx, "food")
	require.NoError(t, err)
	assert.Equal(t, 10, n)
}

func TestEvents_CategoryEventsInOrder(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, action := range []string{ActionStart, ActionAbandon, ActionStart, ActionComplete} {
		require.NoError(t, repo.AppendCategoryEvent(ctx, CategoryEventData{
			SessionID: "s1", CategoryID: "animals", Action: action, TotalWords: 3,
		}))
	}

	events, err := repo.QueryCategoryEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 4)
	for i := 1; i < len(events); i++ {
		assert.Greater(t, events[i].Sequence, events[i-1].Sequence)
	}
	assert.Equal(t, ActionComplete, events[3].Action)
	assert.False(t, events[0].Timestamp.IsZero())

	page, err := repo.QueryCategoryEvents(ctx, QueryOpts{After: events[0].Sequence, Limit: 2})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, events[1].Sequence, page[0].Sequence)

	before, err := repo.QueryCategoryEvents(ctx, QueryOpts{Before: events[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, before, 1)
}

func TestEvents_SequenceSharedAcrossTypes(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendCategoryEvent(ctx, CategoryEventData{CategoryID: "animals", Action: ActionStart}))
	require.NoError(t, repo.AppendReviewEvent(ctx, ReviewEventData{WordID: 1, Rating: spacedrep.RatingEasy}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "word-pack", Success: true}))
	require.NoError(t, repo.AppendCategoryEvent(ctx, CategoryEventData{CategoryID: "animals", Action: ActionComplete}))

	events, err := repo.QueryCategoryEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, int64(1), events[0].Sequence)
	assert.Equal(t, int64(4), events[1].Sequence)
}

func TestEvents_ReviewCounts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, r := range []spacedrep.Rating{spacedrep.RatingEasy, spacedrep.RatingEasy, spacedrep.RatingHard} {
		require.NoError(t, repo.AppendReviewEvent(ctx, ReviewEventData{WordID: 1, Rating: r, MasteryBefore: 10, MasteryAfter: 25}))
	}

	counts, err := repo.ReviewCounts(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Equal(t, map[spacedrep.Rating]int{spacedrep.RatingEasy: 2, spacedrep.RatingHard: 1}, counts)

	future, err := repo.ReviewCounts(ctx, QueryOpts{From: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, future)
}

func TestEvents_LLMRequests(t *testing.T) {
	ctx := context.Background()
	events := openTestStore(t).EventRepo()

	reqs := []LLMRequestEventData{
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "word-gen", InputTokens: 100, OutputTokens: 50, LatencyMs: 200, Success: true, RequestBody: "[user]\nTheme: space"},
		{Provider: "openai", Model: "gpt-4o-mini", Purpose: "word-gen", InputTokens: 120, OutputTokens: 60, LatencyMs: 400, Success: true},
		{Provider: "gemini", Model: "gemini-2.0-flash", Purpose: "probe", InputTokens: 5, OutputTokens: 1, LatencyMs: 90, ErrorMessage: "rate limited"},
	}
	for _, r := range reqs {
		require.NoError(t, events.AppendLLMRequest(ctx, r))
	}

	list, err := events.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "probe", list[0].Purpose, "newest first")
	assert.False(t, list[0].Success)

	got, err := events.GetLLMEvent(ctx, list[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 120, got.InputTokens)

	missing, err := events.GetLLMEvent(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := events.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, LLMUsage{Purpose: "word-gen", Calls: 2, InputTokens: 220, OutputTokens: 110, AvgLatencyMs: 300}, byPurpose[0])

	byModel, err := events.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "gemini-2.0-flash", byModel[1].Model)
	assert.Equal(t, 1, byModel[1].Calls)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap, "expected nil snapshot when none exist")

	now := time.Now().UTC().Truncate(time.Second)
	state := &tracker.State{
		SessionID:       "abc",
		CategoryID:      "animals",
		Phase:           tracker.PhaseActive,
		TotalWords:      3,
		ReviewedWordIDs: []int{1, 2},
		SuccessfulWords: 2,
		StartTime:       now,
	}
	require.NoError(t, repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data:      SnapshotData{Version: 1, Tracker: state},
	}))

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(42), snap.Sequence)
	assert.Equal(t, 1, snap.Data.Version)
	require.NotNil(t, snap.Data.Tracker)
	assert.Equal(t, "animals", snap.Data.Tracker.CategoryID)
	assert.Equal(t, []int{1, 2}, snap.Data.Tracker.ReviewedWordIDs)
	assert.Equal(t, tracker.PhaseActive, snap.Data.Tracker.Phase)
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := range 3 {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		}))
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Sequence)
	assert.Equal(t, 3, snap.Data.Version)
}

func countSnapshots(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n))
	return n
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := range 7 {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		}))
	}

	require.NoError(t, repo.Prune(ctx, 5))
	assert.Equal(t, 5, countSnapshots(t, s))

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.Sequence)

	// Fewer than keep is a no-op.
	require.NoError(t, repo.Prune(ctx, 10))
	assert.Equal(t, 5, countSnapshots(t, s))
}

func TestWords_SaveAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveCategory(ctx, CategoryRecord{ID: "space", Name: "Space", Emoji: "🚀"}))
	require.NoError(t, repo.SaveCategory(ctx, CategoryRecord{ID: "space", Name: "Outer Space", Emoji: "🪐"}))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Outer Space", cats[0].Name)

	next, err := repo.NextWordID(ctx, 10000)
	require.NoError(t, err)
	assert.Equal(t, 10000, next)

	require.NoError(t, repo.SaveWords(ctx, []WordRecord{
		{ID: next, CategoryID: "space", Text: "planet", Definition: "A big ball in space"},
		{ID: next + 1, CategoryID: "space", Text: "comet", Emoji: "☄️"},
	}))

	words, err := repo.ListWords(ctx, "space")
	require.NoError(t, err)
	require.Len(t, words, 2)
	assert.Equal(t, "planet", words[0].Text)
	assert.Equal(t, "☄️", words[1].Emoji)

	next, err = repo.NextWordID(ctx, 10000)
	require.NoError(t, err)
	assert.Equal(t, 10002, next)

	none, err := repo.ListWords(ctx, "ocean")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestWords_DuplicateIDRejected(t *testing.T) {
	s := openTestStore(t)
	repo := s.WordRepo()
	ctx := context.Background()

	require.NoError(t, repo.SaveCategory(ctx, CategoryRecord{ID: "space", Name: "Space"}))
	require.NoError(t, repo.SaveWords(ctx, []WordRecord{{ID: 1, CategoryID: "space", Text: "moon"}}))
	assert.Error(t, repo.SaveWords(ctx, []WordRecord{{ID: 1, CategoryID: "space", Text: "sun"}}))
}

func TestWords_UnknownCategoryRejected(t *testing.T) {
	s := openTestStore(t)
	err := s.WordRepo().SaveWords(context.Background(), []WordRecord{{ID: 1, CategoryID: "nope", Text: "x"}})
	assert.Error(t, err)
}

func TestResetProgress(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ProgressRepo().Save(ctx, spacedrep.WordProgress{WordID: 1, MasteryLevel: 40}))
	_, err := s.LedgerRepo().IncrementCompletion(ctx, "animals")
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendCategoryEvent(ctx, CategoryEventData{CategoryID: "animals", Action: ActionStart}))
	require.NoError(t, s.WordRepo().SaveCategory(ctx, CategoryRecord{ID: "space", Name: "Space"}))

	require.NoError(t, s.ResetProgress(ctx))

	wp, err := s.ProgressRepo().Get(ctx, 1)
	require.NoError(t, err)
	assert.Zero(t, wp.MasteryLevel)
	n, err := s.LedgerRepo().CompletionCount(ctx, "animals")
	require.NoError(t, err)
	assert.Zero(t, n)
	events, err := s.EventRepo().QueryCategoryEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events)

	cats, err := s.WordRepo().ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 1, "custom categories survive a reset")
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("WORDSPROUT_DB", filepath.Join(dir, "explicit", "w.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "explicit", "w.db"), p)
	assert.DirExists(t, filepath.Join(dir, "explicit"))

	t.Setenv("WORDSPROUT_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "wordsprout", "wordsprout.db"), p)
}
