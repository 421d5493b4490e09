// Package practice drives category practice: it selects words to review,
// applies ratings through the spaced repetition scheduler and keeps the
// category session tracker, the event log and resumable snapshots in step.
package practice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/tracker"
	"github.com/wordsprout/wordsprout/internal/words"
)

// SnapshotVersion is written into every snapshot the service saves.
const SnapshotVersion = 1

// SnapshotsKept is how many snapshots survive each save.
const SnapshotsKept = 5

// Deps are the collaborators of a Service.
type Deps struct {
	Catalog   *words.Catalog
	Progress  store.ProgressRepo
	Ledger    store.LedgerRepo
	Events    store.EventRepo
	Snapshots store.SnapshotRepo
	Tracker   *tracker.Tracker
	Scheduler *spacedrep.Scheduler
	Logger    *slog.Logger
}

// Batch is the next group of words to review in the selected category.
type Batch struct {
	spacedrep.ReviewSession

	// Ahead is set when nothing was due and the words are offered ahead of
	// their schedule.
	Ahead bool
}

// Selection is the result of choosing a category.
type Selection struct {
	Category words.Category
	Batch    Batch

	// Resumed is set when the category was already in progress.
	Resumed bool

	// Completed is non-nil when the category has no words and completed on
	// selection.
	Completed *tracker.CompletionStats
}

// RateResult is the outcome of rating one word.
type RateResult struct {
	Word          words.Word
	MasteryBefore int
	Progress      spacedrep.WordProgress

	// CategoryProgress is the selected category's completion percentage
	// after this review.
	CategoryProgress float64

	// Completed is non-nil when this review completed the category.
	Completed *tracker.CompletionStats
}

// Service coordinates practice sessions. It is safe for concurrent use.
type Service struct {
	mu      sync.RWMutex
	catalog *words.Catalog

	progress  store.ProgressRepo
	ledger    store.LedgerRepo
	events    store.EventRepo
	snapshots store.SnapshotRepo
	tracker   *tracker.Tracker
	scheduler *spacedrep.Scheduler
	logger    *slog.Logger

	sub tracker.SubscriptionID
}

// New creates a Service and subscribes it to the tracker's completions.
// Call Close to unsubscribe.
func New(d Deps) *Service {
	if d.Scheduler == nil {
		d.Scheduler = spacedrep.NewScheduler()
	}
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Tracker == nil {
		d.Tracker = tracker.New(d.Ledger, tracker.WithLogger(d.Logger))
	}
	s := &Service{
		catalog:   d.Catalog,
		progress:  d.Progress,
		ledger:    d.Ledger,
		events:    d.Events,
		snapshots: d.Snapshots,
		tracker:   d.Tracker,
		scheduler: d.Scheduler,
		logger:    d.Logger,
	}
	s.sub = s.tracker.OnCategoryCompletion(s.onCompletion)
	return s
}

// Close unsubscribes the service from the tracker.
func (s *Service) Close() {
	s.tracker.RemoveCompletionCallback(s.sub)
}

// Catalog returns the catalog currently in use.
func (s *Service) Catalog() *words.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// SetCatalog swaps in a reloaded catalog, e.g. after custom words were added.
func (s *Service) SetCatalog(c *words.Catalog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.catalog = c
}

// Tracker returns the category session tracker.
func (s *Service) Tracker() *tracker.Tracker {
	return s.tracker
}

// SelectCategory makes id the selected category and returns its first batch.
// While another category is locked the switch is refused with a *LockedError
// unless force is set, in which case the other session is abandoned.
// Selecting the locked category again resumes it.
func (s *Service) SelectCategory(ctx context.Context, id string, force bool) (*Selection, error) {
	catalog := s.Catalog()
	cat, err := catalog.Category(id)
	if err != nil {
		return nil, err
	}

	if locked, ok := s.tracker.LockedCategory(); ok {
		if locked == id {
			batch, err := s.NextBatch(ctx)
			if err != nil {
				return nil, err
			}
			return &Selection{Category: cat, Batch: *batch, Resumed: true}, nil
		}
		if !force {
			return nil, &LockedError{
				Locked:    locked,
				Requested: id,
				Progress:  s.tracker.CategoryProgress(),
			}
		}
		prev := s.tracker.State()
		s.tracker.ForceUnlockCategory()
		s.appendCategoryEvent(ctx, prev, store.ActionUnlock)
	}

	completed, err := s.tracker.StartCategorySessionWords(ctx, id, catalog.WordIDs(id))
	if err != nil {
		return nil, fmt.Errorf("select category %q: %w", id, err)
	}
	sel := &Selection{Category: cat, Completed: completed}
	if completed != nil {
		// The completion event was already written by onCompletion.
		return sel, nil
	}
	s.appendCategoryEvent(ctx, s.tracker.State(), store.ActionStart)

	batch, err := s.NextBatch(ctx)
	if err != nil {
		return nil, err
	}
	sel.Batch = *batch
	s.SaveSnapshot(ctx)
	return sel, nil
}

// NextBatch returns up to the session cap of words from the selected
// category's session word set that have not been reviewed yet. Due words come first,
// weakest first; when none are due the soonest scheduled words are offered
// ahead of time. An empty batch means the category is finished.
func (s *Service) NextBatch(ctx context.Context) (*Batch, error) {
	state := s.tracker.State()
	if state.Phase == tracker.PhaseInactive {
		return nil, ErrNoCategory
	}
	if state.Phase == tracker.PhaseCompleted {
		return &Batch{}, nil
	}

	reviewed := make(map[int]bool, len(state.ReviewedWordIDs))
	for _, id := range state.ReviewedWordIDs {
		reviewed[id] = true
	}
	words := state.WordIDs
	if words == nil {
		words = s.Catalog().WordIDs(state.CategoryID)
	}
	var remaining []int
	for _, id := range words {
		if !reviewed[id] {
			remaining = append(remaining, id)
		}
	}

	pool, err := s.progress.List(ctx, remaining)
	if err != nil {
		return nil, fmt.Errorf("next batch for %q: %w", state.CategoryID, err)
	}
	batch := &Batch{ReviewSession: s.scheduler.BuildSession(pool)}
	if batch.CaughtUp() {
		batch = &Batch{ReviewSession: s.scheduler.BuildAhead(pool), Ahead: true}
	}
	s.logger.Debug("next batch",
		slog.String("category", state.CategoryID),
		slog.Any("words", batch.WordIDs()),
		slog.Bool("ahead", batch.Ahead))
	return batch, nil
}

// RateWord applies rating to wordID and persists the new progress. A word of
// the selected category also counts toward that category's session; ratings
// of other words only update their schedule.
func (s *Service) RateWord(ctx context.Context, wordID int, rating spacedrep.Rating) (*RateResult, error) {
	if !rating.Valid() {
		return nil, fmt.Errorf("rate word %d: %w: %q", wordID, spacedrep.ErrInvalidRating, rating)
	}
	word, err := s.Catalog().Word(wordID)
	if err != nil {
		return nil, err
	}

	before, err := s.progress.Get(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("rate word %d: %w", wordID, err)
	}
	after, err := s.scheduler.Rate(before, rating)
	if err != nil {
		return nil, err
	}
	if err := s.progress.Save(ctx, after); err != nil {
		return nil, fmt.Errorf("rate word %d: %w", wordID, err)
	}

	state := s.tracker.State()
	inSession := state.Phase == tracker.PhaseActive &&
		state.CategoryID == word.CategoryID &&
		state.Covers(wordID)

	ev := store.ReviewEventData{
		CategoryID:    word.CategoryID,
		WordID:        wordID,
		Rating:        rating,
		MasteryBefore: before.MasteryLevel,
		MasteryAfter:  after.MasteryLevel,
		NextReview:    after.NextReview,
	}
	if inSession {
		ev.SessionID = state.SessionID
	}
	if err := s.events.AppendReviewEvent(ctx, ev); err != nil {
		s.logger.Error("append review event", slog.Int("word", wordID), slog.String("error", err.Error()))
	}

	res := &RateResult{
		Word:          word,
		MasteryBefore: before.MasteryLevel,
		Progress:      after,
	}
	if inSession {
		res.Completed = s.tracker.TrackWordReview(ctx, wordID, rating.Successful())
	}
	res.CategoryProgress = s.tracker.CategoryProgress()
	if res.Completed == nil {
		s.SaveSnapshot(ctx)
	}

	s.logger.Debug("word rated",
		slog.Int("word", wordID),
		slog.String("rating", string(rating)),
		slog.Int("mastery", after.MasteryLevel))
	return res, nil
}

// TrackTime credits whole minutes of d to the selected category session.
func (s *Service) TrackTime(d time.Duration) {
	s.tracker.TrackTimeSpent(int(d / time.Minute))
}

// Leave exits the selected category. An in-progress session is recorded as
// abandoned and earns no completion.
func (s *Service) Leave(ctx context.Context) {
	state := s.tracker.State()
	if state.Phase == tracker.PhaseInactive {
		return
	}
	if state.Locked() {
		s.appendCategoryEvent(ctx, state, store.ActionAbandon)
	}
	s.tracker.ExitCategorySession()
	s.SaveSnapshot(ctx)
}

// CompletionCount returns how many times categoryID has been completed.
func (s *Service) CompletionCount(ctx context.Context, categoryID string) (int, error) {
	return s.tracker.CategoryCompletionCount(ctx, categoryID)
}

func (s *Service) onCompletion(stats tracker.CompletionStats) {
	ctx := context.Background()
	err := s.events.AppendCategoryEvent(ctx, store.CategoryEventData{
		SessionID:     stats.SessionID,
		CategoryID:    stats.CategoryID,
		Action:        store.ActionComplete,
		WordsReviewed: stats.WordsReviewed,
		TotalWords:    stats.TotalWords,
		DurationSecs:  stats.TimeSpent * 60,
	})
	if err != nil {
		s.logger.Error("append completion event",
			slog.String("category", stats.CategoryID),
			slog.String("error", err.Error()))
	}
	s.SaveSnapshot(ctx)
}

func (s *Service) appendCategoryEvent(ctx context.Context, state tracker.State, action string) {
	err := s.events.AppendCategoryEvent(ctx, store.CategoryEventData{
		SessionID:     state.SessionID,
		CategoryID:    state.CategoryID,
		Action:        action,
		WordsReviewed: len(state.ReviewedWordIDs),
		TotalWords:    state.TotalWords,
		DurationSecs:  max(0, int(s.scheduler.Now().Sub(state.StartTime).Seconds())),
	})
	if err != nil {
		s.logger.Error("append category event",
			slog.String("category", state.CategoryID),
			slog.String("action", action),
			slog.String("error", err.Error()))
	}
}
