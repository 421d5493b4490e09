package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CompletionCallback receives the stats of a completed category session.
type CompletionCallback func(CompletionStats)

// SubscriptionID identifies a registered completion callback.
type SubscriptionID uint64

type subscription struct {
	id SubscriptionID
	cb CompletionCallback
}

// Tracker owns the single category session of an app: it accumulates word
// reviews, detects completion and gates category switches while a session
// is in progress. A Tracker is safe for concurrent use.
//
// Completion callbacks run synchronously in registration order, outside the
// state lock. Completions are queued and drained by one goroutine at a time:
// usually the one that completed the session, but when another goroutine is
// already delivering, that goroutine delivers the queued stats after its
// current callbacks return. A callback that itself completes a session has
// that completion delivered after it returns. The ledger is credited before
// delivery and outside the state lock.
type Tracker struct {
	mu       sync.Mutex
	session  *categorySession
	subs     []subscription
	nextSub  SubscriptionID
	pending  []CompletionStats
	emitting bool

	ledger Ledger
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithIDGenerator overrides the session id generator (UUIDv4 by default).
func WithIDGenerator(gen func() string) Option {
	return func(t *Tracker) {
		if gen != nil {
			t.newID = gen
		}
	}
}

// New creates a Tracker backed by ledger. A nil ledger uses a MemoryLedger.
func New(ledger Ledger, opts ...Option) *Tracker {
	if ledger == nil {
		ledger = NewMemoryLedger()
	}
	t := &Tracker{
		ledger: ledger,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// StartCategorySession replaces any current session with a new one for
// categoryID. A discarded incomplete session earns no ledger credit. An empty
// category completes immediately; its stats are returned in that case.
func (t *Tracker) StartCategorySession(ctx context.Context, categoryID string, totalWords int) (*CompletionStats, error) {
	if categoryID == "" {
		return nil, ErrEmptyCategory
	}
	if totalWords < 0 {
		return nil, fmt.Errorf("start %q: %w (got %d)", categoryID, ErrNegativeTotalWords, totalWords)
	}
	return t.start(ctx, categoryID, func(cs *categorySession) { cs.totalWords = totalWords })
}

// StartCategorySessionWords is StartCategorySession with the session's words
// fixed up front. totalWords is the number of distinct ids, and reviews of
// words outside the set are ignored, so words added to the category later
// cannot stand in for the ones it started with.
func (t *Tracker) StartCategorySessionWords(ctx context.Context, categoryID string, wordIDs []int) (*CompletionStats, error) {
	if categoryID == "" {
		return nil, ErrEmptyCategory
	}
	return t.start(ctx, categoryID, func(cs *categorySession) { cs.withWords(wordIDs) })
}

func (t *Tracker) start(ctx context.Context, categoryID string, size func(*categorySession)) (*CompletionStats, error) {
	t.mu.Lock()
	if prev := t.session; prev != nil && prev.locked() {
		t.logger.Info("category session superseded",
			slog.String("category", prev.categoryID),
			slog.Int("reviewed", len(prev.reviewed)),
			slog.Int("total", prev.totalWords))
	}
	cs := newCategorySession(t.newID(), categoryID, 0, t.now())
	size(cs)
	t.session = cs
	t.logger.Debug("category session started",
		slog.String("category", categoryID),
		slog.String("session_id", cs.id),
		slog.Int("total", cs.totalWords))

	if !cs.isComplete() {
		t.mu.Unlock()
		return nil, nil
	}
	stats := t.completeLocked(cs)
	t.mu.Unlock()
	t.credit(ctx, &stats)
	t.deliver(stats)
	return &stats, nil
}

// TrackWordReview records that wordID was reviewed. Reviews of an already
// reviewed word, of a word outside the session's word set and reviews with
// no active session are ignored. success is
// kept per word but does not affect accuracy. Returns the completion stats
// when this review completed the session.
func (t *Tracker) TrackWordReview(ctx context.Context, wordID int, success bool) *CompletionStats {
	t.mu.Lock()
	cs := t.session
	if cs == nil || cs.completed {
		t.mu.Unlock()
		return nil
	}
	cs.track(wordID, success)
	if !cs.isComplete() {
		t.mu.Unlock()
		return nil
	}
	stats := t.completeLocked(cs)
	t.mu.Unlock()
	t.credit(ctx, &stats)
	t.deliver(stats)
	return &stats
}

// TrackTimeSpent adds minutes to the session's interaction-time accumulator.
// Non-positive values and calls without a session are ignored.
func (t *Tracker) TrackTimeSpent(minutes int) {
	if minutes <= 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session != nil && !t.session.completed {
		t.session.trackedMinutes += minutes
	}
}

// ShouldPreventCategorySwitch reports whether the current session has
// reviewed words and is not yet complete.
func (t *Tracker) ShouldPreventCategorySwitch() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session != nil && t.session.locked()
}

// LockedCategory returns the category currently enforcing a lock.
func (t *Tracker) LockedCategory() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil || !t.session.locked() {
		return "", false
	}
	return t.session.categoryID, true
}

// CurrentCategory returns the category of the current session in any phase
// other than inactive.
func (t *Tracker) CurrentCategory() (string, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return "", false
	}
	return t.session.categoryID, true
}

// CategoryProgress returns the percentage of the current category's words
// reviewed. 100 for an empty category, 0 with no session.
func (t *Tracker) CategoryProgress() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return 0
	}
	return percent(len(t.session.reviewed), t.session.totalWords)
}

// CategoryCompletionCount reads the ledger count for categoryID.
func (t *Tracker) CategoryCompletionCount(ctx context.Context, categoryID string) (int, error) {
	n, err := t.ledger.CompletionCount(ctx, categoryID)
	if err != nil {
		return 0, fmt.Errorf("completion count for %q: %w", categoryID, err)
	}
	return n, nil
}

// ResetCurrentSession ends the session without a completion event.
func (t *Tracker) ResetCurrentSession() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLocked("reset")
}

// ExitCategorySession leaves the current category without a completion event.
func (t *Tracker) ExitCategorySession() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLocked("exit")
}

// ForceUnlockCategory ends an incomplete session on the learner's request,
// bypassing the lock. Completion does not fire.
func (t *Tracker) ForceUnlockCategory() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.endLocked("force-unlock")
}

// State returns a copy of the current session state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.session == nil {
		return State{Phase: PhaseInactive}
	}
	return t.session.state()
}

// Restore reinstates an active session saved with State. A saved word set
// overrides TotalWords, and reviewed ids outside it are dropped. Inactive and
// completed states clear the tracker; restoring never fires completion.
func (t *Tracker) Restore(s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if s.Phase != PhaseActive || s.CategoryID == "" || s.TotalWords < 0 {
		t.session = nil
		return
	}
	id := s.SessionID
	if id == "" {
		id = t.newID()
	}
	cs := newCategorySession(id, s.CategoryID, s.TotalWords, s.StartTime)
	if s.WordIDs != nil {
		cs.withWords(s.WordIDs)
	}
	cs.trackedMinutes = s.TrackedMinutes
	missed := make(map[int]bool, len(s.MissedWordIDs))
	for _, wid := range s.MissedWordIDs {
		missed[wid] = true
	}
	for _, wid := range s.ReviewedWordIDs {
		cs.track(wid, !missed[wid])
	}
	if cs.isComplete() {
		// A saved state can only be complete if it was saved mid-completion.
		t.session = nil
		return
	}
	t.session = cs
}

// OnCategoryCompletion registers cb and returns its id for removal.
func (t *Tracker) OnCategoryCompletion(cb CompletionCallback) SubscriptionID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSub++
	t.subs = append(t.subs, subscription{id: t.nextSub, cb: cb})
	return t.nextSub
}

// RemoveCompletionCallback unregisters a callback. Returns false if id is unknown.
func (t *Tracker) RemoveCompletionCallback(id SubscriptionID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for i, s := range t.subs {
		if s.id == id {
			t.subs = slices.Delete(t.subs, i, i+1)
			return true
		}
	}
	return false
}

// completeLocked marks cs completed and builds its stats. Must hold t.mu.
func (t *Tracker) completeLocked(cs *categorySession) CompletionStats {
	cs.completed = true
	return buildStats(cs, t.now())
}

// credit adds the completion to the ledger and records the new count in
// stats. Must not hold t.mu.
func (t *Tracker) credit(ctx context.Context, stats *CompletionStats) {
	count, err := t.ledger.IncrementCompletion(ctx, stats.CategoryID)
	if err != nil {
		t.logger.Error("increment completion ledger",
			slog.String("category", stats.CategoryID),
			slog.String("error", err.Error()))
	} else {
		stats.CompletionCount = count
	}

	t.logger.Info("category completed",
		slog.String("category", stats.CategoryID),
		slog.String("session_id", stats.SessionID),
		slog.Int("words", stats.WordsReviewed),
		slog.Int("minutes", stats.TimeSpent),
		slog.Int("completions", stats.CompletionCount))
}

// deliver queues stats for the subscribers and, unless another goroutine is
// already delivering, drains the queue. Must not hold t.mu.
func (t *Tracker) deliver(stats CompletionStats) {
	t.mu.Lock()
	t.pending = append(t.pending, stats)
	if t.emitting {
		t.mu.Unlock()
		return
	}
	t.emitting = true
	for len(t.pending) > 0 {
		next := t.pending[0]
		t.pending = t.pending[1:]
		subs := slices.Clone(t.subs)

		t.mu.Unlock()
		for _, s := range subs {
			t.invoke(s, next)
		}
		t.mu.Lock()
	}
	t.emitting = false
	t.mu.Unlock()
}

func (t *Tracker) invoke(s subscription, stats CompletionStats) {
	defer func() {
		if r := recover(); r != nil {
			t.logger.Error("completion callback panicked",
				slog.Uint64("subscription", uint64(s.id)),
				slog.Any("panic", r))
		}
	}()
	s.cb(stats)
}

// endLocked drops the session. Must hold t.mu.
func (t *Tracker) endLocked(reason string) {
	if t.session == nil {
		return
	}
	t.logger.Debug("category session ended",
		slog.String("category", t.session.categoryID),
		slog.String("reason", reason),
		slog.Bool("completed", t.session.completed),
		slog.Int("reviewed", len(t.session.reviewed)))
	t.session = nil
}
