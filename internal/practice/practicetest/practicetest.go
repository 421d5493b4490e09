// Package practicetest builds practice services over temporary stores for
// screen and command tests.
package practicetest

import (
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/tracker"
	"github.com/wordsprout/wordsprout/internal/words"
)

// Start is the initial fixture time.
var Start = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

// Clock is a settable clock shared by the scheduler and tracker.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// Now returns the current fixture time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Fixture is a practice service with its store and clock.
type Fixture struct {
	Service *practice.Service
	Store   *store.Store
	Clock   *Clock
}

// Catalog has animals (words 1-3), colors (4-5) and an empty category.
func Catalog(t testing.TB) *words.Catalog {
	t.Helper()
	cats := []words.Category{
		{ID: "animals", Name: "Animals", Emoji: "🐾"},
		{ID: "colors", Name: "Colors", Emoji: "🎨"},
		{ID: "empty", Name: "Empty"},
	}
	ws := []words.Word{
		{ID: 1, CategoryID: "animals", Text: "cat", Definition: "A small furry pet that purrs.", Example: "The cat sat on the mat."},
		{ID: 2, CategoryID: "animals", Text: "dog", Definition: "A pet that barks."},
		{ID: 3, CategoryID: "animals", Text: "bird", Definition: "An animal with feathers."},
		{ID: 4, CategoryID: "colors", Text: "red"},
		{ID: 5, CategoryID: "colors", Text: "blue"},
	}
	c, err := words.New(cats, ws)
	require.NoError(t, err)
	return c
}

// New opens a temporary store and builds a service with a session cap of 2.
func New(t testing.TB) *Fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "practice.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	clock := &Clock{now: Start}
	logger := slog.New(slog.DiscardHandler)
	svc := practice.New(practice.Deps{
		Catalog:   Catalog(t),
		Progress:  st.ProgressRepo(),
		Ledger:    st.LedgerRepo(),
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		Tracker:   tracker.New(st.LedgerRepo(), tracker.WithLogger(logger), tracker.WithClock(clock.Now)),
		Scheduler: spacedrep.NewScheduler(spacedrep.WithSessionCap(2), spacedrep.WithClock(clock.Now)),
		Logger:    logger,
	})
	t.Cleanup(svc.Close)
	return &Fixture{Service: svc, Store: st, Clock: clock}
}
