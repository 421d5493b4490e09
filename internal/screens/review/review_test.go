package review

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/practice/practicetest"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/screens/summary"
)

func key(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

var space = tea.KeyPressMsg{Code: tea.KeySpace, Text: " "}

// run executes cmd and feeds its message back into s.
func run(t *testing.T, s screen.Screen, cmd tea.Cmd) (screen.Screen, tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	return s.Update(cmd())
}

func newReview(t *testing.T) (*ReviewScreen, *practicetest.Fixture) {
	t.Helper()
	f := practicetest.New(t)
	sel, err := f.Service.SelectCategory(context.Background(), "animals", false)
	require.NoError(t, err)

	r := New(f.Service, sel)
	r.now = f.Clock.Now
	r.Init()
	return r, f
}

func TestReview_RevealThenRate(t *testing.T) {
	r, f := newReview(t)

	assert.Equal(t, "🐾 Animals", r.Title())
	view := r.View(80, 30)
	assert.Contains(t, view, "cat")
	assert.NotContains(t, view, "purrs")

	// Ratings are ignored until the meaning is shown.
	_, cmd := r.Update(key('e'))
	assert.Nil(t, cmd)

	r.Update(space)
	assert.True(t, r.revealed)
	assert.Contains(t, r.View(80, 30), "purrs")
	assert.Len(t, r.KeyHints(), 4)

	_, cmd = r.Update(key('e'))
	_, cmd = run(t, r, cmd)
	assert.Nil(t, cmd)

	require.NotNil(t, r.last)
	assert.Equal(t, 15, r.last.Progress.MasteryLevel)
	assert.Contains(t, r.View(80, 30), "back in 2 days")
	assert.Equal(t, "dog", r.word.Text)
	assert.False(t, r.revealed)
	assert.InDelta(t, 33.33, r.progress, 0.01)

	wp, err := f.Store.ProgressRepo().Get(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 15, wp.MasteryLevel)
}

func TestReview_CompletesCategory(t *testing.T) {
	r, f := newReview(t)

	r.Update(space)
	_, cmd := r.Update(key('m'))
	run(t, r, cmd)

	// Last word of the first batch: the next batch is fetched.
	f.Clock.Advance(90 * time.Second)
	r.Update(space)
	_, cmd = r.Update(key('h'))
	_, cmd = run(t, r, cmd)
	assert.True(t, r.busy)
	assert.Contains(t, r.View(80, 30), "Finding your next words")
	run(t, r, cmd)
	assert.False(t, r.busy)
	assert.Equal(t, "bird", r.word.Text)

	r.Update(space)
	_, cmd = r.Update(key('3'))
	_, cmd = run(t, r, cmd)
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.ReplaceScreenMsg)
	require.True(t, ok, "completion replaces the review with its summary")
	_, ok = msg.Screen.(*summary.SummaryScreen)
	assert.True(t, ok)

	stats := f.Service.Tracker().State()
	assert.Equal(t, 3, len(stats.ReviewedWordIDs))
	n, err := f.Service.CompletionCount(context.Background(), "animals")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestReview_TimeIsCreditedInWholeMinutes(t *testing.T) {
	r, f := newReview(t)

	f.Clock.Advance(40 * time.Second)
	r.Update(space)
	_, cmd := r.Update(key('e'))
	run(t, r, cmd)
	assert.Equal(t, 0, f.Service.Tracker().State().TrackedMinutes)

	f.Clock.Advance(30 * time.Second)
	r.Update(space)
	_, cmd = r.Update(key('e'))
	run(t, r, cmd)
	assert.Equal(t, 1, f.Service.Tracker().State().TrackedMinutes)
	assert.Equal(t, 10*time.Second, r.unbilled)
}

func TestReview_EscKeepsCategoryLocked(t *testing.T) {
	r, f := newReview(t)

	r.Update(space)
	_, cmd := r.Update(key('e'))
	run(t, r, cmd)

	_, cmd = r.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)

	locked, ok := f.Service.Tracker().LockedCategory()
	assert.True(t, ok)
	assert.Equal(t, "animals", locked)

	snap, err := f.Store.SnapshotRepo().Latest(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
}

func TestReview_AheadBanner(t *testing.T) {
	f := practicetest.New(t)
	ctx := context.Background()
	_, err := f.Service.SelectCategory(ctx, "colors", false)
	require.NoError(t, err)
	_, err = f.Service.RateWord(ctx, 4, "easy")
	require.NoError(t, err)

	// Word 5 is left; make it not due so the batch is practice-ahead.
	f.Service.Leave(ctx)
	_, err = f.Service.RateWord(ctx, 5, "easy")
	require.NoError(t, err)
	sel, err := f.Service.SelectCategory(ctx, "colors", false)
	require.NoError(t, err)
	require.True(t, sel.Batch.Ahead)

	r := New(f.Service, sel)
	assert.True(t, strings.Contains(r.View(80, 30), "practicing ahead"))
}
