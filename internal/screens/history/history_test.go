package history

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/practice/practicetest"
	"github.com/wordsprout/wordsprout/internal/router"
)

func TestHistory_ListsSessionsNewestFirst(t *testing.T) {
	f := practicetest.New(t)
	ctx := context.Background()

	_, err := f.Service.SelectCategory(ctx, "colors", false)
	require.NoError(t, err)
	for _, id := range []int{4, 5} {
		_, err = f.Service.RateWord(ctx, id, "easy")
		require.NoError(t, err)
	}
	_, err = f.Service.SelectCategory(ctx, "animals", false)
	require.NoError(t, err)
	_, err = f.Service.RateWord(ctx, 1, "medium")
	require.NoError(t, err)
	_, err = f.Service.SelectCategory(ctx, "colors", true)
	require.NoError(t, err)

	h := New(f.Service)
	h.now = f.Clock.Now
	assert.Contains(t, h.View(100, 30), "Loading")

	h.Update(h.Init()())
	require.NotEmpty(t, h.entries)
	assert.Equal(t, "colors", h.entries[0].CategoryID)
	assert.Equal(t, "start", h.entries[0].Action)

	view := h.View(100, 30)
	assert.Contains(t, view, "switched away")
	assert.Contains(t, view, "finished")
	assert.Contains(t, view, "Animals")

	// Expand the unlock event, second newest.
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.True(t, h.expanded[1])
	assert.Contains(t, h.View(100, 30), "1 of 3 words reviewed")
}

func TestHistory_Empty(t *testing.T) {
	f := practicetest.New(t)
	h := New(f.Service)
	h.Update(h.Init()())
	assert.Contains(t, h.View(100, 30), "Nothing here yet")

	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}
