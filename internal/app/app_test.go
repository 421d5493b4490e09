package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsprout/wordsprout/internal/practice/practicetest"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screens/history"
	"github.com/wordsprout/wordsprout/internal/screens/progress"
	"github.com/wordsprout/wordsprout/internal/tracker"
)

func TestAppModel_DueCount(t *testing.T) {
	f := practicetest.New(t)
	m := newAppModel(Options{Service: f.Service})

	msg := m.refreshDue()()
	updated, _ := m.Update(msg)
	m = updated.(AppModel)
	assert.Equal(t, 5, m.due)
	assert.Equal(t, 5, m.headerInfo().Due)
}

func TestAppModel_HeaderShowsLockedCategory(t *testing.T) {
	f := practicetest.New(t)
	ctx := context.Background()
	m := newAppModel(Options{Service: f.Service})
	assert.Empty(t, m.headerInfo().Category)

	_, err := f.Service.SelectCategory(ctx, "animals", false)
	require.NoError(t, err)
	info := m.headerInfo()
	assert.Equal(t, "🐾 Animals", info.Category)
	assert.False(t, info.Locked)

	_, err = f.Service.RateWord(ctx, 1, "hard")
	require.NoError(t, err)
	assert.True(t, m.headerInfo().Locked)
}

func TestAppModel_NavigationRefreshesDue(t *testing.T) {
	f := practicetest.New(t)
	m := newAppModel(Options{Service: f.Service})

	updated, cmd := m.Update(router.PushScreenMsg{Screen: progress.New(f.Service)})
	m = updated.(AppModel)
	require.NotNil(t, cmd)
	assert.Equal(t, 2, m.router.Depth())
	assert.Equal(t, "My Garden", m.router.Active().Title())

	m.width = 120
	assert.Equal(t, "My Garden", m.title())
	m.router.Push(history.New(f.Service))
	assert.Equal(t, "My Garden › History", m.title())
	m.width = 40
	assert.Equal(t, "History", m.title())

	hints := m.footerHints(m.router.Active())
	assert.Equal(t, "Ctrl+C", hints[len(hints)-1].Key)
}

func TestAppModel_CtrlCSavesSnapshot(t *testing.T) {
	f := practicetest.New(t)
	ctx := context.Background()
	_, err := f.Service.SelectCategory(ctx, "animals", false)
	require.NoError(t, err)
	_, err = f.Service.RateWord(ctx, 1, "easy")
	require.NoError(t, err)

	m := newAppModel(Options{Service: f.Service})
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	snap, err := f.Store.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.NotNil(t, snap.Data.Tracker)
	assert.Equal(t, tracker.PhaseActive, snap.Data.Tracker.Phase)
	assert.Equal(t, []int{1}, snap.Data.Tracker.ReviewedWordIDs)
}

func TestRun_RequiresService(t *testing.T) {
	assert.Error(t, Run(context.Background(), Options{}))
}

func TestAppModel_SplashHandsOverToHome(t *testing.T) {
	f := practicetest.New(t)
	m := newAppModel(Options{Service: f.Service})
	assert.Equal(t, "", m.router.Active().Title())

	key := tea.KeyPressMsg{Code: 'x', Text: "x"}
	updated, _ := m.Update(key)
	m = updated.(AppModel)
	updated, cmd := m.Update(key)
	m = updated.(AppModel)
	require.NotNil(t, cmd)

	updated, _ = m.Update(cmd())
	m = updated.(AppModel)
	assert.Equal(t, "Home", m.router.Active().Title())
	assert.Equal(t, 1, m.router.Depth())
}
