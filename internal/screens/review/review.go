// Package review runs the word review cards of the selected category.
package review

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/screen"
	"github.com/wordsprout/wordsprout/internal/screens/summary"
	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/ui/layout"
	"github.com/wordsprout/wordsprout/internal/words"
)

type ratedMsg struct {
	res *practice.RateResult
	err error
}

type batchMsg struct {
	batch *practice.Batch
	err   error
}

// ReviewScreen shows one word at a time. The learner reveals the meaning,
// then rates how well they knew it.
type ReviewScreen struct {
	svc      *practice.Service
	category words.Category
	batch    practice.Batch
	index    int
	word     words.Word
	revealed bool
	busy     bool

	progress float64
	last     *practice.RateResult
	errMsg   string

	// Time on cards is credited to the session in whole minutes; the
	// remainder carries over to the next card.
	now       func() time.Time
	cardShown time.Time
	unbilled  time.Duration
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a ReviewScreen for a fresh selection.
func New(svc *practice.Service, sel *practice.Selection) *ReviewScreen {
	r := &ReviewScreen{
		svc:      svc,
		category: sel.Category,
		batch:    sel.Batch,
		progress: svc.Tracker().CategoryProgress(),
		now:      time.Now,
	}
	r.showCard()
	return r
}

func (r *ReviewScreen) Init() tea.Cmd {
	r.cardShown = r.now()
	return nil
}

func (r *ReviewScreen) Title() string { return r.category.Label() }

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	if r.word.ID == 0 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	if !r.revealed {
		return []layout.KeyHint{
			{Key: "Space", Description: "Show meaning"},
			{Key: "Esc", Description: "Take a break"},
		}
	}
	return []layout.KeyHint{
		{Key: "E", Description: "Easy"},
		{Key: "M", Description: "Medium"},
		{Key: "H", Description: "Hard"},
		{Key: "Esc", Description: "Take a break"},
	}
}

// showCard loads the word at the current index, or clears it at the end of
// the batch.
func (r *ReviewScreen) showCard() {
	r.revealed = false
	r.word = words.Word{}
	for r.index < r.batch.Len() {
		w, err := r.svc.Catalog().Word(r.batch.Words[r.index].WordID)
		if err == nil {
			r.word = w
			return
		}
		r.index++
	}
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case ratedMsg:
		return r.handleRated(msg)
	case batchMsg:
		r.busy = false
		if msg.err != nil {
			r.errMsg = msg.err.Error()
			return r, nil
		}
		r.batch, r.index = *msg.batch, 0
		r.showCard()
		r.cardShown = r.now()
		return r, nil
	case tea.KeyMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	if key == "esc" {
		r.billTime()
		r.svc.SaveSnapshot(context.Background())
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if r.busy || r.word.ID == 0 {
		return r, nil
	}

	if !r.revealed {
		switch key {
		case "space", "enter":
			r.revealed = true
		}
		return r, nil
	}

	rating, err := spacedrep.ParseRating(key)
	if err != nil {
		switch key {
		case "1":
			rating = spacedrep.RatingEasy
		case "2":
			rating = spacedrep.RatingMedium
		case "3":
			rating = spacedrep.RatingHard
		default:
			return r, nil
		}
	}
	r.billTime()
	r.busy = true
	wordID := r.word.ID
	return r, func() tea.Msg {
		res, err := r.svc.RateWord(context.Background(), wordID, rating)
		return ratedMsg{res: res, err: err}
	}
}

func (r *ReviewScreen) handleRated(msg ratedMsg) (screen.Screen, tea.Cmd) {
	r.busy = false
	if msg.err != nil {
		r.errMsg = msg.err.Error()
		return r, nil
	}
	r.errMsg = ""
	r.last = msg.res
	r.progress = msg.res.CategoryProgress

	if msg.res.Completed != nil {
		next := summary.New(r.category, *msg.res.Completed)
		return r, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	r.index++
	r.showCard()
	r.cardShown = r.now()
	if r.word.ID != 0 {
		return r, nil
	}
	r.busy = true
	return r, func() tea.Msg {
		b, err := r.svc.NextBatch(context.Background())
		return batchMsg{batch: b, err: err}
	}
}

// billTime credits the time spent on the current card.
func (r *ReviewScreen) billTime() {
	now := r.now()
	if !r.cardShown.IsZero() {
		r.unbilled += now.Sub(r.cardShown)
	}
	r.cardShown = now
	if whole := r.unbilled.Truncate(time.Minute); whole > 0 {
		r.svc.TrackTime(whole)
		r.unbilled -= whole
	}
}
