package tracker

import (
	"errors"
	"slices"
	"time"
)

var (
	// ErrEmptyCategory is returned when a session is started without a category id.
	ErrEmptyCategory = errors.New("category id must not be empty")

	// ErrNegativeTotalWords is returned when a session is started with totalWords < 0.
	ErrNegativeTotalWords = errors.New("total words must not be negative")
)

// Phase is the lifecycle phase of the tracker's category session.
type Phase int

const (
	PhaseInactive  Phase = iota // No category selected
	PhaseActive                 // Reviewing words of a category
	PhaseCompleted              // Every word reviewed, completion announced
)

func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return "inactive"
	}
}

// State is a read-only copy of the tracker's session, used for display and
// for persisting an in-progress session across restarts.
type State struct {
	SessionID       string    `json:"session_id,omitempty"`
	CategoryID      string    `json:"category_id,omitempty"`
	Phase           Phase     `json:"phase"`
	TotalWords      int       `json:"total_words"`
	WordIDs         []int     `json:"word_ids,omitempty"`
	ReviewedWordIDs []int     `json:"reviewed_word_ids,omitempty"`
	MissedWordIDs   []int     `json:"missed_word_ids,omitempty"`
	SuccessfulWords int       `json:"successful_words"`
	StartTime       time.Time `json:"start_time"`
	TrackedMinutes  int       `json:"tracked_minutes"`
}

// Locked reports whether this state blocks a category switch.
func (s State) Locked() bool {
	return s.Phase == PhaseActive && len(s.ReviewedWordIDs) > 0
}

// Covers reports whether wordID belongs to the session's word set. A session
// started without a word set covers every id.
func (s State) Covers(wordID int) bool {
	return s.WordIDs == nil || slices.Contains(s.WordIDs, wordID)
}

// Progress returns the percentage of words reviewed, 100 for an empty category.
func (s State) Progress() float64 {
	return percent(len(s.ReviewedWordIDs), s.TotalWords)
}

// categorySession is the mutable session owned by a Tracker.
type categorySession struct {
	id             string
	categoryID     string
	totalWords     int
	words          []int        // fixed word set, nil when only a total is known
	reviewed       map[int]bool // word id -> last outcome
	order          []int
	startTime      time.Time
	trackedMinutes int
	completed      bool
}

func newCategorySession(id, categoryID string, totalWords int, start time.Time) *categorySession {
	return &categorySession{
		id:         id,
		categoryID: categoryID,
		totalWords: totalWords,
		reviewed:   make(map[int]bool),
		startTime:  start,
	}
}

// withWords fixes the session's word set. Duplicate ids count once.
func (cs *categorySession) withWords(ids []int) *categorySession {
	cs.words = make([]int, 0, len(ids))
	for _, id := range ids {
		if !slices.Contains(cs.words, id) {
			cs.words = append(cs.words, id)
		}
	}
	cs.totalWords = len(cs.words)
	return cs
}

func (cs *categorySession) covers(wordID int) bool {
	return cs.words == nil || slices.Contains(cs.words, wordID)
}

// track records a review. Returns false if the word was already reviewed or
// lies outside the session's word set.
func (cs *categorySession) track(wordID int, success bool) bool {
	if !cs.covers(wordID) {
		return false
	}
	_, seen := cs.reviewed[wordID]
	cs.reviewed[wordID] = success
	if seen {
		return false
	}
	cs.order = append(cs.order, wordID)
	return true
}

func (cs *categorySession) isComplete() bool {
	return len(cs.reviewed) >= cs.totalWords
}

func (cs *categorySession) locked() bool {
	return !cs.completed && len(cs.reviewed) > 0
}

func (cs *categorySession) successes() int {
	n := 0
	for _, ok := range cs.reviewed {
		if ok {
			n++
		}
	}
	return n
}

func (cs *categorySession) state() State {
	phase := PhaseActive
	if cs.completed {
		phase = PhaseCompleted
	}
	ids := make([]int, len(cs.order))
	copy(ids, cs.order)
	var missed []int
	for _, id := range cs.order {
		if !cs.reviewed[id] {
			missed = append(missed, id)
		}
	}
	return State{
		SessionID:       cs.id,
		CategoryID:      cs.categoryID,
		Phase:           phase,
		TotalWords:      cs.totalWords,
		WordIDs:         slices.Clone(cs.words),
		ReviewedWordIDs: ids,
		MissedWordIDs:   missed,
		SuccessfulWords: cs.successes(),
		StartTime:       cs.startTime,
		TrackedMinutes:  cs.trackedMinutes,
	}
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 100
	}
	return float64(part) / float64(whole) * 100
}
