package spacedrep

import (
	"math"
	"time"
)

// WordProgress holds the spaced repetition state for a single word.
// A nil LastReviewed means the word was never reviewed; a nil NextReview
// means it has no schedule yet. Either makes the word due immediately.
type WordProgress struct {
	WordID       int        `json:"word_id"`
	MasteryLevel int        `json:"mastery_level"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
	NextReview   *time.Time `json:"next_review,omitempty"`
}

// NewWordProgress returns the progress record of a word that was never reviewed.
func NewWordProgress(wordID int) WordProgress {
	return WordProgress{WordID: wordID}
}

// IsDue reports whether the word should be offered for review at now.
func IsDue(wp WordProgress, now time.Time) bool {
	if wp.LastReviewed == nil || wp.NextReview == nil {
		return true
	}
	return !now.Before(*wp.NextReview)
}

// IsDue is the method form of the package-level IsDue.
func (wp WordProgress) IsDue(now time.Time) bool {
	return IsDue(wp, now)
}

// Reviewed reports whether the word has ever been rated.
func (wp WordProgress) Reviewed() bool {
	return wp.LastReviewed != nil
}

// OverdueDays returns how many days past due the word is. Returns 0 if not
// yet due or never scheduled.
func (wp WordProgress) OverdueDays(now time.Time) float64 {
	if wp.NextReview == nil || now.Before(*wp.NextReview) {
		return 0
	}
	return now.Sub(*wp.NextReview).Hours() / 24.0
}

// ReviewStatus describes a word's review status for display.
type ReviewStatus string

const (
	StatusNew       ReviewStatus = "new"
	StatusDue       ReviewStatus = "due"
	StatusScheduled ReviewStatus = "scheduled"
)

// Status returns the review status for UI display.
func (wp WordProgress) Status(now time.Time) ReviewStatus {
	if !wp.Reviewed() {
		return StatusNew
	}
	if wp.IsDue(now) {
		return StatusDue
	}
	return StatusScheduled
}

// DaysUntilReview returns the whole days until the next review, rounding a
// partial day up. Returns 0 if already due.
func (wp WordProgress) DaysUntilReview(now time.Time) int {
	if wp.IsDue(now) {
		return 0
	}
	return int(math.Ceil(wp.NextReview.Sub(now).Hours() / 24.0))
}
