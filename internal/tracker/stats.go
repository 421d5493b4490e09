package tracker

import (
	"math"
	"time"
)

// CompletionStats is the snapshot produced once when a category session
// completes.
type CompletionStats struct {
	SessionID     string
	CategoryID    string
	WordsReviewed int
	TotalWords    int

	// Accuracy is WordsReviewed / TotalWords * 100, and 100 for an empty
	// category. It counts reviewed words, not successful ones.
	Accuracy float64

	// SuccessfulWords counts reviewed words whose latest outcome was a
	// success. Informational only; Accuracy does not use it.
	SuccessfulWords int

	// TimeSpent is the wall-clock minutes since the session started,
	// rounded to the nearest minute.
	TimeSpent int

	// TrackedMinutes is the sum of TrackTimeSpent increments.
	TrackedMinutes int

	CompletionDate time.Time

	// CompletionCount is the category's ledger count including this
	// completion. Zero when the ledger could not be updated.
	CompletionCount int
}

func buildStats(cs *categorySession, now time.Time) CompletionStats {
	return CompletionStats{
		SessionID:       cs.id,
		CategoryID:      cs.categoryID,
		WordsReviewed:   len(cs.reviewed),
		TotalWords:      cs.totalWords,
		Accuracy:        percent(len(cs.reviewed), cs.totalWords),
		SuccessfulWords: cs.successes(),
		TimeSpent:       elapsedMinutes(cs.startTime, now),
		TrackedMinutes:  cs.trackedMinutes,
		CompletionDate:  now,
	}
}

func elapsedMinutes(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}
	return int(math.Round(now.Sub(start).Minutes()))
}
