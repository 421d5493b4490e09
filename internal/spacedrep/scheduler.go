package spacedrep

import (
	"fmt"
	"slices"
	"time"
)

// Rate applies a rating to a word and returns the updated record. The input
// is not modified; callers are responsible for persisting the result.
func Rate(wp WordProgress, r Rating, now time.Time) (WordProgress, error) {
	delta, ok := masteryDelta[r]
	if !ok {
		return wp, fmt.Errorf("rate word %d: %w: %q", wp.WordID, ErrInvalidRating, r)
	}

	m := clampMastery(wp.MasteryLevel + delta)
	next := now.AddDate(0, 0, intervalDays(r, m))
	reviewed := now

	wp.MasteryLevel = m
	wp.LastReviewed = &reviewed
	wp.NextReview = &next
	return wp, nil
}

// ReviewSession is a bounded batch of due words for one practice sitting,
// weakest first.
type ReviewSession struct {
	Words []WordProgress
}

// Len returns the number of words in the session.
func (rs ReviewSession) Len() int {
	return len(rs.Words)
}

// CaughtUp reports whether nothing is due.
func (rs ReviewSession) CaughtUp() bool {
	return len(rs.Words) == 0
}

// WordIDs returns the ids of the session words in order.
func (rs ReviewSession) WordIDs() []int {
	ids := make([]int, len(rs.Words))
	for i, w := range rs.Words {
		ids[i] = w.WordID
	}
	return ids
}

// BuildSession selects up to limit due words from pool, sorted ascending by
// mastery. Ties keep their pool order. A limit below 1 yields an empty session.
func BuildSession(pool []WordProgress, now time.Time, limit int) ReviewSession {
	var due []WordProgress
	for _, wp := range pool {
		if IsDue(wp, now) {
			due = append(due, wp)
		}
	}

	slices.SortStableFunc(due, func(a, b WordProgress) int {
		return a.MasteryLevel - b.MasteryLevel
	})

	if limit < 0 {
		limit = 0
	}
	if len(due) > limit {
		due = due[:limit]
	}
	return ReviewSession{Words: due}
}

// BuildAhead selects up to limit words of pool that are not yet due, soonest
// review first, for practicing ahead of schedule once nothing is due. Ties
// keep their pool order.
func BuildAhead(pool []WordProgress, now time.Time, limit int) ReviewSession {
	var ahead []WordProgress
	for _, wp := range pool {
		if !IsDue(wp, now) {
			ahead = append(ahead, wp)
		}
	}

	slices.SortStableFunc(ahead, func(a, b WordProgress) int {
		return a.NextReview.Compare(*b.NextReview)
	})

	if limit < 0 {
		limit = 0
	}
	if len(ahead) > limit {
		ahead = ahead[:limit]
	}
	return ReviewSession{Words: ahead}
}

// Scheduler binds the scheduling rules to a session cap and a clock.
type Scheduler struct {
	sessionCap int
	now        func() time.Time
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithSessionCap overrides DefaultSessionCap.
func WithSessionCap(n int) Option {
	return func(s *Scheduler) {
		if n > 0 {
			s.sessionCap = n
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScheduler creates a scheduler with the given options.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		sessionCap: DefaultSessionCap,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SessionCap returns the configured session size.
func (s *Scheduler) SessionCap() int {
	return s.sessionCap
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.now()
}

// IsDue reports whether wp is due at the scheduler's current time.
func (s *Scheduler) IsDue(wp WordProgress) bool {
	return IsDue(wp, s.now())
}

// Rate rates wp at the scheduler's current time.
func (s *Scheduler) Rate(wp WordProgress, r Rating) (WordProgress, error) {
	return Rate(wp, r, s.now())
}

// BuildSession builds a capped session at the scheduler's current time.
func (s *Scheduler) BuildSession(pool []WordProgress) ReviewSession {
	return BuildSession(pool, s.now(), s.sessionCap)
}

// BuildAhead builds a capped practice-ahead session at the scheduler's current time.
func (s *Scheduler) BuildAhead(pool []WordProgress) ReviewSession {
	return BuildAhead(pool, s.now(), s.sessionCap)
}

// DueCount returns how many words of pool are due now.
func (s *Scheduler) DueCount(pool []WordProgress) int {
	now := s.now()
	n := 0
	for _, wp := range pool {
		if IsDue(wp, now) {
			n++
		}
	}
	return n
}
