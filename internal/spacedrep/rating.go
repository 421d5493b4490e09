package spacedrep

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRating is returned when a rating is not easy, medium or hard.
var ErrInvalidRating = errors.New("invalid rating")

// Rating is the learner's self-assessment of a word review.
type Rating string

const (
	RatingEasy   Rating = "easy"
	RatingMedium Rating = "medium"
	RatingHard   Rating = "hard"
)

// AllRatings returns every rating in display order.
func AllRatings() []Rating {
	return []Rating{RatingEasy, RatingMedium, RatingHard}
}

// Valid reports whether r is one of the three known ratings.
func (r Rating) Valid() bool {
	_, ok := masteryDelta[r]
	return ok
}

// Successful reports whether the rating counts as a successful recall.
func (r Rating) Successful() bool {
	return r == RatingEasy || r == RatingMedium
}

// ParseRating accepts "easy", "medium", "hard" or their first letters,
// case-insensitively.
func ParseRating(s string) (Rating, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "e":
		return RatingEasy, nil
	case "medium", "m":
		return RatingMedium, nil
	case "hard", "h":
		return RatingHard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidRating, s)
}
