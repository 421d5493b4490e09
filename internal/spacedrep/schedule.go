package spacedrep

// Mastery bounds. Every rating result is clamped into [MinMastery, MaxMastery].
const (
	MinMastery = 0
	MaxMastery = 100
)

// DefaultSessionCap is the maximum number of words in one review session.
const DefaultSessionCap = 10

// masteryDelta is the mastery change applied for each rating.
var masteryDelta = map[Rating]int{
	RatingEasy:   15,
	RatingMedium: 8,
	RatingHard:   -5,
}

// intervalDays returns the review interval for a rating, computed from the
// post-update mastery level m.
func intervalDays(r Rating, m int) int {
	switch r {
	case RatingEasy:
		return max(1, (m/10)*2)
	case RatingMedium:
		return max(1, m/20)
	case RatingHard:
		return 1
	}
	panic("spacedrep: interval for unvalidated rating " + string(r))
}

// clampMastery keeps m within [MinMastery, MaxMastery].
func clampMastery(m int) int {
	return min(MaxMastery, max(MinMastery, m))
}

// Band groups mastery levels for display.
type Band string

const (
	BandSeedling Band = "seedling"
	BandSprout   Band = "sprout"
	BandBloom    Band = "bloom"
)

// MasteryBand maps a mastery level to its display band:
// 0-39 seedling, 40-79 sprout, 80-100 bloom.
func MasteryBand(m int) Band {
	switch {
	case m >= 80:
		return BandBloom
	case m >= 40:
		return BandSprout
	default:
		return BandSeedling
	}
}
