package spacedrep

import (
	"testing"
	"time"
)

func at(t time.Time) *time.Time { return &t }

func TestIsDue_NeverReviewed(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{WordID: 1}
	if !wp.IsDue(now) {
		t.Error("expected never-reviewed word to be due")
	}
}

func TestIsDue_NeverReviewedIgnoresNextReview(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{WordID: 1, NextReview: at(now.AddDate(0, 0, 30))}
	if !wp.IsDue(now) {
		t.Error("expected word without lastReviewed to be due regardless of nextReview")
	}
}

func TestIsDue_MissingSchedule(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{WordID: 1, LastReviewed: at(now.AddDate(0, 0, -1))}
	if !wp.IsDue(now) {
		t.Error("expected word without nextReview to be due")
	}
}

func TestIsDue_BeforeDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{LastReviewed: at(now), NextReview: at(now.Add(24 * time.Hour))}
	if wp.IsDue(now) {
		t.Error("expected not due before review date")
	}
}

func TestIsDue_OnDate(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{LastReviewed: at(now.AddDate(0, 0, -2)), NextReview: at(now)}
	if !wp.IsDue(now) {
		t.Error("expected due on review date")
	}
}

func TestIsDue_AfterDate(t *testing.T) {
	now := time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC)
	review := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{LastReviewed: at(review.AddDate(0, 0, -1)), NextReview: at(review)}
	if !wp.IsDue(now) {
		t.Error("expected due after review date")
	}
}

func TestOverdueDays(t *testing.T) {
	review := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{LastReviewed: at(review.AddDate(0, 0, -1)), NextReview: at(review)}

	if got := wp.OverdueDays(review.Add(-time.Hour)); got != 0 {
		t.Errorf("OverdueDays() before due = %f, want 0", got)
	}
	got := wp.OverdueDays(review.Add(72 * time.Hour))
	if got < 2.99 || got > 3.01 {
		t.Errorf("OverdueDays() = %f, want ~3.0", got)
	}
	if got := NewWordProgress(2).OverdueDays(review); got != 0 {
		t.Errorf("OverdueDays() unscheduled = %f, want 0", got)
	}
}

func TestStatus(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		wp   WordProgress
		want ReviewStatus
	}{
		{"never reviewed", WordProgress{}, StatusNew},
		{"due", WordProgress{LastReviewed: at(now.AddDate(0, 0, -3)), NextReview: at(now.AddDate(0, 0, -1))}, StatusDue},
		{"scheduled", WordProgress{LastReviewed: at(now), NextReview: at(now.AddDate(0, 0, 4))}, StatusScheduled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.wp.Status(now); got != tt.want {
				t.Errorf("Status() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDaysUntilReview_FutureDue(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	// 4.5 days in the future rounds up to 5.
	wp := WordProgress{LastReviewed: at(now), NextReview: at(now.Add(108 * time.Hour))}
	if got := wp.DaysUntilReview(now); got != 5 {
		t.Errorf("DaysUntilReview() = %d, want 5", got)
	}
}

func TestDaysUntilReview_WholeDays(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	wp, err := Rate(NewWordProgress(1), RatingHard, now)
	if err != nil {
		t.Fatal(err)
	}
	if got := wp.DaysUntilReview(now); got != 1 {
		t.Errorf("DaysUntilReview() after hard = %d, want 1", got)
	}
	if got := wp.DaysUntilReview(now.Add(time.Hour)); got != 1 {
		t.Errorf("DaysUntilReview() 23h out = %d, want 1", got)
	}
	wp.NextReview = at(now.AddDate(0, 0, 3))
	if got := wp.DaysUntilReview(now); got != 3 {
		t.Errorf("DaysUntilReview() 3 days out = %d, want 3", got)
	}
}

func TestDaysUntilReview_AlreadyDue(t *testing.T) {
	now := time.Date(2025, 1, 5, 12, 0, 0, 0, time.UTC)
	wp := WordProgress{LastReviewed: at(now.AddDate(0, 0, -5)), NextReview: at(now.AddDate(0, 0, -4))}
	if got := wp.DaysUntilReview(now); got != 0 {
		t.Errorf("DaysUntilReview() = %d, want 0", got)
	}
}
