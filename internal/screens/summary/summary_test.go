package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/wordsprout/wordsprout/internal/router"
	"github.com/wordsprout/wordsprout/internal/tracker"
	"github.com/wordsprout/wordsprout/internal/words"
)

func testScreen() *SummaryScreen {
	return New(
		words.Category{ID: "animals", Name: "Animals", Emoji: "🐾"},
		tracker.CompletionStats{
			CategoryID:      "animals",
			WordsReviewed:   3,
			TotalWords:      3,
			Accuracy:        100,
			SuccessfulWords: 2,
			TimeSpent:       4,
			CompletionDate:  time.Date(2025, 3, 10, 9, 4, 0, 0, time.UTC),
			CompletionCount: 2,
		},
	)
}

func TestSummaryScreen_Title(t *testing.T) {
	if got := testScreen().Title(); got != "Category Complete" {
		t.Errorf("Title = %q", got)
	}
}

func TestSummaryScreen_View(t *testing.T) {
	view := testScreen().View(80, 24)
	for _, want := range []string{"Animals", "3 of 3", "Remembered well: 2", "4 minutes", "2nd time"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestSummaryScreen_EmptyCategory(t *testing.T) {
	s := New(words.Category{ID: "empty", Name: "Empty"}, tracker.CompletionStats{Accuracy: 100})
	view := s.View(80, 24)
	if strings.Contains(view, "Remembered") {
		t.Error("empty category should not show recall count")
	}
	if !strings.Contains(view, "less than a minute") {
		t.Error("expected zero-minute wording")
	}
}

func TestSummaryScreen_EnterPops(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{{Code: tea.KeyEnter}, {Code: tea.KeyEscape}} {
		_, cmd := testScreen().Update(key)
		if cmd == nil {
			t.Fatalf("expected a command for %v", key)
		}
		if _, ok := cmd().(router.PopScreenMsg); !ok {
			t.Errorf("expected PopScreenMsg for %v", key)
		}
	}
}

func TestSummaryScreen_HomeKey(t *testing.T) {
	_, cmd := testScreen().Update(tea.KeyPressMsg{Code: 'h', Text: "h"})
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(router.PopToRootMsg); !ok {
		t.Errorf("expected PopToRootMsg, got %T", cmd())
	}
}

func TestMinutes(t *testing.T) {
	tests := map[int]string{0: "less than a minute", 1: "1 minute", 12: "12 minutes"}
	for n, want := range tests {
		if got := Minutes(n); got != want {
			t.Errorf("Minutes(%d) = %q, want %q", n, got, want)
		}
	}
}
