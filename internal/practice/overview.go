package practice

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/words"
)

// CategoryOverview summarizes one category for the category picker and the
// progress screen.
type CategoryOverview struct {
	Category    words.Category
	Words       int
	New         int
	Due         int
	Mastered    int // words in the bloom band
	MeanMastery float64
	Completions int

	// NextDue is the earliest scheduled review among words not yet due;
	// nil when every word is due.
	NextDue *time.Time

	// Current is set for the selected category; Locked when it also blocks
	// switching. Progress is its session completion percentage.
	Current  bool
	Locked   bool
	Progress float64
}

// Overview returns a summary row per category in catalog order.
func (s *Service) Overview(ctx context.Context) ([]CategoryOverview, error) {
	catalog := s.Catalog()
	completions, err := s.ledger.AllCompletions(ctx)
	if err != nil {
		return nil, fmt.Errorf("overview: %w", err)
	}
	state := s.tracker.State()
	now := s.scheduler.Now()

	var rows []CategoryOverview
	for _, cat := range catalog.Categories() {
		ids := catalog.WordIDs(cat.ID)
		pool, err := s.progress.List(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("overview %q: %w", cat.ID, err)
		}

		row := CategoryOverview{
			Category:    cat,
			Words:       len(ids),
			Completions: completions[cat.ID],
		}
		total := 0
		for _, wp := range pool {
			total += wp.MasteryLevel
			switch wp.Status(now) {
			case spacedrep.StatusNew:
				row.New++
				row.Due++
			case spacedrep.StatusDue:
				row.Due++
			case spacedrep.StatusScheduled:
				if row.NextDue == nil || wp.NextReview.Before(*row.NextDue) {
					next := *wp.NextReview
					row.NextDue = &next
				}
			}
			if spacedrep.MasteryBand(wp.MasteryLevel) == spacedrep.BandBloom {
				row.Mastered++
			}
		}
		if len(pool) > 0 {
			row.MeanMastery = float64(total) / float64(len(pool))
		}
		if state.CategoryID == cat.ID {
			row.Current = true
			row.Locked = state.Locked()
			row.Progress = state.Progress()
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// DueCount returns how many words across all categories are due now.
func (s *Service) DueCount(ctx context.Context) (int, error) {
	catalog := s.Catalog()
	n := 0
	for _, cat := range catalog.Categories() {
		pool, err := s.progress.List(ctx, catalog.WordIDs(cat.ID))
		if err != nil {
			return 0, fmt.Errorf("due count %q: %w", cat.ID, err)
		}
		n += s.scheduler.DueCount(pool)
	}
	return n, nil
}

// DueWord is a word waiting for review with its schedule.
type DueWord struct {
	Word     words.Word
	Progress spacedrep.WordProgress
}

// DueWords lists the due words of categoryID, weakest first. An empty
// categoryID lists every category in catalog order.
func (s *Service) DueWords(ctx context.Context, categoryID string) ([]DueWord, error) {
	catalog := s.Catalog()
	cats := catalog.Categories()
	if categoryID != "" {
		cat, err := catalog.Category(categoryID)
		if err != nil {
			return nil, err
		}
		cats = []words.Category{cat}
	}

	var out []DueWord
	for _, cat := range cats {
		pool, err := s.progress.List(ctx, catalog.WordIDs(cat.ID))
		if err != nil {
			return nil, fmt.Errorf("due words %q: %w", cat.ID, err)
		}
		due := spacedrep.BuildSession(pool, s.scheduler.Now(), len(pool))
		for _, wp := range due.Words {
			w, err := catalog.Word(wp.WordID)
			if err != nil {
				return nil, err
			}
			out = append(out, DueWord{Word: w, Progress: wp})
		}
	}
	return out, nil
}

// History returns up to limit category session events, newest first. A
// limit below 1 returns all of them.
func (s *Service) History(ctx context.Context, limit int) ([]store.CategoryEvent, error) {
	evs, err := s.events.QueryCategoryEvents(ctx, store.QueryOpts{})
	if err != nil {
		return nil, fmt.Errorf("category history: %w", err)
	}
	slices.Reverse(evs)
	if limit > 0 && len(evs) > limit {
		evs = evs[:limit]
	}
	return evs, nil
}
