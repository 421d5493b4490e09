package practice

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/tracker"
)

// SaveSnapshot persists the tracker state so an unfinished category can be
// resumed after a restart. Failures are logged.
func (s *Service) SaveSnapshot(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	seq, err := s.events.LastSequence(ctx)
	if err != nil {
		s.logger.Warn("snapshot sequence", slog.String("error", err.Error()))
	}
	state := s.tracker.State()
	snap := &store.Snapshot{
		Sequence:  seq,
		Timestamp: s.scheduler.Now(),
		Data: store.SnapshotData{
			Version: SnapshotVersion,
			Tracker: &state,
		},
	}
	if err := s.snapshots.Save(ctx, snap); err != nil {
		s.logger.Error("save snapshot", slog.String("error", err.Error()))
		return
	}
	if err := s.snapshots.Prune(ctx, SnapshotsKept); err != nil {
		s.logger.Warn("prune snapshots", slog.String("error", err.Error()))
	}
}

// Resume restores the category session from the latest snapshot. It
// reports whether an in-progress session was restored. A session whose
// category no longer exists is dropped. The session keeps the word set it
// started with, minus words the catalog no longer has in that category;
// snapshots without a word set take the category's current words.
func (s *Service) Resume(ctx context.Context) (bool, error) {
	if s.snapshots == nil {
		return false, nil
	}
	snap, err := s.snapshots.Latest(ctx)
	if err != nil {
		return false, fmt.Errorf("resume: %w", err)
	}
	if snap == nil || snap.Data.Tracker == nil {
		return false, nil
	}

	state := *snap.Data.Tracker
	if state.Phase != tracker.PhaseActive {
		return false, nil
	}
	catalog := s.Catalog()
	if !catalog.HasCategory(state.CategoryID) {
		s.logger.Warn("dropping session for unknown category", slog.String("category", state.CategoryID))
		return false, nil
	}
	if state.WordIDs == nil {
		state.WordIDs = catalog.WordIDs(state.CategoryID)
	} else {
		state.WordIDs = slices.DeleteFunc(slices.Clone(state.WordIDs), func(id int) bool {
			w, err := catalog.Word(id)
			return err != nil || w.CategoryID != state.CategoryID
		})
	}
	state.TotalWords = len(state.WordIDs)

	s.tracker.Restore(state)
	_, ok := s.tracker.CurrentCategory()
	if ok {
		s.logger.Info("category session resumed",
			slog.String("category", state.CategoryID),
			slog.Int("reviewed", len(state.ReviewedWordIDs)),
			slog.Int("total", state.TotalWords))
	}
	return ok, nil
}
