// Package reminder periodically tells the learner how many words are due.
package reminder

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dustin/go-humanize/english"
	"github.com/go-co-op/gocron"

	"github.com/wordsprout/wordsprout/internal/config"
)

// DueCounter reports how many words are due now.
type DueCounter interface {
	DueCount(ctx context.Context) (int, error)
}

// Notifier delivers a reminder.
type Notifier interface {
	Notify(ctx context.Context, due int) error
}

// Service runs due-word checks on a gocron schedule.
type Service struct {
	cfg      config.ReminderConfig
	counter  DueCounter
	notifier Notifier
	logger   *slog.Logger
	now      func() time.Time

	sched *gocron.Scheduler
}

// New creates a Service. It does nothing until Start.
func New(cfg config.ReminderConfig, counter DueCounter, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:      cfg,
		counter:  counter,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// Start schedules a check every configured interval, the first one right
// away. Checks never overlap.
func (s *Service) Start(ctx context.Context) error {
	if s.sched != nil {
		return fmt.Errorf("reminder already started")
	}
	sched := gocron.NewScheduler(time.Local)
	sched.SingletonModeAll()
	_, err := sched.Every(s.cfg.Interval).Do(func() {
		if _, _, err := s.Check(ctx); err != nil {
			s.logger.Error("reminder check failed", slog.String("error", err.Error()))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule reminder: %w", err)
	}
	sched.StartAsync()
	s.sched = sched
	s.logger.Info("reminders started",
		slog.Duration("interval", s.cfg.Interval),
		slog.Int("start_hour", s.cfg.StartHour),
		slog.Int("end_hour", s.cfg.EndHour))
	return nil
}

// Stop ends the schedule. It is safe to call without Start.
func (s *Service) Stop() {
	if s.sched == nil {
		return
	}
	s.sched.Stop()
	s.sched = nil
}

// Check counts due words and notifies when there are any and the current
// hour is inside the reminder window. Returns the count and whether a
// reminder went out.
func (s *Service) Check(ctx context.Context) (int, bool, error) {
	if h := s.now().Hour(); h < s.cfg.StartHour || h > s.cfg.EndHour {
		s.logger.Debug("outside reminder hours, skipping", slog.Int("hour", h))
		return 0, false, nil
	}
	due, err := s.counter.DueCount(ctx)
	if err != nil {
		return 0, false, fmt.Errorf("count due words: %w", err)
	}
	if due == 0 {
		return 0, false, nil
	}
	if err := s.notifier.Notify(ctx, due); err != nil {
		return due, false, fmt.Errorf("notify: %w", err)
	}
	return due, true, nil
}

// WriterNotifier prints reminders to a terminal.
type WriterNotifier struct {
	W io.Writer
}

func (n WriterNotifier) Notify(_ context.Context, due int) error {
	_, err := fmt.Fprintln(n.W, Message(due))
	return err
}

// LogNotifier records reminders in the log.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n LogNotifier) Notify(ctx context.Context, due int) error {
	n.Logger.InfoContext(ctx, "words due for review", slog.Int("due", due))
	return nil
}

// Message is the reminder text for due words.
func Message(due int) string {
	return "🌱 " + english.Plural(due, "word is", "words are") + " ready to practice!"
}
