package config

import (
	"fmt"
	"strings"
	"time"
)

// MinReminderInterval is the shortest accepted reminder interval.
const MinReminderInterval = time.Minute

// Validate performs business-rule validation on the loaded configuration.
// Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Log.validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if c.Review.SessionCap < 1 {
		return fmt.Errorf("review.session_cap must be >= 1 (got %d)", c.Review.SessionCap)
	}
	if c.Reminder.Enabled && c.Reminder.Interval < MinReminderInterval {
		return fmt.Errorf("reminder.interval must be at least %s (got %s)", MinReminderInterval, c.Reminder.Interval)
	}
	if r := c.Reminder; r.StartHour < 0 || r.EndHour > 23 || r.StartHour > r.EndHour {
		return fmt.Errorf("reminder hours must satisfy 0 <= start_hour <= end_hour <= 23 (got %d-%d)", r.StartHour, r.EndHour)
	}
	if err := c.LLM.Validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	return nil
}

func (l *LogConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown level %q", l.Level)
	}
	switch strings.ToLower(strings.TrimSpace(l.Format)) {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q", l.Format)
	}
	return nil
}
