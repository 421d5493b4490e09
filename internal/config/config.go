package config

import (
	"time"

	"github.com/wordsprout/wordsprout/internal/llm"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Review   ReviewConfig   `yaml:"review"`
	Reminder ReminderConfig `yaml:"reminder"`
	LLM      llm.Config     `yaml:"llm"`
}

// DatabaseConfig holds SQLite settings.
type DatabaseConfig struct {
	// Path to the database file. Empty selects the XDG data directory.
	Path string `yaml:"path" env:"WORDSPROUT_DB"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORDSPROUT_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORDSPROUT_LOG_FORMAT" env-default:"text"`
	// File, when set, receives log output instead of stderr. The TUI
	// always logs to a file so records do not corrupt the screen.
	File string `yaml:"file" env:"WORDSPROUT_LOG_FILE"`
}

// ReviewConfig holds review-session settings.
type ReviewConfig struct {
	SessionCap int `yaml:"session_cap" env:"WORDSPROUT_SESSION_CAP" env-default:"10"`
}

// ReminderConfig holds the due-word reminder settings.
type ReminderConfig struct {
	Enabled  bool          `yaml:"enabled"  env:"WORDSPROUT_REMINDER_ENABLED"`
	Interval time.Duration `yaml:"interval" env:"WORDSPROUT_REMINDER_INTERVAL" env-default:"1h"`

	// Reminders fire only between StartHour and EndHour inclusive, local time.
	StartHour int `yaml:"start_hour" env:"WORDSPROUT_REMINDER_START_HOUR" env-default:"8"`
	EndHour   int `yaml:"end_hour"   env:"WORDSPROUT_REMINDER_END_HOUR"   env-default:"20"`
}
