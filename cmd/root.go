// Package cmd holds the wordsprout command line.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordsprout/wordsprout/internal/app"
	"github.com/wordsprout/wordsprout/internal/config"
	"github.com/wordsprout/wordsprout/internal/llm"
	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/tracker"
	"github.com/wordsprout/wordsprout/internal/words"
)

var rootCmd = &cobra.Command{
	Use:   "wordsprout",
	Short: "Vocabulary practice for kids",
	Long: "WordSprout is a terminal app that helps children grow their vocabulary\n" +
		"with spaced repetition, one word category at a time.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the YAML config file (overrides WORDSPROUT_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to the SQLite database file (overrides WORDSPROUT_DB)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(remindCmd)
	rootCmd.AddCommand(versionCmd)
}

// env is what every command works with: configuration, a logger and the
// open store.
type env struct {
	cfg      *config.Config
	logger   *slog.Logger
	store    *store.Store
	closeLog func() error
}

// openEnv loads the config, opens the log output and the store. tui sends
// log records to a file instead of stderr.
func openEnv(cmd *cobra.Command, tui bool) (*env, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	w, closeLog, err := app.OpenLogOutput(cfg.Log, dbPath, tui)
	if err != nil {
		return nil, err
	}
	logger := app.NewLogger(cfg.Log, w)

	st, err := store.Open(dbPath)
	if err != nil {
		closeLog()
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("store opened", slog.String("path", dbPath))

	return &env{cfg: cfg, logger: logger, store: st, closeLog: closeLog}, nil
}

// Close releases the store and the log file.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.logger.Warn("close store", slog.String("error", err.Error()))
	}
	e.closeLog()
}

// catalog loads the built-in words merged with the stored custom words.
func (e *env) catalog(ctx context.Context) (*words.Catalog, error) {
	return words.Load(ctx, e.store.WordRepo())
}

// service builds the practice service over the store.
func (e *env) service(ctx context.Context) (*practice.Service, error) {
	catalog, err := e.catalog(ctx)
	if err != nil {
		return nil, err
	}
	ledger := e.store.LedgerRepo()
	return practice.New(practice.Deps{
		Catalog:   catalog,
		Progress:  e.store.ProgressRepo(),
		Ledger:    ledger,
		Events:    e.store.EventRepo(),
		Snapshots: e.store.SnapshotRepo(),
		Tracker:   tracker.New(ledger, tracker.WithLogger(e.logger)),
		Scheduler: spacedrep.NewScheduler(spacedrep.WithSessionCap(e.cfg.Review.SessionCap)),
		Logger:    e.logger,
	}), nil
}

// provider returns the configured LLM provider. The mock provider counts as
// unconfigured unless a well-known API key variable is set.
func (e *env) provider(ctx context.Context) (llm.Provider, error) {
	cfg := e.cfg.LLM
	if cfg.Provider == "mock" {
		discovered, ok := llm.DiscoverConfig(cfg)
		if !ok {
			return nil, errNoProvider
		}
		cfg = discovered
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return llm.NewProvider(ctx, cfg, e.store.EventRepo(), e.logger)
}

// resolveDBPath returns the database path using --db (highest priority),
// then the config file or WORDSPROUT_DB, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.Database.Path != "" {
		return cfg.Database.Path, store.EnsureDir(cfg.Database.Path)
	}
	return store.DefaultDBPath()
}

// withTimeout bounds a command's LLM work by the configured timeout per request.
func (e *env) withTimeout(ctx context.Context, requests int) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, time.Duration(max(requests, 1))*e.cfg.LLM.Timeout)
}
