package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/wordsprout/wordsprout/internal/app"
	"github.com/wordsprout/wordsprout/internal/practice"
	"github.com/wordsprout/wordsprout/internal/screens/grow"
	"github.com/wordsprout/wordsprout/internal/store"
	"github.com/wordsprout/wordsprout/internal/wordgen"
	"github.com/wordsprout/wordsprout/internal/words"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the practice app",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, resumes any category in progress and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	svc, err := e.service(ctx)
	if err != nil {
		return err
	}
	defer svc.Close()

	if _, err := svc.Resume(ctx); err != nil {
		e.logger.Warn("resume", slog.String("error", err.Error()))
	}

	opts := app.Options{Service: svc, Logger: e.logger}
	provider, err := e.provider(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Growing new words will be unavailable.")
	} else {
		gen := wordgen.New(provider, wordgen.DefaultConfig())
		opts.Grow = newGrower(e, gen, svc)
	}

	return app.Run(ctx, opts)
}

// newGrower generates a word pack, stores it and swaps the service onto the
// reloaded catalog so the new category is practicable at once.
func newGrower(e *env, gen *wordgen.Generator, svc *practice.Service) grow.Func {
	repo := e.store.WordRepo()
	return func(ctx context.Context, theme string, count int) ([]words.Word, error) {
		ctx, cancel := e.withTimeout(ctx, 1)
		defer cancel()
		return growTheme(ctx, repo, gen, svc, theme, count)
	}
}

func growTheme(ctx context.Context, repo store.WordRepo, gen *wordgen.Generator, svc *practice.Service, theme string, count int) ([]words.Word, error) {
	id := words.Slug(theme)
	catalog := svc.Catalog()
	pack, err := gen.Generate(ctx, wordgen.Input{Theme: theme, Count: count, Existing: catalog.Texts(id)})
	if err != nil {
		return nil, err
	}
	return saveAndReload(ctx, repo, svc, id, pack)
}

func saveAndReload(ctx context.Context, repo store.WordRepo, svc *practice.Service, id string, pack *wordgen.Pack) ([]words.Word, error) {
	saved, err := wordgen.Save(ctx, repo, svc.Catalog(), id, pack, time.Now())
	if err != nil {
		return nil, err
	}
	fresh, err := words.Load(ctx, repo)
	if err != nil {
		return nil, err
	}
	svc.SetCatalog(fresh)
	return saved, nil
}
