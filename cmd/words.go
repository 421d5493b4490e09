package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wordsprout/wordsprout/internal/wordgen"
	"github.com/wordsprout/wordsprout/internal/wordimport"
	"github.com/wordsprout/wordsprout/internal/words"
)

// maxParallelThemes caps concurrent LLM requests in words generate.
const maxParallelThemes = 3

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage custom words",
}

var wordsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Grow new word categories with the LLM",
	RunE: func(cmd *cobra.Command, args []string) error {
		themes, _ := cmd.Flags().GetStringArray("theme")
		count, _ := cmd.Flags().GetInt("count")
		if len(themes) == 0 {
			return fmt.Errorf("at least one --theme is required")
		}

		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		provider, err := e.provider(ctx)
		if err != nil {
			return err
		}
		svc, err := e.service(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		gen := wordgen.New(provider, wordgen.DefaultConfig())
		catalog := svc.Catalog()

		// Packs are generated concurrently and saved one at a time so word
		// ids never collide.
		packs := make([]*wordgen.Pack, len(themes))
		genCtx, cancel := e.withTimeout(ctx, len(themes))
		defer cancel()
		g, gctx := errgroup.WithContext(genCtx)
		g.SetLimit(maxParallelThemes)
		for i, theme := range themes {
			g.Go(func() error {
				pack, err := gen.Generate(gctx, wordgen.Input{
					Theme:    theme,
					Count:    count,
					Existing: catalog.Texts(words.Slug(theme)),
				})
				if err != nil {
					return fmt.Errorf("theme %q: %w", theme, err)
				}
				packs[i] = pack
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		repo := e.store.WordRepo()
		for _, pack := range packs {
			saved, err := saveAndReload(ctx, repo, svc, words.Slug(pack.Theme), pack)
			if err != nil {
				return fmt.Errorf("theme %q: %w", pack.Theme, err)
			}
			fmt.Fprintf(out, "%s %s: %d new words (%d tokens)\n",
				pack.Emoji, words.DisplayName(pack.Theme), len(saved), pack.Usage.InputTokens+pack.Usage.OutputTokens)
			for _, w := range saved {
				fmt.Fprintf(out, "  %-16s %s\n", w.Text, w.Definition)
			}
		}
		return nil
	},
}

var wordsImportCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Import custom words from a CSV or Excel file",
	Long: "Import custom words from a spreadsheet. Columns default to\n" +
		"A word, B definition, C example, D emoji, E category; the first row is a header.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		sheet, _ := cmd.Flags().GetString("sheet")

		cfg := wordimport.DefaultConfig()
		cfg.SheetName = sheet
		rows, err := wordimport.ReadFile(args[0], cfg)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		catalog, err := e.catalog(ctx)
		if err != nil {
			return err
		}
		res, err := wordimport.New(e.store.WordRepo(), e.logger).Import(ctx, catalog, rows, category)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Rows: %d  Added: %d  Skipped: %d  Errors: %d\n",
			res.Processed, res.Created, res.Skipped, len(res.Errors))
		if len(res.CategoriesCreated) > 0 {
			fmt.Fprintf(out, "New categories: %s\n", strings.Join(res.CategoriesCreated, ", "))
		}
		for _, msg := range res.Errors {
			fmt.Fprintf(out, "  %s\n", msg)
		}
		return nil
	},
}

var wordsListCmd = &cobra.Command{
	Use:   "list [category]",
	Short: "List the words of a category, or every custom word",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		catalog, err := e.catalog(ctx)
		if err != nil {
			return err
		}

		var cats []words.Category
		if len(args) == 1 {
			cat, err := catalog.Category(args[0])
			if err != nil {
				return err
			}
			cats = []words.Category{cat}
		} else {
			for _, c := range catalog.Categories() {
				if c.Custom {
					cats = append(cats, c)
				}
			}
		}

		out := cmd.OutOrStdout()
		if len(cats) == 0 {
			fmt.Fprintln(out, "No custom words yet. Try: wordsprout words generate --theme space")
			return nil
		}
		for _, c := range cats {
			fmt.Fprintf(out, "%s (%s)\n", c.Label(), c.ID)
			for _, w := range catalog.WordsByCategory(c.ID) {
				fmt.Fprintf(out, "  %5d  %-16s %s\n", w.ID, w.Text, w.Definition)
			}
		}
		return nil
	},
}

func init() {
	wordsGenerateCmd.Flags().StringArrayP("theme", "t", nil, "Theme of a new category (repeatable)")
	wordsGenerateCmd.Flags().IntP("count", "n", 8, "Words per theme")
	wordsImportCmd.Flags().StringP("category", "c", "", "Category for rows without one")
	wordsImportCmd.Flags().String("sheet", "", "Excel sheet name (default: first sheet)")

	wordsCmd.AddCommand(wordsGenerateCmd)
	wordsCmd.AddCommand(wordsImportCmd)
	wordsCmd.AddCommand(wordsListCmd)
}
