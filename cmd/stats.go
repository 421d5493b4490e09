package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
	"github.com/wordsprout/wordsprout/internal/store"
)

// recentCompletions is how many finished categories stats lists.
const recentCompletions = 5

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		svc, err := e.service(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		rows, err := svc.Overview(ctx)
		if err != nil {
			return err
		}
		var total, seen, blooming, due, completions int
		for _, r := range rows {
			total += r.Words
			seen += r.Words - r.New
			blooming += r.Mastered
			due += r.Due
			completions += r.Completions
		}

		events := e.store.EventRepo()
		allTime, err := events.ReviewCounts(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("review counts: %w", err)
		}
		week, err := events.ReviewCounts(ctx, store.QueryOpts{From: time.Now().AddDate(0, 0, -7)})
		if err != nil {
			return fmt.Errorf("review counts: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Words")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		fmt.Fprintf(out, "%-22s %s of %s\n", "Practiced", humanize.Comma(int64(seen)), humanize.Comma(int64(total)))
		fmt.Fprintf(out, "%-22s %d\n", "Blooming", blooming)
		fmt.Fprintf(out, "%-22s %d\n", "Due now", due)
		fmt.Fprintf(out, "%-22s %d\n", "Categories finished", completions)

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-10s %10s %10s\n", "Rating", "7 days", "All time")
		fmt.Fprintln(out, strings.Repeat("─", 40))
		for _, r := range spacedrep.AllRatings() {
			fmt.Fprintf(out, "%-10s %10d %10d\n", r, week[r], allTime[r])
		}

		catEvents, err := events.QueryCategoryEvents(ctx, store.QueryOpts{})
		if err != nil {
			return fmt.Errorf("category events: %w", err)
		}
		var done []store.CategoryEvent
		for i := len(catEvents) - 1; i >= 0 && len(done) < recentCompletions; i-- {
			if catEvents[i].Action == store.ActionComplete {
				done = append(done, catEvents[i])
			}
		}
		if len(done) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Recently finished")
			fmt.Fprintln(out, strings.Repeat("─", 40))
			catalog := svc.Catalog()
			for _, ev := range done {
				name := ev.CategoryID
				if cat, err := catalog.Category(ev.CategoryID); err == nil {
					name = cat.Label()
				}
				fmt.Fprintf(out, "%-24s %3d words  %s\n", name, ev.WordsReviewed, humanize.Time(ev.Timestamp))
			}
		}
		return nil
	},
}
