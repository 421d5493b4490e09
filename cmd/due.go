package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/mitchellh/go-wordwrap"
	"github.com/spf13/cobra"

	"github.com/wordsprout/wordsprout/internal/spacedrep"
)

var dueCmd = &cobra.Command{
	Use:   "due [category]",
	Short: "List the words that are ready to practice",
	Args:  cobra.MaximumNArgs(1),
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

		var categoryID string
		if len(args) == 1 {
			categoryID = args[0]
		}
		due, err := svc.DueWords(ctx, categoryID)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(due) == 0 {
			fmt.Fprintln(out, "Nothing is due. Every word is resting.")
			return nil
		}

		now := time.Now()
		current := ""
		for _, d := range due {
			if d.Word.CategoryID != current {
				current = d.Word.CategoryID
				if cat, err := svc.Catalog().Category(current); err == nil {
					fmt.Fprintf(out, "\n%s\n", cat.Label())
				}
			}
			when := dueLabel(d.Progress, now)
			fmt.Fprintf(out, "  %-16s  mastery %3d  %s\n", d.Word.Text, d.Progress.MasteryLevel, when)
			if d.Word.Definition != "" {
				wrapped := wordwrap.WrapString(d.Word.Definition, 60)
				fmt.Fprintf(out, "      %s\n", strings.ReplaceAll(wrapped, "\n", "\n      "))
			}
		}
		fmt.Fprintf(out, "\n%s ready to practice.\n", english.Plural(len(due), "word is", "words are"))
		return nil
	},
}

// dueLabel describes a due word's schedule: new, due, or overdue by whole days.
func dueLabel(wp spacedrep.WordProgress, now time.Time) string {
	if wp.Status(now) == spacedrep.StatusNew {
		return "new"
	}
	if days := int(wp.OverdueDays(now)); days >= 1 {
		return "overdue by " + english.Plural(days, "day", "days")
	}
	if wp.NextReview == nil {
		return "due now"
	}
	return "due " + humanize.RelTime(*wp.NextReview, now, "ago", "from now")
}
