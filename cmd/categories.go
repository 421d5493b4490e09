package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List word categories and how far along each one is",
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
		if _, err := svc.Resume(ctx); err != nil {
			return err
		}

		rows, err := svc.Overview(ctx)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-24s  %5s  %4s  %4s  %7s  %5s\n",
			"ID", "Name", "Words", "New", "Due", "Mastery", "Done")
		fmt.Fprintln(out, strings.Repeat("─", 80))
		for _, r := range rows {
			name := r.Category.Name
			if r.Category.Custom {
				name += " *"
			}
			if r.Locked {
				name += fmt.Sprintf(" (%.0f%%)", r.Progress)
			}
			fmt.Fprintf(out, "%-20s  %-24s  %5d  %4d  %4d  %6.0f%%  %5d\n",
				truncate(r.Category.ID, 20), truncate(name, 24),
				r.Words, r.New, r.Due, r.MeanMastery, r.Completions)
		}
		return nil
	},
}
