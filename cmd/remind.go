package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/wordsprout/wordsprout/internal/reminder"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print a reminder whenever words are due",
	Long: "Checks for due words every reminder.interval and prints a reminder\n" +
		"between reminder.start_hour and reminder.end_hour. Runs until interrupted.",
	RunE: func(cmd *cobra.Command, args []string) error {
		once, _ := cmd.Flags().GetBool("once")

		ctx := cmd.Context()
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if !e.cfg.Reminder.Enabled && !once {
			return fmt.Errorf("reminders are disabled: set reminder.enabled or WORDSPROUT_REMINDER_ENABLED=true")
		}

		svc, err := e.service(ctx)
		if err != nil {
			return err
		}
		defer svc.Close()

		rem := reminder.New(e.cfg.Reminder, svc, reminder.WriterNotifier{W: cmd.OutOrStdout()}, e.logger)
		if once {
			due, sent, err := rem.Check(ctx)
			if err != nil {
				return err
			}
			if !sent {
				e.logger.Debug("no reminder sent", slog.Int("due", due))
			}
			return nil
		}

		if err := rem.Start(ctx); err != nil {
			return err
		}
		defer rem.Stop()

		<-ctx.Done()
		return nil
	},
}

func init() {
	remindCmd.Flags().Bool("once", false, "Check once and exit, even when reminders are disabled")
}
