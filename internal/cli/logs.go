package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/auditlog"
	"github.com/davidjonas/AnyMail/internal/mailbox"
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "List and query CLI invocation logs",
}

var logsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent CLI invocations",
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		query := auditlog.Query{Profile: profileFlag}

		if since, _ := cmd.Flags().GetString("since"); since != "" {
			t, err := mailbox.ParseDateExpr(since, time.Now())
			if err != nil {
				return err
			}
			query.Since = t
		}
		if until, _ := cmd.Flags().GetString("until"); until != "" {
			t, err := mailbox.ParseDateExpr(until, time.Now())
			if err != nil {
				return err
			}
			query.Until = t
		}
		query.Command, _ = cmd.Flags().GetString("command")
		query.Outcome, _ = cmd.Flags().GetString("outcome")
		query.Limit, _ = cmd.Flags().GetInt("limit")
		query.Offset, _ = cmd.Flags().GetInt("offset")

		if query.Outcome != "" && query.Outcome != "success" && query.Outcome != "error" {
			return fmt.Errorf("--outcome must be success or error")
		}

		store, err := auditlog.Open()
		if err != nil {
			return err
		}
		defer store.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		entries, err := store.List(ctx, query)
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(entries)
		}
		if len(entries) == 0 {
			fmt.Println("No log entries found.")
			return nil
		}
		for _, e := range entries {
			profile := e.Profile
			if profile == "" {
				profile = "-"
			}
			line := fmt.Sprintf("%s  %-20s  %-7s  profile=%s  %dms",
				e.Timestamp.Format(time.RFC3339), e.Command, e.Outcome, profile, e.DurationMS)
			if e.ErrorMessage != "" {
				line += "  error: " + e.ErrorMessage
			}
			fmt.Println(line)
		}
		return nil
	}),
}

func init() {
	logsListCmd.Flags().String("since", "", "only entries since (RFC3339, YYYY-MM-DD, or e.g. 7d, 24h)")
	logsListCmd.Flags().String("until", "", "only entries until (RFC3339, YYYY-MM-DD, or e.g. 7d, 24h)")
	logsListCmd.Flags().String("command", "", "filter by command (e.g. inbox, send)")
	logsListCmd.Flags().String("outcome", "", "filter by outcome: success or error")
	logsListCmd.Flags().Int("limit", 50, "max entries to show")
	logsListCmd.Flags().Int("offset", 0, "offset for pagination")

	logsCmd.AddCommand(logsListCmd)
	rootCmd.AddCommand(logsCmd)
}
