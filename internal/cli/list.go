package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/mailbox"
	"github.com/davidjonas/AnyMail/internal/models"
)

// listOptions are the shared knobs of the inbox and search commands.
type listOptions struct {
	folder string
	limit  int
	pipe   bool
}

var inboxCmd = &cobra.Command{
	Use:   "inbox",
	Short: "List messages in the inbox",
	Args:  cobra.NoArgs,
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		filters, opts, err := filtersFromFlags(cmd)
		if err != nil {
			return err
		}
		return runListing(filters, opts)
	}),
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search messages by filters or raw criteria",
	Args:  cobra.NoArgs,
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		filters, opts, err := filtersFromFlags(cmd)
		if err != nil {
			return err
		}
		return runListing(filters, opts)
	}),
}

// filtersFromFlags validates every filter before any network call.
func filtersFromFlags(cmd *cobra.Command) (mailbox.Filters, listOptions, error) {
	var filters mailbox.Filters
	var opts listOptions

	if unread, _ := cmd.Flags().GetBool("unread"); unread {
		filters.Unread = &unread
	}
	if since, _ := cmd.Flags().GetString("since"); since != "" {
		t, err := mailbox.ParseDateExpr(since, time.Now())
		if err != nil {
			return filters, opts, err
		}
		filters.Since = t
	}
	if cmd.Flags().Lookup("before") != nil {
		if before, _ := cmd.Flags().GetString("before"); before != "" {
			t, err := mailbox.ParseDateExpr(before, time.Now())
			if err != nil {
				return filters, opts, err
			}
			filters.Before = t
		}
	}
	filters.From, _ = cmd.Flags().GetString("from")
	if cmd.Flags().Lookup("subject") != nil {
		filters.Subject, _ = cmd.Flags().GetString("subject")
	}
	if cmd.Flags().Lookup("raw-imap") != nil {
		filters.Raw, _ = cmd.Flags().GetString("raw-imap")
	}

	opts.folder, _ = cmd.Flags().GetString("folder")
	opts.limit, _ = cmd.Flags().GetInt("limit")
	opts.pipe, _ = cmd.Flags().GetBool("pipe")
	return filters, opts, nil
}

func runListing(filters mailbox.Filters, opts listOptions) error {
	criteria, err := mailbox.BuildSearchCriteria(filters)
	if err != nil {
		return err
	}

	session, _, err := openSession()
	if err != nil {
		return err
	}
	defer session.Disconnect()

	uids, err := session.Search(opts.folder, criteria)
	if err != nil {
		return err
	}
	if opts.limit > 0 && len(uids) > opts.limit {
		uids = uids[:opts.limit]
	}

	if opts.pipe {
		for _, uid := range uids {
			fmt.Println(uid)
		}
		return nil
	}

	summaries, err := session.FetchSummaries(opts.folder, uids)
	if err != nil {
		return err
	}

	if jsonFlag {
		rows := make([]models.MessageSummary, 0, len(uids))
		for _, uid := range uids {
			if summary, ok := summaries[uid]; ok {
				rows = append(rows, summary)
			}
		}
		return printJSON(rows)
	}

	for _, uid := range uids {
		summary, ok := summaries[uid]
		if !ok {
			continue
		}
		unread := " "
		if !summary.Flags.Seen {
			unread = "U"
		}
		flagged := " "
		if summary.Flags.Flagged {
			flagged = "*"
		}
		fmt.Printf("%s%s %6d  %-30s  %s\n", unread, flagged, uid, summary.From, summary.Subject)
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{inboxCmd, searchCmd} {
		cmd.Flags().Bool("unread", false, "only unread messages")
		cmd.Flags().String("since", "", "messages since (e.g. 7d, 24h, 2024-01-31)")
		cmd.Flags().String("from", "", "filter by sender substring")
		cmd.Flags().String("folder", "", "folder to use (default: profile inbox)")
		cmd.Flags().Int("limit", 0, "limit number of results")
		cmd.Flags().Bool("pipe", false, "output UIDs only, one per line")
	}
	searchCmd.Flags().String("before", "", "messages before (e.g. 2024-01-31)")
	searchCmd.Flags().String("subject", "", "filter by subject substring")
	searchCmd.Flags().String("raw-imap", "", "raw search criteria passthrough")

	rootCmd.AddCommand(inboxCmd, searchCmd)
}
