// Package cli is the command surface over the mailbox, message, and
// mail packages. Every invocation is recorded to the audit log with its
// outcome and duration; message bodies and attachment paths are redacted
// from the stored arguments.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/auditlog"
)

var (
	profileFlag string
	jsonFlag    bool
	quietFlag   bool
)

var rootCmd = &cobra.Command{
	Use:           "anymail",
	Short:         "A command-line email client for IMAP/SMTP accounts",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "profile name")
	rootCmd.PersistentFlags().BoolVar(&jsonFlag, "json", false, "output JSON")
	rootCmd.PersistentFlags().BoolVar(&quietFlag, "quiet", false, "reduce output")
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if !quietFlag {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// logged wraps a command's RunE so the invocation lands in the audit log
// whether it succeeds or fails. Logging failures never fail the command.
func logged(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		err := fn(cmd, args)
		recordInvocation(cmd, err, time.Since(start))
		return err
	}
}

func recordInvocation(cmd *cobra.Command, runErr error, elapsed time.Duration) {
	store, err := auditlog.Open()
	if err != nil {
		return
	}
	defer store.Close()

	argsJSON, err := json.Marshal(auditlog.SanitizeArgs(os.Args[1:]))
	if err != nil {
		argsJSON = []byte("[]")
	}

	entry := auditlog.Entry{
		Command:    strings.TrimSpace(strings.TrimPrefix(cmd.CommandPath(), "anymail")),
		ArgsJSON:   string(argsJSON),
		Profile:    profileFlag,
		Outcome:    "success",
		DurationMS: elapsed.Milliseconds(),
	}
	if runErr != nil {
		entry.Outcome = "error"
		entry.ErrorMessage = runErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _ = store.Insert(ctx, entry)
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
