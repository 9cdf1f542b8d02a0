package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/message"
)

var replyCmd = &cobra.Command{
	Use:   "reply UID",
	Short: "Show reply headers and optional quoted text for a message",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		uid64, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid UID %q", args[0])
		}

		folder, _ := cmd.Flags().GetString("folder")
		toAll, _ := cmd.Flags().GetBool("to-all")
		includeQuote, _ := cmd.Flags().GetBool("include-quote")

		session, profile, err := openSession()
		if err != nil {
			return err
		}
		defer session.Disconnect()

		raw, err := session.FetchFull(folder, uint32(uid64))
		if err != nil {
			return err
		}
		parsed, err := message.Parse(raw)
		if err != nil {
			return err
		}

		headers := parsed.ReplyHeaders()

		var cc []string
		if toAll {
			for _, header := range []string{"Cc", "To"} {
				for _, addr := range message.Addresses(parsed.HeaderValue(header)) {
					if addr != profile.Email {
						cc = append(cc, addr)
					}
				}
			}
		}

		var quoted string
		if includeQuote {
			quoted, _ = parsed.PlainTextBody()
		}

		if jsonFlag {
			var ccField any
			if len(cc) > 0 {
				ccField = strings.Join(cc, ", ")
			}
			var quotedField any
			if quoted != "" {
				quotedField = quoted
			}
			return printJSON(map[string]any{
				"to":               headers.To,
				"cc":               ccField,
				"subject":          headers.Subject,
				"in_reply_to":      headers.InReplyTo,
				"references":       headers.References,
				"quoted_plaintext": quotedField,
			})
		}

		fmt.Printf("To: %s\n", headers.To)
		if len(cc) > 0 {
			fmt.Printf("Cc: %s\n", strings.Join(cc, ", "))
		}
		fmt.Printf("Subject: %s\n", headers.Subject)
		if quoted != "" {
			fmt.Println("\nQuoted text:")
			fmt.Println(strings.Repeat("-", 80))
			fmt.Println(quoted)
		}
		return nil
	}),
}

func init() {
	replyCmd.Flags().String("folder", "", "folder containing the message")
	replyCmd.Flags().Bool("to-all", false, "include the original To and Cc recipients")
	replyCmd.Flags().Bool("include-quote", true, "include the quoted plaintext body")

	rootCmd.AddCommand(replyCmd)
}
