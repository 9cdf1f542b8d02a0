package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/mail"
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Compose and send an email",
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetStringArray("to")
		cc, _ := cmd.Flags().GetStringArray("cc")
		bcc, _ := cmd.Flags().GetStringArray("bcc")
		subject, _ := cmd.Flags().GetString("subject")
		body, _ := cmd.Flags().GetString("body")
		attach, _ := cmd.Flags().GetStringArray("attach")
		inReplyTo, _ := cmd.Flags().GetString("in-reply-to")
		references, _ := cmd.Flags().GetString("references")
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		opts := mail.ComposeOptions{
			To:              to,
			Cc:              cc,
			Bcc:             bcc,
			Subject:         subject,
			Body:            body,
			AttachmentPaths: attach,
			InReplyTo:       inReplyTo,
			References:      references,
		}

		if dryRun {
			profile, err := resolveProfile()
			if err != nil {
				return err
			}
			composed, err := mail.Compose(profile, opts)
			if err != nil {
				return err
			}
			fmt.Println("Dry run - MIME message:")
			fmt.Println(strings.Repeat("-", 80))
			fmt.Print(string(composed.Raw))
			return nil
		}

		profile, secret, err := resolveProfileAndSecret()
		if err != nil {
			return err
		}
		composed, err := mail.Compose(profile, opts)
		if err != nil {
			return err
		}
		if err := mail.Send(profile, composed, secret); err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(map[string]any{
				"sent":       true,
				"from":       composed.From,
				"recipients": composed.Recipients,
			})
		}
		if !quietFlag {
			fmt.Println("Email sent successfully.")
		}
		return nil
	}),
}

func init() {
	sendCmd.Flags().StringArray("to", nil, "recipient email address (repeatable)")
	sendCmd.Flags().StringArray("cc", nil, "CC email address (repeatable)")
	sendCmd.Flags().StringArray("bcc", nil, "BCC email address (repeatable)")
	sendCmd.Flags().String("subject", "", "email subject")
	sendCmd.Flags().String("body", "", "email body")
	sendCmd.Flags().StringArray("attach", nil, "attachment file path (repeatable)")
	sendCmd.Flags().String("in-reply-to", "", "In-Reply-To header value")
	sendCmd.Flags().String("references", "", "References header value")
	sendCmd.Flags().Bool("dry-run", false, "print the MIME message without sending")
	_ = sendCmd.MarkFlagRequired("to")
	_ = sendCmd.MarkFlagRequired("subject")
	_ = sendCmd.MarkFlagRequired("body")

	rootCmd.AddCommand(sendCmd)
}
