package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/mailbox"
	"github.com/davidjonas/AnyMail/internal/message"
)

var readCmd = &cobra.Command{
	Use:   "read [UID]",
	Short: "Read a message; UIDs can also be piped on stdin",
	Args:  cobra.MaximumNArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		uids, err := uidsFromArgsOrStdin(args)
		if err != nil {
			return err
		}

		folder, _ := cmd.Flags().GetString("folder")
		headersOnly, _ := cmd.Flags().GetBool("headers")
		bodyOnly, _ := cmd.Flags().GetBool("body")
		attachmentsMode, _ := cmd.Flags().GetString("attachments")
		outDir, _ := cmd.Flags().GetString("out")

		session, _, err := openSession()
		if err != nil {
			return err
		}
		defer session.Disconnect()

		for i, uid := range uids {
			if len(uids) > 1 && !jsonFlag && i > 0 {
				fmt.Println()
			}
			if len(uids) > 1 && !jsonFlag {
				fmt.Printf("--- Message %d ---\n", uid)
			}
			if err := readOne(session, folder, uid, headersOnly, bodyOnly, attachmentsMode, outDir); err != nil {
				return err
			}
		}
		return nil
	}),
}

func uidsFromArgsOrStdin(args []string) ([]uint32, error) {
	if len(args) == 1 {
		uid, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid UID %q", args[0])
		}
		return []uint32{uint32(uid)}, nil
	}

	info, err := os.Stdin.Stat()
	if err != nil || info.Mode()&os.ModeCharDevice != 0 {
		return nil, fmt.Errorf("UID required: pass it as an argument or pipe UIDs on stdin")
	}

	var uids []uint32
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		uid, err := strconv.ParseUint(line, 10, 32)
		if err != nil {
			if !quietFlag {
				fmt.Fprintf(os.Stderr, "Skipping invalid UID %q\n", line)
			}
			continue
		}
		uids = append(uids, uint32(uid))
	}
	if len(uids) == 0 {
		return nil, fmt.Errorf("no UIDs to read")
	}
	return uids, nil
}

func readOne(session *mailbox.Session, folder string, uid uint32, headersOnly, bodyOnly bool, attachmentsMode, outDir string) error {
	raw, err := session.FetchFull(folder, uid)
	if err != nil {
		return err
	}
	parsed, err := message.Parse(raw)
	if err != nil {
		return err
	}

	switch attachmentsMode {
	case "list":
		return printAttachmentList(parsed)
	case "save":
		return saveAttachments(parsed, outDir)
	}

	if jsonFlag {
		plain, _ := parsed.PlainTextBody()
		html, _ := parsed.HTMLBody()
		headers := make([][2]string, 0, len(parsed.Headers))
		for _, field := range parsed.Headers {
			headers = append(headers, [2]string{field.Key, field.Value})
		}
		return printJSON(map[string]any{
			"uid":         uid,
			"message_id":  parsed.HeaderValue("Message-Id"),
			"headers":     headers,
			"body_plain":  plain,
			"body_html":   html,
			"attachments": parsed.Attachments(),
		})
	}

	if !bodyOnly {
		fmt.Println("Headers:")
		for _, field := range parsed.Headers {
			fmt.Printf("%s: %s\n", field.Key, field.Value)
		}
	}
	if !headersOnly {
		if plain, ok := parsed.PlainTextBody(); ok {
			fmt.Println("\nBody:")
			fmt.Println(plain)
		} else if html, ok := parsed.HTMLBody(); ok {
			fmt.Println("\nBody (HTML):")
			fmt.Println(html)
		}
	}
	return nil
}

func printAttachmentList(parsed *message.ParsedMessage) error {
	attachments := parsed.Attachments()
	if jsonFlag {
		return printJSON(attachments)
	}
	for _, att := range attachments {
		name := att.Filename
		if name == "" {
			name = "(no filename)"
		}
		fmt.Printf("%s  %s  %d bytes\n", name, att.ContentType, att.Size)
	}
	return nil
}

func saveAttachments(parsed *message.ParsedMessage, outDir string) error {
	if outDir == "" {
		return fmt.Errorf("--out is required when saving attachments")
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	for _, att := range parsed.Attachments() {
		content, _, ok := parsed.AttachmentContent(att.Filename, att.ContentID)
		if !ok {
			continue
		}
		name := att.Filename
		if name == "" {
			name = "attachment_" + att.ContentID
		}
		path := filepath.Join(outDir, filepath.Base(name))
		if err := os.WriteFile(path, content, 0o600); err != nil {
			return fmt.Errorf("failed to save %s: %w", path, err)
		}
		fmt.Printf("Saved: %s\n", path)
	}
	return nil
}

func init() {
	readCmd.Flags().String("folder", "", "folder to read from")
	readCmd.Flags().Bool("headers", false, "show headers only")
	readCmd.Flags().Bool("body", false, "show body only")
	readCmd.Flags().String("attachments", "", "attachment mode: list or save")
	readCmd.Flags().String("out", "", "output directory for saved attachments")

	rootCmd.AddCommand(readCmd)
}
