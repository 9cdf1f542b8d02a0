// Package mail builds well-formed outgoing messages and submits them
// over a short-lived SMTP connection. Building and sending are separate
// steps so a dry run can return the serialized message without any
// network call.
package mail

import (
	"bytes"
	"fmt"
	"log"
	"mime"
	"os"
	"path/filepath"

	"github.com/jhillyerd/enmime"

	"github.com/davidjonas/AnyMail/internal/config"
)

// ComposeOptions are the inputs to one outgoing message: recipients,
// subject, a single plaintext body, local attachment paths, and optional
// threading headers produced by a reply flow.
type ComposeOptions struct {
	To              []string
	Cc              []string
	Bcc             []string
	Subject         string
	Body            string
	AttachmentPaths []string
	InReplyTo       string
	References      string
}

// ComposedMessage is a fully serialized outgoing message plus its
// submission envelope. Recipients is the deduplicated union of
// to+cc+bcc; bcc addresses never appear in the message itself.
type ComposedMessage struct {
	From       string
	Recipients []string
	Raw        []byte
}

// Compose builds the MIME document: From/To/Cc/Subject and threading
// headers, one plaintext part, and one binary part per attachment.
// Attachments are read whole into memory; a missing or unreadable file
// is skipped with a warning rather than failing the send.
func Compose(profile *config.Profile, opts ComposeOptions) (*ComposedMessage, error) {
	if len(opts.To) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	builder := enmime.Builder().
		From(profile.DefaultFromName, profile.Email).
		Subject(opts.Subject).
		Text([]byte(opts.Body))

	for _, addr := range opts.To {
		builder = builder.To("", addr)
	}
	for _, addr := range opts.Cc {
		builder = builder.CC("", addr)
	}
	if opts.InReplyTo != "" {
		builder = builder.Header("In-Reply-To", opts.InReplyTo)
	}
	if opts.References != "" {
		builder = builder.Header("References", opts.References)
	}

	for _, path := range opts.AttachmentPaths {
		content, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Warning: skipping attachment %s: %v", path, err)
			continue
		}
		name := filepath.Base(path)
		contentType := mime.TypeByExtension(filepath.Ext(name))
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		builder = builder.AddAttachment(content, contentType, name)
	}

	root, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build message: %w", err)
	}

	var buf bytes.Buffer
	if err := root.Encode(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode message: %w", err)
	}

	return &ComposedMessage{
		From:       profile.Email,
		Recipients: unionRecipients(opts.To, opts.Cc, opts.Bcc),
		Raw:        buf.Bytes(),
	}, nil
}

// unionRecipients merges the recipient lists, dropping duplicates while
// keeping first-seen order.
func unionRecipients(lists ...[]string) []string {
	seen := make(map[string]bool)
	var union []string
	for _, list := range lists {
		for _, addr := range list {
			if addr == "" || seen[addr] {
				continue
			}
			seen[addr] = true
			union = append(union, addr)
		}
	}
	return union
}
