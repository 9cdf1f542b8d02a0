// Package message decomposes raw RFC 822 bytes into a navigable content
// tree: ordered headers, canonical plaintext/HTML bodies, attachments,
// and reply-threading metadata. It has no network dependency.
package message

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/emersion/go-message/textproto"
	"github.com/jhillyerd/enmime"

	"github.com/davidjonas/AnyMail/internal/models"
)

// DefaultSnippetLength is the snippet truncation limit used by summary
// fetches.
const DefaultSnippetLength = 200

// HeaderField is one header line. Fields keep their wire order, and keys
// may repeat (multiple Received headers, for example).
type HeaderField struct {
	Key   string
	Value string
}

// ParsedMessage is the structured form of one message: the ordered
// header list plus the root of the MIME part tree. A non-multipart
// message is a one-part tree.
type ParsedMessage struct {
	Headers []HeaderField
	Root    *enmime.Part
}

// Parse decomposes raw message bytes. It tolerates malformed multipart
// structure wherever enmime can still produce a root part; a message
// that cannot be parsed at all is an error.
func Parse(raw []byte) (*ParsedMessage, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty message")
	}

	envelope, err := enmime.ReadEnvelope(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse message: %w", err)
	}

	parsed := &ParsedMessage{Root: envelope.Root}

	// enmime stores headers in a map, which loses wire order; a second
	// header-only read keeps the ordered, repeatable view.
	header, err := textproto.ReadHeader(bufio.NewReader(bytes.NewReader(raw)))
	if err == nil {
		fields := header.Fields()
		for fields.Next() {
			parsed.Headers = append(parsed.Headers, HeaderField{
				Key:   fields.Key(),
				Value: fields.Value(),
			})
		}
	}

	return parsed, nil
}

// HeaderValue returns the first value of the named header, matched
// case-insensitively, or "" when absent.
func (m *ParsedMessage) HeaderValue(key string) string {
	for _, field := range m.Headers {
		if strings.EqualFold(field.Key, key) {
			return field.Value
		}
	}
	return ""
}

// walk visits the part tree in pre-order. The walk stops as soon as
// visit returns true, which gives every lookup in this package the same
// "first match wins" tie-break.
func walk(part *enmime.Part, visit func(*enmime.Part) bool) bool {
	if part == nil {
		return false
	}
	if visit(part) {
		return true
	}
	for child := part.FirstChild; child != nil; child = child.NextSibling {
		if walk(child, visit) {
			return true
		}
	}
	return false
}

// PlainTextBody returns the first text/plain part in pre-order, or
// ok=false when the message has none.
func (m *ParsedMessage) PlainTextBody() (string, bool) {
	return m.firstTextPart("text/plain")
}

// HTMLBody returns the first text/html part in pre-order, or ok=false
// when the message has none.
func (m *ParsedMessage) HTMLBody() (string, bool) {
	return m.firstTextPart("text/html")
}

func (m *ParsedMessage) firstTextPart(contentType string) (string, bool) {
	var body string
	found := walk(m.Root, func(p *enmime.Part) bool {
		if p.ContentType != contentType {
			return false
		}
		// A part whose content failed to decode is treated as absent;
		// the walk continues to the next candidate.
		if p.Content == nil {
			return false
		}
		body = string(p.Content)
		return true
	})
	return body, found
}

func isAttachmentPart(p *enmime.Part) bool {
	disposition := strings.ToLower(p.Disposition)
	return strings.Contains(disposition, "attachment") || strings.Contains(disposition, "inline")
}

// Attachments collects every part with an attachment or inline
// disposition, in pre-order. Sizes are decoded byte counts.
func (m *ParsedMessage) Attachments() []models.AttachmentInfo {
	var attachments []models.AttachmentInfo
	walk(m.Root, func(p *enmime.Part) bool {
		if isAttachmentPart(p) {
			attachments = append(attachments, models.AttachmentInfo{
				Filename:    p.FileName,
				ContentType: p.ContentType,
				Size:        len(p.Content),
				ContentID:   p.ContentID,
			})
		}
		return false
	})
	return attachments
}

// AttachmentContent returns the decoded bytes and content type of the
// first attachment part matching the given filename or content-id.
// Either selector may be empty; a part with undecodable content never
// matches.
func (m *ParsedMessage) AttachmentContent(filename, contentID string) ([]byte, string, bool) {
	var (
		content     []byte
		contentType string
	)
	found := walk(m.Root, func(p *enmime.Part) bool {
		if !isAttachmentPart(p) || p.Content == nil {
			return false
		}
		if filename != "" && p.FileName == filename {
			content, contentType = p.Content, p.ContentType
			return true
		}
		if contentID != "" && p.ContentID == contentID {
			content, contentType = p.Content, p.ContentType
			return true
		}
		return false
	})
	return content, contentType, found
}

// Snippet returns a whitespace-collapsed prefix of the plaintext body,
// with a trailing "..." when truncated. HTML-only messages yield "".
func (m *ParsedMessage) Snippet(maxLength int) string {
	body, ok := m.PlainTextBody()
	if !ok {
		return ""
	}

	collapsed := strings.Join(strings.Fields(body), " ")
	runes := []rune(collapsed)
	if len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return collapsed
}
