package message

import (
	"net/mail"
	"strings"

	"github.com/davidjonas/AnyMail/internal/models"
)

// ReplyHeaders derives the threading metadata for a reply: the original
// sender as the target, the References chain extended with the original
// Message-ID, a Re:-prefixed subject, and the Message-ID for In-Reply-To.
func (m *ParsedMessage) ReplyHeaders() models.ReplyHeaders {
	messageID := m.HeaderValue("Message-Id")

	references := m.HeaderValue("References")
	switch {
	case references == "":
		references = messageID
	case messageID != "":
		references = references + " " + messageID
	}

	return models.ReplyHeaders{
		To:         m.HeaderValue("From"),
		Subject:    ReplySubject(m.HeaderValue("Subject")),
		InReplyTo:  messageID,
		References: references,
	}
}

// ReplySubject prepends "Re: " unless the subject already carries the
// prefix in any case; prefixing is idempotent.
func ReplySubject(subject string) string {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(subject)), "re:") {
		return subject
	}
	return "Re: " + subject
}

// Addresses extracts the bare addresses from an address-list header
// value. Unparsable input degrades to an empty list.
func Addresses(headerValue string) []string {
	if strings.TrimSpace(headerValue) == "" {
		return nil
	}

	parsed, err := mail.ParseAddressList(headerValue)
	if err != nil {
		return nil
	}

	addresses := make([]string, 0, len(parsed))
	for _, a := range parsed {
		if a.Address != "" {
			addresses = append(addresses, a.Address)
		}
	}
	return addresses
}
