package models

import "time"

// Flags is the mutable boolean marker set of a message.
type Flags struct {
	Seen     bool `json:"seen"`
	Answered bool `json:"answered"`
	Flagged  bool `json:"flagged"`
	Deleted  bool `json:"deleted"`
}

// MessageSummary is one row of a batch fetch. The UID is always present;
// every other field degrades to its zero value rather than failing the
// containing batch. UIDs are only unique within one folder.
type MessageSummary struct {
	UID       uint32    `json:"id"`
	MessageID string    `json:"message_id,omitempty"`
	From      string    `json:"from"`
	To        []string  `json:"to"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
	Snippet   string    `json:"snippet"`
	Flags     Flags     `json:"flags"`
}

// AttachmentInfo describes one attachment-or-inline part of a parsed
// message. Size is the decoded byte count, not the encoded size.
type AttachmentInfo struct {
	Filename    string `json:"filename,omitempty"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
	ContentID   string `json:"content_id,omitempty"`
}

// ReplyHeaders carries everything needed to thread a reply to a message:
// the original sender as the reply target, the extended References chain,
// the Re:-prefixed subject, and the original Message-ID for In-Reply-To.
type ReplyHeaders struct {
	To         string `json:"to"`
	Subject    string `json:"subject"`
	InReplyTo  string `json:"in_reply_to,omitempty"`
	References string `json:"references,omitempty"`
}
