package mailbox

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/emersion/go-imap"

	"github.com/davidjonas/AnyMail/internal/message"
	"github.com/davidjonas/AnyMail/internal/models"
)

// FetchSummaries batch-fetches envelope, flags, and full body for the
// given UIDs in one round trip and returns a map keyed by UID. UIDs the
// server no longer has are silently absent from the result; a deletion
// between search and fetch is not an error. Snippet and message-id come
// from a single parse of each raw body, and a message whose body cannot
// be parsed keeps its envelope fields with those two degraded to empty.
func (s *Session) FetchSummaries(folder string, uids []uint32) (map[uint32]models.MessageSummary, error) {
	summaries := make(map[uint32]models.MessageSummary, len(uids))
	if len(uids) == 0 {
		return summaries, nil
	}

	if _, err := s.selectFolder(folder); err != nil {
		return nil, err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uids...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{
		imap.FetchEnvelope,
		imap.FetchFlags,
		imap.FetchUid,
		section.FetchItem(),
	}

	messages := make(chan *imap.Message, len(uids))
	done := make(chan error, 1)

	go func() {
		done <- s.client.UidFetch(seqSet, items, messages)
	}()

	for msg := range messages {
		if msg == nil || msg.Uid == 0 {
			continue
		}
		summaries[msg.Uid] = buildSummary(msg, section)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch summaries: %w", err)
	}
	return summaries, nil
}

func buildSummary(msg *imap.Message, section *imap.BodySectionName) models.MessageSummary {
	summary := models.MessageSummary{
		UID: msg.Uid,
		// Lossy fallback when the server's date is absent or unparsable.
		Date: time.Now(),
	}

	for _, flag := range msg.Flags {
		switch flag {
		case imap.SeenFlag:
			summary.Flags.Seen = true
		case imap.AnsweredFlag:
			summary.Flags.Answered = true
		case imap.FlaggedFlag:
			summary.Flags.Flagged = true
		case imap.DeletedFlag:
			summary.Flags.Deleted = true
		}
	}

	if env := msg.Envelope; env != nil {
		if len(env.From) > 0 {
			summary.From = formatAddress(env.From[0])
		}
		summary.To = formatAddressList(env.To)
		summary.Subject = env.Subject
		summary.MessageID = env.MessageId
		if !env.Date.IsZero() {
			summary.Date = env.Date
		}
	}

	body := msg.GetBody(section)
	if body == nil {
		return summary
	}
	raw, err := io.ReadAll(body)
	if err != nil || len(raw) == 0 {
		return summary
	}

	parsed, err := message.Parse(raw)
	if err != nil {
		log.Printf("Warning: failed to parse body of UID %d: %v", msg.Uid, err)
		return summary
	}
	summary.Snippet = parsed.Snippet(message.DefaultSnippetLength)
	if id := parsed.HeaderValue("Message-Id"); id != "" {
		summary.MessageID = id
	}
	return summary
}

// FetchFull fetches the complete raw body of exactly one UID. A UID
// that vanished since the search fails with ErrNotFound.
func (s *Session) FetchFull(folder string, uid uint32) ([]byte, error) {
	if _, err := s.selectFolder(folder); err != nil {
		return nil, err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{imap.FetchUid, section.FetchItem()}

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- s.client.UidFetch(seqSet, items, messages)
	}()

	var raw []byte
	for msg := range messages {
		if msg == nil {
			continue
		}
		if body := msg.GetBody(section); body != nil {
			if data, err := io.ReadAll(body); err == nil {
				raw = data
			}
		}
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to fetch message %d: %w", uid, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: uid %d in folder %s", ErrNotFound, uid, s.selectedFolder)
	}
	return raw, nil
}
