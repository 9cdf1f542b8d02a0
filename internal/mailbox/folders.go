package mailbox

import (
	"fmt"

	"github.com/emersion/go-imap"
)

// ListFolders returns the names of all folders visible to the account.
func (s *Session) ListFolders() ([]string, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: session is disconnected", ErrConnection)
	}

	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- s.client.List("", "*", mailboxes)
	}()

	var folders []string
	for m := range mailboxes {
		folders = append(folders, m.Name)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("failed to list folders: %w", err)
	}
	return folders, nil
}
