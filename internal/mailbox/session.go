// Package mailbox owns one live connection to the mail-access server:
// authentication, folder selection, search, fetch, flag mutation, and
// cross-folder moves. One session serves one caller sequentially.
package mailbox

import (
	"fmt"
	"log"
	"net"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"

	"github.com/davidjonas/AnyMail/internal/config"
)

const dialTimeout = 5 * time.Second

// Session wraps one authenticated IMAP connection plus the currently
// selected folder. Every operation re-issues its folder SELECT on entry
// to tolerate server-side folder-state drift, so selectedFolder is only
// ever stale between calls, never during one.
type Session struct {
	profile        *config.Profile
	client         *client.Client
	selectedFolder string
}

// Connect dials the profile's IMAP endpoint (TLS or plaintext) and
// authenticates. The returned session holds one open connection until
// Disconnect; callers must defer Disconnect even on error paths after
// a successful Connect.
func Connect(profile *config.Profile, address, secret string) (*Session, error) {
	addr := fmt.Sprintf("%s:%d", profile.IMAPHost, profile.IMAPPort)
	dialer := &net.Dialer{Timeout: dialTimeout}

	var (
		c   *client.Client
		err error
	)
	if profile.IMAPSSL {
		c, err = client.DialWithDialerTLS(dialer, addr, nil)
	} else {
		c, err = client.DialWithDialer(dialer, addr)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to dial %s: %v", ErrConnection, addr, err)
	}

	if err := c.Login(address, secret); err != nil {
		// The connection is already up; tear it down before reporting.
		_ = c.Logout()
		return nil, fmt.Errorf("%w: %v", ErrAuthentication, err)
	}

	return &Session{profile: profile, client: c}, nil
}

// Disconnect logs out best-effort and releases the connection. Network
// errors are swallowed because the caller is already tearing down; a
// second call is a no-op.
func (s *Session) Disconnect() {
	if s.client == nil {
		return
	}
	if err := s.client.Logout(); err != nil {
		log.Printf("Warning: logout failed: %v", err)
	}
	s.client = nil
}

// SelectedFolder returns the folder selected by the most recent
// operation, or "" before the first one.
func (s *Session) SelectedFolder() string {
	return s.selectedFolder
}

// selectFolder re-issues SELECT and records the selection. An empty
// folder name means the profile's inbox.
func (s *Session) selectFolder(folder string) (*imap.MailboxStatus, error) {
	if s.client == nil {
		return nil, fmt.Errorf("%w: session is disconnected", ErrConnection)
	}
	if folder == "" {
		folder = s.profile.FolderInbox
	}

	mbox, err := s.client.Select(folder, false)
	if err != nil {
		return nil, fmt.Errorf("failed to select folder %s: %w", folder, err)
	}
	s.selectedFolder = folder
	return mbox, nil
}
