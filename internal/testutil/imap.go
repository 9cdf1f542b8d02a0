// Package testutil runs in-memory IMAP and SMTP servers so the session
// and submission code can be exercised without touching the network.
package testutil

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/backend/memory"
	imapclient "github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/server"
)

// Default credentials created by the go-imap memory backend.
const (
	IMAPUsername = "username"
	IMAPPassword = "password"
)

// IMAPServer is an in-memory IMAP server listening on a random local
// port. The memory backend starts with one user (username/password)
// whose INBOX already holds a single seeded message.
type IMAPServer struct {
	Server  *server.Server
	Address string
	Host    string
	Port    int
}

// NewIMAPServer starts an in-memory IMAP server and registers its
// shutdown with t.Cleanup.
func NewIMAPServer(t *testing.T) *IMAPServer {
	t.Helper()

	s := server.New(memory.New())
	s.AllowInsecureAuth = true

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	go func() {
		if err := s.Serve(listener); err != nil {
			t.Logf("IMAP server stopped: %v", err)
		}
	}()

	// The listener is already bound; give Serve a moment to pick it up.
	time.Sleep(50 * time.Millisecond)

	addr := listener.Addr().(*net.TCPAddr)
	srv := &IMAPServer{
		Server:  s,
		Address: addr.String(),
		Host:    addr.IP.String(),
		Port:    addr.Port,
	}
	t.Cleanup(func() { _ = s.Close() })
	return srv
}

// connect opens a logged-in client for test fixture setup.
func (s *IMAPServer) connect(t *testing.T) (*imapclient.Client, func()) {
	t.Helper()

	c, err := imapclient.Dial(s.Address)
	if err != nil {
		t.Fatalf("failed to connect to test server: %v", err)
	}
	if err := c.Login(IMAPUsername, IMAPPassword); err != nil {
		_ = c.Logout()
		t.Fatalf("failed to login: %v", err)
	}
	return c, func() { _ = c.Logout() }
}

// CreateFolder creates a folder, ignoring "already exists" errors so
// fixtures can be re-applied.
func (s *IMAPServer) CreateFolder(t *testing.T, name string) {
	t.Helper()

	c, cleanup := s.connect(t)
	defer cleanup()

	if err := c.Create(name); err != nil && !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("failed to create folder %s: %v", name, err)
	}
}

// Append stores a raw message into a folder with the given flags and
// returns its UID.
func (s *IMAPServer) Append(t *testing.T, folder string, flags []string, raw string) uint32 {
	t.Helper()

	c, cleanup := s.connect(t)
	defer cleanup()

	if err := c.Append(folder, flags, time.Now(), strings.NewReader(raw)); err != nil {
		t.Fatalf("failed to append message: %v", err)
	}

	// The memory backend assigns ascending UIDs, so the newest message
	// holds the highest one.
	if _, err := c.Select(folder, false); err != nil {
		t.Fatalf("failed to select folder %s: %v", folder, err)
	}
	uids, err := c.UidSearch(imap.NewSearchCriteria())
	if err != nil {
		t.Fatalf("failed to search folder %s: %v", folder, err)
	}
	if len(uids) == 0 {
		t.Fatalf("message not found after append")
	}

	max := uids[0]
	for _, uid := range uids[1:] {
		if uid > max {
			max = uid
		}
	}
	return max
}

// UIDs lists all UIDs currently in a folder.
func (s *IMAPServer) UIDs(t *testing.T, folder string) []uint32 {
	t.Helper()

	c, cleanup := s.connect(t)
	defer cleanup()

	if _, err := c.Select(folder, false); err != nil {
		t.Fatalf("failed to select folder %s: %v", folder, err)
	}
	uids, err := c.UidSearch(imap.NewSearchCriteria())
	if err != nil {
		t.Fatalf("failed to search folder %s: %v", folder, err)
	}
	return uids
}
