package testutil

import (
	"io"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

// Submission is one message as received by the test SMTP server.
type Submission struct {
	From string
	To   []string
	Data []byte
}

// submissionBackend records every accepted message in memory.
type submissionBackend struct {
	mu       sync.Mutex
	received []Submission
}

func (b *submissionBackend) NewSession(*smtp.Conn) (smtp.Session, error) {
	return &submissionSession{backend: b}, nil
}

type submissionSession struct {
	backend *submissionBackend
	from    string
	to      []string
}

func (s *submissionSession) AuthMechanisms() []string {
	return []string{sasl.Plain}
}

func (s *submissionSession) Auth(mech string) (sasl.Server, error) {
	// Any credentials pass; auth failures are not under test here.
	return sasl.NewPlainServer(func(identity, username, password string) error {
		return nil
	}), nil
}

func (s *submissionSession) Mail(from string, opts *smtp.MailOptions) error {
	s.from = from
	return nil
}

func (s *submissionSession) Rcpt(to string, opts *smtp.RcptOptions) error {
	s.to = append(s.to, to)
	return nil
}

func (s *submissionSession) Data(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	s.backend.received = append(s.backend.received, Submission{
		From: s.from,
		To:   append([]string(nil), s.to...),
		Data: data,
	})
	return nil
}

func (s *submissionSession) Reset() {
	s.from = ""
	s.to = nil
}

func (s *submissionSession) Logout() error {
	return nil
}

// SMTPServer is an in-memory submission server on a random local port.
type SMTPServer struct {
	Address string
	Host    string
	Port    int

	backend *submissionBackend
}

// NewSMTPServer starts the server and registers its shutdown with
// t.Cleanup. It accepts PLAIN auth with any credentials over plaintext.
func NewSMTPServer(t *testing.T) *SMTPServer {
	t.Helper()

	backend := &submissionBackend{}
	s := smtp.NewServer(backend)
	s.AllowInsecureAuth = true

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	go func() {
		if err := s.Serve(listener); err != nil {
			t.Logf("SMTP server stopped: %v", err)
		}
	}()

	time.Sleep(50 * time.Millisecond)

	addr := listener.Addr().(*net.TCPAddr)
	t.Cleanup(func() { _ = s.Close() })
	return &SMTPServer{
		Address: addr.String(),
		Host:    addr.IP.String(),
		Port:    addr.Port,
		backend: backend,
	}
}

// Received returns a copy of everything the server has accepted so far.
func (s *SMTPServer) Received() []Submission {
	s.backend.mu.Lock()
	defer s.backend.mu.Unlock()
	return append([]Submission(nil), s.backend.received...)
}
