package mail

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	"log"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"

	"github.com/davidjonas/AnyMail/internal/config"
)

// ErrSubmission means the submission server rejected authentication or
// the transmission itself.
var ErrSubmission = errors.New("submission failed")

// dialSubmission opens the submission connection: STARTTLS upgrade or
// implicit TLS depending on the profile. A package variable so tests can
// substitute a plaintext dial against an in-memory server.
var dialSubmission = func(profile *config.Profile) (*smtp.Client, error) {
	addr := fmt.Sprintf("%s:%d", profile.SMTPHost, profile.SMTPPort)
	tlsConfig := &tls.Config{ServerName: profile.SMTPHost}

	if profile.SMTPStartTLS {
		return smtp.DialStartTLS(addr, tlsConfig)
	}
	return smtp.DialTLS(addr, tlsConfig)
}

// Send submits a composed message over a short-lived connection:
// encrypted dial, PLAIN authentication, one transaction to the full
// recipient union, then teardown. The connection is closed on every
// path, including transmission failure. No retries; a failed send
// surfaces immediately.
func Send(profile *config.Profile, composed *ComposedMessage, secret string) error {
	c, err := dialSubmission(profile)
	if err != nil {
		return fmt.Errorf("%w: failed to connect to %s:%d: %v", ErrSubmission, profile.SMTPHost, profile.SMTPPort, err)
	}
	defer func() {
		if err := c.Close(); err != nil {
			log.Printf("Warning: closing submission connection failed: %v", err)
		}
	}()

	if err := c.Auth(sasl.NewPlainClient("", profile.Email, secret)); err != nil {
		return fmt.Errorf("%w: authentication: %v", ErrSubmission, err)
	}

	if err := c.SendMail(composed.From, composed.Recipients, bytes.NewReader(composed.Raw)); err != nil {
		return fmt.Errorf("%w: %v", ErrSubmission, err)
	}

	return nil
}
