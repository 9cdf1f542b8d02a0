package cli

import (
	"fmt"

	"github.com/davidjonas/AnyMail/internal/config"
	"github.com/davidjonas/AnyMail/internal/keychain"
	"github.com/davidjonas/AnyMail/internal/mailbox"
)

// resolveProfile applies the global --profile flag.
func resolveProfile() (*config.Profile, error) {
	return config.GetProfile(profileFlag)
}

// resolveProfileAndSecret additionally requires a stored password; its
// absence is a precondition failure reported before any connection
// attempt.
func resolveProfileAndSecret() (*config.Profile, string, error) {
	profile, err := resolveProfile()
	if err != nil {
		return nil, "", err
	}

	secret, ok := keychain.Get(profile.Name)
	if !ok {
		return nil, "", fmt.Errorf("no password stored for profile %q; run 'anymail auth set %s' first", profile.Name, profile.Name)
	}
	return profile, secret, nil
}

// openSession connects an authenticated mailbox session. The caller must
// defer session.Disconnect.
func openSession() (*mailbox.Session, *config.Profile, error) {
	profile, secret, err := resolveProfileAndSecret()
	if err != nil {
		return nil, nil, err
	}

	session, err := mailbox.Connect(profile, profile.Email, secret)
	if err != nil {
		return nil, nil, err
	}
	return session, profile, nil
}
