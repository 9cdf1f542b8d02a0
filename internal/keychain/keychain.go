// Package keychain stores app passwords in the OS keyring, keyed by
// profile name. A file-backed fallback under the config directory keeps
// headless machines working.
package keychain

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"

	"github.com/99designs/keyring"

	"github.com/davidjonas/AnyMail/internal/config"
)

const serviceName = "anymail"

var open = func() (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  filepath.Join(config.Dir(), "credentials"),
		FilePasswordFunc:         keyring.FixedStringPrompt(serviceName + "-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open keyring: %w", err)
	}
	return ring, nil
}

// Get returns the stored password for a profile, or ok=false when none
// is stored.
func Get(profileName string) (string, bool) {
	ring, err := open()
	if err != nil {
		log.Printf("Warning: %v", err)
		return "", false
	}

	item, err := ring.Get(profileName)
	if err != nil {
		return "", false
	}
	return string(item.Data), true
}

// Set stores the password for a profile, replacing any previous value.
func Set(profileName, password string) error {
	ring, err := open()
	if err != nil {
		return err
	}

	if err := ring.Set(keyring.Item{Key: profileName, Data: []byte(password)}); err != nil {
		return fmt.Errorf("failed to store password for %q: %w", profileName, err)
	}
	return nil
}

// Clear removes the stored password for a profile. Returns false when
// nothing was stored. Not every backend reports a missing key from its
// remove call, so presence is checked first.
func Clear(profileName string) (bool, error) {
	ring, err := open()
	if err != nil {
		return false, err
	}

	if _, err := ring.Get(profileName); err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("failed to clear password for %q: %w", profileName, err)
	}

	if err := ring.Remove(profileName); err != nil {
		return false, fmt.Errorf("failed to clear password for %q: %w", profileName, err)
	}
	return true, nil
}

// Has reports whether a password is stored for a profile.
func Has(profileName string) bool {
	_, ok := Get(profileName)
	return ok
}
