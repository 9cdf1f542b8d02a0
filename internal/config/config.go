package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Gmail defaults, applied when a profile is created without explicit hosts.
const (
	GmailIMAPHost = "imap.gmail.com"
	GmailIMAPPort = 993
	GmailSMTPHost = "smtp.gmail.com"
	GmailSMTPPort = 587

	GmailFolderInbox   = "INBOX"
	GmailFolderSent    = "[Gmail]/Sent Mail"
	GmailFolderTrash   = "[Gmail]/Trash"
	GmailFolderAllMail = "[Gmail]/All Mail"
)

// Profile holds the identity and connection parameters for one account.
// It is read-only during a session; nothing in the mailbox or mail
// packages mutates it.
type Profile struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	IMAPHost        string `json:"imap_host"`
	IMAPPort        int    `json:"imap_port"`
	IMAPSSL         bool   `json:"imap_ssl"`
	SMTPHost        string `json:"smtp_host"`
	SMTPPort        int    `json:"smtp_port"`
	SMTPStartTLS    bool   `json:"smtp_starttls"`
	FolderInbox     string `json:"folder_inbox"`
	FolderSent      string `json:"folder_sent"`
	FolderTrash     string `json:"folder_trash"`
	FolderAllMail   string `json:"folder_allmail"`
	DefaultFromName string `json:"default_from_name,omitempty"`
}

// NewGmailProfile creates a profile with Gmail connection defaults.
func NewGmailProfile(name, email string) *Profile {
	return &Profile{
		Name:          name,
		Email:         email,
		IMAPHost:      GmailIMAPHost,
		IMAPPort:      GmailIMAPPort,
		IMAPSSL:       true,
		SMTPHost:      GmailSMTPHost,
		SMTPPort:      GmailSMTPPort,
		SMTPStartTLS:  true,
		FolderInbox:   GmailFolderInbox,
		FolderSent:    GmailFolderSent,
		FolderTrash:   GmailFolderTrash,
		FolderAllMail: GmailFolderAllMail,
	}
}

// Validate checks the invariants every profile must hold: identity and
// hosts present, ports in range, all four folder names non-empty.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile name is required")
	}
	if p.Email == "" {
		return fmt.Errorf("email address is required")
	}
	if p.IMAPHost == "" {
		return fmt.Errorf("IMAP host is required")
	}
	if p.SMTPHost == "" {
		return fmt.Errorf("SMTP host is required")
	}
	if p.IMAPPort <= 0 || p.IMAPPort > 65535 {
		return fmt.Errorf("IMAP port %d is out of range", p.IMAPPort)
	}
	if p.SMTPPort <= 0 || p.SMTPPort > 65535 {
		return fmt.Errorf("SMTP port %d is out of range", p.SMTPPort)
	}
	for _, folder := range []struct{ name, value string }{
		{"inbox", p.FolderInbox},
		{"sent", p.FolderSent},
		{"trash", p.FolderTrash},
		{"all-mail", p.FolderAllMail},
	} {
		if folder.value == "" {
			return fmt.Errorf("%s folder name must not be empty", folder.name)
		}
	}
	return nil
}

// Dir returns the configuration directory. A .env file in the working
// directory may supply the ANYMAIL_CONFIG_DIR override.
func Dir() string {
	_ = godotenv.Load()

	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return getEnvOrDefault("ANYMAIL_CONFIG_DIR", filepath.Join(home, ".anymail"))
}

// EnsureDir creates the configuration directory if it does not exist.
func EnsureDir() (string, error) {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create config dir: %w", err)
	}
	return dir, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
