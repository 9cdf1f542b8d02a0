package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("accepts the gmail defaults", func(t *testing.T) {
		profile := NewGmailProfile("work", "me@example.com")
		assert.NoError(t, profile.Validate())
	})

	t.Run("rejects broken profiles", func(t *testing.T) {
		tests := []struct {
			name   string
			mutate func(*Profile)
		}{
			{"missing name", func(p *Profile) { p.Name = "" }},
			{"missing email", func(p *Profile) { p.Email = "" }},
			{"missing IMAP host", func(p *Profile) { p.IMAPHost = "" }},
			{"missing SMTP host", func(p *Profile) { p.SMTPHost = "" }},
			{"IMAP port zero", func(p *Profile) { p.IMAPPort = 0 }},
			{"IMAP port too large", func(p *Profile) { p.IMAPPort = 70000 }},
			{"SMTP port negative", func(p *Profile) { p.SMTPPort = -1 }},
			{"empty inbox folder", func(p *Profile) { p.FolderInbox = "" }},
			{"empty sent folder", func(p *Profile) { p.FolderSent = "" }},
			{"empty trash folder", func(p *Profile) { p.FolderTrash = "" }},
			{"empty all-mail folder", func(p *Profile) { p.FolderAllMail = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				profile := NewGmailProfile("work", "me@example.com")
				tt.mutate(profile)
				assert.Error(t, profile.Validate())
			})
		}
	})
}

func TestProfileStore(t *testing.T) {
	t.Run("missing config file is an empty store", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())

		profiles, err := LoadProfiles()
		require.NoError(t, err)
		assert.Empty(t, profiles)
	})

	t.Run("profiles survive a save and load cycle", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())

		original := NewGmailProfile("work", "me@example.com")
		original.DefaultFromName = "Me"
		require.NoError(t, AddProfile(original))

		profiles, err := LoadProfiles()
		require.NoError(t, err)
		require.Contains(t, profiles, "work")
		assert.Equal(t, original, profiles["work"])
	})

	t.Run("add rejects an invalid profile", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())

		assert.Error(t, AddProfile(&Profile{Name: "broken"}))
	})

	t.Run("remove reports whether the profile existed", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())

		require.NoError(t, AddProfile(NewGmailProfile("work", "me@example.com")))

		removed, err := RemoveProfile("work")
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = RemoveProfile("work")
		require.NoError(t, err)
		assert.False(t, removed)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("empty name resolves a single profile", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())
		require.NoError(t, AddProfile(NewGmailProfile("only", "me@example.com")))

		profile, err := GetProfile("")
		require.NoError(t, err)
		assert.Equal(t, "only", profile.Name)
	})

	t.Run("empty name is ambiguous with several profiles", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())
		require.NoError(t, AddProfile(NewGmailProfile("work", "w@example.com")))
		require.NoError(t, AddProfile(NewGmailProfile("home", "h@example.com")))

		_, err := GetProfile("")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "home, work")
	})

	t.Run("empty store has nothing to resolve", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())

		_, err := GetProfile("")
		assert.Error(t, err)
	})

	t.Run("unknown name is an error", func(t *testing.T) {
		t.Setenv("ANYMAIL_CONFIG_DIR", t.TempDir())

		_, err := GetProfile("missing")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing")
	})
}
