package mail

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidjonas/AnyMail/internal/config"
	"github.com/davidjonas/AnyMail/internal/message"
)

func composeProfile() *config.Profile {
	return &config.Profile{
		Name:            "test",
		Email:           "sender@example.com",
		DefaultFromName: "Test Sender",
		SMTPHost:        "localhost",
		SMTPPort:        587,
	}
}

func TestCompose(t *testing.T) {
	t.Run("requires at least one recipient", func(t *testing.T) {
		_, err := Compose(composeProfile(), ComposeOptions{Subject: "Hi"})
		assert.Error(t, err)
	})

	t.Run("round-trips headers and body through a parse", func(t *testing.T) {
		composed, err := Compose(composeProfile(), ComposeOptions{
			To:         []string{"to@example.com"},
			Cc:         []string{"cc@example.com"},
			Subject:    "Round trip",
			Body:       "the body text",
			InReplyTo:  "<orig@example.com>",
			References: "<root@example.com> <orig@example.com>",
		})
		require.NoError(t, err)
		assert.Equal(t, "sender@example.com", composed.From)

		parsed, err := message.Parse(composed.Raw)
		require.NoError(t, err)

		assert.Contains(t, parsed.HeaderValue("From"), "sender@example.com")
		assert.Contains(t, parsed.HeaderValue("To"), "to@example.com")
		assert.Contains(t, parsed.HeaderValue("Cc"), "cc@example.com")
		assert.Equal(t, "Round trip", parsed.HeaderValue("Subject"))
		assert.Equal(t, "<orig@example.com>", parsed.HeaderValue("In-Reply-To"))
		assert.Equal(t, "<root@example.com> <orig@example.com>", parsed.HeaderValue("References"))

		body, ok := parsed.PlainTextBody()
		require.True(t, ok)
		assert.Contains(t, body, "the body text")
	})

	t.Run("bcc never appears in the message but joins the envelope", func(t *testing.T) {
		composed, err := Compose(composeProfile(), ComposeOptions{
			To:      []string{"to@example.com"},
			Bcc:     []string{"hidden@example.com"},
			Subject: "Secret",
			Body:    "body",
		})
		require.NoError(t, err)

		assert.NotContains(t, string(composed.Raw), "hidden@example.com")
		assert.Contains(t, composed.Recipients, "hidden@example.com")
	})

	t.Run("attaches local files with their basename", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("attached content"), 0o600))

		composed, err := Compose(composeProfile(), ComposeOptions{
			To:              []string{"to@example.com"},
			Subject:         "With file",
			Body:            "see attached",
			AttachmentPaths: []string{path},
		})
		require.NoError(t, err)

		parsed, err := message.Parse(composed.Raw)
		require.NoError(t, err)

		attachments := parsed.Attachments()
		require.Len(t, attachments, 1)
		assert.Equal(t, "notes.txt", attachments[0].Filename)
		assert.Equal(t, len("attached content"), attachments[0].Size)

		content, _, ok := parsed.AttachmentContent("notes.txt", "")
		require.True(t, ok)
		assert.Equal(t, "attached content", string(content))
	})

	t.Run("skips a missing attachment instead of failing", func(t *testing.T) {
		composed, err := Compose(composeProfile(), ComposeOptions{
			To:              []string{"to@example.com"},
			Subject:         "Missing file",
			Body:            "body",
			AttachmentPaths: []string{filepath.Join(t.TempDir(), "does-not-exist.pdf")},
		})
		require.NoError(t, err)

		parsed, err := message.Parse(composed.Raw)
		require.NoError(t, err)
		assert.Empty(t, parsed.Attachments())
	})
}

func TestUnionRecipients(t *testing.T) {
	t.Run("deduplicates keeping first-seen order", func(t *testing.T) {
		union := unionRecipients(
			[]string{"a@example.com", "b@example.com"},
			[]string{"b@example.com", "c@example.com"},
			[]string{"a@example.com"},
		)
		assert.Equal(t, []string{"a@example.com", "b@example.com", "c@example.com"}, union)
	})

	t.Run("drops empty addresses", func(t *testing.T) {
		union := unionRecipients([]string{"", "a@example.com"})
		assert.Equal(t, []string{"a@example.com"}, union)
	})
}
