package mail

import (
	"testing"

	"github.com/emersion/go-smtp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davidjonas/AnyMail/internal/config"
	"github.com/davidjonas/AnyMail/internal/testutil"
)

// stubDial routes submissions to the in-memory server over plaintext.
func stubDial(t *testing.T, server *testutil.SMTPServer) {
	t.Helper()

	original := dialSubmission
	dialSubmission = func(*config.Profile) (*smtp.Client, error) {
		return smtp.Dial(server.Address)
	}
	t.Cleanup(func() { dialSubmission = original })
}

func TestSend(t *testing.T) {
	t.Run("submits to the full recipient union", func(t *testing.T) {
		server := testutil.NewSMTPServer(t)
		stubDial(t, server)

		composed, err := Compose(composeProfile(), ComposeOptions{
			To:      []string{"to@example.com"},
			Cc:      []string{"cc@example.com"},
			Bcc:     []string{"bcc@example.com"},
			Subject: "Delivery",
			Body:    "the body",
		})
		require.NoError(t, err)

		require.NoError(t, Send(composeProfile(), composed, "app-password"))

		received := server.Received()
		require.Len(t, received, 1)
		assert.Equal(t, "sender@example.com", received[0].From)
		assert.ElementsMatch(t,
			[]string{"to@example.com", "cc@example.com", "bcc@example.com"},
			received[0].To)
		assert.Contains(t, string(received[0].Data), "Subject: Delivery")
		assert.NotContains(t, string(received[0].Data), "bcc@example.com")
	})

	t.Run("reports an unreachable server as a submission failure", func(t *testing.T) {
		profile := composeProfile()
		profile.SMTPHost = "127.0.0.1"
		profile.SMTPPort = 1
		profile.SMTPStartTLS = true

		composed, err := Compose(profile, ComposeOptions{
			To:      []string{"to@example.com"},
			Subject: "Nope",
			Body:    "body",
		})
		require.NoError(t, err)

		err = Send(profile, composed, "app-password")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrSubmission)
	})
}
