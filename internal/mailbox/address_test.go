package mailbox

import (
	"testing"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
)

func TestFormatAddress(t *testing.T) {
	t.Run("formats address with personal name", func(t *testing.T) {
		address := &imap.Address{
			PersonalName: "John Doe",
			MailboxName:  "john",
			HostName:     "example.com",
		}
		assert.Equal(t, "John Doe <john@example.com>", formatAddress(address))
	})

	t.Run("formats address without personal name", func(t *testing.T) {
		address := &imap.Address{
			MailboxName: "jane",
			HostName:    "example.com",
		}
		assert.Equal(t, "jane@example.com", formatAddress(address))
	})

	t.Run("returns empty string for nil address", func(t *testing.T) {
		assert.Equal(t, "", formatAddress(nil))
	})

	t.Run("returns empty string for group placeholder", func(t *testing.T) {
		assert.Equal(t, "", formatAddress(&imap.Address{PersonalName: "Undisclosed"}))
	})
}

func TestFormatAddressList(t *testing.T) {
	t.Run("formats every renderable address", func(t *testing.T) {
		addresses := []*imap.Address{
			{MailboxName: "user1", HostName: "example.com"},
			{PersonalName: "User Two", MailboxName: "user2", HostName: "example.com"},
			nil,
		}

		result := formatAddressList(addresses)
		assert.Equal(t, []string{"user1@example.com", "User Two <user2@example.com>"}, result)
	})

	t.Run("returns empty list for empty input", func(t *testing.T) {
		assert.Empty(t, formatAddressList(nil))
	})
}
