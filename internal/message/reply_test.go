package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplyHeaders(t *testing.T) {
	t.Run("starts the references chain from the message id", func(t *testing.T) {
		parsed, err := Parse([]byte(simpleMessage))
		require.NoError(t, err)

		headers := parsed.ReplyHeaders()
		assert.Equal(t, "Alice <alice@example.com>", headers.To)
		assert.Equal(t, "Re: Hello", headers.Subject)
		assert.Equal(t, "<abc123@example.com>", headers.InReplyTo)
		assert.Equal(t, "<abc123@example.com>", headers.References)
	})

	t.Run("extends an existing references chain", func(t *testing.T) {
		raw := "From: alice@example.com\r\n" +
			"Subject: Re: Hello\r\n" +
			"Message-Id: <second@example.com>\r\n" +
			"References: <first@example.com>\r\n" +
			"\r\n" +
			"body\r\n"
		parsed, err := Parse([]byte(raw))
		require.NoError(t, err)

		headers := parsed.ReplyHeaders()
		assert.Equal(t, "<first@example.com> <second@example.com>", headers.References)
		assert.Equal(t, "<second@example.com>", headers.InReplyTo)
	})

	t.Run("keeps existing references when the message id is missing", func(t *testing.T) {
		raw := "From: alice@example.com\r\n" +
			"Subject: Hello\r\n" +
			"References: <first@example.com>\r\n" +
			"\r\n" +
			"body\r\n"
		parsed, err := Parse([]byte(raw))
		require.NoError(t, err)

		headers := parsed.ReplyHeaders()
		assert.Equal(t, "<first@example.com>", headers.References)
		assert.Equal(t, "", headers.InReplyTo)
	})
}

func TestReplySubject(t *testing.T) {
	tests := []struct {
		name     string
		subject  string
		expected string
	}{
		{"adds the prefix", "Hello", "Re: Hello"},
		{"is idempotent", "Re: Hello", "Re: Hello"},
		{"matches the prefix case-insensitively", "RE: Hello", "RE: Hello"},
		{"matches lowercase too", "re: Hello", "re: Hello"},
		{"prefixes an empty subject", "", "Re: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ReplySubject(tt.subject))
		})
	}
}

func TestAddresses(t *testing.T) {
	t.Run("extracts bare addresses from a list", func(t *testing.T) {
		addresses := Addresses("Alice <alice@example.com>, bob@example.com")
		assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, addresses)
	})

	t.Run("returns nil for empty input", func(t *testing.T) {
		assert.Nil(t, Addresses(""))
		assert.Nil(t, Addresses("   "))
	})

	t.Run("degrades to nil on unparsable input", func(t *testing.T) {
		assert.Nil(t, Addresses("not an address <<<"))
	})
}
