package auditlog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name     string
		argv     []string
		expected []string
	}{
		{
			name:     "redacts body values",
			argv:     []string{"send", "--to", "a@example.com", "--body", "secret text"},
			expected: []string{"send", "--to", "a@example.com", "--body", Redacted},
		},
		{
			name:     "redacts attachment paths",
			argv:     []string{"send", "--attach", "/home/me/taxes.pdf", "--subject", "Hi"},
			expected: []string{"send", "--attach", Redacted, "--subject", "Hi"},
		},
		{
			name:     "redacts the equals form",
			argv:     []string{"send", "--body=secret text"},
			expected: []string{"send", "--body=" + Redacted},
		},
		{
			name:     "keeps everything else",
			argv:     []string{"inbox", "--limit", "10", "--json"},
			expected: []string{"inbox", "--limit", "10", "--json"},
		},
		{
			name:     "tolerates a trailing sensitive flag",
			argv:     []string{"send", "--body"},
			expected: []string{"send", "--body"},
		},
		{
			name:     "empty argv stays empty",
			argv:     nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeArgs(tt.argv))
		})
	}
}
