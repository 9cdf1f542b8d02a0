package mailbox

import (
	"testing"
	"time"

	"github.com/emersion/go-imap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSearchCriteria(t *testing.T) {
	t.Run("no filters means match everything", func(t *testing.T) {
		criteria, err := BuildSearchCriteria(Filters{})
		require.NoError(t, err)

		assert.Empty(t, criteria.WithFlags)
		assert.Empty(t, criteria.WithoutFlags)
		assert.Empty(t, criteria.Header)
		assert.True(t, criteria.Since.IsZero())
		assert.True(t, criteria.Before.IsZero())
	})

	t.Run("unread true excludes the seen flag", func(t *testing.T) {
		unread := true
		criteria, err := BuildSearchCriteria(Filters{Unread: &unread})
		require.NoError(t, err)

		assert.Equal(t, []string{imap.SeenFlag}, criteria.WithoutFlags)
		assert.Empty(t, criteria.WithFlags)
	})

	t.Run("unread false requires the seen flag", func(t *testing.T) {
		unread := false
		criteria, err := BuildSearchCriteria(Filters{Unread: &unread})
		require.NoError(t, err)

		assert.Equal(t, []string{imap.SeenFlag}, criteria.WithFlags)
		assert.Empty(t, criteria.WithoutFlags)
	})

	t.Run("structured filters compose with AND", func(t *testing.T) {
		since := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		before := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		criteria, err := BuildSearchCriteria(Filters{
			Since:   since,
			Before:  before,
			From:    "alice@example.com",
			Subject: "report",
		})
		require.NoError(t, err)

		assert.Equal(t, since, criteria.Since)
		assert.Equal(t, before, criteria.Before)
		assert.Equal(t, "alice@example.com", criteria.Header.Get("From"))
		assert.Equal(t, "report", criteria.Header.Get("Subject"))
	})

	t.Run("raw criteria pass through to the parser", func(t *testing.T) {
		criteria, err := BuildSearchCriteria(Filters{Raw: "FLAGGED LARGER 1024"})
		require.NoError(t, err)

		assert.Contains(t, criteria.WithFlags, imap.FlaggedFlag)
		assert.Equal(t, uint32(1024), criteria.Larger)
	})

	t.Run("unparsable raw criteria fail validation before any network call", func(t *testing.T) {
		_, err := BuildSearchCriteria(Filters{Raw: "LARGER notanumber"})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestParseDateExpr(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("parses relative days", func(t *testing.T) {
		parsed, err := ParseDateExpr("7d", now)
		require.NoError(t, err)
		assert.Equal(t, now.AddDate(0, 0, -7), parsed)
	})

	t.Run("parses relative hours", func(t *testing.T) {
		parsed, err := ParseDateExpr("24h", now)
		require.NoError(t, err)
		assert.Equal(t, now.Add(-24*time.Hour), parsed)
	})

	t.Run("parses an absolute date", func(t *testing.T) {
		parsed, err := ParseDateExpr("2024-01-31", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), parsed)
	})

	t.Run("parses RFC 3339", func(t *testing.T) {
		parsed, err := ParseDateExpr("2024-01-31T08:30:00Z", now)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 31, 8, 30, 0, 0, time.UTC), parsed)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		for _, expr := range []string{"", "yesterday", "-1d", "7x"} {
			_, err := ParseDateExpr(expr, now)
			assert.ErrorIs(t, err, ErrValidation, "expr %q", expr)
		}
	})
}
