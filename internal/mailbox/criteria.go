package mailbox

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-imap"
)

// Filters are the user-facing query intents. All supplied filters
// combine with logical AND; there is no OR composition. A nil Unread
// omits the seen/unseen criterion entirely.
type Filters struct {
	Unread  *bool
	Since   time.Time
	Before  time.Time
	From    string
	Subject string
	Raw     string
}

// BuildSearchCriteria translates filters into protocol search criteria.
// It is a pure function: no filters yields empty criteria, which the
// server treats as "match everything in this folder". The raw string is
// a true passthrough: it is tokenized and parsed as standard search
// keys, ANDed with the structured filters; input that does not parse is
// an ErrValidation failure before any network call.
func BuildSearchCriteria(f Filters) (*imap.SearchCriteria, error) {
	criteria := imap.NewSearchCriteria()

	if f.Unread != nil {
		if *f.Unread {
			criteria.WithoutFlags = append(criteria.WithoutFlags, imap.SeenFlag)
		} else {
			criteria.WithFlags = append(criteria.WithFlags, imap.SeenFlag)
		}
	}

	if !f.Since.IsZero() {
		criteria.Since = f.Since
	}
	if !f.Before.IsZero() {
		criteria.Before = f.Before
	}

	if f.From != "" {
		criteria.Header.Add("From", f.From)
	}
	if f.Subject != "" {
		criteria.Header.Add("Subject", f.Subject)
	}

	if f.Raw != "" {
		tokens := strings.Fields(f.Raw)
		fields := make([]interface{}, 0, len(tokens))
		for _, token := range tokens {
			fields = append(fields, token)
		}
		if err := criteria.ParseWithCharset(fields, nil); err != nil {
			return nil, fmt.Errorf("%w: raw criteria %q: %v", ErrValidation, f.Raw, err)
		}
	}

	return criteria, nil
}

// ParseDateExpr parses a date option: a relative span like "7d" or
// "24h", or an absolute date ("2024-01-31", optionally RFC 3339).
// Anything else fails with ErrValidation.
func ParseDateExpr(expr string, now time.Time) (time.Time, error) {
	s := strings.ToLower(strings.TrimSpace(expr))
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty date", ErrValidation)
	}

	if n, found := strings.CutSuffix(s, "d"); found {
		if days, err := strconv.Atoi(n); err == nil && days >= 0 {
			return now.AddDate(0, 0, -days), nil
		}
	}
	if n, found := strings.CutSuffix(s, "h"); found {
		if hours, err := strconv.Atoi(n); err == nil && hours >= 0 {
			return now.Add(-time.Duration(hours) * time.Hour), nil
		}
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, expr); err == nil {
		return t, nil
	}

	return time.Time{}, fmt.Errorf("%w: date %q (use 7d, 24h, or 2006-01-02)", ErrValidation, expr)
}
