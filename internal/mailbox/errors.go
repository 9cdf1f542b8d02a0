package mailbox

import "errors"

// Error taxonomy for session failures. Callers test with errors.Is;
// everything else in this package wraps one of these or surfaces the
// transport error directly.
var (
	// ErrConnection covers network and TLS failures while establishing
	// or using the connection. No retry happens internally.
	ErrConnection = errors.New("connection failed")

	// ErrAuthentication means the server rejected the credentials. The
	// session is unusable afterwards.
	ErrAuthentication = errors.New("authentication rejected")

	// ErrNotFound means a UID no longer exists in the selected folder,
	// typically because it vanished between search and fetch.
	ErrNotFound = errors.New("message not found")

	// ErrValidation flags malformed filter input. It is raised before
	// any network call is attempted.
	ErrValidation = errors.New("invalid filter")
)
