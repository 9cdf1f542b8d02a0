package mailbox

import (
	"fmt"

	"github.com/emersion/go-imap"
)

// Search re-selects the folder and runs a UID search. All criteria are
// ANDed; nil criteria matches everything. The result keeps the server's
// order, which the protocol does not contract to be chronological;
// callers that care about order must sort.
func (s *Session) Search(folder string, criteria *imap.SearchCriteria) ([]uint32, error) {
	if _, err := s.selectFolder(folder); err != nil {
		return nil, err
	}

	if criteria == nil {
		criteria = imap.NewSearchCriteria()
	}

	uids, err := s.client.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("failed to search folder %s: %w", s.selectedFolder, err)
	}
	return uids, nil
}
