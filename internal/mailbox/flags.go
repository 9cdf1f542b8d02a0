package mailbox

import (
	"fmt"

	"github.com/emersion/go-imap"
)

// SetFlags adds flags to a message. Setting a flag that is already
// present is a no-op on the server, so the call is idempotent.
func (s *Session) SetFlags(folder string, uid uint32, flags []string) error {
	return s.storeFlags(folder, uid, imap.AddFlags, flags)
}

// RemoveFlags removes flags from a message, idempotently.
func (s *Session) RemoveFlags(folder string, uid uint32, flags []string) error {
	return s.storeFlags(folder, uid, imap.RemoveFlags, flags)
}

func (s *Session) storeFlags(folder string, uid uint32, op imap.FlagsOp, flags []string) error {
	if len(flags) == 0 {
		return nil
	}
	if _, err := s.selectFolder(folder); err != nil {
		return err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	item := imap.FormatFlagsOp(op, true)
	values := make([]interface{}, len(flags))
	for i, flag := range flags {
		values[i] = flag
	}

	if err := s.client.UidStore(seqSet, item, values, nil); err != nil {
		return fmt.Errorf("failed to update flags on %d: %w", uid, err)
	}
	return nil
}

// Move relocates one message between folders. It issues MOVE first and,
// when the server rejects that, emulates the move with copy, mark
// deleted, expunge, so the contract is simply "moved or error". The
// message's UID in the destination folder is server-assigned and
// unrelated to the source UID.
func (s *Session) Move(uid uint32, sourceFolder, destinationFolder string) error {
	if _, err := s.selectFolder(sourceFolder); err != nil {
		return err
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(uid)

	if err := s.client.UidMove(seqSet, destinationFolder); err != nil {
		// Some servers advertise MOVE without executing it.
		if fallbackErr := s.moveByCopy(seqSet, destinationFolder); fallbackErr != nil {
			return fmt.Errorf("failed to move %d to %s: %w", uid, destinationFolder, err)
		}
	}
	return nil
}

func (s *Session) moveByCopy(seqSet *imap.SeqSet, destinationFolder string) error {
	if err := s.client.UidCopy(seqSet, destinationFolder); err != nil {
		return err
	}
	item := imap.FormatFlagsOp(imap.AddFlags, true)
	if err := s.client.UidStore(seqSet, item, []interface{}{imap.DeletedFlag}, nil); err != nil {
		return err
	}
	return s.client.Expunge(nil)
}

// Delete emulates deletion by moving the message to the trash folder.
func (s *Session) Delete(uid uint32, folder string) error {
	return s.Move(uid, folder, s.profile.FolderTrash)
}

// Archive emulates Gmail-style label removal by moving the message to
// the all-mail folder.
func (s *Session) Archive(uid uint32, folder string) error {
	return s.Move(uid, folder, s.profile.FolderAllMail)
}
