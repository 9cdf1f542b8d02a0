package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/emersion/go-imap"
)

var flagCmd = &cobra.Command{
	Use:   "flag UID",
	Short: "Change message flags, archive, or trash a message",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		uid64, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			return fmt.Errorf("invalid UID %q", args[0])
		}
		uid := uint32(uid64)

		folder, _ := cmd.Flags().GetString("folder")
		seen, _ := cmd.Flags().GetString("seen")
		star, _ := cmd.Flags().GetString("star")
		archive, _ := cmd.Flags().GetBool("archive")
		trash, _ := cmd.Flags().GetBool("trash")

		if archive && trash {
			return fmt.Errorf("--archive and --trash are mutually exclusive")
		}
		if seen != "" && seen != "true" && seen != "false" {
			return fmt.Errorf("--seen must be true or false")
		}
		if star != "" && star != "true" && star != "false" {
			return fmt.Errorf("--star must be true or false")
		}
		if seen == "" && star == "" && !archive && !trash {
			return fmt.Errorf("nothing to do: pass --seen, --star, --archive, or --trash")
		}

		session, _, err := openSession()
		if err != nil {
			return err
		}
		defer session.Disconnect()

		if seen == "true" {
			if err := session.SetFlags(folder, uid, []string{imap.SeenFlag}); err != nil {
				return err
			}
		} else if seen == "false" {
			if err := session.RemoveFlags(folder, uid, []string{imap.SeenFlag}); err != nil {
				return err
			}
		}
		if star == "true" {
			if err := session.SetFlags(folder, uid, []string{imap.FlaggedFlag}); err != nil {
				return err
			}
		} else if star == "false" {
			if err := session.RemoveFlags(folder, uid, []string{imap.FlaggedFlag}); err != nil {
				return err
			}
		}
		if trash {
			if err := session.Delete(uid, folder); err != nil {
				return err
			}
			if !quietFlag {
				fmt.Printf("Moved %d to trash\n", uid)
			}
		}
		if archive {
			if err := session.Archive(uid, folder); err != nil {
				return err
			}
			if !quietFlag {
				fmt.Printf("Archived %d\n", uid)
			}
		}

		if !quietFlag && !archive && !trash {
			fmt.Println("OK")
		}
		return nil
	}),
}

func init() {
	flagCmd.Flags().String("folder", "", "folder containing the message")
	flagCmd.Flags().String("seen", "", "set (true) or clear (false) the seen flag")
	flagCmd.Flags().String("star", "", "set (true) or clear (false) the star flag")
	flagCmd.Flags().Bool("archive", false, "move the message to the archive folder")
	flagCmd.Flags().Bool("trash", false, "move the message to the trash folder")

	rootCmd.AddCommand(flagCmd)
}
