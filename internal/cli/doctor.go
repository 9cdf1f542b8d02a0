package cli

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/config"
	"github.com/davidjonas/AnyMail/internal/keychain"
	"github.com/davidjonas/AnyMail/internal/mailbox"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check configuration, credentials, and connectivity",
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		var issues []string
		ok := func(format string, a ...any) {
			fmt.Printf("✓ "+format+"\n", a...)
		}

		profiles, err := config.LoadProfiles()
		switch {
		case err != nil:
			issues = append(issues, fmt.Sprintf("Config error: %v", err))
		case len(profiles) == 0:
			issues = append(issues, "No profiles configured")
		default:
			ok("Config readable (%d profile(s))", len(profiles))
		}

		issues = append(issues, checkKeyringAccess(ok)...)
		issues = append(issues, checkProfileAndConnection(ok)...)

		if len(issues) > 0 {
			fmt.Fprintln(os.Stderr, "\nIssues found:")
			for _, issue := range issues {
				fmt.Fprintf(os.Stderr, "  ✗ %s\n", issue)
			}
			return fmt.Errorf("%d issue(s) found", len(issues))
		}
		fmt.Println("\n✓ All checks passed")
		return nil
	}),
}

func checkKeyringAccess(ok func(string, ...any)) []string {
	const probe = "__doctor__"
	if err := keychain.Set(probe, "probe"); err != nil {
		return []string{fmt.Sprintf("Keyring error: %v", err)}
	}
	if _, err := keychain.Clear(probe); err != nil {
		return []string{fmt.Sprintf("Keyring error: %v", err)}
	}
	ok("Keyring accessible")
	return nil
}

func checkProfileAndConnection(ok func(string, ...any)) []string {
	profile, err := resolveProfile()
	if err != nil {
		return []string{err.Error()}
	}
	ok("Profile %q found", profile.Name)

	secret, stored := keychain.Get(profile.Name)
	if !stored {
		return []string{"No password stored for profile"}
	}
	ok("Password stored")

	session, err := mailbox.Connect(profile, profile.Email, secret)
	if err != nil {
		return []string{fmt.Sprintf("IMAP connection failed: %v", err)}
	}
	defer session.Disconnect()

	folders, err := session.ListFolders()
	if err != nil {
		return []string{fmt.Sprintf("IMAP folder listing failed: %v", err)}
	}
	ok("IMAP connection successful (%d folders)", len(folders))

	var issues []string
	for _, required := range []string{profile.FolderInbox, profile.FolderSent, profile.FolderTrash} {
		if slices.Contains(folders, required) {
			ok("Folder %q exists", required)
		} else {
			issues = append(issues, fmt.Sprintf("Folder %q not found", required))
		}
	}
	return issues
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
