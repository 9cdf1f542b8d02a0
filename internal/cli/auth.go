package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/davidjonas/AnyMail/internal/config"
	"github.com/davidjonas/AnyMail/internal/keychain"
	"github.com/davidjonas/AnyMail/internal/mailbox"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored credentials",
}

var authSetCmd = &cobra.Command{
	Use:   "set PROFILE",
	Short: "Store the app password for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		if _, err := config.GetProfile(args[0]); err != nil {
			return err
		}

		fmt.Fprint(os.Stderr, "App password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}

		if err := keychain.Set(args[0], string(password)); err != nil {
			return err
		}
		fmt.Printf("Password stored for profile %q.\n", args[0])
		return nil
	}),
}

var authClearCmd = &cobra.Command{
	Use:   "clear PROFILE",
	Short: "Clear the stored password for a profile",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		cleared, err := keychain.Clear(args[0])
		if err != nil {
			return err
		}
		if !cleared {
			return fmt.Errorf("no password stored for profile %q", args[0])
		}
		fmt.Printf("Password cleared for profile %q.\n", args[0])
		return nil
	}),
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check credentials and connectivity for a profile",
	Args:  cobra.NoArgs,
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		profile, err := resolveProfile()
		if err != nil {
			return err
		}

		hasSecret := keychain.Has(profile.Name)
		fmt.Printf("Profile: %s\n", profile.Name)
		fmt.Printf("Email: %s\n", profile.Email)
		fmt.Printf("Password stored: %t\n", hasSecret)
		if !hasSecret {
			return nil
		}

		secret, _ := keychain.Get(profile.Name)
		session, err := mailbox.Connect(profile, profile.Email, secret)
		if err != nil {
			fmt.Printf("Connection: FAILED - %v\n", err)
			return nil
		}
		defer session.Disconnect()
		fmt.Println("Connection: OK")
		return nil
	}),
}

func init() {
	authCmd.AddCommand(authSetCmd, authClearCmd, authStatusCmd)
	rootCmd.AddCommand(authCmd)
}
