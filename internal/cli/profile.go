package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/davidjonas/AnyMail/internal/config"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage email profiles",
}

var profileAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a profile; with only --email, Gmail defaults apply",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		email, _ := cmd.Flags().GetString("email")
		imapHost, _ := cmd.Flags().GetString("imap")
		smtpHost, _ := cmd.Flags().GetString("smtp")

		profile := config.NewGmailProfile(args[0], email)
		if imapHost != "" {
			profile.IMAPHost = imapHost
		}
		if smtpHost != "" {
			profile.SMTPHost = smtpHost
		}
		if cmd.Flags().Changed("imap-port") {
			profile.IMAPPort, _ = cmd.Flags().GetInt("imap-port")
		}
		if cmd.Flags().Changed("smtp-port") {
			profile.SMTPPort, _ = cmd.Flags().GetInt("smtp-port")
		}
		if cmd.Flags().Changed("imap-ssl") {
			profile.IMAPSSL, _ = cmd.Flags().GetBool("imap-ssl")
		}
		if cmd.Flags().Changed("smtp-starttls") {
			profile.SMTPStartTLS, _ = cmd.Flags().GetBool("smtp-starttls")
		}

		if err := config.AddProfile(profile); err != nil {
			return err
		}
		fmt.Printf("Profile %q added.\n", profile.Name)
		return nil
	}),
}

var profileSetCmd = &cobra.Command{
	Use:   "set NAME",
	Short: "Update folder names or the display name of a profile",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		profile, err := config.GetProfile(args[0])
		if err != nil {
			return err
		}

		for flag, target := range map[string]*string{
			"folder-inbox":      &profile.FolderInbox,
			"folder-sent":       &profile.FolderSent,
			"folder-trash":      &profile.FolderTrash,
			"folder-allmail":    &profile.FolderAllMail,
			"default-from-name": &profile.DefaultFromName,
		} {
			if cmd.Flags().Changed(flag) {
				*target, _ = cmd.Flags().GetString(flag)
			}
		}

		if err := config.AddProfile(profile); err != nil {
			return err
		}
		fmt.Printf("Profile %q updated.\n", profile.Name)
		return nil
	}),
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Args:  cobra.NoArgs,
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		profiles, err := config.LoadProfiles()
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(profiles)
		}
		if len(profiles) == 0 {
			fmt.Println("No profiles configured.")
			return nil
		}

		names := make([]string, 0, len(profiles))
		for name := range profiles {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("%s: %s\n", name, profiles[name].Email)
		}
		return nil
	}),
}

var profileShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show profile details",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		profile, err := config.GetProfile(args[0])
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(profile)
		}
		fmt.Printf("Name: %s\n", profile.Name)
		fmt.Printf("Email: %s\n", profile.Email)
		fmt.Printf("IMAP: %s:%d (SSL: %t)\n", profile.IMAPHost, profile.IMAPPort, profile.IMAPSSL)
		fmt.Printf("SMTP: %s:%d (STARTTLS: %t)\n", profile.SMTPHost, profile.SMTPPort, profile.SMTPStartTLS)
		fmt.Println("Folders:")
		fmt.Printf("  Inbox: %s\n", profile.FolderInbox)
		fmt.Printf("  Sent: %s\n", profile.FolderSent)
		fmt.Printf("  Trash: %s\n", profile.FolderTrash)
		fmt.Printf("  All Mail: %s\n", profile.FolderAllMail)
		return nil
	}),
}

var profileRmCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a profile",
	Args:  cobra.ExactArgs(1),
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		removed, err := config.RemoveProfile(args[0])
		if err != nil {
			return err
		}
		if !removed {
			return fmt.Errorf("profile %q not found", args[0])
		}
		fmt.Printf("Profile %q removed.\n", args[0])
		return nil
	}),
}

func init() {
	profileAddCmd.Flags().String("email", "", "email address (required)")
	profileAddCmd.Flags().String("imap", "", "IMAP host (default: imap.gmail.com)")
	profileAddCmd.Flags().Int("imap-port", config.GmailIMAPPort, "IMAP port")
	profileAddCmd.Flags().Bool("imap-ssl", true, "use implicit TLS for IMAP")
	profileAddCmd.Flags().String("smtp", "", "SMTP host (default: smtp.gmail.com)")
	profileAddCmd.Flags().Int("smtp-port", config.GmailSMTPPort, "SMTP port")
	profileAddCmd.Flags().Bool("smtp-starttls", true, "use STARTTLS for SMTP")
	_ = profileAddCmd.MarkFlagRequired("email")

	profileSetCmd.Flags().String("folder-inbox", "", "inbox folder name")
	profileSetCmd.Flags().String("folder-sent", "", "sent folder name")
	profileSetCmd.Flags().String("folder-trash", "", "trash folder name")
	profileSetCmd.Flags().String("folder-allmail", "", "all-mail folder name")
	profileSetCmd.Flags().String("default-from-name", "", "display name for outgoing mail")

	profileCmd.AddCommand(profileAddCmd, profileSetCmd, profileListCmd, profileShowCmd, profileRmCmd)
	rootCmd.AddCommand(profileCmd)
}
