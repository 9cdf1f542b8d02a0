package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List folders on the server",
	RunE: logged(func(cmd *cobra.Command, args []string) error {
		session, _, err := openSession()
		if err != nil {
			return err
		}
		defer session.Disconnect()

		folders, err := session.ListFolders()
		if err != nil {
			return err
		}

		if jsonFlag {
			return printJSON(folders)
		}
		for _, folder := range folders {
			fmt.Println(folder)
		}
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}
