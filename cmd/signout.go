package cmd

import (
	"github.com/spf13/cobra"
)

var signoutCmd = &cobra.Command{
	Use:   "signout",
	Short: "Forget the signed in account",
	Args:  cobra.NoArgs,
	RunE:  runSignout,
}

func init() {
	rootCmd.AddCommand(signoutCmd)
}

func runSignout(cmd *cobra.Command, args []string) error {
	_, _, sess, err := setup()
	if err != nil {
		return err
	}

	name, signedIn := sess.CurrentUser()
	if err := sess.SignOut(); err != nil {
		return err
	}
	if signedIn {
		printSuccess(cmd.OutOrStdout(), "Signed out %s", name)
	} else {
		printInfo(cmd.OutOrStdout(), "Not signed in")
	}
	return nil
}
