package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed in account",
	Args:  cobra.NoArgs,
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg, _, sess, err := setup()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	st := sess.State()
	if !st.SignedIn() {
		printInfo(out, "Not signed in")
		printOAuthStatus(out, cfg)
		return nil
	}

	printField(out, "User", st.Username)
	if st.Email != "" {
		printField(out, "Email", st.Email)
	}
	if !st.SignedInAt.IsZero() {
		printField(out, "Since", st.SignedInAt.Local().Format("2006-01-02 15:04"))
	}
	if exp, ok := sess.TokenExpiry(); ok {
		status := exp.Local().Format("2006-01-02 15:04")
		if time.Now().After(exp) {
			status += " (expired)"
		}
		printField(out, "Token", "expires "+status)
	}
	printOAuthStatus(out, cfg)
	return nil
}
