package cmd

import (
	"errors"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/auth"
	"github.com/darkai/darkchat/internal/form"
)

var signinEmail, signinPassword string

var signinCmd = &cobra.Command{
	Use:   "signin",
	Short: "Sign in to your Dark AI account",
	Long: `Signs in with email and password and remembers the account in
~/.darkchat/session.json. Missing values are prompted for when running in a terminal.`,
	Args: cobra.NoArgs,
	RunE: runSignin,
}

func init() {
	signinCmd.Flags().StringVar(&signinEmail, "email", "", "Account email")
	signinCmd.Flags().StringVar(&signinPassword, "password", "", "Account password")
	rootCmd.AddCommand(signinCmd)
}

func runSignin(cmd *cobra.Command, args []string) error {
	_, _, sess, err := setup()
	if err != nil {
		return err
	}

	email, password := signinEmail, signinPassword
	if interactive(cmd) && (email == "" || password == "") {
		f := newForm(huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Value(&email).
				Validate(checkField(form.Signin, form.FieldEmail)),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&password).
				Validate(checkField(form.Signin, form.FieldPassword)),
		).Title("Sign in to Dark AI"))
		if err := runForm(f); err != nil {
			return err
		}
	}

	st, err := sess.SignIn(cmd.Context(), email, password)
	if err != nil {
		return errors.New(auth.Message(err))
	}
	printSuccess(cmd.OutOrStdout(), "Signed in as %s", st.Username)
	return nil
}
