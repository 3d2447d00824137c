package cmd

import (
	"errors"
	"fmt"
	"io"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/auth"
	"github.com/darkai/darkchat/internal/form"
)

var signupUsername, signupEmail, signupPassword string

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create a Dark AI account",
	Long: `Registers a new account. The backend emails a one-time code which is
entered next; "Edit details" goes back to the registration form.
When not running in a terminal, finish with "darkchat verify".`,
	Args: cobra.NoArgs,
	RunE: runSignup,
}

func init() {
	signupCmd.Flags().StringVar(&signupUsername, "username", "", "Display name")
	signupCmd.Flags().StringVar(&signupEmail, "email", "", "Account email")
	signupCmd.Flags().StringVar(&signupPassword, "password", "", "Password (at least 6 characters)")
	rootCmd.AddCommand(signupCmd)
}

type signupDetails struct {
	username string
	email    string
	password string
}

func (d signupDetails) complete() bool {
	return d.username != "" && d.email != "" && d.password != ""
}

const (
	otpVerify = "verify"
	otpEdit   = "edit"
)

func runSignup(cmd *cobra.Command, args []string) error {
	_, _, sess, err := setup()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	details := signupDetails{signupUsername, signupEmail, signupPassword}

	if !interactive(cmd) {
		v, err := sess.SignUp(cmd.Context(), details.username, details.email, details.password)
		if err != nil {
			return errors.New(auth.Message(err))
		}
		printSuccess(out, "Account created. We sent a verification code to %s", v.Email)
		printInfo(out, "Finish with: darkchat verify --username %q --email %q --otp <code>", v.Username, v.Email)
		return nil
	}

	editing := !details.complete()
	for {
		if editing {
			if err := runForm(signupDetailsForm(&details)); err != nil {
				return err
			}
		}

		v, err := sess.SignUp(cmd.Context(), details.username, details.email, details.password)
		if err != nil {
			printWarn(out, "%s", auth.Message(err))
			editing = true
			continue
		}
		printSuccess(out, "We sent a verification code to %s", v.Email)

		done, err := verifyInteractively(cmd, out, sess, v)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		editing = true
	}
}

func signupDetailsForm(d *signupDetails) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().
			Title("Username").
			Value(&d.username).
			Validate(checkField(form.Signup, form.FieldUsername)),
		huh.NewInput().
			Title("Email").
			Value(&d.email).
			Validate(checkField(form.Signup, form.FieldEmail)),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&d.password).
			Validate(checkField(form.Signup, form.FieldPassword)),
	).Title("Create your Dark AI account"))
}

// verifyInteractively prompts for the OTP until it is accepted. It returns
// false when the user chose to edit their details instead.
func verifyInteractively(cmd *cobra.Command, out io.Writer, sess *auth.Session, v *auth.Verification) (bool, error) {
	for {
		var otp string
		action := otpVerify
		f := newForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Next").
				Options(
					huh.NewOption("Enter verification code", otpVerify),
					huh.NewOption("Edit details", otpEdit),
				).
				Value(&action),
		), huh.NewGroup(
			huh.NewInput().
				Title("Verification code").
				Description(fmt.Sprintf("Sent to %s", v.Email)).
				Value(&otp).
				Validate(checkField(form.Verify, form.FieldOTP)),
		).WithHideFunc(func() bool { return action == otpEdit }))
		if err := runForm(f); err != nil {
			return false, err
		}
		if action == otpEdit {
			return false, nil
		}

		st, err := sess.VerifyOTP(cmd.Context(), v, otp)
		if err != nil {
			printWarn(out, "%s", auth.Message(err))
			continue
		}
		printSuccess(out, "Welcome, %s! You are signed in.", st.Username)
		return true, nil
	}
}
