package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/auth"
)

var verifyUsername, verifyEmail, verifyOTP string

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Confirm a new account with the emailed code",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&verifyUsername, "username", "", "Display name used at signup")
	verifyCmd.Flags().StringVar(&verifyEmail, "email", "", "Account email")
	verifyCmd.Flags().StringVar(&verifyOTP, "otp", "", "Verification code")
	_ = verifyCmd.MarkFlagRequired("username")
	_ = verifyCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	_, _, sess, err := setup()
	if err != nil {
		return err
	}

	v := &auth.Verification{Username: verifyUsername, Email: verifyEmail}
	st, err := sess.VerifyOTP(cmd.Context(), v, verifyOTP)
	if err != nil {
		return errors.New(auth.Message(err))
	}
	printSuccess(cmd.OutOrStdout(), "Welcome, %s! You are signed in.", st.Username)
	return nil
}
