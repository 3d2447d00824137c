package cmd

import (
	"context"
	"errors"
	"time"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/form"
	"github.com/darkai/darkchat/internal/logger"
)

// contactDelay stands in for the round trip of a real submission
var contactDelay = 2 * time.Second

var contactName, contactEmail, contactSubject, contactMessage string

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the Dark AI team",
	Args:  cobra.NoArgs,
	RunE:  runContact,
}

func init() {
	contactCmd.Flags().StringVar(&contactName, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactEmail, "email", "", "Your email")
	contactCmd.Flags().StringVar(&contactSubject, "subject", "", "Subject")
	contactCmd.Flags().StringVarP(&contactMessage, "message", "m", "", "Message (at least 10 characters)")
	rootCmd.AddCommand(contactCmd)
}

func runContact(cmd *cobra.Command, args []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	d := contactDetails{contactName, contactEmail, contactSubject, contactMessage}
	if interactive(cmd) && len(form.Validate(form.Contact, d.values())) > 0 {
		if err := runForm(contactForm(&d)); err != nil {
			return err
		}
	}

	f := form.New(form.Contact)
	for field, value := range d.values() {
		f.Set(field, value)
	}

	out := cmd.OutOrStdout()
	if !f.Submit() {
		errs := f.Errors()
		for _, field := range errs.Fields() {
			printWarn(out, "%s: %s", field, errs[field])
		}
		return errors.New("the contact form has errors")
	}

	printInfo(out, "Sending...")
	if err := submitContact(cmd.Context(), f.Values()); err != nil {
		return err
	}
	f.Reset()
	printSuccess(out, "Message sent successfully! We'll get back to you soon.")
	return nil
}

type contactDetails struct {
	name, email, subject, message string
}

func (d contactDetails) values() map[string]string {
	return map[string]string{
		form.FieldName:    d.name,
		form.FieldEmail:   d.email,
		form.FieldSubject: d.subject,
		form.FieldMessage: d.message,
	}
}

func contactForm(d *contactDetails) *huh.Form {
	return newForm(huh.NewGroup(
		huh.NewInput().Title("Name").Value(&d.name).Validate(checkField(form.Contact, form.FieldName)),
		huh.NewInput().Title("Email").Value(&d.email).Validate(checkField(form.Contact, form.FieldEmail)),
		huh.NewInput().Title("Subject").Value(&d.subject).Validate(checkField(form.Contact, form.FieldSubject)),
		huh.NewText().Title("Message").Value(&d.message).Validate(checkField(form.Contact, form.FieldMessage)),
	).Title("Get in touch"))
}

// submitContact simulates delivering the message; there is no backend
// endpoint for it
func submitContact(ctx context.Context, values map[string]string) error {
	logger.WithComponent("contact").Info("contact message submitted",
		"subject", values[form.FieldSubject],
		"messageLength", len(values[form.FieldMessage]),
	)
	select {
	case <-time.After(contactDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
