package cmd

import (
	"errors"
	"fmt"
	"os"

	huh "charm.land/huh/v2"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/api"
	"github.com/darkai/darkchat/internal/auth"
	"github.com/darkai/darkchat/internal/config"
	"github.com/darkai/darkchat/internal/form"
	"github.com/darkai/darkchat/internal/ui"
)

// errAborted is returned when the user backs out of an interactive form
var errAborted = errors.New("aborted")

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	ui.SetThemeByName(cfg.GetTheme())
	return cfg, nil
}

func newClient(cfg *config.Config) (*api.Client, error) {
	client, err := api.NewClient(cfg.GetBaseURL(), cfg.GetRequestTimeout())
	if err != nil {
		return nil, fmt.Errorf("error creating API client: %w", err)
	}
	return client, nil
}

func newAuthSession(client auth.Authenticator) (*auth.Session, error) {
	store, err := auth.DefaultStore()
	if err != nil {
		return nil, err
	}
	return auth.NewSession(store, client)
}

// setup loads everything an account command needs
func setup() (*config.Config, *api.Client, *auth.Session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	sess, err := newAuthSession(client)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, client, sess, nil
}

// interactive reports whether the command can prompt on its input
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newForm(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(ui.FormTheme())
}

func runForm(f *huh.Form) error {
	if err := f.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errAborted
		}
		return err
	}
	return nil
}

// checkField adapts a form rule to a huh validator
func checkField(kind form.Kind, field string) func(string) error {
	return func(value string) error {
		return form.Check(kind, field, value)
	}
}
