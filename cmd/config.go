package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/config"
	"github.com/darkai/darkchat/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change client settings",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <theme|notifications> <value>",
	Short: "Change a setting in the config file",
	Long: `Changes a setting and saves it to the config file.

  darkchat config set theme nord
  darkchat config set notifications on`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"theme", "notifications"},
	RunE:      runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func themeNames() []string {
	return lo.Map(ui.ThemeNames(), func(n ui.ThemeName, _ int) string { return string(n) })
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (use on or off)", value)
}

// printOAuthStatus reports whether third-party sign-in has a client configured
func printOAuthStatus(w io.Writer, cfg *config.Config) {
	if cfg.GetOAuthClientID() != "" {
		printField(w, "OAuth", "client configured")
	} else {
		printField(w, "OAuth", "not configured")
	}
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printField(out, "File", cfg.FilePath())
	printField(out, "Backend", cfg.GetBaseURL())
	printField(out, "Timeout", cfg.GetRequestTimeout().String())
	printField(out, "Theme", string(ui.CurrentThemeName()))
	printField(out, "Notify", onOff(cfg.GetNotificationsEnabled()))
	printField(out, "Speech", cfg.GetSpeechLanguage())
	printOAuthStatus(out, cfg)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path, err := config.Path()
	if err != nil {
		return fmt.Errorf("error locating config: %w", err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	key, value := args[0], args[1]
	var shown string
	switch key {
	case "theme":
		names := themeNames()
		if !slices.Contains(names, value) {
			return fmt.Errorf("unknown theme %q (choose one of %s)", value, strings.Join(names, ", "))
		}
		cfg.SetTheme(value)
		shown = value
	case "notifications":
		enabled, err := parseOnOff(value)
		if err != nil {
			return err
		}
		cfg.SetNotificationsEnabled(enabled)
		shown = onOff(enabled)
	default:
		return fmt.Errorf("unknown setting %q (choose theme or notifications)", key)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("error saving config: %w", err)
	}
	printSuccess(cmd.OutOrStdout(), "Set %s to %s in %s", key, shown, cfg.FilePath())
	return nil
}
