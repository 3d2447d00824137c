package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/api"
	"github.com/darkai/darkchat/internal/config"
	"github.com/darkai/darkchat/internal/logger"
)

var speakLang, speakOut string

// speechLanguageNames labels the codes in config.SpeechLanguages
var speechLanguageNames = map[string]string{
	"en": "English",
	"es": "Spanish",
	"hi": "Hindi",
	"fr": "French",
	"de": "German",
}

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Turn text into speech",
	Long: `Sends text to the Dark AI text-to-speech service and prints the audio URL.
Text comes from the arguments, or from standard input when none are given.
Use --out to download the audio file.`,
	RunE: runSpeak,
}

func init() {
	speakCmd.Flags().StringVarP(&speakLang, "lang", "l", "", "Language: "+strings.Join(config.SpeechLanguages, ", ")+" (default from config)")
	speakCmd.Flags().StringVarP(&speakOut, "out", "o", "", "Download the audio to this file")
	rootCmd.AddCommand(speakCmd)
}

func runSpeak(cmd *cobra.Command, args []string) error {
	cfg, client, err := setupClient()
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	lang := speakLang
	if lang == "" {
		lang = cfg.GetSpeechLanguage()
	}

	switch {
	case text == "" && interactive(cmd):
		if err := runForm(speakForm(&text, &lang)); err != nil {
			return err
		}
	case text == "":
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("error reading text: %w", err)
		}
		text = string(data)
	}

	if strings.TrimSpace(text) == "" {
		return errors.New("please enter some text to generate speech")
	}
	if !slices.Contains(config.SpeechLanguages, lang) {
		return fmt.Errorf("unsupported language %q (choose one of %s)", lang, strings.Join(config.SpeechLanguages, ", "))
	}

	resp, err := client.TextToSpeech(cmd.Context(), api.SpeechRequest{Text: text, Lang: lang})
	if err != nil {
		logger.WithComponent("cmd").Warn("text-to-speech failed", "error", err)
		return errors.New("failed to generate speech")
	}

	out := cmd.OutOrStdout()
	printField(out, "Audio", client.Resolve(resp.AudioURL))

	if speakOut == "" {
		return nil
	}
	f, err := os.Create(speakOut)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", speakOut, err)
	}
	n, err := client.Download(cmd.Context(), resp.AudioURL, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		if rerr := os.Remove(speakOut); rerr != nil {
			logger.WithComponent("cmd").Warn("removing partial download failed", "path", speakOut, "error", rerr)
		}
		return fmt.Errorf("error downloading audio: %w", err)
	}
	printSuccess(out, "Saved %d bytes to %s", n, speakOut)
	return nil
}

func speakForm(text, lang *string) *huh.Form {
	opts := make([]huh.Option[string], 0, len(config.SpeechLanguages))
	for _, code := range config.SpeechLanguages {
		opts = append(opts, huh.NewOption(speechLanguageNames[code], code))
	}
	return newForm(huh.NewGroup(
		huh.NewText().
			Title("Text").
			Value(text).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("Please enter some text")
				}
				return nil
			}),
		huh.NewSelect[string]().
			Title("Language").
			Options(opts...).
			Value(lang),
	).Title("Text to speech"))
}

// setupClient loads the config and builds an API client
func setupClient() (*config.Config, *api.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := newClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}
