package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darkai/darkchat/internal/chat"
)

var askMode string

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Ask Dark AI a single question",
	Long: `Sends one message and prints the reply. With --mode image the
message is an image prompt and the generated image URL is printed.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askMode, "mode", "chat", "Request mode: chat, image or code")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	mode, ok := chat.ParseMode(askMode)
	if !ok {
		return fmt.Errorf("unknown mode %q (choose chat, image or code)", askMode)
	}

	cfg, client, err := setupClient()
	if err != nil {
		return err
	}

	session := chat.NewSession(chat.WithoutGreeting())
	session.SetMode(mode)
	dispatcher := chat.NewDispatcher(session, client, cfg.GetRequestTimeout())

	reply, err := dispatcher.Send(cmd.Context(), strings.Join(args, " "))
	if errors.Is(err, chat.ErrEmptyInput) {
		return errors.New("message is empty")
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case reply.Fallback:
		return errors.New(strings.ReplaceAll(reply.Content, "**", ""))
	case reply.IsImage():
		printField(out, "Image", client.Resolve(reply.ImageRef()))
	default:
		fmt.Fprintln(out, reply.Content)
	}
	return nil
}
