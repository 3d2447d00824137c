// Package notification sends desktop notifications through beeep.
package notification

import (
	"github.com/gen2brain/beeep"

	"github.com/darkai/darkchat/internal/logger"
)

// Title is used for every notification darkchat sends
const Title = "Dark AI"

var notify = beeep.Notify

// SetNotifier replaces the notification function. Used by tests.
func SetNotifier(fn func(title, message string, icon any) error) {
	notify = fn
}

// ResetNotifier restores the beeep notifier
func ResetNotifier() {
	notify = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending", "title", title)
	err := notify(title, message, "")
	if err != nil {
		log.Warn("failed to send", "error", err)
	}
	return err
}

// ImageReady announces a finished image generation.
func ImageReady(prompt string) error {
	return Send(Title, "Image ready: "+summarize(prompt, 60))
}

// ReplyReady announces a chat reply that arrived while the window was idle.
func ReplyReady() error {
	return Send(Title, "New reply")
}

func summarize(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
