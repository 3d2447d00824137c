package app

import (
	tea "charm.land/bubbletea/v2"

	"github.com/darkai/darkchat/internal/chat"
	"github.com/darkai/darkchat/internal/clipboard"
	"github.com/darkai/darkchat/internal/keys"
)

// Shortcut is a key binding handled by the model before the chat panel
type Shortcut struct {
	Key         string
	Description string
	Handler     func(m *Model) (tea.Model, tea.Cmd)
	Condition   func(m *Model) bool // Optional; the key falls through when false
}

// ShortcutRegistry lists every model-level key binding
var ShortcutRegistry = []Shortcut{
	{
		Key:         keys.CtrlC,
		Description: "Quit",
		Handler:     shortcutQuit,
	},
	{
		Key:         keys.Enter,
		Description: "Send message",
		Handler:     shortcutSend,
	},
	{
		Key:         keys.Escape,
		Description: "Cancel the outstanding request",
		Handler:     shortcutCancel,
		Condition:   func(m *Model) bool { return m.session.IsPending() },
	},
	{
		Key:         keys.CtrlG,
		Description: "Toggle image generation",
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.toggleMode(chat.ModeImage) },
	},
	{
		Key:         keys.CtrlT,
		Description: "Toggle code mode",
		Handler:     func(m *Model) (tea.Model, tea.Cmd) { return m.toggleMode(chat.ModeCode) },
	},
	{
		Key:         keys.CtrlY,
		Description: "Copy the last reply",
		Handler:     shortcutCopyReply,
	},
}

// lookupShortcut returns the active shortcut for key
func (m *Model) lookupShortcut(key string) (Shortcut, bool) {
	for _, s := range ShortcutRegistry {
		if s.Key != key {
			continue
		}
		if s.Condition != nil && !s.Condition(m) {
			return Shortcut{}, false
		}
		return s, true
	}
	return Shortcut{}, false
}

func shortcutQuit(m *Model) (tea.Model, tea.Cmd) {
	m.Close()
	return m, tea.Quit
}

func shortcutSend(m *Model) (tea.Model, tea.Cmd) {
	return m.sendMessage()
}

func shortcutCancel(m *Model) (tea.Model, tea.Cmd) {
	if !m.cancelRequest() {
		return m, nil
	}
	return m, m.ShowFlashInfo("Request cancelled")
}

func (m *Model) toggleMode(target chat.Mode) (tea.Model, tea.Cmd) {
	mode := m.session.ToggleMode(target)
	m.chat.SetMode(mode)
	m.header.SetMode(mode)
	m.log.Debug("mode changed", "mode", mode.String())
	return m, m.ShowFlashInfo(mode.Label() + " mode")
}

func shortcutCopyReply(m *Model) (tea.Model, tea.Cmd) {
	msg, ok := m.session.LastBotMessage()
	if !ok {
		return m, m.ShowFlashError("Nothing to copy")
	}
	text := msg.Content
	if msg.IsImage() {
		text = m.resolve(msg.ImageRef())
	}
	return m, func() tea.Msg {
		return CopyResultMsg{Err: clipboard.WriteText(text)}
	}
}
