package app

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/darkai/darkchat/internal/ui"
)

// ShowFlash displays a flash message in the footer and returns a command to start the auto-dismiss timer
func (m *Model) ShowFlash(text string, kind ui.FlashKind) tea.Cmd {
	m.footer.Flash(text, kind)
	return tea.Tick(ui.FlashDuration, func(time.Time) tea.Msg {
		return FlashExpiredMsg{}
	})
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashInfo displays an info flash message
func (m *Model) ShowFlashInfo(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashInfo)
}
