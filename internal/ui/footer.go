package ui

import (
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/darkai/darkchat/internal/chat"
)

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// FlashKind selects the flash color
type FlashKind int

const (
	FlashInfo FlashKind = iota
	FlashError
)

// Footer is the bottom bar with key hints or a transient flash message
type Footer struct {
	width      int
	pending    bool
	mode       chat.Mode
	flash      string
	flashKind  FlashKind
	flashUntil time.Time
	now        func() time.Time
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{now: time.Now}
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetContext updates the state that selects which bindings are shown
func (f *Footer) SetContext(pending bool, mode chat.Mode) {
	f.pending = pending
	f.mode = mode
}

// Flash shows text instead of the bindings for FlashDuration
func (f *Footer) Flash(text string, kind FlashKind) {
	f.flash = text
	f.flashKind = kind
	f.flashUntil = f.now().Add(FlashDuration)
}

// ClearFlash removes an expired flash and reports whether one was removed
func (f *Footer) ClearFlash() bool {
	if f.flash == "" || f.now().Before(f.flashUntil) {
		return false
	}
	f.flash = ""
	return true
}

// Bindings returns the key hints for the current state
func (f *Footer) Bindings() []KeyBinding {
	if f.pending {
		return []KeyBinding{
			{Key: "esc", Desc: "cancel"},
			{Key: "pgup/dn", Desc: "scroll"},
			{Key: "ctrl+c", Desc: "quit"},
		}
	}

	image := "image"
	code := "code"
	switch f.mode {
	case chat.ModeImage:
		image = "image ✓"
	case chat.ModeCode:
		code = "code ✓"
	}
	return []KeyBinding{
		{Key: "enter", Desc: "send"},
		{Key: "ctrl+g", Desc: image},
		{Key: "ctrl+t", Desc: code},
		{Key: "ctrl+y", Desc: "copy reply"},
		{Key: "pgup/dn", Desc: "scroll"},
		{Key: "ctrl+c", Desc: "quit"},
	}
}

// View renders the footer
func (f *Footer) View() string {
	inner := max(f.width-2, 0)

	if f.flash != "" {
		style := FooterFlashInfo
		if f.flashKind == FlashError {
			style = FooterFlashErr
		}
		return FooterStyle.Width(f.width).Render(style.Render(ansi.Truncate(f.flash, inner, "…")))
	}

	var parts []string
	for _, b := range f.Bindings() {
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}
	content := strings.Join(parts, "  "+lipgloss.NewStyle().Foreground(ColorBorder).Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(ansi.Truncate(content, inner, "…"))
}
