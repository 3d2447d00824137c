package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, replaced by regenerateStyles when the theme changes
var (
	ColorPrimary     color.Color = lipgloss.Color("#7C3AED")
	ColorSecondary   color.Color = lipgloss.Color("#06B6D4")
	ColorBorder      color.Color = lipgloss.Color("#374151")
	ColorBorderFocus color.Color = lipgloss.Color("#7C3AED")
	ColorBg          color.Color = lipgloss.Color("#1F2937")
	ColorText        color.Color = lipgloss.Color("#F9FAFB")
	ColorTextMuted   color.Color = lipgloss.Color("#9CA3AF")
	ColorUser        color.Color = lipgloss.Color("#A78BFA")
	ColorAssistant   color.Color = lipgloss.Color("#22D3EE")
	ColorWarning     color.Color = lipgloss.Color("#F59E0B")
	ColorError       color.Color = lipgloss.Color("#EF4444")
	ColorSuccess     color.Color = lipgloss.Color("#10B981")
)

// Header and footer
var (
	HeaderModeStyle lipgloss.Style
	HeaderUserStyle lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
	FooterFlashInfo lipgloss.Style
	FooterFlashErr  lipgloss.Style
)

// Chat panel
var (
	PanelStyle            lipgloss.Style
	PanelFocusedStyle     lipgloss.Style
	ChatUserStyle         lipgloss.Style
	ChatAssistantStyle    lipgloss.Style
	ChatTimestampStyle    lipgloss.Style
	ChatFallbackStyle     lipgloss.Style
	ChatImageStyle        lipgloss.Style
	ChatInputStyle        lipgloss.Style
	ChatInputFocusedStyle lipgloss.Style
	ChatNoticeStyle       lipgloss.Style
	StatusLoadingStyle    lipgloss.Style
)

// Markdown
var (
	MarkdownH1Style         lipgloss.Style
	MarkdownH2Style         lipgloss.Style
	MarkdownH3Style         lipgloss.Style
	MarkdownBoldStyle       lipgloss.Style
	MarkdownItalicStyle     lipgloss.Style
	MarkdownInlineCodeStyle lipgloss.Style
	MarkdownLinkStyle       lipgloss.Style
	MarkdownListBulletStyle lipgloss.Style
)

func init() {
	buildStyles()
}

func buildStyles() {
	t := currentTheme

	HeaderModeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorBg).
		Background(ColorSecondary).
		Padding(0, 1)

	HeaderUserStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterFlashInfo = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Bold(true)

	FooterFlashErr = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)

	PanelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)

	PanelFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus)

	ChatUserStyle = lipgloss.NewStyle().
		Foreground(ColorUser).
		Bold(true)

	ChatAssistantStyle = lipgloss.NewStyle().
		Foreground(ColorAssistant).
		Bold(true)

	ChatTimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Faint(true)

	ChatFallbackStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	ChatImageStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSecondary).
		Padding(0, 1)

	ChatInputStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)

	ChatInputFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorderFocus).
		Padding(0, 1)

	ChatNoticeStyle = lipgloss.NewStyle().
		Foreground(ColorWarning).
		Italic(true)

	StatusLoadingStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	MarkdownH1Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH1))

	MarkdownH2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH2))

	MarkdownH3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(t.MarkdownH3))

	MarkdownBoldStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText)

	MarkdownItalicStyle = lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorText)

	MarkdownInlineCodeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownCode)).
		Background(lipgloss.Color(t.MarkdownCodeBg))

	MarkdownLinkStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(t.MarkdownLink)).
		Underline(true)

	MarkdownListBulletStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
}
