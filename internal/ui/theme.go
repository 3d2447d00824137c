package ui

import "charm.land/lipgloss/v2"

// Theme is a complete color palette for the chat view
type Theme struct {
	Name string

	Primary   string // focus, header, accents
	Secondary string // key hints, loading text
	Bg        string

	Text      string
	TextMuted string

	User      string
	Assistant string
	Warning   string
	Error     string
	Success   string
	Border    string

	MarkdownH1     string
	MarkdownH2     string
	MarkdownH3     string
	MarkdownCode   string
	MarkdownCodeBg string
	MarkdownLink   string

	// CodeStyle is the chroma style used for fenced code blocks
	CodeStyle string
}

// ThemeName identifies a builtin theme
type ThemeName string

const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is used when the configured theme is empty or unknown
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all builtin themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:           "Dark Purple",
		Primary:        "#7C3AED",
		Secondary:      "#06B6D4",
		Bg:             "#1F2937",
		Text:           "#F9FAFB",
		TextMuted:      "#9CA3AF",
		User:           "#A78BFA",
		Assistant:      "#22D3EE",
		Warning:        "#F59E0B",
		Error:          "#EF4444",
		Success:        "#10B981",
		Border:         "#374151",
		MarkdownH1:     "#A78BFA",
		MarkdownH2:     "#C4B5FD",
		MarkdownH3:     "#22D3EE",
		MarkdownCode:   "#67E8F9",
		MarkdownCodeBg: "#1E1E2E",
		MarkdownLink:   "#67E8F9",
		CodeStyle:      "monokai",
	},
	ThemeNord: {
		Name:           "Nord",
		Primary:        "#88C0D0",
		Secondary:      "#81A1C1",
		Bg:             "#2E3440",
		Text:           "#ECEFF4",
		TextMuted:      "#D8DEE9",
		User:           "#A3BE8C",
		Assistant:      "#88C0D0",
		Warning:        "#EBCB8B",
		Error:          "#BF616A",
		Success:        "#A3BE8C",
		Border:         "#4C566A",
		MarkdownH1:     "#88C0D0",
		MarkdownH2:     "#81A1C1",
		MarkdownH3:     "#5E81AC",
		MarkdownCode:   "#A3BE8C",
		MarkdownCodeBg: "#242933",
		MarkdownLink:   "#88C0D0",
		CodeStyle:      "nord",
	},
	ThemeDracula: {
		Name:           "Dracula",
		Primary:        "#BD93F9",
		Secondary:      "#8BE9FD",
		Bg:             "#282A36",
		Text:           "#F8F8F2",
		TextMuted:      "#6272A4",
		User:           "#FF79C6",
		Assistant:      "#8BE9FD",
		Warning:        "#FFB86C",
		Error:          "#FF5555",
		Success:        "#50FA7B",
		Border:         "#44475A",
		MarkdownH1:     "#BD93F9",
		MarkdownH2:     "#FF79C6",
		MarkdownH3:     "#8BE9FD",
		MarkdownCode:   "#50FA7B",
		MarkdownCodeBg: "#21222C",
		MarkdownLink:   "#8BE9FD",
		CodeStyle:      "dracula",
	},
	ThemeLight: {
		Name:           "Light",
		Primary:        "#6366F1",
		Secondary:      "#0891B2",
		Bg:             "#FFFFFF",
		Text:           "#1F2937",
		TextMuted:      "#6B7280",
		User:           "#7C3AED",
		Assistant:      "#0891B2",
		Warning:        "#D97706",
		Error:          "#DC2626",
		Success:        "#16A34A",
		Border:         "#D1D5DB",
		MarkdownH1:     "#6366F1",
		MarkdownH2:     "#7C3AED",
		MarkdownH3:     "#0891B2",
		MarkdownCode:   "#059669",
		MarkdownCodeBg: "#F3F4F6",
		MarkdownLink:   "#0891B2",
		CodeStyle:      "github",
	},
}

// ThemeNames returns the builtin theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{ThemeDarkPurple, ThemeNord, ThemeDracula, ThemeLight}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme activates a theme and regenerates every style
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName activates a theme by its config name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the active theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBorderFocus = lipgloss.Color(t.Primary)
	ColorBg = lipgloss.Color(t.Bg)
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorUser = lipgloss.Color(t.User)
	ColorAssistant = lipgloss.Color(t.Assistant)
	ColorWarning = lipgloss.Color(t.Warning)
	ColorError = lipgloss.Color(t.Error)
	ColorSuccess = lipgloss.Color(t.Success)

	buildStyles()
}
