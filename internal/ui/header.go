package ui

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/darkai/darkchat/internal/animate"
	"github.com/darkai/darkchat/internal/chat"
)

const headerTitle = " Dark AI"

// Header is the top bar: title, active mode, message count and account
type Header struct {
	width    int
	mode     chat.Mode
	username string
	counter  animate.Tween[int]
	now      func() time.Time
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{now: time.Now}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetMode sets the mode badge
func (h *Header) SetMode(m chat.Mode) {
	h.mode = m
}

// SetUser sets the signed in name; "" means signed out
func (h *Header) SetUser(name string) {
	h.username = name
}

// SetMessageCount animates the counter from its current value to n
func (h *Header) SetMessageCount(n int) {
	now := h.now()
	from := h.counter.At(now)
	if from == n && h.counter.To == n {
		return
	}
	h.counter = animate.New(from, n, CounterDuration, now)
	h.counter.Ease = animate.EaseOutCubic
}

// IsAnimating reports whether the counter is still moving
func (h *Header) IsAnimating() bool {
	return !h.counter.Done(h.now())
}

func (h *Header) userText() string {
	if h.username == "" {
		return "signed out"
	}
	return "signed in as " + h.username
}

// View renders the header
func (h *Header) View() string {
	badge := ""
	if h.mode != chat.ModeChat {
		badge = HeaderModeStyle.Render(strings.ToUpper(h.mode.Label()))
	}

	right := fmt.Sprintf("%d msgs · %s ", h.counter.At(h.now()), h.userText())

	// Drop the right side first when space runs out, then truncate the title
	space := h.width - ansi.StringWidth(badge)
	title := headerTitle
	if runewidth.StringWidth(title)+runewidth.StringWidth(right)+1 > space {
		right = ""
	}
	if runewidth.StringWidth(title) > space {
		title = runewidth.Truncate(title, max(space, 0), "…")
	}

	padding := max(space-runewidth.StringWidth(title)-runewidth.StringWidth(right), 0)
	content := title + strings.Repeat(" ", padding) + right

	return h.renderGradient(content) + badge
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		_, _ = fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders content on a background fading from the primary
// color into the theme background
func (h *Header) renderGradient(content string) string {
	if content == "" {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)
	titleLen := len([]rune(headerTitle))

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < titleLen)
		if i < titleLen {
			style = style.Foreground(textColor)
		} else {
			style = style.Foreground(mutedColor)
		}
		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
