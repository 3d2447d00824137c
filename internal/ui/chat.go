package ui

import (
	"strings"
	"time"

	"charm.land/bubbles/v2/textarea"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/darkai/darkchat/internal/animate"
	"github.com/darkai/darkchat/internal/chat"
	"github.com/darkai/darkchat/internal/keys"
)

// StartupNotice is shown while the backend may still be cold
const StartupNotice = "⏳ Server is waking up… the first reply can take up to a minute."

// Chat is the conversation panel: the message log above an input box
type Chat struct {
	viewport viewport.Model
	input    textarea.Model
	width    int
	height   int
	focused  bool

	messages []chat.Message
	mode     chat.Mode
	resolve  func(ref string) string

	waiting   bool
	waitStart time.Time
	verb      string
	frame     int

	notice   string
	rendered string
	shown    int

	greeting   *animate.Typewriter
	greetingID int64

	now func() time.Time
}

// NewChat creates the chat panel
func NewChat() *Chat {
	ti := textarea.New()
	ti.Placeholder = "Ask Dark AI anything..."
	ti.CharLimit = 0
	ti.SetHeight(TextareaHeight)
	ti.ShowLineNumbers = false
	ti.Prompt = ""
	// enter submits; the app intercepts it before the textarea sees it
	ti.KeyMap.InsertNewline.SetKeys(keys.ShiftEnter, keys.AltEnter)

	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	c := &Chat{
		viewport: vp,
		input:    ti,
		resolve:  func(ref string) string { return ref },
		now:      time.Now,
	}
	c.updateContent()
	return c
}

// SetSize sets the panel dimensions including the input box
func (c *Chat) SetSize(width, height int) {
	c.width = width
	c.height = height

	ctx := GetViewContext()
	innerWidth := ctx.InnerWidth(width)
	vpHeight := max(ctx.InnerHeight(height-InputTotalHeight), 1)

	c.viewport.SetWidth(innerWidth)
	c.viewport.SetHeight(vpHeight)
	c.input.SetWidth(innerWidth - InputPaddingWidth)
	c.updateContent()

	ctx.Log("Chat.SetSize", "width", width, "height", height, "viewportHeight", vpHeight)
}

// SetFocused sets the focus state
func (c *Chat) SetFocused(focused bool) {
	c.focused = focused
	if focused {
		c.input.Focus()
	} else {
		c.input.Blur()
	}
}

// IsFocused returns the focus state
func (c *Chat) IsFocused() bool {
	return c.focused
}

// SetImageResolver sets how image references become displayable URLs
func (c *Chat) SetImageResolver(resolve func(ref string) string) {
	if resolve != nil {
		c.resolve = resolve
	}
}

// SetMessages replaces the rendered log
func (c *Chat) SetMessages(msgs []chat.Message) {
	c.messages = msgs
	c.updateContent()
}

// SetMode updates the placeholder to match the active mode
func (c *Chat) SetMode(m chat.Mode) {
	c.mode = m
	switch m {
	case chat.ModeImage:
		c.input.Placeholder = "Describe the image to generate..."
	case chat.ModeCode:
		c.input.Placeholder = "Ask a coding question..."
	default:
		c.input.Placeholder = "Ask Dark AI anything..."
	}
}

// SetWaiting shows or hides the typing indicator
func (c *Chat) SetWaiting(waiting bool) {
	c.waiting = waiting
	if waiting {
		c.waitStart = c.now()
		c.frame = 0
		if c.mode == chat.ModeImage {
			c.verb = randomVerb(imagingVerbs)
		} else {
			c.verb = randomVerb(thinkingVerbs)
		}
	}
	c.updateContent()
}

// IsWaiting reports whether the typing indicator is shown
func (c *Chat) IsWaiting() bool {
	return c.waiting
}

// ShowNotice displays a line above the log until HideNotice is called
func (c *Chat) ShowNotice(text string) {
	c.notice = text
	c.updateContent()
}

// HideNotice removes the notice line
func (c *Chat) HideNotice() {
	c.notice = ""
	c.updateContent()
}

// Notice returns the notice text, or ""
func (c *Chat) Notice() string {
	return c.notice
}

// StartGreeting types out the bot message with the given ID
func (c *Chat) StartGreeting(msg chat.Message) {
	c.greetingID = msg.ID
	c.greeting = animate.NewTypewriter(msg.Content, animate.DefaultTypeDelay, c.now())
	c.updateContent()
}

// IsAnimating reports whether the panel needs further animation ticks
func (c *Chat) IsAnimating() bool {
	return c.waiting || (c.greeting != nil && !c.greeting.Done(c.now()))
}

// GetInput returns the input text as typed
func (c *Chat) GetInput() string {
	return c.input.Value()
}

// ClearInput clears the input box
func (c *Chat) ClearInput() {
	c.input.Reset()
}

// SetInput sets the input box value
func (c *Chat) SetInput(value string) {
	c.input.SetValue(value)
}

// GotoBottom scrolls the log to the newest message
func (c *Chat) GotoBottom() {
	c.viewport.GotoBottom()
}

// AtBottom reports whether the log is scrolled to the end
func (c *Chat) AtBottom() bool {
	return c.viewport.AtBottom()
}

func (c *Chat) renderBody(msg chat.Message, wrapWidth int) string {
	switch {
	case msg.IsImage():
		return renderImageMessage(msg.ImageRef(), c.resolve(msg.ImageRef()), wrapWidth)
	case msg.Fallback:
		return ChatFallbackStyle.Render(renderMarkdown(msg.Content, wrapWidth))
	case c.greeting != nil && msg.ID == c.greetingID && !c.greeting.Done(c.now()):
		return renderMarkdown(c.greeting.Visible(c.now()), wrapWidth)
	default:
		return renderMarkdown(strings.TrimSpace(msg.Content), wrapWidth)
	}
}

func (c *Chat) updateContent() {
	var sb strings.Builder

	wrapWidth := c.viewport.Width()
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}

	if c.notice != "" {
		sb.WriteString(ChatNoticeStyle.Render(c.notice))
		sb.WriteString("\n\n")
	}

	if len(c.messages) == 0 && !c.waiting {
		sb.WriteString(lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true).
			Render("Start a conversation with Dark AI..."))
	}

	for i, msg := range c.messages {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderMessage(msg, c.renderBody(msg, wrapWidth)))
	}

	if c.waiting {
		if len(c.messages) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(renderWaiting(c.verb, c.frame, formatElapsed(c.now().Sub(c.waitStart))))
	}

	// Stay put while the user is scrolled back, unless the log changed
	follow := c.AtBottom() || len(c.messages) != c.shown
	c.shown = len(c.messages)

	c.rendered = sb.String()
	c.viewport.SetContent(c.rendered)
	if follow {
		c.viewport.GotoBottom()
	}
}

// Update handles messages
func (c *Chat) Update(msg tea.Msg) (*Chat, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(AnimationTickMsg); ok {
		if c.IsAnimating() {
			c.frame++
			c.updateContent()
		} else if c.greeting != nil {
			// Render the final frame once and stop tracking it
			c.greeting = nil
			c.updateContent()
		}
		return c, nil
	}

	if c.focused {
		if keyMsg, isKey := msg.(tea.KeyPressMsg); isKey {
			switch keyMsg.String() {
			case keys.PgUp, keys.PgDown, keys.Home, keys.End, keys.CtrlU, keys.CtrlD:
				var cmd tea.Cmd
				c.viewport, cmd = c.viewport.Update(msg)
				return c, cmd
			}

			var cmd tea.Cmd
			c.input, cmd = c.input.Update(msg)
			return c, cmd
		}

		var cmd tea.Cmd
		c.input, cmd = c.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	var cmd tea.Cmd
	c.viewport, cmd = c.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return c, tea.Batch(cmds...)
}

// View renders the log panel and the input box below it
func (c *Chat) View() string {
	panelStyle := PanelStyle
	inputStyle := ChatInputStyle
	if c.focused {
		panelStyle = PanelFocusedStyle
		inputStyle = ChatInputFocusedStyle
	}

	logHeight := max(c.height-InputTotalHeight, BorderSize+1)
	logPanel := panelStyle.Width(c.width).Height(logHeight).Render(c.viewport.View())
	inputArea := inputStyle.Width(c.width).Render(c.input.View())
	return lipgloss.JoinVertical(lipgloss.Left, logPanel, inputArea)
}
