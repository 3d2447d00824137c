package ui

import (
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/darkai/darkchat/internal/chat"
	"github.com/darkai/darkchat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// fakeClock is a controllable time source for animation tests
type fakeClock struct{ t time.Time }

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)}
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func plain(s string) string { return ansi.Strip(s) }

func newSizedChat(width, height int) *Chat {
	c := NewChat()
	c.SetSize(width, height)
	return c
}

func content(c *Chat) string { return plain(c.rendered) }

func testMessages() []chat.Message {
	s := chat.NewSession(chat.WithoutGreeting(), chat.WithClock(func() time.Time {
		return time.Date(2026, 1, 1, 14, 5, 0, 0, time.UTC)
	}))
	s.Append(chat.Message{Role: chat.RoleUser, Content: "hello"})
	s.Append(chat.Message{Role: chat.RoleBot, Content: "**Hi** there"})
	return s.Messages()
}

func TestChat_RendersMessagesWithTimestamps(t *testing.T) {
	c := newSizedChat(80, 30)
	c.SetMessages(testMessages())

	out := content(c)
	for _, want := range []string{"You", "Dark AI", "14:05", "hello", "Hi there"} {
		if !strings.Contains(out, want) {
			t.Errorf("content missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "hello") > strings.Index(out, "Hi there") {
		t.Error("messages should render in log order")
	}
}

func TestChat_EmptyPlaceholder(t *testing.T) {
	c := newSizedChat(80, 30)
	if !strings.Contains(content(c), "Start a conversation") {
		t.Error("empty log should show a placeholder")
	}
}

func TestChat_ImageMessage(t *testing.T) {
	c := newSizedChat(80, 30)
	c.SetImageResolver(func(ref string) string { return "http://backend/" + ref })

	s := chat.NewSession(chat.WithoutGreeting())
	s.Append(chat.Message{Role: chat.RoleBot, Kind: chat.KindImage, Content: "media/abc.png"})
	c.SetMessages(s.Messages())

	out := content(c)
	if !strings.Contains(out, "Image ready") || !strings.Contains(out, "http://backend/media/abc.png") {
		t.Errorf("image message not rendered as link:\n%s", out)
	}
}

func TestChat_FallbackMessage(t *testing.T) {
	c := newSizedChat(80, 30)
	s := chat.NewSession(chat.WithoutGreeting())
	s.Append(chat.Message{Role: chat.RoleBot, Content: chat.FallbackText, Fallback: true})
	c.SetMessages(s.Messages())

	if !strings.Contains(content(c), "couldn't process your request") {
		t.Errorf("fallback text missing:\n%s", content(c))
	}
}

func TestChat_WaitingIndicator(t *testing.T) {
	clock := newFakeClock()
	c := newSizedChat(80, 30)
	c.now = clock.now

	c.SetWaiting(true)
	if !c.IsWaiting() || !c.IsAnimating() {
		t.Fatal("waiting chat should animate")
	}

	clock.advance(1500 * time.Millisecond)
	c.Update(AnimationTickMsg(clock.now()))
	if !strings.Contains(content(c), "1.5s") {
		t.Errorf("stopwatch should show elapsed time:\n%s", content(c))
	}

	c.SetWaiting(false)
	if c.IsAnimating() {
		t.Error("should stop animating when no longer waiting")
	}
}

func TestChat_ScrollSurvivesAnimation(t *testing.T) {
	clock := newFakeClock()
	c := newSizedChat(80, 20)
	c.now = clock.now
	c.SetFocused(true)

	s := chat.NewSession(chat.WithoutGreeting())
	for i := range 30 {
		s.Append(chat.Message{Role: chat.RoleUser, Content: fmt.Sprintf("message %d", i)})
	}
	c.SetMessages(s.Messages())
	c.SetWaiting(true)
	if !c.AtBottom() {
		t.Fatal("new messages should scroll to the bottom")
	}

	c.Update(tea.KeyPressMsg{Code: tea.KeyPgUp})
	if c.AtBottom() {
		t.Fatal("pgup should scroll away from the bottom")
	}

	clock.advance(200 * time.Millisecond)
	c.Update(AnimationTickMsg(clock.now()))
	if c.AtBottom() {
		t.Error("animation tick should not reset the scroll position")
	}

	s.Append(chat.Message{Role: chat.RoleBot, Content: "reply"})
	c.SetWaiting(false)
	c.SetMessages(s.Messages())
	if !c.AtBottom() {
		t.Error("a new message should scroll to the bottom")
	}
}

func TestChat_ImageModeUsesImagingVerb(t *testing.T) {
	c := newSizedChat(80, 30)
	c.SetMode(chat.ModeImage)
	c.SetWaiting(true)

	found := false
	for _, v := range imagingVerbs {
		if c.verb == v {
			found = true
		}
	}
	if !found {
		t.Errorf("verb %q is not an imaging verb", c.verb)
	}
}

func TestChat_GreetingTypewriter(t *testing.T) {
	clock := newFakeClock()
	c := newSizedChat(80, 30)
	c.now = clock.now

	s := chat.NewSession()
	msgs := s.Messages()
	c.SetMessages(msgs)
	c.StartGreeting(msgs[0])

	if strings.Contains(content(c), "How can I help you today?") {
		t.Error("greeting should not be fully visible at the start")
	}
	if !c.IsAnimating() {
		t.Error("typewriter should animate")
	}

	clock.advance(time.Minute)
	c.Update(AnimationTickMsg(clock.now()))
	if !strings.Contains(content(c), "How can I help you today?") {
		t.Errorf("greeting should be complete:\n%s", content(c))
	}
	if c.IsAnimating() {
		t.Error("finished typewriter should stop animating")
	}
}

func TestChat_Notice(t *testing.T) {
	c := newSizedChat(80, 30)
	c.ShowNotice(StartupNotice)
	if !strings.Contains(content(c), "Server is waking up") {
		t.Error("notice should be rendered")
	}
	c.HideNotice()
	if strings.Contains(content(c), "Server is waking up") || c.Notice() != "" {
		t.Error("notice should be hidden")
	}
}

func TestChat_SetModePlaceholder(t *testing.T) {
	c := NewChat()
	c.SetMode(chat.ModeImage)
	if !strings.Contains(c.input.Placeholder, "image") {
		t.Errorf("placeholder = %q", c.input.Placeholder)
	}
	c.SetMode(chat.ModeCode)
	if !strings.Contains(c.input.Placeholder, "coding") {
		t.Errorf("placeholder = %q", c.input.Placeholder)
	}
}

func TestChat_InputRoundTrip(t *testing.T) {
	c := NewChat()
	c.SetInput("  draft  ")
	if c.GetInput() != "  draft  " {
		t.Errorf("GetInput() = %q, input should be returned as typed", c.GetInput())
	}
	c.ClearInput()
	if c.GetInput() != "" {
		t.Error("ClearInput should empty the box")
	}
}

func TestChat_ViewHasInputBox(t *testing.T) {
	c := newSizedChat(60, 20)
	c.SetFocused(true)
	view := plain(c.View())
	if !strings.Contains(view, "Ask Dark AI anything") {
		t.Errorf("view should include the input placeholder:\n%s", view)
	}
	if !c.IsFocused() {
		t.Error("chat should be focused")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0.0s"},
		{1500 * time.Millisecond, "1.5s"},
		{59 * time.Second, "59.0s"},
		{83 * time.Second, "1:23"},
	}
	for _, tt := range tests {
		if got := formatElapsed(tt.d); got != tt.want {
			t.Errorf("formatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
