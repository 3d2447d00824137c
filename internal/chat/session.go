package chat

import (
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	pErrors "github.com/darkai/darkchat/internal/errors"
	"github.com/darkai/darkchat/internal/logger"
)

var (
	// ErrEmptyInput is returned by Begin for blank submissions
	ErrEmptyInput = errors.New("message is empty")

	// ErrRequestPending is returned by Begin while a request is outstanding
	ErrRequestPending = errors.New("a request is already in progress")
)

// Option configures a Session
type Option func(*Session)

// WithClock replaces time.Now (used by tests)
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithoutGreeting starts the log empty instead of with the bot greeting
func WithoutGreeting() Option {
	return func(s *Session) { s.greeting = false }
}

// Session is the single source of truth for one conversation.
// It is safe for concurrent use, but a UI should still mutate it from its
// event loop only so renders observe a consistent log.
type Session struct {
	mu       sync.Mutex
	messages []Message
	draft    string
	mode     Mode
	pending  *Pending
	ids      idSource
	now      func() time.Time
	greeting bool
	log      *slog.Logger
}

// NewSession creates a session in chat mode
func NewSession(opts ...Option) *Session {
	s := &Session{
		now:      time.Now,
		greeting: true,
		log:      logger.WithComponent("chat"),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.greeting {
		s.appendLocked(RoleBot, KindText, GreetingText, false)
	}
	return s
}

// Messages returns a copy of the log in insertion order
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the log
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

// LastBotMessage returns the most recent bot message
func (s *Session) LastBotMessage() (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Role == RoleBot {
			return s.messages[i], true
		}
	}
	return Message{}, false
}

// Append adds msg to the end of the log. The ID and timestamp are assigned
// here; whatever the caller put in them is ignored.
func (s *Session) Append(msg Message) Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.appendLocked(msg.Role, msg.Kind, msg.Content, msg.Fallback)
}

func (s *Session) appendLocked(role Role, kind Kind, content string, fallback bool) Message {
	now := s.now()
	msg := Message{
		ID:        s.ids.next(now),
		Role:      role,
		Kind:      kind,
		Content:   content,
		Timestamp: now,
		Fallback:  fallback,
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Mode returns the active mode
func (s *Session) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode switches to next. It returns false when next is already active.
func (s *Session) SetMode(next Mode) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == next {
		return false
	}
	s.log.Debug("mode changed", "from", s.mode, "to", next)
	s.mode = next
	return true
}

// ToggleMode turns m on, or falls back to chat mode when m is already on.
// Turning image on therefore turns code off, and the other way round.
func (s *Session) ToggleMode(m Mode) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode == m {
		s.mode = ModeChat
	} else {
		s.mode = m
	}
	s.log.Debug("mode toggled", "requested", m, "active", s.mode)
	return s.mode
}

// Draft returns the uncommitted input
func (s *Session) Draft() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetDraft replaces the uncommitted input
func (s *Session) SetDraft(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = text
}

// ResetDraft clears the uncommitted input
func (s *Session) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = ""
}

// IsPending reports whether a request is outstanding
func (s *Session) IsPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}

// Begin starts a submission of text. Blank text and submissions made while
// another request is outstanding are refused without touching any state.
// Otherwise the user message is appended, the draft is cleared and the
// returned Pending must be finished with Complete.
func (s *Session) Begin(text string) (*Pending, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if s.pending != nil {
		return nil, ErrRequestPending
	}

	userMsg := s.appendLocked(RoleUser, KindText, text, false)
	s.draft = ""
	p := &Pending{
		Mode:          s.mode,
		Text:          text,
		UserMessageID: userMsg.ID,
	}
	s.pending = p
	s.log.Debug("submission started", "mode", p.Mode, "userMessageID", userMsg.ID)
	return p, nil
}

// BeginDraft starts a submission of the current draft
func (s *Session) BeginDraft() (*Pending, error) {
	return s.Begin(s.Draft())
}

// Complete finishes p with res: exactly one bot message is appended (the
// reply, or the fallback apology on any error) and the pending flag is
// cleared. A Pending that was cancelled or is otherwise not the current one
// appends nothing and returns false.
func (s *Session) Complete(p *Pending, res Result) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p == nil || s.pending != p {
		s.log.Debug("dropping stale result", "mode", res.Mode)
		return Message{}, false
	}
	defer func() { s.pending = nil }()

	if res.Err != nil {
		s.log.Warn("request failed",
			"mode", p.Mode,
			"kind", pErrors.GetKind(res.Err).String(),
			"error", res.Err,
		)
		return s.appendLocked(RoleBot, KindText, FallbackText, true), true
	}

	kind := KindText
	if p.Mode == ModeImage {
		kind = KindImage
	}
	return s.appendLocked(RoleBot, kind, res.Content, false), true
}

// Cancel abandons the outstanding request, if any. Its result is dropped
// when it eventually arrives, so it can never land after a newer reply.
func (s *Session) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pending == nil {
		return false
	}
	s.log.Debug("submission cancelled", "userMessageID", s.pending.UserMessageID)
	s.pending = nil
	return true
}
