package chat

import (
	"sync"
	"time"
)

// Role identifies who authored a message
type Role int

const (
	RoleBot Role = iota
	RoleUser
)

func (r Role) String() string {
	if r == RoleUser {
		return "user"
	}
	return "bot"
}

// Kind distinguishes prose from an image reference
type Kind int

const (
	KindText Kind = iota
	KindImage
)

// FallbackText is the only thing the user sees when a backend call fails
const FallbackText = "**❌ Sorry**, I couldn't process your request. Please try again."

// GreetingText opens every new session
const GreetingText = "## 👋 Hello!\nI'm **Dark AI**, your advanced assistant.\n\nHow can I help you today?"

// Message is one immutable entry in the log
type Message struct {
	ID        int64
	Role      Role
	Kind      Kind
	Content   string // prose, or the image reference for KindImage
	Timestamp time.Time
	Fallback  bool // the fixed apology shown after a failed request
}

// IsImage reports whether the message is an image reference
func (m Message) IsImage() bool {
	return m.Kind == KindImage
}

// ImageRef returns the image reference, or "" for text messages
func (m Message) ImageRef() string {
	if m.Kind != KindImage {
		return ""
	}
	return m.Content
}

// FormatTime renders the timestamp the way the chat view shows it
func (m Message) FormatTime() string {
	return m.Timestamp.Format("15:04")
}

// idSource hands out time-based IDs that never repeat or go backwards,
// even when two messages are created in the same millisecond
type idSource struct {
	mu   sync.Mutex
	last int64
}

func (s *idSource) next(now time.Time) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := now.UnixMilli()
	if id <= s.last {
		id = s.last + 1
	}
	s.last = id
	return id
}
