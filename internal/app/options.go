package app

import (
	"time"

	"github.com/darkai/darkchat/internal/auth"
	"github.com/darkai/darkchat/internal/chat"
)

// Option configures a Model
type Option func(*Model)

// WithAuth shows the signed in user in the header and follows changes
func WithAuth(s *auth.Session) Option {
	return func(m *Model) { m.auth = s }
}

// WithSession replaces the chat session (used by tests)
func WithSession(s *chat.Session) Option {
	return func(m *Model) { m.session = s }
}

// WithImageResolver sets how image references become URLs
func WithImageResolver(resolve func(ref string) string) Option {
	return func(m *Model) { m.resolve = resolve }
}

// WithoutStartupNotice skips the "server is waking up" notice
func WithoutStartupNotice() Option {
	return func(m *Model) { m.startupNotice = 0 }
}

// WithStartupNotice sets how long the startup notice is shown
func WithStartupNotice(d time.Duration) Option {
	return func(m *Model) { m.startupNotice = d }
}
