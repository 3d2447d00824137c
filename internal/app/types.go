package app

import (
	"github.com/darkai/darkchat/internal/auth"
	"github.com/darkai/darkchat/internal/chat"
)

// AppState is the state of the chat input
type AppState int

const (
	StateIdle    AppState = iota // Ready for user input
	StateWaiting                 // A request is outstanding
)

// String returns a human-readable name for the state
func (s AppState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWaiting:
		return "Waiting"
	default:
		return "Unknown"
	}
}

// ResponseMsg carries the outcome of a backend call back to the event loop
type ResponseMsg struct {
	Pending *chat.Pending
	Result  chat.Result
}

// AuthChangedMsg is sent when the signed in user changes
type AuthChangedMsg struct {
	State auth.State
}

// CopyResultMsg reports the outcome of a clipboard copy
type CopyResultMsg struct {
	Err error
}

// NotifiedMsg reports a delivered (or failed) desktop notification
type NotifiedMsg struct {
	Err error
}

// FlashExpiredMsg fires when a footer flash should be cleared
type FlashExpiredMsg struct{}
