package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/darkai/darkchat/internal/api"
)

// Backend is the part of the API client a chat session needs
type Backend interface {
	Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error)
	GenerateImage(ctx context.Context, req api.ImageRequest) (*api.ImageResponse, error)
}

// Pending is one outstanding submission
type Pending struct {
	Mode          Mode
	Text          string
	UserMessageID int64
}

// Result is the outcome of running a Pending
type Result struct {
	Mode    Mode
	Content string // bot_response, or file_name in image mode
	Err     error
}

// Run performs the single backend call for p. A positive timeout bounds the
// call so a silent backend cannot keep the session pending forever.
func (p *Pending) Run(ctx context.Context, backend Backend, timeout time.Duration) Result {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	res := Result{Mode: p.Mode}
	switch p.Mode {
	case ModeImage:
		resp, err := backend.GenerateImage(ctx, api.ImageRequest{Prompt: p.Text})
		if err != nil {
			res.Err = err
			return res
		}
		res.Content = resp.FileName
	default:
		resp, err := backend.Chat(ctx, api.ChatRequest{Message: p.Text, CodeMode: p.Mode == ModeCode})
		if err != nil {
			res.Err = err
			return res
		}
		res.Content = resp.BotResponse
	}
	return res
}

// Dispatcher sends submissions for one session and waits for the reply
type Dispatcher struct {
	session *Session
	backend Backend
	timeout time.Duration
}

// NewDispatcher creates a dispatcher for session
func NewDispatcher(session *Session, backend Backend, timeout time.Duration) *Dispatcher {
	return &Dispatcher{session: session, backend: backend, timeout: timeout}
}

// Send submits text and blocks until the bot message has been appended.
// The pending flag is cleared even if the backend panics.
func (d *Dispatcher) Send(ctx context.Context, text string) (Message, error) {
	p, err := d.session.Begin(text)
	if err != nil {
		return Message{}, err
	}

	completed := false
	defer func() {
		if !completed {
			d.session.Complete(p, Result{Mode: p.Mode, Err: errors.New("dispatch aborted")})
		}
	}()

	res := p.Run(ctx, d.backend, d.timeout)
	msg, ok := d.session.Complete(p, res)
	completed = true
	if !ok {
		return Message{}, fmt.Errorf("submission was cancelled")
	}
	return msg, nil
}
