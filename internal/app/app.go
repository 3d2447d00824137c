// Package app wires the chat session, the backend and the ui components
// into the bubbletea program.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/darkai/darkchat/internal/auth"
	"github.com/darkai/darkchat/internal/chat"
	"github.com/darkai/darkchat/internal/config"
	"github.com/darkai/darkchat/internal/logger"
	"github.com/darkai/darkchat/internal/notification"
	"github.com/darkai/darkchat/internal/ui"
	"github.com/darkai/darkchat/internal/viewport"
)

// Model is the main Bubble Tea model
type Model struct {
	config  *config.Config
	version string
	header  *ui.Header
	footer  *ui.Footer
	chat    *ui.Chat

	width  int
	height int
	state  AppState

	session *chat.Session
	backend chat.Backend
	auth    *auth.Session
	adapter *viewport.Adapter
	resolve func(ref string) string

	// cancel aborts the outstanding backend call
	cancel context.CancelFunc

	ticking       bool
	startupNotice time.Duration

	authCh      chan auth.State
	unsubscribe func()

	log *slog.Logger
}

// New creates a model talking to backend
func New(cfg *config.Config, backend chat.Backend, version string, opts ...Option) *Model {
	m := &Model{
		config:        cfg,
		version:       version,
		header:        ui.NewHeader(),
		footer:        ui.NewFooter(),
		chat:          ui.NewChat(),
		backend:       backend,
		resolve:       cfg.ResolveURL,
		startupNotice: ui.StartupNoticeDuration,
		log:           logger.WithComponent("app"),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.session == nil {
		m.session = chat.NewSession()
	}

	m.adapter = viewport.New(0).WithThreshold(cfg.GetKeyboardThresholdRows())

	m.chat.SetImageResolver(m.resolve)
	m.chat.SetMode(m.session.Mode())
	m.chat.SetMessages(m.session.Messages())
	m.chat.SetFocused(true)
	m.header.SetMode(m.session.Mode())
	m.header.SetMessageCount(m.session.Len())

	if m.auth != nil {
		name, _ := m.auth.CurrentUser()
		m.header.SetUser(name)
		m.authCh = make(chan auth.State, 8)
		m.unsubscribe = m.auth.Subscribe(func(st auth.State) {
			select {
			case m.authCh <- st:
			default:
				m.log.Warn("dropping auth change, listener is behind")
			}
		})
	}

	m.log.Info("model created", "version", version, "baseURL", cfg.GetBaseURL())
	return m
}

// Session returns the chat session the model drives
func (m *Model) Session() *chat.Session {
	return m.session
}

// State returns the current input state
func (m *Model) State() AppState {
	return m.state
}

// Close cancels any outstanding request and stops following auth changes
func (m *Model) Close() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init starts the greeting animation and the startup notice
func (m *Model) Init() tea.Cmd {
	var cmds []tea.Cmd

	if msgs := m.session.Messages(); len(msgs) == 1 && msgs[0].Role == chat.RoleBot {
		m.chat.StartGreeting(msgs[0])
		cmds = append(cmds, m.startTicking())
	}
	if m.startupNotice > 0 {
		m.chat.ShowNotice(ui.StartupNotice)
		cmds = append(cmds, ui.NoticeTimer(m.startupNotice))
	}
	if m.authCh != nil {
		cmds = append(cmds, m.listenForAuth())
	}
	return tea.Batch(cmds...)
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyPressMsg:
		if s, ok := m.lookupShortcut(msg.String()); ok {
			return s.Handler(m)
		}

	case ResponseMsg:
		return m, m.handleResponse(msg)

	case ui.AnimationTickMsg:
		m.chat, _ = m.chat.Update(msg)
		if m.chat.IsAnimating() || m.header.IsAnimating() {
			return m, ui.AnimationTick()
		}
		m.ticking = false
		return m, nil

	case ui.NoticeExpiredMsg:
		m.chat.HideNotice()
		return m, nil

	case FlashExpiredMsg:
		m.footer.ClearFlash()
		return m, nil

	case AuthChangedMsg:
		m.header.SetUser(msg.State.Username)
		return m, m.listenForAuth()

	case CopyResultMsg:
		if msg.Err != nil {
			m.log.Warn("copy failed", "error", msg.Err)
			return m, m.ShowFlashError("Copy failed")
		}
		return m, m.ShowFlashInfo("Copied to clipboard")

	case NotifiedMsg:
		if msg.Err != nil {
			m.log.Debug("notification not delivered", "error", msg.Err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	return m, cmd
}

func (m *Model) handleResize(width, height int) {
	m.width = width
	m.height = height

	change := m.adapter.Observe(height)
	m.updateSizes(m.adapter.KeyboardOpen())
	if change.Opened {
		m.chat.GotoBottom()
		m.chat.SetFocused(true)
	}
}

// sendMessage submits the input box through the chat session
func (m *Model) sendMessage() (tea.Model, tea.Cmd) {
	text := m.chat.GetInput()
	m.session.SetDraft(text)

	p, err := m.session.BeginDraft()
	switch {
	case errors.Is(err, chat.ErrEmptyInput):
		return m, nil
	case errors.Is(err, chat.ErrRequestPending):
		return m, m.ShowFlashInfo("Wait for the current reply")
	case err != nil:
		m.log.Error("failed to start submission", "error", err)
		return m, m.ShowFlashError("Could not send message")
	}

	m.chat.ClearInput()
	m.chat.SetMessages(m.session.Messages())
	m.chat.SetWaiting(true)
	m.header.SetMessageCount(m.session.Len())
	m.state = StateWaiting

	return m, tea.Batch(m.dispatch(p), m.startTicking())
}

// dispatch runs p on a command goroutine. A panic in the backend still
// yields a ResponseMsg so the pending state is always cleared.
func (m *Model) dispatch(p *chat.Pending) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	backend := m.backend
	timeout := m.config.GetRequestTimeout()
	log := m.log

	return func() (msg tea.Msg) {
		defer cancel()
		defer func() {
			if r := recover(); r != nil {
				log.Error("backend panicked", "panic", r)
				msg = ResponseMsg{Pending: p, Result: chat.Result{Mode: p.Mode, Err: fmt.Errorf("backend panic: %v", r)}}
			}
		}()
		return ResponseMsg{Pending: p, Result: p.Run(ctx, backend, timeout)}
	}
}

func (m *Model) handleResponse(msg ResponseMsg) tea.Cmd {
	reply, ok := m.session.Complete(msg.Pending, msg.Result)
	if !ok {
		return nil
	}

	m.cancel = nil
	m.state = StateIdle
	m.chat.SetWaiting(false)
	m.chat.SetMessages(m.session.Messages())
	m.header.SetMessageCount(m.session.Len())

	cmds := []tea.Cmd{m.startTicking()}
	if reply.IsImage() && m.config.GetNotificationsEnabled() {
		prompt := msg.Pending.Text
		cmds = append(cmds, func() tea.Msg {
			return NotifiedMsg{Err: notification.ImageReady(prompt)}
		})
	}
	return tea.Batch(cmds...)
}

// cancelRequest abandons the outstanding request, if any
func (m *Model) cancelRequest() bool {
	if !m.session.Cancel() {
		return false
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = StateIdle
	m.chat.SetWaiting(false)
	return true
}

// startTicking starts the animation tick unless one is already running
func (m *Model) startTicking() tea.Cmd {
	if m.ticking {
		return nil
	}
	m.ticking = true
	return ui.AnimationTick()
}

func (m *Model) listenForAuth() tea.Cmd {
	ch := m.authCh
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return nil
		}
		return AuthChangedMsg{State: st}
	}
}

func (m *Model) updateSizes(compact bool) {
	ctx := ui.GetViewContext()
	ctx.UpdateTerminalSize(m.width, m.height, compact)

	m.header.SetWidth(ctx.TerminalWidth)
	m.footer.SetWidth(ctx.TerminalWidth)
	m.chat.SetSize(ctx.ChatWidth, ctx.ContentHeight)
}

// View renders the header, the chat panel and the footer
func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 && m.height == 0 {
		v.SetContent("Loading...")
		return v
	}

	ctx := ui.GetViewContext()
	m.footer.SetContext(m.session.IsPending(), m.session.Mode())

	parts := []string{}
	if ctx.HeaderHeight > 0 {
		parts = append(parts, m.header.View())
	}
	parts = append(parts, m.chat.View())
	if ctx.FooterHeight > 0 {
		parts = append(parts, m.footer.View())
	}

	v.SetContent(lipgloss.JoinVertical(lipgloss.Left, parts...))
	return v
}
