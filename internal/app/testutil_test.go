package app

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/darkai/darkchat/internal/api"
	"github.com/darkai/darkchat/internal/chat"
	"github.com/darkai/darkchat/internal/config"
	"github.com/darkai/darkchat/internal/keys"
	"github.com/darkai/darkchat/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Reset()
	logger.Init(os.DevNull)
	code := m.Run()
	logger.Reset()
	os.Exit(code)
}

// fakeBackend answers chat and image calls with canned values
type fakeBackend struct {
	mu       sync.Mutex
	reply    string
	fileName string
	err      error
	panics   bool
	block    chan struct{}
	chats    []api.ChatRequest
	images   []api.ImageRequest
}

func (f *fakeBackend) wait(ctx context.Context) error {
	if f.block == nil {
		return nil
	}
	select {
	case <-f.block:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (f *fakeBackend) Chat(ctx context.Context, req api.ChatRequest) (*api.ChatResponse, error) {
	f.mu.Lock()
	f.chats = append(f.chats, req)
	f.mu.Unlock()
	if f.panics {
		panic("boom")
	}
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &api.ChatResponse{BotResponse: f.reply}, nil
}

func (f *fakeBackend) GenerateImage(ctx context.Context, req api.ImageRequest) (*api.ImageResponse, error) {
	f.mu.Lock()
	f.images = append(f.images, req)
	f.mu.Unlock()
	if err := f.wait(ctx); err != nil {
		return nil, err
	}
	if f.err != nil {
		return nil, f.err
	}
	return &api.ImageResponse{FileName: f.fileName}, nil
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.BaseURL = "https://dark.example.com/"
	cfg.RequestTimeout = 5 * time.Second
	return cfg
}

// testModel creates a model with no startup notice
func testModel(backend chat.Backend, opts ...Option) *Model {
	opts = append([]Option{WithoutStartupNotice()}, opts...)
	return New(testConfig(), backend, "0.0.0-test", opts...)
}

// testModelWithSize creates a test Model and sets its size.
func testModelWithSize(backend chat.Backend, width, height int, opts ...Option) *Model {
	m := testModel(backend, opts...)
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return m
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlG:
		return tea.KeyPressMsg{Code: 'g', Mod: tea.ModCtrl}
	case keys.CtrlT:
		return tea.KeyPressMsg{Code: 't', Mod: tea.ModCtrl}
	case keys.CtrlY:
		return tea.KeyPressMsg{Code: 'y', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}

// sendKey sends a key press to the model and returns the command it produced
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

// typeText simulates typing a string by sending individual character key presses.
func typeText(m *Model, text string) {
	for _, ch := range text {
		sendKey(m, string(ch))
	}
}

// runCmd executes cmd and any batched commands, keeping the messages that
// arrive within a short window. Long timers are left unfired.
func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		if batch, ok := msg.(tea.BatchMsg); ok {
			var out []tea.Msg
			for _, c := range batch {
				out = append(out, runCmd(c)...)
			}
			return out
		}
		if msg == nil {
			return nil
		}
		return []tea.Msg{msg}
	case <-time.After(500 * time.Millisecond):
		return nil
	}
}

// findResponse returns the first ResponseMsg among msgs
func findResponse(t *testing.T, msgs []tea.Msg) ResponseMsg {
	t.Helper()
	for _, msg := range msgs {
		if r, ok := msg.(ResponseMsg); ok {
			return r
		}
	}
	t.Fatalf("no ResponseMsg among %d messages", len(msgs))
	return ResponseMsg{}
}

// submit types text, presses enter and feeds the backend reply back in
func submit(t *testing.T, m *Model, text string) tea.Cmd {
	t.Helper()
	m.chat.SetInput(text)
	resp := findResponse(t, runCmd(sendKey(m, keys.Enter)))
	_, cmd := m.Update(resp)
	return cmd
}
