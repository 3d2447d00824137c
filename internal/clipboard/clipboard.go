// Package clipboard copies text to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"sync"

	"golang.design/x/clipboard"

	"github.com/darkai/darkchat/internal/logger"
)

// ErrEmpty is returned by WriteText for empty input
var ErrEmpty = errors.New("nothing to copy")

// backend is the clipboard implementation; tests swap it out
type backend interface {
	Init() error
	Write(data []byte)
}

type systemBackend struct{}

func (systemBackend) Init() error { return clipboard.Init() }

func (systemBackend) Write(data []byte) {
	// The returned channel only reports when another program takes over
	// the clipboard, which nothing here needs to know about
	_ = clipboard.Write(clipboard.FmtText, data)
}

var (
	mu          sync.Mutex
	current     backend = systemBackend{}
	initialized bool
)

// Init initializes the clipboard. It is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := current.Init(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return fmt.Errorf("failed to initialize clipboard: %w", err)
	}
	initialized = true
	return nil
}

// WriteText puts text on the clipboard
func WriteText(text string) error {
	if text == "" {
		return ErrEmpty
	}

	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	current.Write([]byte(text))
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// setBackend replaces the clipboard implementation and returns a restore func
func setBackend(b backend) func() {
	mu.Lock()
	defer mu.Unlock()
	prev, prevInit := current, initialized
	current, initialized = b, false
	return func() {
		mu.Lock()
		defer mu.Unlock()
		current, initialized = prev, prevInit
	}
}
