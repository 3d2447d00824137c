package ui

import (
	"sync"

	"github.com/darkai/darkchat/internal/logger"
	"github.com/darkai/darkchat/internal/viewport"
)

// ViewContext holds centralized layout calculations and provides debug logging.
// All size calculations should go through this to avoid duplication.
type ViewContext struct {
	TerminalWidth  int
	TerminalHeight int

	HeaderHeight  int
	FooterHeight  int
	ContentHeight int
	ChatWidth     int

	// Compact is set while an on-screen keyboard is open; the footer is
	// dropped to give the log every available row.
	Compact bool

	// Degraded is set when the terminal reported no usable height
	Degraded bool

	mu sync.Mutex
}

var ctx *ViewContext
var ctxOnce sync.Once

// GetViewContext returns the singleton ViewContext instance
func GetViewContext() *ViewContext {
	ctxOnce.Do(func() {
		ctx = &ViewContext{
			HeaderHeight: HeaderHeight,
			FooterHeight: FooterHeight,
		}
		logger.WithComponent("ui").Debug("ViewContext initialized")
	})
	return ctx
}

// Log writes a structured debug message for the ui component
func (v *ViewContext) Log(msg string, args ...any) {
	logger.WithComponent("ui").Debug(msg, args...)
}

// UpdateTerminalSize recalculates all dimensions when the terminal size or
// the keyboard state changes. Call it from the main event loop.
func (v *ViewContext) UpdateTerminalSize(width, height int, compact bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	footer := FooterHeight
	if compact {
		footer = 0
	}

	layout := viewport.ComputeLayout(height, HeaderHeight, footer)
	v.Degraded = layout.Degraded
	v.Compact = compact
	v.TerminalWidth = width
	v.ChatWidth = width

	if layout.Degraded {
		// No usable height: give everything to the log
		v.TerminalHeight = MinTerminalHeight
		v.HeaderHeight = 0
		v.FooterHeight = 0
		v.ContentHeight = MinTerminalHeight
	} else {
		v.TerminalHeight = height
		v.HeaderHeight = layout.Header
		v.FooterHeight = layout.Input
		v.ContentHeight = max(layout.Messages, InputTotalHeight+BorderSize+1)
	}

	logger.WithComponent("ui").Debug("Terminal size updated",
		"width", width,
		"height", height,
		"compact", compact,
		"degraded", v.Degraded,
		"contentHeight", v.ContentHeight,
	)
}

// InnerWidth returns the usable width inside a panel with borders
func (v *ViewContext) InnerWidth(panelWidth int) int {
	return panelWidth - BorderSize
}

// InnerHeight returns the usable height inside a panel with borders
func (v *ViewContext) InnerHeight(panelHeight int) int {
	return panelHeight - BorderSize
}
