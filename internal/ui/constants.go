package ui

import "time"

// Layout constants for panel sizing
const (
	// HeaderHeight is the height of the header in lines
	HeaderHeight = 1

	// FooterHeight is the height of the footer in lines
	FooterHeight = 1

	// BorderSize is the total border width (1 on each side)
	BorderSize = 2

	// TextareaHeight is the number of lines for the chat input textarea
	TextareaHeight = 3

	// TextareaBorderHeight is the border size around the textarea
	TextareaBorderHeight = 2

	// InputPaddingWidth is the horizontal padding inside the input area
	InputPaddingWidth = 2

	// InputTotalHeight is the total height of the input area (textarea + borders)
	InputTotalHeight = TextareaHeight + TextareaBorderHeight

	// DefaultWrapWidth is used for wrapping when the viewport width is unknown
	DefaultWrapWidth = 80

	// MinTerminalWidth and MinTerminalHeight bound the layout from below
	MinTerminalWidth  = 20
	MinTerminalHeight = 10
)

// Timing
const (
	// StartupNoticeDuration is how long the "server is waking up" notice stays
	StartupNoticeDuration = 20 * time.Second

	// FlashDuration is how long footer flash messages stay visible
	FlashDuration = 3 * time.Second

	// CounterDuration is how long the header message counter takes to catch up
	CounterDuration = 400 * time.Millisecond
)
