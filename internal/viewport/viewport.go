// Package viewport detects an on-screen keyboard from viewport height
// changes and splits the available height between header, messages and
// input.
//
// Heights are unit agnostic. The TUI feeds terminal rows; the default
// threshold matches pixel heights reported by a mobile browser.
package viewport

import "sync"

// DefaultThreshold is the shrink, in the caller's units, past which the
// keyboard is considered open.
const DefaultThreshold = 150

// Change describes one observation
type Change struct {
	Height       int
	Delta        int // initial height minus current height
	KeyboardOpen bool
	Opened       bool // keyboard became visible with this observation
	Closed       bool // keyboard went away with this observation
}

// Layout is the vertical split of the viewport
type Layout struct {
	Header   int
	Messages int
	Input    int
	// Degraded is set when the height was unknown and the message area
	// simply takes the full viewport.
	Degraded bool
}

// Adapter tracks the viewport height against the height first observed
type Adapter struct {
	mu        sync.Mutex
	initial   int
	threshold int
	open      bool
}

// New creates an adapter with a known initial height. Pass 0 to capture
// the initial height from the first Observe call.
func New(initial int) *Adapter {
	return &Adapter{initial: initial, threshold: DefaultThreshold}
}

// WithThreshold sets the keyboard threshold and returns the adapter
func (a *Adapter) WithThreshold(threshold int) *Adapter {
	a.mu.Lock()
	defer a.mu.Unlock()
	if threshold > 0 {
		a.threshold = threshold
	}
	return a
}

// Threshold returns the active threshold
func (a *Adapter) Threshold() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.threshold
}

// InitialHeight returns the reference height, or 0 if nothing was observed yet
func (a *Adapter) InitialHeight() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.initial
}

// KeyboardOpen reports the state after the last observation
func (a *Adapter) KeyboardOpen() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.open
}

// Observe records the current height. Non-positive heights are ignored
// and report the previous state.
func (a *Adapter) Observe(height int) Change {
	a.mu.Lock()
	defer a.mu.Unlock()

	if height <= 0 {
		return Change{Height: height, KeyboardOpen: a.open}
	}
	if a.initial <= 0 {
		a.initial = height
	}

	delta := a.initial - height
	open := delta > a.threshold
	c := Change{
		Height:       height,
		Delta:        delta,
		KeyboardOpen: open,
		Opened:       open && !a.open,
		Closed:       !open && a.open,
	}
	a.open = open
	return c
}

// ComputeLayout gives the message area whatever the header and input leave
// over. An unknown height degrades to a full viewport message area.
func ComputeLayout(height, header, input int) Layout {
	if height <= 0 {
		return Layout{Degraded: true}
	}
	header = max(header, 0)
	input = max(input, 0)
	return Layout{
		Header:   header,
		Input:    input,
		Messages: max(height-header-input, 0),
	}
}
