package animate

import (
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// DefaultTypeDelay is the time per grapheme used by NewTypewriter
const DefaultTypeDelay = 20 * time.Millisecond

// Typewriter reveals text one grapheme cluster at a time, so emoji and
// combining marks never appear half drawn.
type Typewriter struct {
	graphemes []string
	tween     Tween[int]
}

// NewTypewriter reveals text at perGrapheme speed starting at start
func NewTypewriter(text string, perGrapheme time.Duration, start time.Time) *Typewriter {
	if perGrapheme <= 0 {
		perGrapheme = DefaultTypeDelay
	}
	var gs []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		gs = append(gs, g.Str())
	}
	return &Typewriter{
		graphemes: gs,
		tween:     New(0, len(gs), time.Duration(len(gs))*perGrapheme, start),
	}
}

// Visible returns the prefix shown at now
func (w *Typewriter) Visible(now time.Time) string {
	return strings.Join(w.graphemes[:w.tween.At(now)], "")
}

// Text returns the full text
func (w *Typewriter) Text() string {
	return strings.Join(w.graphemes, "")
}

// Done reports whether the whole text is visible
func (w *Typewriter) Done(now time.Time) bool {
	return w.tween.Done(now)
}

// Len returns the number of grapheme clusters
func (w *Typewriter) Len() int {
	return len(w.graphemes)
}
