package ui

import (
	"fmt"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
)

// AnimationInterval is the period of the shared animation tick
const AnimationInterval = 50 * time.Millisecond

// AnimationTickMsg drives every animation in the view: the typing
// indicator, the greeting typewriter and the header counter.
type AnimationTickMsg time.Time

// NoticeExpiredMsg hides the startup notice
type NoticeExpiredMsg struct{}

// AnimationTick returns a command that sends the next animation tick
func AnimationTick() tea.Cmd {
	return tea.Tick(AnimationInterval, func(t time.Time) tea.Msg {
		return AnimationTickMsg(t)
	})
}

// NoticeTimer returns a command that expires the startup notice after d
func NoticeTimer(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return NoticeExpiredMsg{}
	})
}

// thinkingVerbs cycle while waiting for a reply
var thinkingVerbs = []string{
	"Thinking",
	"Reasoning",
	"Pondering",
	"Considering",
	"Analyzing",
	"Processing",
	"Composing",
	"Brewing",
}

// imagingVerbs are used instead while an image is being generated
var imagingVerbs = []string{
	"Painting",
	"Sketching",
	"Rendering",
	"Imagining",
}

func randomVerb(verbs []string) string {
	return verbs[rand.Intn(len(verbs))]
}

// formatElapsed formats a duration as a stopwatch string (e.g., "1.2s", "1:23")
func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", mins, secs)
}
