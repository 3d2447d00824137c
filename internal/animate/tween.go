// Package animate interpolates values over time. A caller drives every
// animation from a single tick by asking each one for its value at the
// tick's timestamp, instead of running one timer per animation.
package animate

import "time"

// Number is any value a Tween can interpolate
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Easing maps linear progress in [0,1] onto eased progress in [0,1]
type Easing func(float64) float64

// Linear is the identity easing
func Linear(p float64) float64 { return p }

// EaseOutCubic decelerates towards the end
func EaseOutCubic(p float64) float64 {
	q := 1 - p
	return 1 - q*q*q
}

// Tween moves from From to To over Duration, starting at Start
type Tween[T Number] struct {
	From     T
	To       T
	Duration time.Duration
	Start    time.Time
	Ease     Easing
}

// New creates a linear tween starting at start
func New[T Number](from, to T, d time.Duration, start time.Time) Tween[T] {
	return Tween[T]{From: from, To: to, Duration: d, Start: start, Ease: Linear}
}

// Progress returns the eased progress at now, clamped to [0,1]
func (t Tween[T]) Progress(now time.Time) float64 {
	if t.Duration <= 0 {
		return 1
	}
	p := float64(now.Sub(t.Start)) / float64(t.Duration)
	switch {
	case p <= 0:
		p = 0
	case p >= 1:
		return 1
	}
	if t.Ease != nil {
		p = t.Ease(p)
	}
	return p
}

// At returns the value at now. Before Start it is From, after the end To.
func (t Tween[T]) At(now time.Time) T {
	p := t.Progress(now)
	if p >= 1 {
		return t.To
	}
	return t.From + T(float64(t.To-t.From)*p)
}

// Done reports whether the tween has reached To
func (t Tween[T]) Done(now time.Time) bool {
	return t.Progress(now) >= 1
}
