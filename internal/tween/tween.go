// Package tween provides the interpolation engine boundary used by
// the transition layer, plus a frame-driven implementation of it.
package tween

import (
	"time"

	"github.com/woozymasta/geomark/internal/geo"
)

// DefaultDuration is applied when a Config carries no duration.
const DefaultDuration = 400 * time.Millisecond

// Easing selects the interpolation curve.
type Easing string

// Supported easing curves.
const (
	EaseLinear Easing = "linear"
	EaseInOut  Easing = "ease-in-out"
	EaseOut    Easing = "ease-out"
)

// Config describes a single transition. It is carried verbatim from
// the caller down to the engine; the transition layer never inspects
// its fields. The zero value selects the engine defaults.
type Config struct {
	Duration time.Duration `json:"duration" yaml:"duration"`
	Easing   Easing        `json:"easing" yaml:"easing"`
}

// Engine is the boundary the transition layer animates through. A new
// Set while a previous animation is in flight must retarget from the
// engine's current value and drop the superseded completion callback.
type Engine interface {
	// Set starts animating from current toward target, invoking
	// onComplete when the target is reached.
	Set(current, target geo.Position, cfg Config, onComplete func())

	// Get returns the engine's live value.
	Get() geo.Position

	// Halt stops the animation, freezing the live value in place.
	Halt()

	// Active reports whether an animation is in flight.
	Active() bool
}

// apply maps linear progress t in [0,1] onto the eased curve.
func (e Easing) apply(t float64) float64 {
	switch e {
	case EaseOut:
		return t * (2 - t)
	case EaseInOut:
		if t < 0.5 {
			return 2 * t * t
		}
		return -1 + (4-2*t)*t
	default:
		return t
	}
}
