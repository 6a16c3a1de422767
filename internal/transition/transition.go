// Package transition manages one animated geographic quantity,
// including mid-flight retargeting.
package transition

import (
	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/tween"
)

// Phase is the explicit lifecycle state of a Transition.
type Phase int

// Lifecycle phases. There is no terminal phase; a Transition is
// reusable indefinitely.
const (
	// Unset means no value has ever been assigned.
	Unset Phase = iota
	// Settled means the live value equals the last requested target.
	Settled
	// Transitioning means the engine is interpolating toward the
	// last requested target.
	Transitioning
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case Settled:
		return "settled"
	case Transitioning:
		return "transitioning"
	default:
		return "unset"
	}
}

// Transition owns the animated current/final value of one geographic
// quantity: a position, or a rotate-towards target. Values are stored
// opaquely and forwarded to the engine untouched; the Transition
// never decodes them itself.
//
// Completion callbacks follow fire-and-replace semantics: a Set that
// supersedes an in-flight animation drops the superseded callback,
// which is then never invoked. The generation counter enforces this
// here rather than trusting the engine to.
type Transition struct {
	engine   tween.Engine
	final    geo.Position
	gen      uint64
	phase    Phase
	reversed bool
}

// New returns a Transition animating through eng. A non-nil initial
// value becomes both the live value and the final value with no
// animation. The reversed convention is fixed for the lifetime of the
// Transition and shared with composition layers; the Transition
// itself only retains it.
func New(eng tween.Engine, initial geo.Position, reversed bool) *Transition {
	t := &Transition{engine: eng, reversed: reversed}
	if initial != nil {
		t.Set(initial, tween.Config{}, nil)
	}

	return t
}

// Set records value as the new final target and returns the
// Transition for chaining.
//
// The first Set initializes the live value directly and invokes
// onComplete immediately; there is nothing to animate from. Later
// calls ask the engine to animate from the live value, replacing any
// in-flight animation: the engine retargets from the current live
// point and the superseded completion callback is discarded.
func (t *Transition) Set(value geo.Position, cfg tween.Config, onComplete func()) *Transition {
	t.final = value
	t.gen++

	if t.phase == Unset {
		// Instantaneous: seed the engine with a zero-length hop so
		// its live value is the target itself.
		t.engine.Set(value, value, tween.Config{}, nil)
		t.phase = Settled

		if onComplete != nil {
			onComplete()
		}

		return t
	}

	gen := t.gen
	t.phase = Transitioning
	t.engine.Set(t.engine.Get(), value, cfg, func() {
		if t.gen != gen {
			return // superseded by a later Set
		}

		t.phase = Settled
		if onComplete != nil {
			onComplete()
		}
	})

	// The engine may complete synchronously for a zero-length hop.
	if !t.engine.Active() && t.gen == gen {
		t.phase = Settled
	}

	return t
}

// Value returns the live value: the final value when settled, an
// intermediate point while transitioning, nil while unset.
func (t *Transition) Value() geo.Position {
	if t.phase == Unset {
		return nil
	}

	return t.engine.Get()
}

// Final returns the last requested target verbatim, unaffected by any
// in-flight interpolation. It is nil while unset.
func (t *Transition) Final() geo.Position {
	return t.final
}

// Halt stops any in-flight interpolation, freezing the live value at
// its current point. The final value is left unchanged: it still
// names the last requested destination even though the live value no
// longer converges to it without a new Set.
func (t *Transition) Halt() {
	t.gen++
	t.engine.Halt()

	if t.phase == Transitioning {
		t.phase = Settled
	}
}

// Active reports whether an interpolation is in flight.
func (t *Transition) Active() bool {
	return t.phase == Transitioning && t.engine.Active()
}

// Phase returns the explicit lifecycle state.
func (t *Transition) Phase() Phase {
	return t.phase
}

// Reversed returns the coordinate ordering convention fixed at
// construction.
func (t *Transition) Reversed() bool {
	return t.reversed
}
