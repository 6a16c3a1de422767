// Package marker composes animated position state with a stateless
// geometry modifier to place map-anchored renderables.
package marker

import (
	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/transition"
	"github.com/woozymasta/geomark/internal/tween"
)

// Offset is a fixed pixel displacement applied to the projected
// position.
type Offset struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// ScaleFunc maps a zoom level to a scale factor.
type ScaleFunc func(zoom float64) float64

// FixedScale returns a ScaleFunc that ignores zoom and always scales
// by s. It covers configurations that supply a plain number where a
// function is expected.
func FixedScale(s float64) ScaleFunc {
	return func(float64) float64 { return s }
}

// RenderTarget is whatever the modifier draws onto. The marker layer
// passes it through untouched.
type RenderTarget = any

// RenderSpec describes the transform the modifier produced for one
// render pass.
type RenderSpec struct {
	// X, Y is the final pixel placement, offset applied.
	X, Y float64
	// Rotation is the renderable's rotation in radians.
	Rotation float64
	// Scale is the zoom-derived scale factor that was applied.
	Scale float64
}

// Modifier is the stateless geometry modifier boundary. Position and
// rotate-towards are refreshed on every render pass; offset, zoom
// base and zoom scale are set once at configuration time.
type Modifier interface {
	SetPosition(p geo.Position)
	Position() geo.Position

	SetRotateTowards(p geo.Position)
	RotateTowards() geo.Position

	SetOffset(o Offset)
	Offset() Offset

	SetZoomBase(z float64)
	ZoomBase() float64

	SetZoomScale(fn ScaleFunc)
	ZoomScale() ScaleFunc

	Modify(target RenderTarget) (RenderSpec, error)
}

// Config is the delegate configuration handed through to the modifier
// unchanged.
type Config struct {
	Offset    Offset
	ZoomBase  float64
	ZoomScale ScaleFunc
}

// Marker drives one renderable anchored to a map. It owns two
// transitions sharing one ordering convention derived from the map
// provider: the animated position, and the rotate-towards target.
type Marker struct {
	modifier Modifier
	position *transition.Transition
	rotate   *transition.Transition
	reversed bool
}

// New builds a Marker for the given provider. posEngine and rotEngine
// animate the position and the rotate-towards target respectively;
// the delegate configuration is pushed to the modifier once, here.
func New(mod Modifier, provider geo.Provider, posEngine, rotEngine tween.Engine, cfg Config) *Marker {
	reversed := provider.Reversed()

	mod.SetOffset(cfg.Offset)
	mod.SetZoomBase(cfg.ZoomBase)
	if cfg.ZoomScale != nil {
		mod.SetZoomScale(cfg.ZoomScale)
	}

	return &Marker{
		modifier: mod,
		position: transition.New(posEngine, nil, reversed),
		rotate:   transition.New(rotEngine, nil, reversed),
		reversed: reversed,
	}
}

// SetPosition retargets the animated position.
func (m *Marker) SetPosition(p geo.Position, cfg tween.Config, onComplete func()) *Marker {
	m.position.Set(p, cfg, onComplete)
	return m
}

// SetRotateTowards retargets the point the renderable faces.
func (m *Marker) SetRotateTowards(p geo.Position, cfg tween.Config, onComplete func()) *Marker {
	m.rotate.Set(p, cfg, onComplete)
	return m
}

// Position returns the position transition, for direct queries.
func (m *Marker) Position() *transition.Transition {
	return m.position
}

// RotateTowards returns the rotate-towards transition.
func (m *Marker) RotateTowards() *transition.Transition {
	return m.rotate
}

// Render feeds the modifier the live position and the final
// rotate-towards target, then applies it to the render target. The
// rotation reads the final value rather than the live one: rotation
// snaps to its destination instead of animating.
func (m *Marker) Render(target RenderTarget) (RenderSpec, error) {
	m.modifier.SetPosition(m.position.Value())
	m.modifier.SetRotateTowards(m.rotate.Final())

	return m.modifier.Modify(target)
}

// Active reports whether either sub-state is animating.
func (m *Marker) Active() bool {
	return m.position.Active() || m.rotate.Active()
}

// Halt stops both sub-states in place.
func (m *Marker) Halt() {
	m.position.Halt()
	m.rotate.Halt()
}

// Reversed returns the ordering convention derived from the provider.
func (m *Marker) Reversed() bool {
	return m.reversed
}
