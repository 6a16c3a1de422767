package tween

import (
	"time"

	"github.com/woozymasta/geomark/internal/geo"

	"github.com/rs/zerolog/log"
)

// Frame is a frame-driven Engine. An external driver advances it with
// Update; Set, Get, Halt and Active are cheap synchronous calls. One
// Frame animates one geographic value and is not safe for concurrent
// use, matching the single-goroutine model of the transition layer.
type Frame struct {
	onComplete func()

	// decoded endpoints and live point, latitude/longitude in degrees
	fromLat, fromLng float64
	toLat, toLng     float64
	curLat, curLng   float64

	elapsed  time.Duration
	duration time.Duration
	easing   Easing

	reversed bool
	asPair   bool // emit []float64 pairs instead of geo.LatLng
	active   bool
	hasValue bool
}

// NewFrame returns an engine decoding positions under the given
// ordering convention.
func NewFrame(reversed bool) *Frame {
	return &Frame{reversed: reversed}
}

// Set starts animating from current toward target. A Set while active
// replaces the in-flight animation: interpolation restarts from the
// engine's live point and the previous completion callback is
// dropped without being invoked.
func (f *Frame) Set(current, target geo.Position, cfg Config, onComplete func()) {
	toLat, err := geo.Lat(target, f.reversed)
	if err != nil {
		log.Error().Err(err).Msg("Ignoring transition target: undecodable position")
		return
	}
	toLng, err := geo.Lng(target, f.reversed)
	if err != nil {
		log.Error().Err(err).Msg("Ignoring transition target: undecodable position")
		return
	}

	fromLat, fromLng := f.curLat, f.curLng
	if !f.active {
		// start from the caller's view of the current value; the live
		// point takes precedence only while a retarget is in flight
		if lat, err := geo.Lat(current, f.reversed); err == nil {
			fromLat = lat
		}
		if lng, err := geo.Lng(current, f.reversed); err == nil {
			fromLng = lng
		}
	}

	f.fromLat, f.fromLng = fromLat, fromLng
	f.toLat, f.toLng = toLat, toLng
	f.curLat, f.curLng = fromLat, fromLng

	_, f.asPair = target.([]float64)

	f.duration = cfg.Duration
	if f.duration <= 0 {
		f.duration = DefaultDuration
	}
	f.easing = cfg.Easing

	f.elapsed = 0
	f.onComplete = onComplete
	f.active = true
	f.hasValue = true

	if f.fromLat == f.toLat && f.fromLng == f.toLng {
		f.finish()
	}
}

// Update advances the animation by dt. It is a no-op while idle.
func (f *Frame) Update(dt time.Duration) {
	if !f.active {
		return
	}

	f.elapsed += dt
	if f.elapsed >= f.duration {
		f.finish()
		return
	}

	t := f.easing.apply(float64(f.elapsed) / float64(f.duration))
	f.curLat = f.fromLat + (f.toLat-f.fromLat)*t
	f.curLng = f.fromLng + (f.toLng-f.fromLng)*t
}

// Get returns the live value. While animating toward (or settled on)
// a pair-shaped target the value is emitted as an ordered pair under
// the engine's convention; otherwise as a geo.LatLng.
func (f *Frame) Get() geo.Position {
	if !f.hasValue {
		return nil
	}

	if f.asPair {
		if f.reversed {
			return []float64{f.curLng, f.curLat}
		}
		return []float64{f.curLat, f.curLng}
	}

	return geo.LatLng{Lat: f.curLat, Lng: f.curLng}
}

// Halt freezes the live value at its current point. No callback fires.
func (f *Frame) Halt() {
	f.active = false
	f.onComplete = nil
}

// Active reports whether an animation is in flight.
func (f *Frame) Active() bool {
	return f.active
}

func (f *Frame) finish() {
	f.curLat, f.curLng = f.toLat, f.toLng
	f.active = false

	if cb := f.onComplete; cb != nil {
		f.onComplete = nil
		cb()
	}
}
