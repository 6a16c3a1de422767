package transition

import (
	"testing"

	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/tween"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEngine is a hand-driven engine: tests decide when an animation
// completes and what the live value is.
type fakeEngine struct {
	live       geo.Position
	target     geo.Position
	onComplete func()
	lastCfg    tween.Config
	setCalls   int
	active     bool
}

func (e *fakeEngine) Set(current, target geo.Position, cfg tween.Config, onComplete func()) {
	e.setCalls++
	e.lastCfg = cfg
	e.target = target
	e.onComplete = onComplete

	if eq, _ := geo.Equal(current, target, false); eq {
		// zero-length hop completes synchronously
		e.live = target
		e.active = false
		if onComplete != nil {
			e.onComplete = nil
			onComplete()
		}
		return
	}

	e.live = current
	e.active = true
}

func (e *fakeEngine) Get() geo.Position { return e.live }

func (e *fakeEngine) Halt() {
	e.active = false
	e.onComplete = nil
}

func (e *fakeEngine) Active() bool { return e.active }

// advance moves the live value to an intermediate point.
func (e *fakeEngine) advance(p geo.Position) { e.live = p }

// complete finishes the animation and fires the registered callback.
func (e *fakeEngine) complete() {
	e.live = e.target
	e.active = false

	if cb := e.onComplete; cb != nil {
		e.onComplete = nil
		cb()
	}
}

func TestUnsetTransition(t *testing.T) {
	tr := New(&fakeEngine{}, nil, false)

	assert.Equal(t, Unset, tr.Phase())
	assert.False(t, tr.Active())
	assert.Nil(t, tr.Final())
	assert.Nil(t, tr.Value())
}

func TestInitialValueSettlesInstantly(t *testing.T) {
	eng := &fakeEngine{}
	v := geo.LatLng{Lat: 1, Lng: 2}
	tr := New(eng, v, false)

	assert.Equal(t, Settled, tr.Phase())
	assert.False(t, tr.Active())
	assert.Equal(t, v, tr.Final())
	assert.Equal(t, v, tr.Value())
}

func TestFirstSetIsInstantaneous(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(eng, nil, false)

	v := geo.LatLng{Lat: 3, Lng: 4}
	fired := false
	got := tr.Set(v, tween.Config{}, func() { fired = true })

	assert.Same(t, tr, got)
	assert.True(t, fired)
	assert.False(t, tr.Active())
	assert.Equal(t, Settled, tr.Phase())
	assert.Equal(t, v, tr.Final())
	assert.Equal(t, v, tr.Value())
}

func TestSecondSetTransitions(t *testing.T) {
	eng := &fakeEngine{}
	v1 := geo.LatLng{Lat: 0, Lng: 0}
	v2 := geo.LatLng{Lat: 10, Lng: 10}
	tr := New(eng, v1, false)

	fired := false
	tr.Set(v2, tween.Config{}, func() { fired = true })

	assert.True(t, tr.Active())
	assert.Equal(t, Transitioning, tr.Phase())
	assert.Equal(t, v2, tr.Final())
	assert.False(t, fired)

	eng.advance(geo.LatLng{Lat: 5, Lng: 5})
	assert.Equal(t, geo.LatLng{Lat: 5, Lng: 5}, tr.Value())
	assert.Equal(t, v2, tr.Final())

	eng.complete()
	assert.True(t, fired)
	assert.False(t, tr.Active())
	assert.Equal(t, Settled, tr.Phase())
	assert.Equal(t, v2, tr.Value())
}

func TestRetargetReplacesFinalAndDropsCallback(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(eng, geo.LatLng{Lat: 0, Lng: 0}, false)

	v2 := geo.LatLng{Lat: 10, Lng: 0}
	v3 := geo.LatLng{Lat: 0, Lng: 10}

	v2Fired := false
	tr.Set(v2, tween.Config{}, func() { v2Fired = true })

	mid := geo.LatLng{Lat: 4, Lng: 0}
	eng.advance(mid)

	v3Fired := false
	tr.Set(v3, tween.Config{}, func() { v3Fired = true })

	// Final switches immediately; the engine restarts from the live
	// intermediate point, not from v2 or from the pre-v2 value.
	assert.Equal(t, v3, tr.Final())
	assert.Equal(t, Transitioning, tr.Phase())
	assert.Equal(t, mid, eng.Get())

	eng.complete()
	assert.False(t, v2Fired, "superseded completion callback must never fire")
	assert.True(t, v3Fired)
	assert.Equal(t, v3, tr.Value())
	assert.Equal(t, Settled, tr.Phase())
}

func TestSupersededEngineCallbackIgnored(t *testing.T) {
	// Even if an engine wrongly fires the superseded callback, the
	// generation counter keeps it inert.
	eng := &fakeEngine{}
	tr := New(eng, geo.LatLng{}, false)

	v2Fired := false
	tr.Set(geo.LatLng{Lat: 1, Lng: 0}, tween.Config{}, func() { v2Fired = true })
	staleCb := eng.onComplete

	tr.Set(geo.LatLng{Lat: 2, Lng: 0}, tween.Config{}, nil)

	staleCb()
	assert.False(t, v2Fired)
	assert.Equal(t, Transitioning, tr.Phase())
}

func TestHaltFreezesLiveValueKeepsFinal(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(eng, geo.LatLng{Lat: 0, Lng: 0}, false)

	target := geo.LatLng{Lat: 10, Lng: 10}
	fired := false
	tr.Set(target, tween.Config{}, func() { fired = true })

	mid := geo.LatLng{Lat: 6, Lng: 6}
	eng.advance(mid)

	tr.Halt()
	assert.False(t, tr.Active())
	assert.Equal(t, Settled, tr.Phase())
	assert.Equal(t, mid, tr.Value())
	assert.Equal(t, target, tr.Final(), "halt leaves the final value unchanged")
	assert.False(t, fired)
}

func TestHaltThenSetResumes(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(eng, geo.LatLng{Lat: 0, Lng: 0}, false)

	tr.Set(geo.LatLng{Lat: 10, Lng: 0}, tween.Config{}, nil)
	eng.advance(geo.LatLng{Lat: 5, Lng: 0})
	tr.Halt()

	// No terminal state: the transition is reusable after a halt.
	next := geo.LatLng{Lat: 1, Lng: 1}
	tr.Set(next, tween.Config{}, nil)

	assert.Equal(t, Transitioning, tr.Phase())
	assert.Equal(t, next, tr.Final())

	eng.complete()
	assert.Equal(t, next, tr.Value())
}

func TestSetSameValueNotDeduplicated(t *testing.T) {
	eng := &fakeEngine{}
	v := geo.LatLng{Lat: 2, Lng: 2}
	tr := New(eng, v, false)
	require.Equal(t, 1, eng.setCalls)

	fired := false
	tr.Set(v, tween.Config{}, func() { fired = true })

	// The engine sees the set again; a zero-length hop settles it.
	assert.Equal(t, 2, eng.setCalls)
	assert.True(t, fired)
	assert.Equal(t, Settled, tr.Phase())
}

func TestConfigPassedVerbatim(t *testing.T) {
	eng := &fakeEngine{}
	tr := New(eng, geo.LatLng{}, false)

	cfg := tween.Config{Duration: 1234, Easing: tween.EaseOut}
	tr.Set(geo.LatLng{Lat: 9, Lng: 9}, cfg, nil)

	assert.Equal(t, cfg, eng.lastCfg)
}

func TestReversedRetained(t *testing.T) {
	tr := New(&fakeEngine{}, nil, true)
	assert.True(t, tr.Reversed())
}
