package render

import (
	"image/color"
	"math"
	"testing"

	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/marker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModifyPlacesMarkerAtProjection(t *testing.T) {
	r := NewRaster(false, nil, nil)
	canvas := NewCanvas(1024, 1, color.White)

	r.SetPosition(geo.LatLng{Lat: 0, Lng: 0})

	spec, err := r.Modify(canvas)
	require.NoError(t, err)

	assert.InDelta(t, 512, spec.X, 1e-9)
	assert.InDelta(t, 512, spec.Y, 1e-9)
	assert.Equal(t, 0.0, spec.Rotation)

	// The disc actually landed on the canvas.
	center := canvas.Img.RGBAAt(512, 512)
	assert.NotEqual(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, center)
}

func TestModifyAppliesOffsetAndZoom(t *testing.T) {
	r := NewRaster(false, nil, nil)
	r.SetOffset(marker.Offset{X: 10, Y: -20})
	r.SetZoomBase(4)
	r.SetZoomScale(func(zoom float64) float64 { return zoom * 3 })

	canvas := NewCanvas(1024, 2, color.White)
	r.SetPosition(geo.LatLng{Lat: 0, Lng: 0})

	spec, err := r.Modify(canvas)
	require.NoError(t, err)

	assert.InDelta(t, 522, spec.X, 1e-9)
	assert.InDelta(t, 492, spec.Y, 1e-9)
	assert.Equal(t, 6.0, spec.Scale)
}

func TestModifyRotationFacesTarget(t *testing.T) {
	r := NewRaster(false, nil, nil)
	canvas := NewCanvas(256, 1, color.White)

	pos := geo.LatLng{Lat: 0, Lng: 0}
	towards := geo.LatLng{Lat: 0, Lng: 1}

	r.SetPosition(pos)
	r.SetRotateTowards(towards)

	spec, err := r.Modify(canvas)
	require.NoError(t, err)

	want, err := geo.Bearing(towards, pos, false)
	require.NoError(t, err)
	assert.Equal(t, want, spec.Rotation)
	assert.NotEqual(t, math.Pi/2, spec.Rotation)
}

func TestModifyReversedConvention(t *testing.T) {
	r := NewRaster(true, nil, nil)
	canvas := NewCanvas(1024, 1, color.White)

	// Reversed pair: [lng, lat].
	r.SetPosition([]float64{90, 45})

	spec, err := r.Modify(canvas)
	require.NoError(t, err)
	assert.Greater(t, spec.X, 512.0)
	assert.Less(t, spec.Y, 512.0)
}

func TestModifyErrors(t *testing.T) {
	r := NewRaster(false, nil, nil)
	canvas := NewCanvas(64, 1, color.White)

	_, err := r.Modify("not a canvas")
	assert.Error(t, err)

	_, err = r.Modify(canvas)
	assert.Error(t, err, "no position set")

	r.SetPosition("bogus")
	_, err = r.Modify(canvas)
	assert.ErrorIs(t, err, geo.ErrInvalidPosition)
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#d32f2f")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}, c)

	c, err = ParseHexColor("0f0")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{R: 0, G: 0xff, B: 0, A: 0xff}, c)

	c, err = ParseHexColor("")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = ParseHexColor("#12345")
	assert.Error(t, err)

	_, err = ParseHexColor("zzzzzz")
	assert.Error(t, err)
}
