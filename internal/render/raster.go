package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/marker"

	"github.com/rs/zerolog/log"
)

// Raster is a stateless geometry modifier drawing onto a Canvas. The
// position and rotate-towards fields are refreshed by the marker layer
// before every Modify; offset and zoom configuration are set once.
type Raster struct {
	position      geo.Position
	rotateTowards geo.Position
	icon          image.Image
	zoomScale     marker.ScaleFunc
	color         color.Color
	offset        marker.Offset
	zoomBase      float64
	reversed      bool
}

// NewRaster builds a modifier decoding positions under the given
// ordering convention. A nil icon falls back to a drawn disc with a
// heading wedge.
func NewRaster(reversed bool, icon image.Image, markerColor color.Color) *Raster {
	if markerColor == nil {
		markerColor = color.RGBA{R: 0xd3, G: 0x2f, B: 0x2f, A: 0xff}
	}

	return &Raster{
		zoomScale: marker.FixedScale(1),
		zoomBase:  8,
		icon:      icon,
		color:     markerColor,
		reversed:  reversed,
	}
}

// SetPosition stores the anchor position for the next Modify.
func (r *Raster) SetPosition(p geo.Position) { r.position = p }

// Position returns the stored anchor position.
func (r *Raster) Position() geo.Position { return r.position }

// SetRotateTowards stores the point the marker faces.
func (r *Raster) SetRotateTowards(p geo.Position) { r.rotateTowards = p }

// RotateTowards returns the stored facing target.
func (r *Raster) RotateTowards() geo.Position { return r.rotateTowards }

// SetOffset stores the fixed pixel displacement.
func (r *Raster) SetOffset(o marker.Offset) { r.offset = o }

// Offset returns the fixed pixel displacement.
func (r *Raster) Offset() marker.Offset { return r.offset }

// SetZoomBase stores the base marker radius in pixels.
func (r *Raster) SetZoomBase(z float64) { r.zoomBase = z }

// ZoomBase returns the base marker radius.
func (r *Raster) ZoomBase() float64 { return r.zoomBase }

// SetZoomScale stores the zoom-to-scale mapping.
func (r *Raster) SetZoomScale(fn marker.ScaleFunc) {
	if fn != nil {
		r.zoomScale = fn
	}
}

// ZoomScale returns the zoom-to-scale mapping.
func (r *Raster) ZoomScale() marker.ScaleFunc { return r.zoomScale }

// Modify projects the position onto the canvas, applies offset and
// zoom scaling, rotates the marker to face the rotate-towards target
// and draws it. It returns the transform it applied.
func (r *Raster) Modify(target marker.RenderTarget) (marker.RenderSpec, error) {
	canvas, ok := target.(*Canvas)
	if !ok {
		return marker.RenderSpec{}, fmt.Errorf("render: unsupported target %T", target)
	}
	if r.position == nil {
		return marker.RenderSpec{}, fmt.Errorf("render: no position set")
	}

	lat, err := geo.Lat(r.position, r.reversed)
	if err != nil {
		return marker.RenderSpec{}, err
	}
	lng, err := geo.Lng(r.position, r.reversed)
	if err != nil {
		return marker.RenderSpec{}, err
	}

	x, y := geo.MercatorXY(lat, lng, float64(canvas.Size))
	x += r.offset.X
	y += r.offset.Y

	// Face from the marker toward its target.
	rotation := 0.0
	if r.rotateTowards != nil {
		rotation, err = geo.Bearing(r.rotateTowards, r.position, r.reversed)
		if err != nil {
			return marker.RenderSpec{}, err
		}
	}

	scale := r.zoomScale(canvas.Zoom)
	radius := r.zoomBase * scale
	if radius < 1 {
		radius = 1
	}

	if r.icon != nil {
		side := int(radius * 2)
		scaled := scaleIcon(r.icon, side)
		org := image.Pt(int(x)-side/2, int(y)-side/2)
		draw.Draw(canvas.Img, scaled.Bounds().Add(org), scaled, image.Point{}, draw.Over)
	} else {
		r.drawDisc(canvas.Img, x, y, radius)
		if r.rotateTowards != nil {
			r.drawHeading(canvas.Img, x, y, radius, rotation)
		}
	}

	spec := marker.RenderSpec{X: x, Y: y, Rotation: rotation, Scale: scale}

	log.Trace().
		Float64("x", x).
		Float64("y", y).
		Float64("rotation", rotation).
		Float64("scale", scale).
		Msg("Marker placed")

	return spec, nil
}

// drawDisc fills a filled circle around (cx, cy).
func (r *Raster) drawDisc(img *image.RGBA, cx, cy, radius float64) {
	minX, maxX := int(cx-radius), int(cx+radius)
	minY, maxY := int(cy-radius), int(cy+radius)

	for py := minY; py <= maxY; py++ {
		for px := minX; px <= maxX; px++ {
			dx, dy := float64(px)-cx, float64(py)-cy
			if dx*dx+dy*dy <= radius*radius {
				img.Set(px, py, r.color)
			}
		}
	}
}

// drawHeading draws a short line from the disc center along the
// rotation angle so the facing direction is visible in still frames.
func (r *Raster) drawHeading(img *image.RGBA, cx, cy, radius, rotation float64) {
	length := radius * 2
	steps := int(length)

	for i := 0; i <= steps; i++ {
		d := float64(i)
		px := cx + d*math.Sin(rotation)
		py := cy - d*math.Cos(rotation)
		img.Set(int(px), int(py), r.color)
	}
}
