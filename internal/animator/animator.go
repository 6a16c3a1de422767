// Package animator drives a scene through its waypoints, producing
// rendered frames and a traveled-path track.
package animator

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/woozymasta/geomark/internal/config"
	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/marker"
	"github.com/woozymasta/geomark/internal/render"
	"github.com/woozymasta/geomark/internal/track"
	"github.com/woozymasta/geomark/internal/tween"

	"github.com/rs/zerolog/log"
)

// legFrameSlack caps a leg's frame count above its nominal length, so
// a misbehaving engine cannot spin the loop forever.
const legFrameSlack = 2

// Index describes the produced frame sequence, written alongside the
// frames for the preview server.
type Index struct {
	Name   string `json:"name"`
	Frames int    `json:"frames"`
	FPS    int    `json:"fps"`
	Size   int    `json:"size"`
	Track  string `json:"track"`
}

// Run animates the scene and writes frames, the track GeoJSON and the
// frame index into the scene's output directory. Frame writing can be
// disabled for track-only runs.
func Run(scene *config.Scene, writeFrames bool) (*Index, error) {
	reversed := scene.Provider.Reversed()

	var icon image.Image
	if scene.Marker.Icon != "" {
		var err error
		if icon, err = render.LoadIcon(scene.Marker.Icon); err != nil {
			return nil, fmt.Errorf("marker icon: %w", err)
		}
	}

	markerColor, err := render.ParseHexColor(scene.Marker.Color)
	if err != nil {
		return nil, fmt.Errorf("marker color: %w", err)
	}

	raster := render.NewRaster(reversed, icon, markerColor)
	posEngine := tween.NewFrame(reversed)
	rotEngine := tween.NewFrame(reversed)

	mk := marker.New(raster, scene.Provider, posEngine, rotEngine, marker.Config{
		Offset:    marker.Offset{X: scene.Marker.OffsetX, Y: scene.Marker.OffsetY},
		ZoomBase:  scene.Marker.ZoomBase,
		ZoomScale: marker.FixedScale(scene.Marker.ZoomScale),
	})

	canvas := render.NewCanvas(scene.Output.Size, scene.Output.Zoom, color.White)
	rec := track.NewRecorder(scene.Name)

	dt := time.Second / time.Duration(scene.Output.FPS)
	frame := 0

	// First waypoint places the marker instantly; the remaining legs
	// animate.
	first := scene.Waypoints[0]
	mk.SetPosition(first.Position(reversed), tween.Config{}, nil)
	if first.RotateTowards != nil {
		mk.SetRotateTowards(*first.RotateTowards, tween.Config{}, nil)
	}
	rec.Waypoint(first.Lat, first.Lng)

	if err := emit(scene, canvas, mk, rec, frame, writeFrames); err != nil {
		return nil, err
	}
	frame++

	for i, wp := range scene.Waypoints[1:] {
		leg := i + 1
		done := false

		if wp.RotateTowards != nil {
			mk.SetRotateTowards(*wp.RotateTowards, tween.Config{}, nil)
		}
		mk.SetPosition(wp.Position(reversed), wp.Transition(), func() {
			done = true
			log.Debug().Int("leg", leg).Msg("Leg complete")
		})
		rec.Waypoint(wp.Lat, wp.Lng)

		duration := time.Duration(wp.Duration)
		if duration <= 0 {
			duration = tween.DefaultDuration
		}
		maxFrames := int(duration/dt)*legFrameSlack + legFrameSlack

		for step := 0; !done && mk.Active(); step++ {
			if step > maxFrames {
				log.Warn().Int("leg", leg).Msg("Leg exceeded frame budget, halting")
				mk.Halt()
				break
			}

			posEngine.Update(dt)
			rotEngine.Update(dt)

			if err := emit(scene, canvas, mk, rec, frame, writeFrames); err != nil {
				return nil, err
			}
			frame++
		}
	}

	if err := rec.WriteGeoJSON(filepath.Join(scene.Output.Dir, "track.geojson"), scene.Output.Minify); err != nil {
		return nil, err
	}

	idx := &Index{
		Name:   scene.Name,
		Frames: frame,
		FPS:    scene.Output.FPS,
		Size:   scene.Output.Size,
		Track:  "track.geojson",
	}
	if err := writeIndex(scene.Output.Dir, idx); err != nil {
		return nil, err
	}

	log.Info().
		Str("scene", scene.Name).
		Int("frames", frame).
		Int("waypoints", len(scene.Waypoints)).
		Msg("Animation finished")

	return idx, nil
}

// emit renders the current marker state and records the live position.
func emit(scene *config.Scene, canvas *render.Canvas, mk *marker.Marker, rec *track.Recorder, frame int, writeFrames bool) error {
	reversed := mk.Reversed()

	live := mk.Position().Value()
	lat, err := geo.Lat(live, reversed)
	if err != nil {
		return err
	}
	lng, err := geo.Lng(live, reversed)
	if err != nil {
		return err
	}
	rec.Sample(lat, lng)

	if !writeFrames {
		return nil
	}

	canvas.Clear(color.White)
	if _, err := mk.Render(canvas); err != nil {
		return err
	}

	path := filepath.Join(scene.Output.Dir, "frames", fmt.Sprintf("%06d.webp", frame))
	return canvas.WriteWebP(path, scene.Output.Quality)
}

// writeIndex saves the frame sequence description next to the frames.
func writeIndex(dir string, idx *Index) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.Create(filepath.Join(dir, "index.json"))
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("Failed to close index file")
		}
	}()

	return json.NewEncoder(f).Encode(idx)
}
