// Package config handles scene configuration loading and shared data
// structures.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/tween"

	"gopkg.in/yaml.v3"
)

// Scene is the root scene file structure: one marker animated through
// a list of waypoints on a provider's coordinate convention.
type Scene struct {
	Name     string       `yaml:"name" json:"name"`
	Provider geo.Provider `yaml:"provider,omitempty" json:"provider,omitempty"`

	Marker    Marker     `yaml:"marker,omitempty" json:"marker,omitempty"`
	Waypoints []Waypoint `yaml:"waypoints" json:"waypoints"`
	Output    Output     `yaml:"output,omitempty" json:"output,omitempty"`
}

// Marker configures the renderable's appearance and the delegate
// values passed through to the geometry modifier unchanged.
type Marker struct {
	Icon      string  `yaml:"icon,omitempty" json:"icon,omitempty"`
	Color     string  `yaml:"color,omitempty" json:"color,omitempty"`
	OffsetX   float64 `yaml:"offset_x,omitempty" json:"offset_x,omitempty"`
	OffsetY   float64 `yaml:"offset_y,omitempty" json:"offset_y,omitempty"`
	ZoomBase  float64 `yaml:"zoom_base,omitempty" json:"zoom_base,omitempty"`
	ZoomScale float64 `yaml:"zoom_scale,omitempty" json:"zoom_scale,omitempty"`
}

// Duration wraps time.Duration so scene files can carry values like
// "2s" or "400ms".
type Duration time.Duration

// UnmarshalYAML parses a duration string, or bare nanoseconds for
// numeric values.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return err
		}

		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return err
	}

	*d = Duration(n)
	return nil
}

// MarshalYAML renders the duration back into its string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// MarshalJSON renders the duration as a string, matching YAML.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// Waypoint is one leg of the animation. Lat/Lng name the destination;
// an optional rotate-towards point makes the marker face it while
// traveling the leg.
type Waypoint struct {
	Lat           float64      `yaml:"lat" json:"lat"`
	Lng           float64      `yaml:"lng" json:"lng"`
	RotateTowards *geo.LatLng  `yaml:"rotate_towards,omitempty" json:"rotate_towards,omitempty"`
	Duration      Duration     `yaml:"duration,omitempty" json:"duration,omitempty"`
	Easing        tween.Easing `yaml:"easing,omitempty" json:"easing,omitempty"`
}

// Output configures frame rendering and track export.
type Output struct {
	Dir     string  `yaml:"dir,omitempty" json:"dir,omitempty"`
	Size    int     `yaml:"size,omitempty" json:"size,omitempty"`
	FPS     int     `yaml:"fps,omitempty" json:"fps,omitempty"`
	Zoom    float64 `yaml:"zoom,omitempty" json:"zoom,omitempty"`
	Quality float32 `yaml:"quality,omitempty" json:"quality,omitempty"`
	Minify  bool    `yaml:"minify,omitempty" json:"minify,omitempty"`
}

// Load reads and parses the YAML scene file from the specified path,
// applying defaults and validating the waypoint list.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scene Scene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, err
	}

	scene.applyDefaults()

	if len(scene.Waypoints) == 0 {
		return nil, fmt.Errorf("scene %q has no waypoints", scene.Name)
	}

	return &scene, nil
}

func (s *Scene) applyDefaults() {
	if s.Name == "" {
		s.Name = "scene"
	}
	if s.Provider == "" {
		s.Provider = geo.ProviderLeaflet
	}
	if s.Marker.ZoomBase <= 0 {
		s.Marker.ZoomBase = 8
	}
	if s.Marker.ZoomScale <= 0 {
		s.Marker.ZoomScale = 1
	}
	if s.Output.Dir == "" {
		s.Output.Dir = "out"
	}
	if s.Output.Size <= 0 {
		s.Output.Size = 1024
	}
	if s.Output.FPS <= 0 {
		s.Output.FPS = 30
	}
	if s.Output.Zoom <= 0 {
		s.Output.Zoom = 1
	}
	if s.Output.Quality <= 0 {
		s.Output.Quality = 85
	}
}

// Position returns the waypoint destination in the provider's shape:
// an ordered pair for reversed providers, a plain LatLng otherwise.
func (w Waypoint) Position(reversed bool) geo.Position {
	if reversed {
		return []float64{w.Lng, w.Lat}
	}

	return geo.LatLng{Lat: w.Lat, Lng: w.Lng}
}

// Transition returns the leg's tween configuration.
func (w Waypoint) Transition() tween.Config {
	return tween.Config{Duration: time.Duration(w.Duration), Easing: w.Easing}
}
