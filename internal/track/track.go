// Package track records the path a marker travels and exports it as
// GeoJSON.
package track

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/woozymasta/geomark/internal/geo"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	mjson "github.com/tdewolff/minify/v2/json"
)

// Recorder accumulates per-frame position samples and the waypoints
// that produced them.
type Recorder struct {
	name      string
	path      [][]float64 // [Lon, Lat] per GeoJSON
	waypoints []geo.LatLng
}

// NewRecorder returns a recorder for a named animation.
func NewRecorder(name string) *Recorder {
	return &Recorder{name: name}
}

// Sample appends one frame's live position to the path.
func (r *Recorder) Sample(lat, lng float64) {
	r.path = append(r.path, []float64{lng, lat})
}

// Waypoint records an authored destination, exported as a Point
// feature alongside the traveled path.
func (r *Recorder) Waypoint(lat, lng float64) {
	r.waypoints = append(r.waypoints, geo.LatLng{Lat: lat, Lng: lng})
}

// Len returns the number of recorded samples.
func (r *Recorder) Len() int {
	return len(r.path)
}

// FeatureCollection builds the GeoJSON document: one LineString for
// the traveled path plus a Point per waypoint.
func (r *Recorder) FeatureCollection() geo.GeoJSONFeatureCollection {
	features := make([]geo.GeoJSONFeature, 0, len(r.waypoints)+1)

	if len(r.path) > 0 {
		features = append(features, geo.LineStringFeature(r.path, map[string]interface{}{
			"name":    r.name,
			"samples": len(r.path),
		}))
	}

	for i, wp := range r.waypoints {
		features = append(features, geo.PointFeature(wp.Lat, wp.Lng, map[string]interface{}{
			"waypoint": i,
		}))
	}

	return geo.GeoJSONFeatureCollection{Type: "FeatureCollection", Features: features}
}

// Encode marshals the feature collection, optionally minified.
func (r *Recorder) Encode(minified bool) ([]byte, error) {
	data, err := json.Marshal(r.FeatureCollection())
	if err != nil {
		return nil, err
	}

	if !minified {
		return data, nil
	}

	m := minify.New()
	m.AddFunc("application/json", mjson.Minify)

	var buf bytes.Buffer
	if err := m.Minify("application/json", &buf, bytes.NewReader(data)); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteGeoJSON encodes the track and writes it to disk.
func (r *Recorder) WriteGeoJSON(path string, minified bool) error {
	data, err := r.Encode(minified)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	log.Info().
		Str("path", path).
		Int("samples", len(r.path)).
		Int("waypoints", len(r.waypoints)).
		Bool("minified", minified).
		Msg("Writing track")

	return os.WriteFile(path, data, 0644)
}
