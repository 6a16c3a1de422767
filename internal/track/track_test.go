package track

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureCollectionShape(t *testing.T) {
	rec := NewRecorder("flight")
	rec.Waypoint(51.5074, -0.1278)
	rec.Sample(51.5074, -0.1278)
	rec.Sample(50.0, 1.0)
	rec.Sample(48.8566, 2.3522)
	rec.Waypoint(48.8566, 2.3522)

	fc := rec.FeatureCollection()
	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 3)

	line := fc.Features[0]
	assert.Equal(t, "LineString", line.Geometry.Type)
	assert.Equal(t, "flight", line.Properties["name"])
	assert.Equal(t, 3, line.Properties["samples"])

	// Path preserves sample order in [Lon, Lat] form.
	path, ok := line.Geometry.Coordinates.([][]float64)
	require.True(t, ok)
	assert.Equal(t, []float64{-0.1278, 51.5074}, path[0])
	assert.Equal(t, []float64{2.3522, 48.8566}, path[2])

	for i, f := range fc.Features[1:] {
		assert.Equal(t, "Point", f.Geometry.Type)
		assert.Equal(t, i, f.Properties["waypoint"])
	}
}

func TestEmptyRecorder(t *testing.T) {
	rec := NewRecorder("empty")

	assert.Equal(t, 0, rec.Len())
	fc := rec.FeatureCollection()
	assert.Empty(t, fc.Features)
}

func TestEncodeMinified(t *testing.T) {
	rec := NewRecorder("mini")
	rec.Sample(1, 2)
	rec.Sample(3, 4)

	plain, err := rec.Encode(false)
	require.NoError(t, err)
	minified, err := rec.Encode(true)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(minified), len(plain))

	// Both stay valid JSON with identical content.
	var a, b interface{}
	require.NoError(t, json.Unmarshal(plain, &a))
	require.NoError(t, json.Unmarshal(minified, &b))
	assert.Equal(t, a, b)
}

func TestWriteGeoJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "track.geojson")

	rec := NewRecorder("disk")
	rec.Sample(10, 20)
	rec.Waypoint(10, 20)

	require.NoError(t, rec.WriteGeoJSON(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var fc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fc))
	assert.Equal(t, "FeatureCollection", fc["type"])
}
