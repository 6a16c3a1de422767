// Package geo handles geographic position decoding, coordinate math
// and geographic data structures.
package geo

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type" yaml:"type"`
	Features []GeoJSONFeature `json:"features" yaml:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and properties.
type GeoJSONFeature struct {
	Properties map[string]interface{} `json:"properties" yaml:"properties"`
	Type       string                 `json:"type" yaml:"type"`
	Geometry   GeoJSONGeometry        `json:"geometry" yaml:"geometry"`
}

// GeoJSONGeometry represents the geometry of a feature. Coordinates
// holds [Lon, Lat] for a Point and [][Lon, Lat] for a LineString, as
// the GeoJSON standard requires.
type GeoJSONGeometry struct {
	Type        string      `json:"type" yaml:"type"`
	Coordinates interface{} `json:"coordinates" yaml:"coordinates"`
}

// PointFeature builds a Point feature from a latitude/longitude pair.
func PointFeature(lat, lng float64, props map[string]interface{}) GeoJSONFeature {
	return GeoJSONFeature{
		Type:       "Feature",
		Properties: props,
		Geometry: GeoJSONGeometry{
			Type:        "Point",
			Coordinates: []float64{lng, lat},
		},
	}
}

// LineStringFeature builds a LineString feature from an ordered list
// of [Lon, Lat] pairs.
func LineStringFeature(path [][]float64, props map[string]interface{}) GeoJSONFeature {
	return GeoJSONFeature{
		Type:       "Feature",
		Properties: props,
		Geometry: GeoJSONGeometry{
			Type:        "LineString",
			Coordinates: path,
		},
	}
}
