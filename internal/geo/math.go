package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine
// distance.
const EarthRadiusKm = 6371.0

// MaxLat is the Web Mercator latitude clamp.
const MaxLat = 85.05112878

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Bearing returns the rotation angle in radians a renderable at end
// needs to face back toward start, offset by a quarter turn to match
// the renderable's default orientation. The (start-end) argument
// order inside atan2 is part of the contract.
func Bearing(start, end Position, reversed bool) (float64, error) {
	latS, err := Lat(start, reversed)
	if err != nil {
		return 0, err
	}
	latE, err := Lat(end, reversed)
	if err != nil {
		return 0, err
	}
	lngS, err := Lng(start, reversed)
	if err != nil {
		return 0, err
	}
	lngE, err := Lng(end, reversed)
	if err != nil {
		return 0, err
	}

	return math.Atan2(lngS-lngE, latS-latE) + math.Pi/2, nil
}

// HaversineKm returns the great-circle distance between two positions
// in kilometers. Positions are decoded in degrees and converted to
// radians internally.
func HaversineKm(start, end Position, reversed bool) (float64, error) {
	latS, err := Lat(start, reversed)
	if err != nil {
		return 0, err
	}
	latE, err := Lat(end, reversed)
	if err != nil {
		return 0, err
	}
	lngS, err := Lng(start, reversed)
	if err != nil {
		return 0, err
	}
	lngE, err := Lng(end, reversed)
	if err != nil {
		return 0, err
	}

	dLat := DegToRad(latE - latS)
	dLng := DegToRad(lngE - lngS)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(DegToRad(latS))*math.Cos(DegToRad(latE))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c, nil
}

// MercatorXY projects WGS84 (Lat/Lng) to pixel coordinates on a
// square world canvas of sizePx pixels using the Web Mercator
// projection.
//
// It maps the longitude range [-180, 180] to x: [0..sizePx] and
// applies the forward Mercator projection for y, with latitude
// clamped to the projection's valid range. y grows southward, as on
// an image canvas.
func MercatorXY(lat, lng, sizePx float64) (x, y float64) {
	if lat > MaxLat {
		lat = MaxLat
	} else if lat < -MaxLat {
		lat = -MaxLat
	}

	// lng: [-180..180] -> x: [0..size]
	x = (lng + 180.0) / 360.0 * sizePx

	// Forward Mercator projection: latRad -> mercatorY: [-PI..PI]
	mercatorY := math.Log(math.Tan(math.Pi/4 + DegToRad(lat)/2))
	y = (math.Pi - mercatorY) / (2.0 * math.Pi) * sizePx

	return x, y
}
