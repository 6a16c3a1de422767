package geo

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is returned when a value matches none of the
// supported position shapes.
var ErrInvalidPosition = errors.New("invalid position shape")

// Position is any value understood as a geographic coordinate. Three
// shapes are accepted and never normalized into one another:
//
//   - an ordered pair []float64 of at least two elements, whose slot
//     meaning depends on the reversed convention
//   - a value exposing zero-argument Lat()/Lng() accessors
//   - a LatLng (or *LatLng) with plain fields
type Position = any

// LatLng is the plain-field position shape, always latitude first
// regardless of the reversed convention.
type LatLng struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// Latituder exposes latitude through a zero-argument accessor.
type Latituder interface {
	Lat() float64
}

// Longituder exposes longitude through a zero-argument accessor.
type Longituder interface {
	Lng() float64
}

// Lat extracts the latitude from p. For the ordered-pair shape the
// slot is index 1 under the reversed convention and index 0 otherwise.
func Lat(p Position, reversed bool) (float64, error) {
	switch v := p.(type) {
	case []float64:
		if len(v) < 2 {
			return 0, fmt.Errorf("%w: pair has %d elements", ErrInvalidPosition, len(v))
		}
		if reversed {
			return v[1], nil
		}
		return v[0], nil
	case LatLng:
		return v.Lat, nil
	case *LatLng:
		return v.Lat, nil
	}

	if a, ok := p.(Latituder); ok {
		return a.Lat(), nil
	}

	return 0, fmt.Errorf("%w: %T", ErrInvalidPosition, p)
}

// Lng extracts the longitude from p. For the ordered-pair shape the
// slot selection is the opposite of Lat under the same reversed value:
// index 0 when reversed, index 1 otherwise. The asymmetry against Lat
// is deliberate and must not be "fixed"; both map provider families
// depend on it.
func Lng(p Position, reversed bool) (float64, error) {
	switch v := p.(type) {
	case []float64:
		if len(v) < 2 {
			return 0, fmt.Errorf("%w: pair has %d elements", ErrInvalidPosition, len(v))
		}
		if reversed {
			return v[0], nil
		}
		return v[1], nil
	case LatLng:
		return v.Lng, nil
	case *LatLng:
		return v.Lng, nil
	}

	if a, ok := p.(Longituder); ok {
		return a.Lng(), nil
	}

	return 0, fmt.Errorf("%w: %T", ErrInvalidPosition, p)
}

// Equal reports whether two positions decode to exactly the same
// latitude and longitude under the same reversed convention. No
// epsilon is applied.
func Equal(p1, p2 Position, reversed bool) (bool, error) {
	lat1, err := Lat(p1, reversed)
	if err != nil {
		return false, err
	}
	lat2, err := Lat(p2, reversed)
	if err != nil {
		return false, err
	}
	lng1, err := Lng(p1, reversed)
	if err != nil {
		return false, err
	}
	lng2, err := Lng(p2, reversed)
	if err != nil {
		return false, err
	}

	return lat1 == lat2 && lng1 == lng2, nil
}
