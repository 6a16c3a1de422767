package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/woozymasta/geomark/internal/config"
	"github.com/woozymasta/geomark/internal/geo"
	"github.com/woozymasta/geomark/internal/tween"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input    string        `short:"i" long:"in"       description:"Input GeoJSON path. Reads from stdin if empty"`
	Output   string        `short:"o" long:"out"      description:"Output file path. Writes to stdout if empty"`
	Format   string        `short:"f" long:"format"   description:"Output format" choice:"yaml" choice:"json" default:"yaml"`
	Name     string        `short:"n" long:"name"     description:"Scene name" default:"scene"`
	Provider string        `short:"P" long:"provider" description:"Map provider code" default:"leaflet"`
	Duration time.Duration `short:"d" long:"duration" description:"Transition duration per leg" default:"400ms"`
	Easing   string        `short:"e" long:"easing"   description:"Easing curve per leg" choice:"linear" choice:"ease-in-out" choice:"ease-out" default:"linear"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	inputData, err := readInput(opts.Input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error reading input:", err)
		os.Exit(1)
	}

	var fc geo.GeoJSONFeatureCollection
	if err := json.Unmarshal(inputData, &fc); err != nil {
		fmt.Fprintln(os.Stderr, "Error parsing GeoJSON:", err)
		os.Exit(1)
	}

	waypoints := extractWaypoints(fc)
	if len(waypoints) == 0 {
		fmt.Fprintln(os.Stderr, "Error: no LineString or Point coordinates found")
		os.Exit(1)
	}

	for i := range waypoints {
		if i == 0 {
			continue // first waypoint places the marker instantly
		}
		waypoints[i].Duration = config.Duration(opts.Duration)
		waypoints[i].Easing = tween.Easing(opts.Easing)
	}

	scene := config.Scene{
		Name:      opts.Name,
		Provider:  geo.Provider(opts.Provider),
		Waypoints: waypoints,
	}

	var out []byte
	if opts.Format == "json" {
		out, err = json.MarshalIndent(scene, "", "  ")
	} else {
		out, err = yaml.Marshal(scene)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error encoding scene:", err)
		os.Exit(1)
	}

	if opts.Output == "" {
		fmt.Println(string(out))
		return
	}

	if err := os.WriteFile(opts.Output, out, 0644); err != nil {
		fmt.Fprintln(os.Stderr, "Error writing output:", err)
		os.Exit(1)
	}
}

func readInput(path string) ([]byte, error) {
	if path != "" {
		return os.ReadFile(path)
	}

	return io.ReadAll(os.Stdin)
}

// extractWaypoints flattens the first LineString into waypoints, or
// falls back to collecting Point features in document order.
func extractWaypoints(fc geo.GeoJSONFeatureCollection) []config.Waypoint {
	for _, f := range fc.Features {
		if f.Geometry.Type != "LineString" {
			continue
		}

		path, ok := f.Geometry.Coordinates.([]interface{})
		if !ok {
			continue
		}

		wps := make([]config.Waypoint, 0, len(path))
		for _, raw := range path {
			if lng, lat, ok := lonLatPair(raw); ok {
				wps = append(wps, config.Waypoint{Lat: lat, Lng: lng})
			}
		}
		if len(wps) > 0 {
			return wps
		}
	}

	var wps []config.Waypoint
	for _, f := range fc.Features {
		if f.Geometry.Type != "Point" {
			continue
		}
		if lng, lat, ok := lonLatPair(f.Geometry.Coordinates); ok {
			wps = append(wps, config.Waypoint{Lat: lat, Lng: lng})
		}
	}

	return wps
}

// lonLatPair coerces a decoded JSON coordinate pair ([Lon, Lat]).
func lonLatPair(raw interface{}) (lng, lat float64, ok bool) {
	pair, ok := raw.([]interface{})
	if !ok || len(pair) < 2 {
		return 0, 0, false
	}

	lng, lngOK := pair[0].(float64)
	lat, latOK := pair[1].(float64)

	return lng, lat, lngOK && latOK
}
