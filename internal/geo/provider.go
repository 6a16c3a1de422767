package geo

// Provider identifies a map provider family. It is consumed once,
// when the owning component is constructed, to fix the coordinate
// ordering convention for its lifetime.
type Provider string

// Known provider codes.
const (
	ProviderLeaflet  Provider = "leaflet"
	ProviderGoogle   Provider = "google"
	ProviderMapLibre Provider = "maplibre"
)

// Reversed reports whether the provider family uses the
// longitude-first ordered-pair convention. Only the MapLibre family
// does; every other code, known or not, is latitude-first.
func (p Provider) Reversed() bool {
	return p == ProviderMapLibre
}
