// Package geo resolves an approximate location for a click through an
// ordered chain of IP-geolocation providers with progressively coarser
// fallbacks. The chain never fails: when every source is exhausted a fixed
// default location is returned so an event is never left without a best
// guess.
package geo

import "context"

// Last-resort coordinates used when every geolocation source fails.
const (
	DefaultLat     = 22.5726
	DefaultLng     = 88.3639
	DefaultCountry = "IN"
)

// Location is the normalized shape shared by all providers. An empty
// CountryCode means the country is unknown.
type Location struct {
	Lat         float64
	Lng         float64
	CountryCode string
}

// Source is a single IP-geolocation provider. Lookup must return an error
// unless all three Location fields could be populated; an incomplete answer
// is treated the same as a failed one so the chain moves on.
type Source interface {
	Name() string
	Lookup(ctx context.Context, ip string) (Location, error)
}

// Positioner yields client-supplied coordinates, the stand-in for a device's
// own positioning capability. Implementations must honor ctx cancellation.
type Positioner interface {
	Position(ctx context.Context) (lat, lng float64, err error)
}

// StaticPosition is a Positioner wrapping coordinates already known from the
// request.
type StaticPosition struct {
	Lat float64
	Lng float64
}

func (p StaticPosition) Position(context.Context) (float64, float64, error) {
	return p.Lat, p.Lng, nil
}
