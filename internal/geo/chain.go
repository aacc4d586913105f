package geo

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Chain runs the full geolocation fallback sequence: IP providers strictly
// in order, then client-supplied coordinates plus one reverse-geocode call,
// then the fixed default. Locate never fails.
type Chain struct {
	sources         []Source
	reverse         ReverseGeocoder
	positionTimeout time.Duration
	log             *zap.Logger
}

// NewChain creates a chain. reverse may be nil, in which case positioner
// coordinates are returned without a country code.
func NewChain(sources []Source, reverse ReverseGeocoder, positionTimeout time.Duration, log *zap.Logger) *Chain {
	return &Chain{
		sources:         sources,
		reverse:         reverse,
		positionTimeout: positionTimeout,
		log:             log,
	}
}

// Locate resolves a best-guess location for the given IP. The providers are
// tried sequentially, not concurrently: the first complete answer wins and
// later providers are never contacted. pos may be nil.
func (c *Chain) Locate(ctx context.Context, ip string, pos Positioner) Location {
	for _, source := range c.sources {
		loc, err := source.Lookup(ctx, ip)
		if err == nil {
			c.log.Debug("geolocation resolved",
				zap.String("source", source.Name()),
				zap.String("country", loc.CountryCode))
			return loc
		}
		c.log.Debug("geolocation source failed",
			zap.String("source", source.Name()),
			zap.Error(err))
	}

	if pos != nil {
		posCtx, cancel := context.WithTimeout(ctx, c.positionTimeout)
		defer cancel()

		lat, lng, err := pos.Position(posCtx)
		if err == nil {
			loc := Location{Lat: lat, Lng: lng}
			if c.reverse != nil {
				country, rerr := c.reverse.CountryCode(ctx, lat, lng)
				if rerr == nil {
					loc.CountryCode = country
				} else {
					// Country stays unknown; coordinates are still usable
					c.log.Debug("reverse geocoding failed", zap.Error(rerr))
				}
			}
			return loc
		}
		c.log.Debug("client position unavailable", zap.Error(err))
	}

	return Location{Lat: DefaultLat, Lng: DefaultLng, CountryCode: DefaultCountry}
}
