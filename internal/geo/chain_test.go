package geo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeSource struct {
	name   string
	loc    Location
	err    error
	called int
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Lookup(context.Context, string) (Location, error) {
	s.called++
	return s.loc, s.err
}

type fakeReverse struct {
	country string
	err     error
}

func (r *fakeReverse) CountryCode(context.Context, float64, float64) (string, error) {
	return r.country, r.err
}

type failingPositioner struct{}

func (failingPositioner) Position(context.Context) (float64, float64, error) {
	return 0, 0, errors.New("position denied")
}

func TestChain_Locate(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	t.Run("first_complete_source_wins", func(t *testing.T) {
		first := &fakeSource{name: "a", loc: Location{Lat: 48.85, Lng: 2.35, CountryCode: "FR"}}
		second := &fakeSource{name: "b", loc: Location{Lat: 1, Lng: 1, CountryCode: "XX"}}
		chain := NewChain([]Source{first, second}, nil, time.Second, log)

		loc := chain.Locate(ctx, "203.0.113.7", nil)

		assert.Equal(t, "FR", loc.CountryCode)
		assert.Equal(t, 48.85, loc.Lat)
		assert.Equal(t, 1, first.called)
		assert.Equal(t, 0, second.called, "later sources must not be contacted after a hit")
	})

	t.Run("sources_tried_in_order_until_success", func(t *testing.T) {
		first := &fakeSource{name: "a", err: errors.New("down")}
		second := &fakeSource{name: "b", err: errors.New("incomplete")}
		third := &fakeSource{name: "c", loc: Location{Lat: 35.68, Lng: 139.69, CountryCode: "JP"}}
		chain := NewChain([]Source{first, second, third}, nil, time.Second, log)

		loc := chain.Locate(ctx, "203.0.113.7", nil)

		assert.Equal(t, "JP", loc.CountryCode)
		assert.Equal(t, 1, first.called)
		assert.Equal(t, 1, second.called)
		assert.Equal(t, 1, third.called)
	})

	t.Run("positioner_with_reverse_geocode", func(t *testing.T) {
		failing := &fakeSource{name: "a", err: errors.New("down")}
		chain := NewChain([]Source{failing}, &fakeReverse{country: "DE"}, time.Second, log)

		loc := chain.Locate(ctx, "", StaticPosition{Lat: 52.52, Lng: 13.40})

		assert.Equal(t, 52.52, loc.Lat)
		assert.Equal(t, 13.40, loc.Lng)
		assert.Equal(t, "DE", loc.CountryCode)
	})

	t.Run("reverse_failure_leaves_country_unknown", func(t *testing.T) {
		failing := &fakeSource{name: "a", err: errors.New("down")}
		chain := NewChain([]Source{failing}, &fakeReverse{err: errors.New("quota")}, time.Second, log)

		loc := chain.Locate(ctx, "", StaticPosition{Lat: 52.52, Lng: 13.40})

		assert.Equal(t, 52.52, loc.Lat)
		assert.Empty(t, loc.CountryCode)
	})

	t.Run("everything_failing_yields_fixed_default", func(t *testing.T) {
		failing := &fakeSource{name: "a", err: errors.New("down")}
		chain := NewChain([]Source{failing, failing, failing}, &fakeReverse{err: errors.New("unused")}, 10*time.Millisecond, log)

		loc := chain.Locate(ctx, "", failingPositioner{})

		assert.Equal(t, DefaultLat, loc.Lat)
		assert.Equal(t, DefaultLng, loc.Lng)
		assert.Equal(t, DefaultCountry, loc.CountryCode)
	})

	t.Run("nil_positioner_yields_fixed_default", func(t *testing.T) {
		failing := &fakeSource{name: "a", err: errors.New("down")}
		chain := NewChain([]Source{failing}, nil, time.Second, log)

		loc := chain.Locate(ctx, "203.0.113.7", nil)

		assert.Equal(t, DefaultCountry, loc.CountryCode)
	})
}
