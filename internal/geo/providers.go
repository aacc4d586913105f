package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

// Public endpoints of the supported providers. Each one exposes a different
// response shape; the adapters below normalize them to Location.
const (
	IPAPICoBaseURL  = "https://ipapi.co"
	IPAPIComBaseURL = "http://ip-api.com"
	IPWhoisBaseURL  = "https://ipwho.is"
)

// DefaultSources returns the provider chain in its production order.
func DefaultSources(timeout time.Duration) []Source {
	client := &http.Client{Timeout: timeout}
	return []Source{
		&IPAPICoSource{BaseURL: IPAPICoBaseURL, Client: client},
		&IPAPIComSource{BaseURL: IPAPIComBaseURL, Client: client},
		&IPWhoisSource{BaseURL: IPWhoisBaseURL, Client: client},
	}
}

func fetchJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	body, err := retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", "application/json")

			resp, err := client.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
			}

			return io.ReadAll(io.LimitReader(resp.Body, 1<<20))
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, out)
}

// IPAPICoSource adapts ipapi.co: {"latitude":..,"longitude":..,"country_code":".."}.
type IPAPICoSource struct {
	BaseURL string
	Client  *http.Client
}

func (s *IPAPICoSource) Name() string { return "ipapi.co" }

func (s *IPAPICoSource) Lookup(ctx context.Context, ip string) (Location, error) {
	url := s.BaseURL + "/json/"
	if ip != "" {
		url = fmt.Sprintf("%s/%s/json/", s.BaseURL, ip)
	}

	var payload struct {
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		CountryCode string   `json:"country_code"`
		Error       bool     `json:"error"`
	}
	if err := fetchJSON(ctx, s.Client, url, &payload); err != nil {
		return Location{}, err
	}
	if payload.Error || payload.Latitude == nil || payload.Longitude == nil || payload.CountryCode == "" {
		return Location{}, fmt.Errorf("incomplete response from %s", s.Name())
	}

	return Location{
		Lat:         *payload.Latitude,
		Lng:         *payload.Longitude,
		CountryCode: payload.CountryCode,
	}, nil
}

// IPAPIComSource adapts ip-api.com: {"status":"success","lat":..,"lon":..,"countryCode":".."}.
type IPAPIComSource struct {
	BaseURL string
	Client  *http.Client
}

func (s *IPAPIComSource) Name() string { return "ip-api.com" }

func (s *IPAPIComSource) Lookup(ctx context.Context, ip string) (Location, error) {
	url := s.BaseURL + "/json/" + ip

	var payload struct {
		Status      string   `json:"status"`
		Lat         *float64 `json:"lat"`
		Lon         *float64 `json:"lon"`
		CountryCode string   `json:"countryCode"`
	}
	if err := fetchJSON(ctx, s.Client, url, &payload); err != nil {
		return Location{}, err
	}
	if payload.Status != "success" || payload.Lat == nil || payload.Lon == nil || payload.CountryCode == "" {
		return Location{}, fmt.Errorf("incomplete response from %s", s.Name())
	}

	return Location{
		Lat:         *payload.Lat,
		Lng:         *payload.Lon,
		CountryCode: payload.CountryCode,
	}, nil
}

// IPWhoisSource adapts ipwho.is: {"success":true,"latitude":..,"longitude":..,"country_code":".."}.
type IPWhoisSource struct {
	BaseURL string
	Client  *http.Client
}

func (s *IPWhoisSource) Name() string { return "ipwho.is" }

func (s *IPWhoisSource) Lookup(ctx context.Context, ip string) (Location, error) {
	url := s.BaseURL + "/" + ip

	var payload struct {
		Success     bool     `json:"success"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
		CountryCode string   `json:"country_code"`
	}
	if err := fetchJSON(ctx, s.Client, url, &payload); err != nil {
		return Location{}, err
	}
	if !payload.Success || payload.Latitude == nil || payload.Longitude == nil || payload.CountryCode == "" {
		return Location{}, fmt.Errorf("incomplete response from %s", s.Name())
	}

	return Location{
		Lat:         *payload.Latitude,
		Lng:         *payload.Longitude,
		CountryCode: payload.CountryCode,
	}, nil
}
