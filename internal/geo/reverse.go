package geo

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// ReverseGeocoder derives an ISO alpha-2 country code from coordinates.
type ReverseGeocoder interface {
	CountryCode(ctx context.Context, lat, lng float64) (string, error)
}

// BigDataCloudReverse queries the bigdatacloud.net client reverse-geocoding
// endpoint, which is callable without an API key.
type BigDataCloudReverse struct {
	BaseURL string
	Client  *http.Client
}

// NewReverseGeocoder creates the production reverse geocoder.
func NewReverseGeocoder(baseURL string, timeout time.Duration) *BigDataCloudReverse {
	return &BigDataCloudReverse{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

func (r *BigDataCloudReverse) CountryCode(ctx context.Context, lat, lng float64) (string, error) {
	url := fmt.Sprintf("%s?latitude=%f&longitude=%f&localityLanguage=en", r.BaseURL, lat, lng)

	var payload struct {
		CountryCode string `json:"countryCode"`
	}
	if err := fetchJSON(ctx, r.Client, url, &payload); err != nil {
		return "", err
	}
	if payload.CountryCode == "" {
		return "", fmt.Errorf("reverse geocoder returned no country")
	}

	return payload.CountryCode, nil
}
