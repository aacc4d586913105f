// Package ipaddr resolves the caller's public IP address through an external
// lookup service. Used as a fallback when the inbound request carries no
// usable client address.
package ipaddr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"go.uber.org/zap"
)

// Source yields a public IP address, best-effort.
type Source interface {
	PublicIP(ctx context.Context) (string, error)
}

// Client queries an ipify-compatible endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates a public-IP lookup client.
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// PublicIP fetches the public IP address. A single transient retry is
// attempted before giving up.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	url := c.baseURL + "?format=json"

	body, err := retry.DoWithData(
		func() ([]byte, error) {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
			if err != nil {
				return nil, err
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return nil, err
			}
			defer func() { _ = resp.Body.Close() }()

			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
			}

			return io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(200*time.Millisecond),
		retry.MaxJitter(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return "", fmt.Errorf("public IP lookup failed: %w", err)
	}

	var payload struct {
		IP string `json:"ip"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode IP lookup response: %w", err)
	}
	if payload.IP == "" {
		return "", fmt.Errorf("IP lookup returned empty address")
	}

	c.log.Debug("resolved public IP", zap.String("ip", payload.IP))
	return payload.IP, nil
}

// Static is a Source wrapping an already-known address, typically extracted
// from request headers.
type Static string

func (s Static) PublicIP(context.Context) (string, error) {
	if s == "" {
		return "", fmt.Errorf("no client address available")
	}
	return string(s), nil
}
