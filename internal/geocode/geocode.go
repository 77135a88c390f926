// Package geocode resolves coordinates to a human-readable address through an
// OpenCage-style reverse geocoding provider.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://api.opencagedata.com"

// ErrNoAddress means the provider answered but found nothing at the coordinates.
var ErrNoAddress = errors.New("no address found for coordinates")

// Reverser is the surface the locate handler depends on.
type Reverser interface {
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

// Client queries the reverse geocoding provider.
type Client struct {
	apiKey string

	// BaseURL is swappable so tests can point at an httptest server.
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient builds a geocoding client with the injected API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type reverseResponse struct {
	Results []struct {
		Formatted string `json:"formatted"`
	} `json:"results"`
}

// Reverse returns the formatted address for a lat/lng pair.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	// OpenCage takes the pair as "lat,lng"; url.Values handles the escaping.
	q := url.Values{
		"q":   {fmt.Sprintf("%f,%f", lat, lng)},
		"key": {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.BaseURL+"/geocode/v1/json?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocode provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocode provider: unexpected status %s", resp.Status)
	}

	var body reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("geocode provider: decode response: %w", err)
	}
	if len(body.Results) == 0 || body.Results[0].Formatted == "" {
		return "", ErrNoAddress
	}
	return body.Results[0].Formatted, nil
}
