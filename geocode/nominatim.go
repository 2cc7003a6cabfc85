// Package geocode turns coordinates into display addresses.
package geocode

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
)

// Cache stores resolved addresses between requests.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, address string)
}

// Client reverse-geocodes through a Nominatim-compatible endpoint. Lookups
// never fail: when the service is unavailable the coordinates themselves
// are returned as the address.
type Client struct {
	url    string
	http   *http.Client
	cache  Cache
	logger *slog.Logger
}

func NewClient(endpoint string, timeout time.Duration, cache Cache, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{url: endpoint, http: &http.Client{Timeout: timeout}, cache: cache, logger: logger}
}

// Fallback formats coordinates to five decimals.
func Fallback(lat, lng float64) string {
	return fmt.Sprintf("%.5f, %.5f", lat, lng)
}

// Reverse returns a human-readable address for the coordinates.
func (c *Client) Reverse(ctx context.Context, lat, lng float64) string {
	key := Fallback(lat, lng)
	if c.cache != nil {
		if addr, ok := c.cache.Get(ctx, key); ok {
			return addr
		}
	}

	addr, err := c.lookup(ctx, lat, lng)
	if err != nil {
		c.logger.Warn("Reverse geocoding failed", slog.String("coords", key), slog.String("error", err.Error()))
		return key
	}
	if c.cache != nil {
		c.cache.Set(ctx, key, addr)
	}
	return addr
}

func (c *Client) lookup(ctx context.Context, lat, lng float64) (string, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url+"?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en")
	req.Header.Set("User-Agent", "spotsolve-be")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder returned %d", resp.StatusCode)
	}

	var body struct {
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geocoder response: %w", err)
	}
	if body.DisplayName == "" {
		return "", errors.New("geocoder returned no address")
	}
	return body.DisplayName, nil
}
