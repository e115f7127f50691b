package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jmfield/postings-atlas/models"
)

const DefaultNominatimURL = "https://nominatim.openstreetmap.org"

// Nominatim is the real geocoding collaborator. Requests run sequentially
// and honor a polite minimum interval between calls.
type Nominatim struct {
	baseURL     string
	httpClient  *http.Client
	userAgent   string
	minInterval time.Duration
	lastRequest time.Time
}

// NominatimOption customizes a Nominatim client.
type NominatimOption func(*Nominatim)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) NominatimOption {
	return func(n *Nominatim) {
		if client != nil {
			n.httpClient = client
		}
	}
}

// NewNominatim builds a client from the geocoder configuration.
func NewNominatim(cfg models.GeocoderConfig, opts ...NominatimOption) *Nominatim {
	n := &Nominatim{
		baseURL:     cfg.BaseURL,
		httpClient:  http.DefaultClient,
		userAgent:   cfg.UserAgent,
		minInterval: time.Duration(cfg.MinInterval),
	}
	if strings.TrimSpace(n.baseURL) == "" {
		n.baseURL = DefaultNominatimURL
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Geocode looks up one free-text address. A response with no results is a
// clean no-match (Found=false, nil error); transport and HTTP failures are
// errors.
func (n *Nominatim) Geocode(ctx context.Context, query string) (Result, error) {
	if strings.TrimSpace(query) == "" {
		return Result{Found: false}, nil
	}

	if err := n.waitRateLimit(ctx); err != nil {
		return Result{}, err
	}

	endpoint := strings.TrimRight(n.baseURL, "/") + "/search"
	params := url.Values{}
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Result{}, err
	}
	req.URL.RawQuery = params.Encode()
	req.Header.Set("Accept", "application/json")
	if strings.TrimSpace(n.userAgent) != "" {
		req.Header.Set("User-Agent", n.userAgent)
	}

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("geocode: status %d", resp.StatusCode)
	}

	var results []struct {
		Lat         string `json:"lat"`
		Lon         string `json:"lon"`
		DisplayName string `json:"display_name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return Result{}, err
	}
	if len(results) == 0 {
		return Result{Found: false}, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Result{}, err
	}
	lng, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Latitude:  lat,
		Longitude: lng,
		Address:   results[0].DisplayName,
		Found:     true,
	}, nil
}

// waitRateLimit blocks until the minimum interval since the previous
// request has elapsed. The pipeline is single-threaded, so plain fields
// suffice.
func (n *Nominatim) waitRateLimit(ctx context.Context) error {
	if n.minInterval <= 0 {
		n.lastRequest = time.Now()
		return nil
	}
	next := n.lastRequest.Add(n.minInterval)
	delay := time.Until(next)
	if delay <= 0 {
		n.lastRequest = time.Now()
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		n.lastRequest = time.Now()
		return nil
	}
}
