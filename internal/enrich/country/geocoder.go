package country

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Geocoder resolves a free-form location string to a country name.
// Implementations must be safe for concurrent use.
type Geocoder interface {
	CountryFor(ctx context.Context, location string) (string, error)
}

// NominatimConfig tunes the external geocoding client.
type NominatimConfig struct {
	BaseURL string
	// MinDelay between calls; Nominatim's usage policy asks for at most
	// one request per second, so the default stays above that.
	MinDelay   time.Duration
	MaxRetries int
	Timeout    time.Duration
	UserAgent  string
}

// NominatimGeocoder queries a Nominatim-compatible endpoint for
// structured address data and extracts the country component. Calls are
// rate limited and retried a bounded number of times; callers treat any
// returned error as "Unknown", never as fatal.
type NominatimGeocoder struct {
	baseURL    string
	client     *http.Client
	limiter    *rate.Limiter
	maxRetries int
	userAgent  string
}

// NewNominatimGeocoder creates a geocoder client with rate limiting.
func NewNominatimGeocoder(cfg NominatimConfig) *NominatimGeocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = 2 * time.Second
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "job-enricher/1.0"
	}
	return &NominatimGeocoder{
		baseURL:    cfg.BaseURL,
		client:     &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Every(cfg.MinDelay), 1),
		maxRetries: cfg.MaxRetries,
		userAgent:  cfg.UserAgent,
	}
}

type nominatimResult struct {
	Address struct {
		Country string `json:"country"`
	} `json:"address"`
}

// CountryFor geocodes the location and returns the country field of the
// first result. An empty country with a nil error means the service had
// no answer.
func (g *NominatimGeocoder) CountryFor(ctx context.Context, location string) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= g.maxRetries; attempt++ {
		if err := g.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("geocoder rate limit: %w", err)
		}

		country, err := g.lookup(ctx, location)
		if err == nil {
			return country, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		lastErr = err
	}
	return "", fmt.Errorf("geocode %q: %w", location, lastErr)
}

func (g *NominatimGeocoder) lookup(ctx context.Context, location string) (string, error) {
	q := url.Values{}
	q.Set("q", location)
	q.Set("format", "json")
	q.Set("addressdetails", "1")
	q.Set("accept-language", "en")
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("geocoder status: %s", resp.Status)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return "", fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(results) == 0 {
		return "", nil
	}
	return results[0].Address.Country, nil
}
