package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vetfinder/vetfinder-backend/pkg/logging"
)

const (
	defaultGeocodeTimeout = 10 * time.Second
	defaultUserAgent      = "VetFinder/1.0"
	maxGeocodeBody        = 1 << 20
)

// ErrAddressNotFound is returned when the geocoder has no result for the
// query. Callers leave latitude/longitude unset in that case.
var ErrAddressNotFound = errors.New("geo: address not found")

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves free-text addresses via a Nominatim-compatible endpoint.
type Geocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
	logger    *logging.Logger
}

// GeocoderConfig holds geocoder settings.
type GeocoderConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

// NewGeocoder creates a geocoder client. Zero-value config fields fall back
// to the public Nominatim endpoint defaults.
func NewGeocoder(cfg GeocoderConfig, logger *logging.Logger) *Geocoder {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://nominatim.openstreetmap.org"
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultGeocodeTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Geocoder{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		client:    &http.Client{Timeout: cfg.Timeout},
		logger:    logger,
	}
}

type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves an address to coordinates using the first search result.
// The context is honored so in-flight lookups are cancelled with the caller.
func (g *Geocoder) Geocode(ctx context.Context, address string) (Coordinates, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return Coordinates{}, ErrAddressNotFound
	}

	q := url.Values{}
	q.Set("format", "json")
	q.Set("q", address)
	q.Set("countrycodes", "ro")
	q.Set("limit", "1")

	reqURL := g.baseURL + "/search?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: build request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Coordinates{}, fmt.Errorf("geo: geocoder returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGeocodeBody))
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: read response: %w", err)
	}

	var results []nominatimResult
	if err := json.Unmarshal(body, &results); err != nil {
		return Coordinates{}, fmt.Errorf("geo: decode response: %w", err)
	}
	if len(results) == 0 {
		return Coordinates{}, ErrAddressNotFound
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: parse latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return Coordinates{}, fmt.Errorf("geo: parse longitude %q: %w", results[0].Lon, err)
	}

	g.logger.Debug("geocoded address", "address", address, "lat", lat, "lon", lon)
	return Coordinates{Latitude: lat, Longitude: lon}, nil
}
