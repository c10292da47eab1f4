package sdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

// Client is the nearby API SDK entry point.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a Client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	cfg := &clientConfig{timeout: defaultTimeout}
	for _, o := range opts {
		o.apply(cfg)
	}

	hc := cfg.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  cfg.apiKey,
		http:    hc,
	}
}

// Nearby fetches the curated product page around a point.
func (c *Client) Nearby(ctx context.Context, req NearbyRequest) ([]Product, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(req.Lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(req.Lng, 'f', -1, 64))
	if req.RadiusM > 0 {
		params.Set("radius_m", strconv.FormatFloat(req.RadiusM, 'f', -1, 64))
	}
	if req.Count > 0 {
		params.Set("count", strconv.Itoa(req.Count))
	}
	if req.MaxPerGroup > 0 {
		params.Set("max_per_group", strconv.Itoa(req.MaxPerGroup))
	}

	var resp nearbyResponse
	if err := c.get(ctx, "/api/v1/products/nearby?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return resp.Items, nil
}

// Health checks the health of the service. A degraded service returns a
// populated status together with an *APIError carrying the HTTP 503.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	var status HealthStatus
	err := c.get(ctx, "/health", &status)
	return status, err
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	}

	apiErr := &APIError{StatusCode: resp.StatusCode}
	// the health endpoint returns its normal body on 503; try the typed
	// payload first, fall back to the error shape
	dec := json.NewDecoder(resp.Body)
	if resp.StatusCode == http.StatusServiceUnavailable && strings.HasSuffix(path, "/health") {
		_ = dec.Decode(out)
		apiErr.Code = "service_unavailable"
		apiErr.Message = "service degraded"
		return apiErr
	}
	if err := dec.Decode(apiErr); err != nil {
		apiErr.Code = "unknown"
		apiErr.Message = resp.Status
	}
	return apiErr
}
