package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"smartrail/monitoring"

	"github.com/patrickmn/go-cache"
)

// RailRadarClient fetches live train data from the RailRadar API when a
// train is not in the local datasets. Responses are cached so repeated
// lookups for the same train do not hammer the upstream.
type RailRadarClient struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Cache      *cache.Cache
}

func NewRailRadarClient(baseURL, apiKey string, apiCache *cache.Cache) *RailRadarClient {
	return &RailRadarClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		Cache: apiCache,
	}
}

// Fetch performs a raw GET against the API and returns the response body.
func (c *RailRadarClient) Fetch(ctx context.Context, path string) (json.RawMessage, error) {
	url := c.BaseURL + path
	log.Printf("[RailRadar] GET %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("railradar request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("railradar read failed: %w", err)
	}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, fmt.Errorf("railradar API %d: %s", res.StatusCode, string(body))
	}
	return json.RawMessage(body), nil
}

// FetchCached is Fetch behind the TTL cache. The returned source is
// "cache" or "api" and is surfaced to clients in responses.
func (c *RailRadarClient) FetchCached(ctx context.Context, cacheKey, path string) (json.RawMessage, string, error) {
	if c.Cache != nil {
		if cached, found := c.Cache.Get(cacheKey); found {
			log.Printf("[CACHE HIT] %s", cacheKey)
			monitoring.CacheHits.Inc()
			return cached.(json.RawMessage), "cache", nil
		}
		monitoring.CacheMisses.Inc()
	}

	data, err := c.Fetch(ctx, path)
	if err != nil {
		return nil, "", err
	}
	if c.Cache != nil {
		c.Cache.Set(cacheKey, data, cache.DefaultExpiration)
	}
	return data, "api", nil
}
