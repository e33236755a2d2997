// Package crimedata retrieves public open-data layers (crime incident
// points, census tract polygons), joins points to polygons, and assembles
// the per-tract table the regression packages consume. Responses are decoded
// with a strict GeoJSON parser; anything that does not parse is an error,
// never a best-effort value.
package crimedata

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/paulmach/orb/geojson"

	"github.com/stepgo-ml/stepgo/pkg/errors"
	"github.com/stepgo-ml/stepgo/pkg/log"
)

// Client fetches GeoJSON feature collections over HTTP with optional local
// caching.
type Client struct {
	httpClient *http.Client
	cache      *Cache
	logger     log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client (30s timeout).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache enables the local response cache.
func WithCache(cache *Cache) ClientOption {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger replaces the default component logger.
func WithLogger(logger log.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.GetLoggerWithName("crimedata"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchFeatureCollection retrieves and decodes a GeoJSON FeatureCollection.
// Cache hits skip the network entirely; cache write failures are logged and
// otherwise ignored since the fetched data is still usable.
func (c *Client) FetchFeatureCollection(ctx context.Context, url string) (*geojson.FeatureCollection, error) {
	if c.cache != nil {
		if body, ok := c.cache.Get(url); ok {
			c.logger.Debug("cache hit", "url", url)
			return decodeFeatureCollection(url, body)
		}
	}

	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "crimedata: building request for %q", url)
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "crimedata: fetching %q", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Newf("crimedata: fetching %q: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "crimedata: reading response from %q", url)
	}

	fc, err := decodeFeatureCollection(url, body)
	if err != nil {
		return nil, err
	}

	c.logger.Info("layer fetched",
		"url", url,
		"features", len(fc.Features),
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	if c.cache != nil {
		if err := c.cache.Put(url, body); err != nil {
			c.logger.Warn("cache write failed", log.ErrAttrKey, err)
		}
	}
	return fc, nil
}

func decodeFeatureCollection(url string, body []byte) (*geojson.FeatureCollection, error) {
	fc, err := geojson.UnmarshalFeatureCollection(body)
	if err != nil {
		return nil, errors.Wrapf(err, "crimedata: decoding GeoJSON from %q", url)
	}
	return fc, nil
}
