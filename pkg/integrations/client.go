package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/matzehuels/pokedex/pkg/cache"
	"github.com/matzehuels/pokedex/pkg/observability"
)

// Client provides shared HTTP functionality for API clients.
// It handles caching, optional retries, status mapping and common headers.
//
// A Client holds no mutable state after construction and is safe for
// concurrent use, which the page fetcher relies on.
type Client struct {
	http      *http.Client
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
	headers   map[string]string
	attempts  int
}

// NewClient creates a Client with the given cache backend and default headers.
//
// namespace separates this client's entries from other users of the same
// backend; ttl is applied to every entry it writes. Headers are applied to
// all requests. Pass nil for headers if none are needed.
//
// The client makes exactly one attempt per request; see [Client.SetRetries].
func NewClient(backend cache.Cache, namespace string, ttl time.Duration, headers map[string]string) *Client {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	return &Client{
		http:      NewHTTPClient(),
		cache:     backend,
		keyer:     cache.NewDefaultKeyer(),
		namespace: namespace,
		ttl:       ttl,
		headers:   headers,
		attempts:  1,
	}
}

// SetRetries sets how many extra attempts a retryable failure (transport
// error or 5xx) gets. Zero disables retries.
func (c *Client) SetRetries(n int) {
	c.attempts = max(n, 0) + 1
}

// SetTimeout sets the per-request timeout. Zero means no timeout.
func (c *Client) SetTimeout(d time.Duration) {
	c.http.Timeout = d
}

// SetKeyer replaces the cache key layout.
func (c *Client) SetKeyer(k cache.Keyer) {
	if k != nil {
		c.keyer = k
	}
}

// Cached retrieves a value from cache or executes fetch and caches the result.
// If refresh is true, the cache is bypassed and fetch is always called.
// The fetch function should populate v; only successful results are stored.
func (c *Client) Cached(ctx context.Context, key string, refresh bool, v any, fetch func() error) error {
	fullKey := c.keyer.HTTPKey(c.namespace, key)

	if !refresh {
		if data, ok, _ := c.cache.Get(ctx, fullKey); ok {
			if err := json.Unmarshal(data, v); err == nil {
				observability.Cache().OnCacheHit(ctx, fullKey)
				return nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, fullKey)
	}

	if err := cache.Retry(ctx, c.attempts, time.Second, fetch); err != nil {
		return err
	}

	if data, err := json.Marshal(v); err == nil {
		if c.cache.Set(ctx, fullKey, data, c.ttl) == nil {
			observability.Cache().OnCacheSet(ctx, fullKey, len(data))
		}
	}
	return nil
}

// Get performs an HTTP GET request and JSON-decodes the response into v.
// A body that cannot be decoded yields [ErrParse].
func (c *Client) Get(ctx context.Context, rawURL string, v any) error {
	return c.GetWithHeaders(ctx, rawURL, nil, v)
}

// GetWithHeaders performs an HTTP GET with additional headers merged with defaults.
// Request-specific headers override client defaults for the same key.
func (c *Client) GetWithHeaders(ctx context.Context, rawURL string, headers map[string]string, v any) error {
	body, err := c.doRequest(ctx, rawURL, headers)
	if err != nil {
		return err
	}
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrParse, rawURL, err)
	}
	return nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string, headers map[string]string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	host, path := splitURL(rawURL)
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, cache.Retryable(fmt.Errorf("%w: %v", ErrNetwork, err))
	}
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %w", rawURL, err)
	}
	return resp.Body, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", ErrNetwork, code)
	}
}

func splitURL(raw string) (host, path string) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", raw
	}
	return u.Host, u.Path
}
