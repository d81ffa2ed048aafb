package integrations

import (
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a resource doesn't exist upstream (404).
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors,
	// and any status other than 200 or 404).
	ErrNetwork = errors.New("network error")

	// ErrParse is returned when a response body is not the expected JSON shape.
	ErrParse = errors.New("unexpected response")
)

// NewHTTPClient creates an HTTP client with a standard timeout for API requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// IDFromURL extracts the trailing numeric id from a REST resource URL such
// as "https://pokeapi.co/api/v2/pokemon-species/1/". Returns ok=false when
// the last path segment is not a positive integer.
func IDFromURL(raw string) (int, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return 0, false
	}
	id, err := strconv.Atoi(path.Base(strings.TrimSuffix(u.Path, "/")))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.PathEscape].
func URLEncode(s string) string { return url.PathEscape(s) }
