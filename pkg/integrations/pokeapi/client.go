package pokeapi

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/pokedex/pkg/cache"
	"github.com/matzehuels/pokedex/pkg/integrations"
)

// DefaultBaseURL is the public PokeAPI v2 endpoint.
const DefaultBaseURL = "https://pokeapi.co/api/v2"

// Client provides access to the PokeAPI REST API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a PokeAPI client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for HTTP response caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long responses are cached; PokeAPI data is effectively static, so days are fine
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	headers := map[string]string{
		"User-Agent": "pokedex/1.0 (https://github.com/matzehuels/pokedex)",
		"Accept":     "application/json",
	}
	return &Client{
		Client:  integrations.NewClient(backend, "pokeapi", cacheTTL, headers),
		baseURL: DefaultBaseURL,
	}
}

// WithBaseURL points the client at another PokeAPI instance (a mirror or a
// test server) and returns the client for chaining.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = strings.TrimSuffix(u, "/")
	return c
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListPokemon fetches one page of name/URL pairs from GET /pokemon.
func (c *Client) ListPokemon(ctx context.Context, limit, offset int, refresh bool) (*ListResponse, error) {
	key := fmt.Sprintf("list:%d:%d", limit, offset)
	u := fmt.Sprintf("%s/pokemon?limit=%d&offset=%d", c.baseURL, limit, offset)

	var resp ListResponse
	err := c.Cached(ctx, key, refresh, &resp, func() error {
		return c.Get(ctx, u, &resp)
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// FetchPokemon fetches GET /pokemon/{nameOrID}.
//
// Returns [integrations.ErrNotFound] for unknown names, [integrations.ErrNetwork]
// for transport failures and [integrations.ErrParse] for unexpected bodies.
func (c *Client) FetchPokemon(ctx context.Context, nameOrID string, refresh bool) (*Pokemon, error) {
	return c.FetchPokemonURL(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, integrations.URLEncode(nameOrID)), refresh)
}

// FetchPokemonURL fetches a Pokémon by the URL returned in a list page.
func (c *Client) FetchPokemonURL(ctx context.Context, u string, refresh bool) (*Pokemon, error) {
	var p Pokemon
	err := c.Cached(ctx, c.urlKey(u), refresh, &p, func() error {
		if err := c.Get(ctx, u, &p); err != nil {
			return err
		}
		if p.Name == "" {
			return fmt.Errorf("%w: %s: missing name", integrations.ErrParse, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FetchSpecies fetches GET /pokemon-species/{name}.
func (c *Client) FetchSpecies(ctx context.Context, name string, refresh bool) (*Species, error) {
	return c.FetchSpeciesURL(ctx, fmt.Sprintf("%s/pokemon-species/%s", c.baseURL, integrations.URLEncode(name)), refresh)
}

// FetchSpeciesURL fetches a species by the URL found in an evolution chain.
func (c *Client) FetchSpeciesURL(ctx context.Context, u string, refresh bool) (*Species, error) {
	var s Species
	err := c.Cached(ctx, c.urlKey(u), refresh, &s, func() error {
		if err := c.Get(ctx, u, &s); err != nil {
			return err
		}
		if s.ID <= 0 {
			return fmt.Errorf("%w: %s: missing species id", integrations.ErrParse, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// FetchEvolutionChainURL fetches the evolution chain a species points to.
func (c *Client) FetchEvolutionChainURL(ctx context.Context, u string, refresh bool) (*EvolutionChain, error) {
	var ch EvolutionChain
	err := c.Cached(ctx, c.urlKey(u), refresh, &ch, func() error {
		if err := c.Get(ctx, u, &ch); err != nil {
			return err
		}
		if ch.Chain.Species.URL == "" {
			return fmt.Errorf("%w: %s: chain has no root species", integrations.ErrParse, u)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

// urlKey keys URL-addressed resources by their path below the base URL so a
// mirror with the same layout reuses entries.
func (c *Client) urlKey(u string) string {
	return "url:" + strings.TrimPrefix(strings.TrimSuffix(u, "/"), c.baseURL)
}

// IsNotFound reports whether err is an upstream 404.
func IsNotFound(err error) bool {
	return errors.Is(err, integrations.ErrNotFound)
}
