// Package integrations provides HTTP clients for upstream REST APIs.
//
// # Overview
//
// Each upstream has its own subpackage built on the shared [Client]:
//
//   - [pokeapi]: PokeAPI v2 (Pokémon, species, evolution chains)
//
// # Client Pattern
//
//	c := pokeapi.NewClient(backend, 24*time.Hour)
//	p, err := c.FetchPokemon(ctx, "bulbasaur", false) // false = use cache
//
// Clients handle:
//   - HTTP requests with status mapping ([ErrNotFound], [ErrNetwork], [ErrParse])
//   - Response caching through any [cache.Cache] backend
//   - Optional retry with backoff for transient failures (off by default)
//
// [pokeapi]: github.com/matzehuels/pokedex/pkg/integrations/pokeapi
// [cache.Cache]: github.com/matzehuels/pokedex/pkg/cache.Cache
package integrations
