// Package pkg provides the libraries behind the pokedex command.
//
// # Overview
//
// Pokedex browses the public PokeAPI: pages of Pokémon with a type filter,
// a detail view per Pokémon, and its evolution chain. The pkg directory is
// organized into these areas:
//
//  1. [pokedex] - Domain logic (page fetch, type filter, chain walk)
//  2. [browse] - Browser state and the pure reducer that updates it
//  3. [integrations] - HTTP client and the PokeAPI client
//  4. [cache] - Response caching (file, Redis, MongoDB)
//  5. [events] - Typed publish/subscribe notifications
//  6. [render] - Evolution trees as DOT and SVG
//
// # Architecture
//
// The typical data flow:
//
//	PokeAPI (HTTP + JSON)
//	         ↓
//	    [integrations/pokeapi] (typed requests, cached by [cache])
//	         ↓
//	    [pokedex] Service (pages, summaries, evolution walk)
//	         ↓
//	    [events] Bus (pokemons-loaded, pokemon-evolutions-*)
//	         ↓
//	    [browse] Reduce → terminal views, or CLI tables / JSON / DOT / SVG
//
// # Quick Start
//
// Fetch a page and walk an evolution chain:
//
//	client := pokeapi.NewClient(cache.NewNullCache(), time.Hour)
//	svc := pokedex.NewService(client, nil, nil)
//
//	page, err := svc.FetchPage(ctx, 1)
//	if err != nil {
//	    return err
//	}
//	water := pokedex.FilterByType(page, "water")
//
//	evos, err := svc.FetchEvolutions(ctx, "bulbasaur")
//	// [{bulbasaur ...1.png} {ivysaur ...2.png} {venusaur ...3.png}]
//
// # Errors
//
// Fetch failures are [pokedex.FetchError] values whose Code classifies
// them as NOT_FOUND, NETWORK_ERROR, PARSE_ERROR or TIMEOUT. Validation and
// browser misuse return [errors.Error] with INVALID_INPUT or STATE_ERROR.
//
// # Testing
//
// [pokeapitest] serves a small fixture PokeAPI over httptest with per-path
// failure, delay and garbling, so every package above can be tested
// without network access.
//
// [pokedex]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/pokedex
// [browse]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/browse
// [integrations]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/integrations
// [integrations/pokeapi]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/integrations/pokeapi
// [cache]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/cache
// [events]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/events
// [render]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/render
// [pokeapitest]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/pokeapitest
// [pokedex.FetchError]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/pokedex#FetchError
// [errors.Error]: https://pkg.go.dev/github.com/matzehuels/pokedex/pkg/errors#Error
package pkg
