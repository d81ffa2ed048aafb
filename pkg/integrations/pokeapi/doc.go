// Package pokeapi provides a client for the PokeAPI v2 REST API.
//
// # Overview
//
// PokeAPI (https://pokeapi.co) serves Pokémon, species and evolution chain
// data as JSON. This package models the subset pokedex uses:
//
//   - GET /pokemon?limit=&offset=: paginated name/URL pairs
//   - GET /pokemon/{id}: types, abilities, stats and sprites
//   - GET /pokemon-species/{name}: the evolution chain reference
//   - GET /evolution-chain/{id}: the chain as a tree of [ChainLink]
//
// Evolution chains and list results reference other resources by absolute
// URL, so every fetch also has a *URL variant taking that URL directly.
//
// # Usage
//
//	client := pokeapi.NewClient(cache.NewNullCache(), 24*time.Hour)
//	sp, err := client.FetchSpecies(ctx, "bulbasaur", false)
//	chain, err := client.FetchEvolutionChainURL(ctx, sp.EvolutionChain.URL, false)
//
// # Caching
//
// Responses are cached under the "pokeapi" namespace. Pass refresh=true to
// bypass the cache for a single call.
package pokeapi
