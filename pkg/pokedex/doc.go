// Package pokedex implements the data side of the Pokémon browser: page
// fetching, evolution chain resolution and walking, and type filtering.
//
// # Fetching
//
// [Service] wraps an [API] (normally *pokeapi.Client):
//
//   - [Service.FetchPage] fetches a 10-item list page and its details
//     concurrently, all-or-nothing.
//   - [Service.ResolveEvolutionChain] fetches a species and its chain.
//   - [Service.Walk] (or [Walker.Walk]) follows the first child at each
//     stage and returns one [EvolutionRecord] per stage.
//
// [Service.FetchPokemons] and [Service.FetchEvolutions] do the same and also
// publish their outcome on the topics [PokemonsLoaded], [EvolutionsFetched]
// and [EvolutionsError] of the service's [events.Bus].
//
// Every fetch failure is a [*FetchError] whose Code method maps it onto the
// codes in package errors.
//
// # Filtering
//
// [DistinctTypes] and [FilterByType] are pure functions over summaries.
package pokedex
