package pokedex

import "github.com/matzehuels/pokedex/pkg/events"

// PokemonsLoadedEvent is published after a page has been fetched.
type PokemonsLoadedEvent struct {
	Page     int
	Pokemons []Summary
}

// EvolutionsFetchedEvent is published after a chain walk succeeds.
type EvolutionsFetchedEvent struct {
	Name       string
	Evolutions []EvolutionRecord
}

// EvolutionsErrorEvent is published when resolving or walking a chain fails.
type EvolutionsErrorEvent struct {
	Name string
	Err  error
}

var (
	PokemonsLoaded    = events.NewTopic[PokemonsLoadedEvent]("pokemons-loaded")
	EvolutionsFetched = events.NewTopic[EvolutionsFetchedEvent]("pokemon-evolutions-fetched")
	EvolutionsError   = events.NewTopic[EvolutionsErrorEvent]("pokemon-evolutions-error")
)
