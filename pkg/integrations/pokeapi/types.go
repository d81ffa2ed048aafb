package pokeapi

// NamedResource is PokeAPI's reference to another resource.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ListResponse is one page of GET /pokemon.
type ListResponse struct {
	Count    int             `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// Pokemon is the subset of GET /pokemon/{id} that pokedex displays.
type Pokemon struct {
	ID        int           `json:"id"`
	Name      string        `json:"name"`
	Height    int           `json:"height"`
	Weight    int           `json:"weight"`
	Sprites   Sprites       `json:"sprites"`
	Types     []TypeSlot    `json:"types"`
	Abilities []AbilitySlot `json:"abilities"`
	Stats     []StatValue   `json:"stats"`
	Species   NamedResource `json:"species"`
}

// Sprites holds sprite URLs. FrontDefault may be empty for some forms.
type Sprites struct {
	FrontDefault string `json:"front_default"`
}

// TypeSlot is one entry of Pokemon.Types, ordered by Slot.
type TypeSlot struct {
	Slot int           `json:"slot"`
	Type NamedResource `json:"type"`
}

// AbilitySlot is one entry of Pokemon.Abilities.
type AbilitySlot struct {
	Ability  NamedResource `json:"ability"`
	IsHidden bool          `json:"is_hidden"`
	Slot     int           `json:"slot"`
}

// StatValue is one base stat.
type StatValue struct {
	BaseStat int           `json:"base_stat"`
	Effort   int           `json:"effort"`
	Stat     NamedResource `json:"stat"`
}

// Species is the subset of GET /pokemon-species/{name} used to locate the
// evolution chain and to map a species back to its default Pokémon id.
type Species struct {
	ID             int         `json:"id"`
	Name           string      `json:"name"`
	EvolutionChain ResourceURL `json:"evolution_chain"`
}

// ResourceURL is an unnamed resource reference.
type ResourceURL struct {
	URL string `json:"url"`
}

// EvolutionChain is GET /evolution-chain/{id}.
type EvolutionChain struct {
	ID    int       `json:"id"`
	Chain ChainLink `json:"chain"`
}

// ChainLink is one stage of an evolution chain. EvolvesTo is empty at a
// terminal stage and holds more than one link for branching species.
type ChainLink struct {
	IsBaby    bool          `json:"is_baby"`
	Species   NamedResource `json:"species"`
	EvolvesTo []ChainLink   `json:"evolves_to"`
}
