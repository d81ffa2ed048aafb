package pokedex

import (
	"slices"

	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
)

const (
	// PageSize is the number of Pokémon per list page.
	PageSize = 10

	// TotalPages is the fixed number of pages the browser offers. It is not
	// derived from the API's real total.
	TotalPages = 20
)

// Paging maps a page number to the offset sent with the list request.
type Paging int

const (
	// PagingByPage sends the page number itself as the offset, so page p
	// lists entries p+1 through p+PageSize and consecutive pages overlap.
	PagingByPage Paging = iota

	// PagingByStride sends (page-1)*PageSize, giving disjoint pages.
	PagingByStride
)

// Offset returns the list offset for page.
func (p Paging) Offset(page int) int {
	if p == PagingByStride {
		return (page - 1) * PageSize
	}
	return page
}

func (p Paging) String() string {
	if p == PagingByStride {
		return "stride"
	}
	return "page"
}

// ParsePaging parses "page" or "stride". The empty string is "page".
func ParsePaging(s string) (Paging, bool) {
	switch s {
	case "", "page":
		return PagingByPage, true
	case "stride":
		return PagingByStride, true
	}
	return PagingByPage, false
}

// Summary is the per-Pokémon display record. Identity is Name.
type Summary struct {
	ID        int      `json:"id"`
	Name      string   `json:"name"`
	SpriteURL string   `json:"sprite_url,omitempty"`
	Types     []string `json:"types"`
	Abilities []string `json:"abilities"`
	Stats     []Stat   `json:"stats"`
}

// Stat is a named base stat.
type Stat struct {
	Name string `json:"name"`
	Base int    `json:"base"`
}

// HasType reports whether s has type t.
func (s Summary) HasType(t string) bool {
	return slices.Contains(s.Types, t)
}

// SummaryFromAPI flattens a PokeAPI record, keeping the API's slot order.
func SummaryFromAPI(p *pokeapi.Pokemon) Summary {
	s := Summary{
		ID:        p.ID,
		Name:      p.Name,
		SpriteURL: p.Sprites.FrontDefault,
		Types:     make([]string, 0, len(p.Types)),
		Abilities: make([]string, 0, len(p.Abilities)),
		Stats:     make([]Stat, 0, len(p.Stats)),
	}
	for _, t := range p.Types {
		s.Types = append(s.Types, t.Type.Name)
	}
	for _, a := range p.Abilities {
		s.Abilities = append(s.Abilities, a.Ability.Name)
	}
	for _, st := range p.Stats {
		s.Stats = append(s.Stats, Stat{Name: st.Stat.Name, Base: st.BaseStat})
	}
	return s
}

// ChainNode is one stage of an evolution chain. EvolvesTo is empty at a
// terminal stage.
type ChainNode struct {
	SpeciesName string       `json:"species_name"`
	SpeciesURL  string       `json:"species_url"`
	EvolvesTo   []*ChainNode `json:"evolves_to"`
}

// ChainFromAPI converts an API chain link into a ChainNode tree,
// preserving every branch in order.
func ChainFromAPI(link pokeapi.ChainLink) *ChainNode {
	n := &ChainNode{
		SpeciesName: link.Species.Name,
		SpeciesURL:  link.Species.URL,
		EvolvesTo:   make([]*ChainNode, 0, len(link.EvolvesTo)),
	}
	for _, child := range link.EvolvesTo {
		n.EvolvesTo = append(n.EvolvesTo, ChainFromAPI(child))
	}
	return n
}

// FirstPath returns the species names on the first-child path from n.
func (n *ChainNode) FirstPath() []string {
	var names []string
	for cur := n; cur != nil; cur = cur.firstChild() {
		names = append(names, cur.SpeciesName)
	}
	return names
}

// Branches reports whether any stage in the tree has more than one child.
func (n *ChainNode) Branches() bool {
	if n == nil {
		return false
	}
	if len(n.EvolvesTo) > 1 {
		return true
	}
	for _, c := range n.EvolvesTo {
		if c.Branches() {
			return true
		}
	}
	return false
}

func (n *ChainNode) firstChild() *ChainNode {
	if len(n.EvolvesTo) == 0 {
		return nil
	}
	return n.EvolvesTo[0]
}

// EvolutionRecord is one visited stage of a walk. Image is empty when the
// API reports no sprite.
type EvolutionRecord struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}
