package pokeapitest

import (
	"fmt"
	"sort"

	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
)

type fixture struct {
	id      int
	name    string
	types   []string
	ability string
	chain   int
}

var fixtures = []fixture{
	{1, "bulbasaur", []string{"grass", "poison"}, "overgrow", 1},
	{2, "ivysaur", []string{"grass", "poison"}, "overgrow", 1},
	{3, "venusaur", []string{"grass", "poison"}, "overgrow", 1},
	{4, "charmander", []string{"fire"}, "blaze", 2},
	{5, "charmeleon", []string{"fire"}, "blaze", 2},
	{6, "charizard", []string{"fire", "flying"}, "blaze", 2},
	{7, "squirtle", []string{"water"}, "torrent", 3},
	{8, "wartortle", []string{"water"}, "torrent", 3},
	{9, "blastoise", []string{"water"}, "torrent", 3},
	{10, "caterpie", []string{"bug"}, "shield-dust", 4},
	{11, "metapod", []string{"bug"}, "shed-skin", 4},
	{12, "butterfree", []string{"bug", "flying"}, "compound-eyes", 4},
	{25, "pikachu", []string{"electric"}, "static", 10},
	{26, "raichu", []string{"electric"}, "static", 10},
	{132, "ditto", []string{"normal"}, "limber", 66},
	{133, "eevee", []string{"normal"}, "run-away", 67},
	{134, "vaporeon", []string{"water"}, "water-absorb", 67},
	{135, "jolteon", []string{"electric"}, "volt-absorb", 67},
	{136, "flareon", []string{"fire"}, "flash-fire", 67},
	{172, "pichu", []string{"electric"}, "static", 10},
}

// chainShapes lists each chain as parent -> children edges rooted at the
// first name.
var chainShapes = map[int][][2]string{
	1:  {{"bulbasaur", "ivysaur"}, {"ivysaur", "venusaur"}},
	2:  {{"charmander", "charmeleon"}, {"charmeleon", "charizard"}},
	3:  {{"squirtle", "wartortle"}, {"wartortle", "blastoise"}},
	4:  {{"caterpie", "metapod"}, {"metapod", "butterfree"}},
	10: {{"pichu", "pikachu"}, {"pikachu", "raichu"}},
	66: nil,
	67: {{"eevee", "vaporeon"}, {"eevee", "jolteon"}, {"eevee", "flareon"}},
}

var chainRoots = map[int]string{
	1: "bulbasaur", 2: "charmander", 3: "squirtle", 4: "caterpie",
	10: "pichu", 66: "ditto", 67: "eevee",
}

// SpriteURL is the sprite every fixture Pokémon reports for id.
func SpriteURL(id int) string {
	return fmt.Sprintf("https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/%d.png", id)
}

// Names returns every fixture name in list order (ascending id).
func Names() []string {
	out := make([]string, len(fixtures))
	for i, f := range fixtures {
		out[i] = f.name
	}
	return out
}

func (s *Server) loadFixtures() {
	sorted := append([]fixture(nil), fixtures...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].id < sorted[j].id })

	byName := make(map[string]fixture, len(sorted))
	for _, f := range sorted {
		byName[f.name] = f
		s.order = append(s.order, f.name)
		s.pokemon[f.name] = s.buildPokemon(f)
		s.species[f.name] = pokeapi.Species{
			ID:             f.id,
			Name:           f.name,
			EvolutionChain: pokeapi.ResourceURL{URL: fmt.Sprintf("%s/evolution-chain/%d/", s.BaseURL(), f.chain)},
		}
	}

	for id, root := range chainRoots {
		children := map[string][]string{}
		for _, e := range chainShapes[id] {
			children[e[0]] = append(children[e[0]], e[1])
		}
		s.chains[id] = pokeapi.EvolutionChain{ID: id, Chain: s.buildLink(byName, root, children)}
	}
}

func (s *Server) buildLink(byName map[string]fixture, name string, children map[string][]string) pokeapi.ChainLink {
	link := pokeapi.ChainLink{
		Species:   pokeapi.NamedResource{Name: name, URL: s.speciesURL(byName[name].id)},
		EvolvesTo: []pokeapi.ChainLink{},
	}
	for _, c := range children[name] {
		link.EvolvesTo = append(link.EvolvesTo, s.buildLink(byName, c, children))
	}
	return link
}

func (s *Server) buildPokemon(f fixture) pokeapi.Pokemon {
	p := pokeapi.Pokemon{
		ID:      f.id,
		Name:    f.name,
		Height:  f.id%17 + 3,
		Weight:  f.id*13%900 + 20,
		Sprites: pokeapi.Sprites{FrontDefault: SpriteURL(f.id)},
		Abilities: []pokeapi.AbilitySlot{
			{Ability: pokeapi.NamedResource{Name: f.ability, URL: s.BaseURL() + "/ability/" + f.ability + "/"}, Slot: 1},
		},
		Species: pokeapi.NamedResource{Name: f.name, URL: s.speciesURL(f.id)},
	}
	for i, t := range f.types {
		p.Types = append(p.Types, pokeapi.TypeSlot{
			Slot: i + 1,
			Type: pokeapi.NamedResource{Name: t, URL: s.BaseURL() + "/type/" + t + "/"},
		})
	}
	for i, name := range []string{"hp", "attack", "defense", "speed"} {
		p.Stats = append(p.Stats, pokeapi.StatValue{
			BaseStat: 30 + (f.id*7+i*11)%70,
			Stat:     pokeapi.NamedResource{Name: name, URL: s.BaseURL() + "/stat/" + name + "/"},
		})
	}
	return p
}

func (s *Server) speciesURL(id int) string {
	return fmt.Sprintf("%s/pokemon-species/%d/", s.BaseURL(), id)
}

func (s *Server) pokemonURL(id int) string {
	return fmt.Sprintf("%s/pokemon/%d/", s.BaseURL(), id)
}
