package pokedex

import (
	"context"
	"fmt"
	"strconv"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/integrations"
	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
)

// API is the subset of the PokeAPI client the fetchers need.
// *pokeapi.Client implements it.
type API interface {
	ListPokemon(ctx context.Context, limit, offset int, refresh bool) (*pokeapi.ListResponse, error)
	FetchPokemon(ctx context.Context, nameOrID string, refresh bool) (*pokeapi.Pokemon, error)
	FetchPokemonURL(ctx context.Context, url string, refresh bool) (*pokeapi.Pokemon, error)
	FetchSpecies(ctx context.Context, name string, refresh bool) (*pokeapi.Species, error)
	FetchSpeciesURL(ctx context.Context, url string, refresh bool) (*pokeapi.Species, error)
	FetchEvolutionChainURL(ctx context.Context, url string, refresh bool) (*pokeapi.EvolutionChain, error)
}

// Walker turns an evolution chain into records by following the first
// child at every stage.
type Walker struct {
	API     API
	Refresh bool
}

// Walk visits root and then the first child of each visited node until a
// terminal stage, returning one record per visited node in root-to-terminal
// order.
//
// Each stage costs two requests (species for its numeric id, then the
// Pokémon for its sprite) and stages are fetched strictly one after
// another. Any failure aborts the walk and no records are returned.
// A species that appears twice is fetched twice.
func (w *Walker) Walk(ctx context.Context, root *ChainNode) ([]EvolutionRecord, error) {
	if root == nil {
		return nil, perrors.New(perrors.ErrCodeState, "walk: nil chain root")
	}

	var records []EvolutionRecord
	for cur := root; cur != nil; cur = cur.firstChild() {
		if err := ctx.Err(); err != nil {
			return nil, fetchErr("walk evolution chain", cur.SpeciesName, err)
		}
		rec, err := w.visit(ctx, cur)
		if err != nil {
			return nil, fetchErr("walk evolution chain", cur.SpeciesName, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (w *Walker) visit(ctx context.Context, n *ChainNode) (EvolutionRecord, error) {
	if n.SpeciesURL == "" {
		return EvolutionRecord{}, fmt.Errorf("%w: stage %q has no species reference", integrations.ErrParse, n.SpeciesName)
	}
	species, err := w.API.FetchSpeciesURL(ctx, n.SpeciesURL, w.Refresh)
	if err != nil {
		return EvolutionRecord{}, err
	}
	p, err := w.API.FetchPokemon(ctx, strconv.Itoa(species.ID), w.Refresh)
	if err != nil {
		return EvolutionRecord{}, err
	}
	return EvolutionRecord{Name: n.SpeciesName, Image: p.Sprites.FrontDefault}, nil
}
