package pokeapi_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/pokedex/pkg/cache"
	"github.com/matzehuels/pokedex/pkg/integrations"
	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
	"github.com/matzehuels/pokedex/pkg/pokeapitest"
)

func TestListPokemon(t *testing.T) {
	srv := pokeapitest.New(t)
	client := srv.Client()

	tests := []struct {
		name   string
		limit  int
		offset int
		want   []string
	}{
		{"first page", 3, 0, []string{"bulbasaur", "ivysaur", "venusaur"}},
		{"offset", 2, 3, []string{"charmander", "charmeleon"}},
		{"past the end", 10, 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.ListPokemon(context.Background(), tt.limit, tt.offset, false)
			if err != nil {
				t.Fatalf("ListPokemon() error: %v", err)
			}
			var got []string
			for _, r := range resp.Results {
				got = append(got, r.Name)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("names mismatch (-want +got):\n%s", diff)
			}
			if resp.Count != len(pokeapitest.Names()) {
				t.Errorf("Count = %d, want %d", resp.Count, len(pokeapitest.Names()))
			}
		})
	}
}

func TestFetchPokemon(t *testing.T) {
	srv := pokeapitest.New(t)
	client := srv.Client()

	p, err := client.FetchPokemon(context.Background(), "bulbasaur", false)
	if err != nil {
		t.Fatalf("FetchPokemon() error: %v", err)
	}
	if p.ID != 1 || p.Name != "bulbasaur" {
		t.Errorf("got %d/%s, want 1/bulbasaur", p.ID, p.Name)
	}
	if p.Sprites.FrontDefault != pokeapitest.SpriteURL(1) {
		t.Errorf("sprite = %q", p.Sprites.FrontDefault)
	}
	var types []string
	for _, ts := range p.Types {
		types = append(types, ts.Type.Name)
	}
	if diff := cmp.Diff([]string{"grass", "poison"}, types); diff != "" {
		t.Errorf("types mismatch (-want +got):\n%s", diff)
	}

	byID, err := client.FetchPokemon(context.Background(), "1", false)
	if err != nil {
		t.Fatalf("FetchPokemon(1) error: %v", err)
	}
	if byID.Name != "bulbasaur" {
		t.Errorf("FetchPokemon(1) = %q", byID.Name)
	}
}

func TestFetchPokemonNullSprite(t *testing.T) {
	srv := pokeapitest.New(t)
	srv.SetSprite("ditto", "")

	p, err := srv.Client().FetchPokemon(context.Background(), "ditto", false)
	if err != nil {
		t.Fatalf("FetchPokemon() error: %v", err)
	}
	if p.Sprites.FrontDefault != "" {
		t.Errorf("sprite = %q, want empty", p.Sprites.FrontDefault)
	}
}

func TestFetchErrors(t *testing.T) {
	srv := pokeapitest.New(t)
	srv.Fail("/pokemon/7", http.StatusInternalServerError)
	srv.Garble("/pokemon-species/4")
	client := srv.Client()
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"unknown name", func() error {
			_, err := client.FetchPokemon(ctx, "missingno", false)
			return err
		}, integrations.ErrNotFound},
		{"server error", func() error {
			_, err := client.FetchPokemon(ctx, "7", false)
			return err
		}, integrations.ErrNetwork},
		{"malformed body", func() error {
			_, err := client.FetchSpecies(ctx, "4", false)
			return err
		}, integrations.ErrParse},
		{"unknown chain", func() error {
			_, err := client.FetchEvolutionChainURL(ctx, srv.BaseURL()+"/evolution-chain/999/", false)
			return err
		}, integrations.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSpeciesAndChain(t *testing.T) {
	srv := pokeapitest.New(t)
	client := srv.Client()
	ctx := context.Background()

	sp, err := client.FetchSpecies(ctx, "eevee", false)
	if err != nil {
		t.Fatalf("FetchSpecies() error: %v", err)
	}
	if sp.ID != 133 {
		t.Errorf("species id = %d, want 133", sp.ID)
	}

	ch, err := client.FetchEvolutionChainURL(ctx, sp.EvolutionChain.URL, false)
	if err != nil {
		t.Fatalf("FetchEvolutionChainURL() error: %v", err)
	}
	if ch.Chain.Species.Name != "eevee" {
		t.Errorf("root = %q, want eevee", ch.Chain.Species.Name)
	}
	var branches []string
	for _, l := range ch.Chain.EvolvesTo {
		branches = append(branches, l.Species.Name)
	}
	if diff := cmp.Diff([]string{"vaporeon", "jolteon", "flareon"}, branches); diff != "" {
		t.Errorf("branches mismatch (-want +got):\n%s", diff)
	}

	byURL, err := client.FetchSpeciesURL(ctx, ch.Chain.EvolvesTo[1].Species.URL, false)
	if err != nil {
		t.Fatalf("FetchSpeciesURL() error: %v", err)
	}
	if byURL.ID != 135 {
		t.Errorf("jolteon species id = %d, want 135", byURL.ID)
	}
}

func TestClientCaches(t *testing.T) {
	srv := pokeapitest.New(t)
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	client := pokeapi.NewClient(fc, time.Hour).WithBaseURL(srv.BaseURL())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := client.FetchPokemon(ctx, "pikachu", false); err != nil {
			t.Fatalf("FetchPokemon() error: %v", err)
		}
	}
	if got := srv.Hits("/pokemon/pikachu"); got != 1 {
		t.Errorf("hits = %d, want 1", got)
	}

	if _, err := client.FetchPokemon(ctx, "pikachu", true); err != nil {
		t.Fatalf("FetchPokemon(refresh) error: %v", err)
	}
	if got := srv.Hits("/pokemon/pikachu"); got != 2 {
		t.Errorf("hits after refresh = %d, want 2", got)
	}
}

func TestWithBaseURLTrimsSlash(t *testing.T) {
	c := pokeapi.NewClient(nil, time.Hour).WithBaseURL("http://localhost:9/api/v2/")
	if c.BaseURL() != "http://localhost:9/api/v2" {
		t.Errorf("BaseURL() = %q", c.BaseURL())
	}
	if pokeapi.NewClient(nil, time.Hour).BaseURL() != pokeapi.DefaultBaseURL {
		t.Error("default base URL not applied")
	}
}

func TestIsNotFound(t *testing.T) {
	if !pokeapi.IsNotFound(integrations.ErrNotFound) {
		t.Error("IsNotFound(ErrNotFound) = false")
	}
	if pokeapi.IsNotFound(integrations.ErrNetwork) {
		t.Error("IsNotFound(ErrNetwork) = true")
	}
}
