package pokedex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/events"
	"github.com/matzehuels/pokedex/pkg/integrations"
	"github.com/matzehuels/pokedex/pkg/observability"
)

// Service fetches pages, details and evolution chains and announces results
// on its event bus. Both the CLI commands and the interactive browser use it.
//
// A Service holds no per-call state; one instance may serve concurrent
// callers as long as its fields are not modified.
type Service struct {
	API     API
	Bus     *events.Bus
	Logger  *log.Logger
	Refresh bool   // bypass the response cache
	Paging  Paging // list offset scheme; the zero value is PagingByPage
}

// NewService creates a service. A nil bus gets a private bus; a nil logger
// uses log.Default().
func NewService(api API, bus *events.Bus, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	if bus == nil {
		bus = events.NewBus(logger)
	}
	return &Service{API: api, Bus: bus, Logger: logger}
}

// FetchPage fetches list page page (1-based) and the details of each
// entry. The list offset follows s.Paging. Detail requests run
// concurrently; the result keeps list order.
// If any request fails the whole page fails and the remaining requests are
// cancelled. No partial page is ever returned.
func (s *Service) FetchPage(ctx context.Context, page int) ([]Summary, error) {
	if page < 1 {
		return nil, perrors.New(perrors.ErrCodeInvalidInput, "page %d: pages start at 1", page)
	}

	hooks := observability.Fetch()
	hooks.OnPageStart(ctx, page)
	start := time.Now()

	ps, err := s.fetchPage(ctx, page)

	hooks.OnPageComplete(ctx, page, len(ps), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	s.Logger.Debug("fetched page", "page", page, "pokemons", len(ps), "duration", time.Since(start))
	return ps, nil
}

func (s *Service) fetchPage(ctx context.Context, page int) ([]Summary, error) {
	pageName := strconv.Itoa(page)

	list, err := s.API.ListPokemon(ctx, PageSize, s.Paging.Offset(page), s.Refresh)
	if err != nil {
		return nil, fetchErr("fetch page", pageName, err)
	}

	out := make([]Summary, len(list.Results))
	g, gctx := errgroup.WithContext(ctx)
	for i, r := range list.Results {
		g.Go(func() error {
			p, err := s.API.FetchPokemonURL(gctx, r.URL, s.Refresh)
			if err != nil {
				return fetchErr("fetch pokemon", r.Name, err)
			}
			out[i] = SummaryFromAPI(p)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &FetchError{Op: "fetch page", Name: pageName, Err: err}
	}
	return out, nil
}

// FetchPokemons fetches a page and publishes it on [PokemonsLoaded].
// Failures are returned and not published.
func (s *Service) FetchPokemons(ctx context.Context, page int) ([]Summary, error) {
	ps, err := s.FetchPage(ctx, page)
	if err != nil {
		return nil, err
	}
	events.Publish(s.Bus, PokemonsLoaded, PokemonsLoadedEvent{Page: page, Pokemons: ps})
	return ps, nil
}

// FetchSummary fetches a single Pokémon by name or id.
func (s *Service) FetchSummary(ctx context.Context, name string) (Summary, error) {
	if err := perrors.ValidateName(name); err != nil {
		return Summary{}, err
	}
	p, err := s.API.FetchPokemon(ctx, name, s.Refresh)
	if err != nil {
		return Summary{}, fetchErr("fetch pokemon", name, err)
	}
	return SummaryFromAPI(p), nil
}

// ResolveEvolutionChain fetches the species of name and then the evolution
// chain it references, returning the chain's root with all branches intact.
func (s *Service) ResolveEvolutionChain(ctx context.Context, name string) (*ChainNode, error) {
	if err := perrors.ValidateName(name); err != nil {
		return nil, err
	}
	const op = "resolve evolution chain"

	sp, err := s.API.FetchSpecies(ctx, name, s.Refresh)
	if err != nil {
		return nil, fetchErr(op, name, err)
	}
	if sp.EvolutionChain.URL == "" {
		return nil, fetchErr(op, name, fmt.Errorf("%w: species has no evolution chain", integrations.ErrParse))
	}
	ch, err := s.API.FetchEvolutionChainURL(ctx, sp.EvolutionChain.URL, s.Refresh)
	if err != nil {
		return nil, fetchErr(op, name, err)
	}
	return ChainFromAPI(ch.Chain), nil
}

// Walk runs a [Walker] with the service's API and refresh setting.
func (s *Service) Walk(ctx context.Context, root *ChainNode) ([]EvolutionRecord, error) {
	w := &Walker{API: s.API, Refresh: s.Refresh}
	return w.Walk(ctx, root)
}

// FetchEvolutions resolves the chain of name and walks it. The outcome is
// published on [EvolutionsFetched] or [EvolutionsError] and also returned.
func (s *Service) FetchEvolutions(ctx context.Context, name string) ([]EvolutionRecord, error) {
	hooks := observability.Fetch()
	hooks.OnEvolutionsStart(ctx, name)
	start := time.Now()

	recs, err := s.fetchEvolutions(ctx, name)

	hooks.OnEvolutionsComplete(ctx, name, len(recs), time.Since(start), err)
	if err != nil {
		s.Logger.Debug("evolutions failed", "name", name, "error", err)
		events.Publish(s.Bus, EvolutionsError, EvolutionsErrorEvent{Name: name, Err: err})
		return nil, err
	}
	events.Publish(s.Bus, EvolutionsFetched, EvolutionsFetchedEvent{Name: name, Evolutions: recs})
	return recs, nil
}

func (s *Service) fetchEvolutions(ctx context.Context, name string) ([]EvolutionRecord, error) {
	root, err := s.ResolveEvolutionChain(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.Walk(ctx, root)
}
