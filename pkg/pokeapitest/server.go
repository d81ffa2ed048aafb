// Package pokeapitest provides an in-process fake of the PokeAPI v2 REST
// API for tests.
//
// The fake serves a fixed set of Pokémon (the first three starter lines,
// the caterpie line, the pichu line, ditto and eevee with its branching
// evolutions) and lets tests inject failures, malformed bodies and latency
// per path:
//
//	srv := pokeapitest.New(t)
//	srv.Fail("/pokemon/7", http.StatusInternalServerError)
//	client := pokeapi.NewClient(cache.NewNullCache(), time.Hour).WithBaseURL(srv.BaseURL())
package pokeapitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pokedex/pkg/integrations/pokeapi"
)

const apiPrefix = "/api/v2"

// Server is a fake PokeAPI. All methods are safe for concurrent use.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	order    []string
	pokemon  map[string]pokeapi.Pokemon
	species  map[string]pokeapi.Species
	chains   map[int]pokeapi.EvolutionChain
	failures map[string]int
	garbled  map[string]bool
	delays   map[string]time.Duration
	hits     map[string]int
	requests []string
	inFlight int
	maxInFl  int
}

// New starts a fake server and registers its shutdown with t.Cleanup.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		pokemon:  map[string]pokeapi.Pokemon{},
		species:  map[string]pokeapi.Species{},
		chains:   map[int]pokeapi.EvolutionChain{},
		failures: map[string]int{},
		garbled:  map[string]bool{},
		delays:   map[string]time.Duration{},
		hits:     map[string]int{},
	}
	s.Server = httptest.NewServer(s.routes())
	s.loadFixtures()
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the API root to pass to pokeapi.Client.WithBaseURL.
func (s *Server) BaseURL() string { return s.URL + apiPrefix }

// Client returns a cache-less PokeAPI client pointed at the fake.
func (s *Server) Client() *pokeapi.Client {
	return pokeapi.NewClient(nil, time.Hour).WithBaseURL(s.BaseURL())
}

// Fail makes every request for path (relative to the API root, e.g.
// "/pokemon/7") answer with status.
func (s *Server) Fail(path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[normalize(path)] = status
}

// Garble makes path answer 200 with a body that is not JSON.
func (s *Server) Garble(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.garbled[normalize(path)] = true
}

// Delay holds requests for path for d, or until the client gives up.
func (s *Server) Delay(path string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[normalize(path)] = d
}

// Heal removes any failure, garbling or delay set for path.
func (s *Server) Heal(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := normalize(path)
	delete(s.failures, p)
	delete(s.garbled, p)
	delete(s.delays, p)
}

// SetSprite overrides the front sprite of a fixture. An empty url makes the
// API report null.
func (s *Server) SetSprite(name, url string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.pokemon[name]
	p.Sprites.FrontDefault = url
	s.pokemon[name] = p
}

// Hits returns how many requests reached path.
func (s *Server) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[normalize(path)]
}

// Requests returns every request path in arrival order.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// MaxInFlight returns the highest number of requests served at once.
func (s *Server) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFl
}

func normalize(path string) string {
	path = strings.TrimPrefix(path, apiPrefix)
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Use(s.inject)

	r.Route(apiPrefix, func(r chi.Router) {
		r.Get("/pokemon", s.handleList)
		r.Get("/pokemon/{key}", s.handlePokemon)
		r.Get("/pokemon-species/{key}", s.handleSpecies)
		r.Get("/evolution-chain/{id}", s.handleChain)
	})
	return r
}

// inject records the request and applies any configured fault.
func (s *Server) inject(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := normalize(r.URL.Path)

		s.mu.Lock()
		s.hits[path]++
		s.requests = append(s.requests, path)
		s.inFlight++
		if s.inFlight > s.maxInFl {
			s.maxInFl = s.inFlight
		}
		status, garbled, delay := s.failures[path], s.garbled[path], s.delays[path]
		s.mu.Unlock()

		defer func() {
			s.mu.Lock()
			s.inFlight--
			s.mu.Unlock()
		}()

		if delay > 0 {
			select {
			case <-time.After(delay):
			case <-r.Context().Done():
				return
			}
		}
		switch {
		case status != 0:
			http.Error(w, http.StatusText(status), status)
		case garbled:
			w.Header().Set("Content-Type", "text/html")
			w.Write([]byte("<html>upstream exploded</html>"))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	s.mu.Lock()
	defer s.mu.Unlock()

	resp := pokeapi.ListResponse{Count: len(s.order), Results: []pokeapi.NamedResource{}}
	for i := offset; i < offset+limit && i < len(s.order); i++ {
		p := s.pokemon[s.order[i]]
		resp.Results = append(resp.Results, pokeapi.NamedResource{Name: p.Name, URL: s.pokemonURL(p.ID)})
	}
	writeJSON(w, resp)
}

func (s *Server) handlePokemon(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	p, ok := s.pokemon[s.resolve(chi.URLParam(r, "key"))]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	if p.Sprites.FrontDefault == "" {
		writeJSON(w, withNullSprite(p))
		return
	}
	writeJSON(w, p)
}

func (s *Server) handleSpecies(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	sp, ok := s.species[s.resolve(chi.URLParam(r, "key"))]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, sp)
}

func (s *Server) handleChain(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	s.mu.Lock()
	ch, ok := s.chains[id]
	s.mu.Unlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, ch)
}

// resolve maps a numeric key to a fixture name. Callers hold s.mu.
func (s *Server) resolve(key string) string {
	id, err := strconv.Atoi(key)
	if err != nil {
		return key
	}
	for name, p := range s.pokemon {
		if p.ID == id {
			return name
		}
	}
	return ""
}

func withNullSprite(p pokeapi.Pokemon) map[string]any {
	raw, _ := json.Marshal(p)
	var m map[string]any
	json.Unmarshal(raw, &m)
	m["sprites"] = map[string]any{"front_default": nil}
	return m
}

func queryInt(r *http.Request, key string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil || v < 0 {
		return def
	}
	return v
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
