// Package browse holds the state of the interactive Pokémon browser and
// the pure function that updates it.
//
// The browser never mutates state in place. Every user input and every
// fetch result is an [Action], and [Reduce] maps the current [State] and
// an action to the next state:
//
//	s := browse.New()
//	s = browse.Reduce(s, browse.PageRequested{Page: 1})
//	// ... fetch page 1 ...
//	s = browse.Reduce(s, browse.PageLoaded{Page: 1, Pokemons: ps})
//
// Reduce performs no I/O. The caller issues fetches after requesting
// actions and feeds their results back in; results for a page or Pokémon
// that is no longer current are dropped.
package browse

import (
	"strings"

	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// View is the screen the browser shows.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewEdit
)

func (v View) String() string {
	switch v {
	case ViewDetail:
		return "detail"
	case ViewEdit:
		return "edit"
	default:
		return "list"
	}
}

// Failed names the request a retry would re-issue.
type Failed int

const (
	FailedNone Failed = iota
	FailedPage
	FailedEvolutions
)

// State is the complete browser state.
type State struct {
	Page       int
	TotalPages int
	Loading    bool

	Pokemons   []pokedex.Summary
	Types      []string
	TypeFilter string
	Visible    []pokedex.Summary
	Cursor     int

	View              View
	Selected          *pokedex.Summary
	Evolutions        []pokedex.EvolutionRecord
	EvolutionsLoading bool

	Draft *Draft

	Err    error
	Failed Failed
}

// New returns the initial state: page 1 of [pokedex.TotalPages], no
// filter, list view, nothing loaded yet.
func New() State {
	return State{
		Page:       1,
		TotalPages: pokedex.TotalPages,
		TypeFilter: pokedex.AllTypes,
		View:       ViewList,
	}
}

// Current returns the summary under the cursor.
func (s State) Current() (pokedex.Summary, bool) {
	if s.Cursor < 0 || s.Cursor >= len(s.Visible) {
		return pokedex.Summary{}, false
	}
	return s.Visible[s.Cursor], true
}

// RetryAction returns the action that re-issues the last failed request.
func (s State) RetryAction() (Action, bool) {
	switch s.Failed {
	case FailedPage:
		return PageRequested{Page: s.Page}, true
	case FailedEvolutions:
		if s.Selected != nil {
			return EvolutionsRequested{Name: s.Selected.Name}, true
		}
	}
	return nil, false
}

// Draft is the edit form's content. It lives only in browser state and is
// discarded when the form closes.
type Draft struct {
	Name       string
	Types      string
	Image      string
	Evolutions []EvolutionDraft
}

// EvolutionDraft is one evolution's group of form fields.
type EvolutionDraft struct {
	Name  string
	Type  string
	Image string
}

// Field identifies an edit form field.
type Field string

const (
	FieldName           Field = "name"
	FieldTypes          Field = "types"
	FieldImage          Field = "image"
	FieldEvolutionName  Field = "evolution.name"
	FieldEvolutionType  Field = "evolution.type"
	FieldEvolutionImage Field = "evolution.image"
)

// NewDraft prefills a form from a summary and its evolutions.
func NewDraft(p pokedex.Summary, evos []pokedex.EvolutionRecord) *Draft {
	d := &Draft{
		Name:  p.Name,
		Types: strings.Join(p.Types, ", "),
		Image: p.SpriteURL,
	}
	for _, e := range evos {
		d.Evolutions = append(d.Evolutions, EvolutionDraft{Name: e.Name, Image: e.Image})
	}
	return d
}

func (d *Draft) clone() *Draft {
	c := *d
	c.Evolutions = append([]EvolutionDraft(nil), d.Evolutions...)
	return &c
}
