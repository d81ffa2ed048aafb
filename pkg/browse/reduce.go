package browse

import (
	"slices"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// Action is an input to [Reduce].
type Action interface{ action() }

// PageRequested asks for another page. Pages outside [1, TotalPages] are
// ignored.
type PageRequested struct{ Page int }

// PageLoaded delivers a fetched page.
type PageLoaded struct {
	Page     int
	Pokemons []pokedex.Summary
}

// PageFailed reports a failed page fetch. The previous page's entries are
// dropped so nothing from it stays selectable under the new page number.
type PageFailed struct {
	Page int
	Err  error
}

// TypeSelected changes the type filter. [pokedex.AllTypes] clears it.
type TypeSelected struct{ Type string }

// CursorMoved moves the list cursor by Delta, clamped to the visible list.
type CursorMoved struct{ Delta int }

// Selected opens the detail view for Pokemon, or for the entry under the
// cursor when Pokemon is nil.
type Selected struct{ Pokemon *pokedex.Summary }

// Back leaves the detail view, or closes the edit form.
type Back struct{}

// EditOpened opens the edit form for the selected Pokémon.
type EditOpened struct{}

// EditClosed discards the edit form.
type EditClosed struct{}

// EditFieldChanged sets one form field. Index selects the evolution for
// the evolution fields and is ignored otherwise.
type EditFieldChanged struct {
	Field Field
	Index int
	Value string
}

// EvolutionsRequested marks the evolutions of Name as loading again.
type EvolutionsRequested struct{ Name string }

// EvolutionsLoaded delivers the evolution records of Name.
type EvolutionsLoaded struct {
	Name       string
	Evolutions []pokedex.EvolutionRecord
}

// EvolutionsFailed reports a failed evolution fetch for Name.
type EvolutionsFailed struct {
	Name string
	Err  error
}

func (PageRequested) action()       {}
func (PageLoaded) action()          {}
func (PageFailed) action()          {}
func (TypeSelected) action()        {}
func (CursorMoved) action()         {}
func (Selected) action()            {}
func (Back) action()                {}
func (EditOpened) action()          {}
func (EditClosed) action()          {}
func (EditFieldChanged) action()    {}
func (EvolutionsRequested) action() {}
func (EvolutionsLoaded) action()    {}
func (EvolutionsFailed) action()    {}

// Reduce returns the state that results from applying a to s. It does not
// modify s or anything s refers to.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case PageRequested:
		if a.Page < 1 || a.Page > s.TotalPages {
			return s
		}
		s.Page = a.Page
		s.Loading = true
		s.clearError()

	case PageLoaded:
		if a.Page != s.Page || !s.Loading {
			return s
		}
		s.Loading = false
		s.Pokemons = a.Pokemons
		s.Types = pokedex.DistinctTypes(a.Pokemons)
		if s.TypeFilter != pokedex.AllTypes && !slices.Contains(s.Types, s.TypeFilter) {
			s.TypeFilter = pokedex.AllTypes
		}
		s.Visible = pokedex.FilterByType(s.Pokemons, s.TypeFilter)
		s.Cursor = 0
		s.clearError()

	case PageFailed:
		if a.Page != s.Page || !s.Loading {
			return s
		}
		s.Loading = false
		s.Pokemons = nil
		s.Types = nil
		s.Visible = nil
		s.Cursor = 0
		s.Err = a.Err
		s.Failed = FailedPage

	case TypeSelected:
		s.TypeFilter = a.Type
		if s.TypeFilter == "" {
			s.TypeFilter = pokedex.AllTypes
		}
		s.Visible = pokedex.FilterByType(s.Pokemons, s.TypeFilter)
		s.Cursor = 0

	case CursorMoved:
		if len(s.Visible) == 0 {
			s.Cursor = 0
			return s
		}
		s.Cursor = min(max(s.Cursor+a.Delta, 0), len(s.Visible)-1)

	case Selected:
		p := a.Pokemon
		if p == nil {
			cur, ok := s.Current()
			if !ok {
				return s.stateError("nothing to select")
			}
			p = &cur
		} else {
			cp := *p
			p = &cp
		}
		s.View = ViewDetail
		s.Selected = p
		s.Evolutions = nil
		s.EvolutionsLoading = true
		s.Draft = nil
		s.clearError()

	case Back:
		switch s.View {
		case ViewEdit:
			return Reduce(s, EditClosed{})
		case ViewDetail:
			s.View = ViewList
			s.Selected = nil
			s.Evolutions = nil
			s.EvolutionsLoading = false
			if s.Failed == FailedEvolutions {
				s.clearError()
			}
		}

	case EditOpened:
		if s.Selected == nil {
			return s.stateError("no pokemon selected to edit")
		}
		s.View = ViewEdit
		s.Draft = NewDraft(*s.Selected, s.Evolutions)

	case EditClosed:
		if s.View != ViewEdit {
			return s
		}
		s.Draft = nil
		s.View = ViewDetail
		if s.Selected == nil {
			s.View = ViewList
		}

	case EditFieldChanged:
		if s.View != ViewEdit || s.Draft == nil {
			return s.stateError("edit form is not open")
		}
		d := s.Draft.clone()
		switch a.Field {
		case FieldName:
			d.Name = a.Value
		case FieldTypes:
			d.Types = a.Value
		case FieldImage:
			d.Image = a.Value
		case FieldEvolutionName, FieldEvolutionType, FieldEvolutionImage:
			if a.Index < 0 || a.Index >= len(d.Evolutions) {
				return s.stateError("no evolution %d in form", a.Index)
			}
			e := &d.Evolutions[a.Index]
			switch a.Field {
			case FieldEvolutionName:
				e.Name = a.Value
			case FieldEvolutionType:
				e.Type = a.Value
			default:
				e.Image = a.Value
			}
		default:
			return s.stateError("unknown form field %q", a.Field)
		}
		s.Draft = d

	case EvolutionsRequested:
		if s.Selected == nil || s.Selected.Name != a.Name {
			return s
		}
		s.EvolutionsLoading = true
		s.clearError()

	case EvolutionsLoaded:
		if s.Selected == nil || s.Selected.Name != a.Name || !s.EvolutionsLoading {
			return s
		}
		s.EvolutionsLoading = false
		s.Evolutions = a.Evolutions
		if s.Draft != nil && len(s.Draft.Evolutions) == 0 {
			d := s.Draft.clone()
			for _, e := range a.Evolutions {
				d.Evolutions = append(d.Evolutions, EvolutionDraft{Name: e.Name, Image: e.Image})
			}
			s.Draft = d
		}

	case EvolutionsFailed:
		if s.Selected == nil || s.Selected.Name != a.Name || !s.EvolutionsLoading {
			return s
		}
		s.EvolutionsLoading = false
		s.Err = a.Err
		s.Failed = FailedEvolutions
	}
	return s
}

func (s *State) clearError() {
	s.Err = nil
	s.Failed = FailedNone
}

// stateError records a STATE_ERROR and leaves everything else unchanged.
// A pending fetch failure keeps its retry.
func (s State) stateError(format string, args ...any) State {
	s.Err = perrors.New(perrors.ErrCodeState, format, args...)
	return s
}
