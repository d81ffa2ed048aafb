package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pokedex/pkg/browse"
	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/events"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	formLabelStyle    = lipgloss.NewStyle().Foreground(colorGray).Width(20)
)

// browseService is the part of pokedex.Service the browser drives.
type browseService interface {
	FetchPokemons(ctx context.Context, page int) ([]pokedex.Summary, error)
	FetchEvolutions(ctx context.Context, name string) ([]pokedex.EvolutionRecord, error)
}

// =============================================================================
// Messages
// =============================================================================

type pageMsg struct {
	page     int
	pokemons []pokedex.Summary
	err      error
}

type evolutionsMsg struct {
	name    string
	records []pokedex.EvolutionRecord
	err     error
}

// busMsg wraps a message that arrived through the event bus, so Update
// knows to keep listening.
type busMsg struct{ msg tea.Msg }

// =============================================================================
// browseModel - Interactive Pokémon browser
// =============================================================================

// browseModel adapts browse.State to bubbletea. Key presses become
// browse actions; fetch results arrive on the service's event bus and are
// reduced the same way.
type browseModel struct {
	ctx    context.Context
	svc    browseService
	events chan tea.Msg
	subs   []events.Subscription

	state browse.State

	fields []formField
	inputs []textinput.Model
	focus  int
}

// formField is one edit form input bound to a draft field.
type formField struct {
	field browse.Field
	index int
	label string
	value string
}

func newBrowseModel(ctx context.Context, svc browseService, bus *events.Bus) browseModel {
	ch := make(chan tea.Msg, 16)
	forward := func(msg tea.Msg) {
		select {
		case ch <- busMsg{msg}:
		case <-ctx.Done():
		}
	}

	m := browseModel{ctx: ctx, svc: svc, events: ch, state: browse.New()}
	m.subs = []events.Subscription{
		events.Subscribe(bus, pokedex.PokemonsLoaded, func(e pokedex.PokemonsLoadedEvent) {
			forward(pageMsg{page: e.Page, pokemons: e.Pokemons})
		}),
		events.Subscribe(bus, pokedex.EvolutionsFetched, func(e pokedex.EvolutionsFetchedEvent) {
			forward(evolutionsMsg{name: e.Name, records: e.Evolutions})
		}),
		events.Subscribe(bus, pokedex.EvolutionsError, func(e pokedex.EvolutionsErrorEvent) {
			forward(evolutionsMsg{name: e.Name, err: e.Err})
		}),
	}
	m.dispatch(browse.PageRequested{Page: m.state.Page})
	return m
}

// close cancels the bus subscriptions.
func (m browseModel) close() {
	for _, s := range m.subs {
		s.Cancel()
	}
}

func (m browseModel) Init() tea.Cmd {
	return tea.Batch(m.listen(), m.fetchPage(m.state.Page))
}

func (m *browseModel) dispatch(a browse.Action) {
	m.state = browse.Reduce(m.state, a)
}

func (m browseModel) listen() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-m.events:
			return msg
		case <-m.ctx.Done():
			return nil
		}
	}
}

// fetchPage reports failures directly. Successes are published by the
// service and come back through listen.
func (m browseModel) fetchPage(page int) tea.Cmd {
	return func() tea.Msg {
		if _, err := m.svc.FetchPokemons(m.ctx, page); err != nil {
			return pageMsg{page: page, err: err}
		}
		return nil
	}
}

func (m browseModel) fetchEvolutions(name string) tea.Cmd {
	return func() tea.Msg {
		_, _ = m.svc.FetchEvolutions(m.ctx, name)
		return nil
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case busMsg:
		next, cmd := m.Update(msg.msg)
		return next, tea.Batch(cmd, m.listen())

	case pageMsg:
		if msg.err != nil {
			m.dispatch(browse.PageFailed{Page: msg.page, Err: msg.err})
		} else {
			m.dispatch(browse.PageLoaded{Page: msg.page, Pokemons: msg.pokemons})
		}

	case evolutionsMsg:
		if msg.err != nil {
			m.dispatch(browse.EvolutionsFailed{Name: msg.name, Err: msg.err})
		} else {
			m.dispatch(browse.EvolutionsLoaded{Name: msg.name, Evolutions: msg.records})
		}
		if m.state.View == browse.ViewEdit && len(formFields(m.state.Draft)) != len(m.fields) {
			return m, m.buildForm()
		}

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.state.View {
		case browse.ViewEdit:
			return m.updateEdit(msg)
		case browse.ViewDetail:
			return m.updateDetail(msg)
		default:
			return m.updateList(msg)
		}
	}
	return m, nil
}

func (m browseModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "up", "k":
		m.dispatch(browse.CursorMoved{Delta: -1})
	case "down", "j":
		m.dispatch(browse.CursorMoved{Delta: 1})
	case "left", "h":
		return m.requestPage(m.state.Page - 1)
	case "right", "l":
		return m.requestPage(m.state.Page + 1)
	case "t":
		m.dispatch(browse.TypeSelected{Type: m.nextType()})
	case "enter":
		m.dispatch(browse.Selected{})
		if m.state.View == browse.ViewDetail {
			return m, m.fetchEvolutions(m.state.Selected.Name)
		}
	case "r":
		return m.retry()
	}
	return m, nil
}

func (m browseModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "backspace":
		m.dispatch(browse.Back{})
	case "e":
		m.dispatch(browse.EditOpened{})
		if m.state.View == browse.ViewEdit {
			return m, m.buildForm()
		}
	case "r":
		return m.retry()
	}
	return m, nil
}

func (m browseModel) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.dispatch(browse.Back{})
		m.fields, m.inputs = nil, nil
		return m, nil
	case "tab", "down":
		return m, m.moveFocus(1)
	case "shift+tab", "up":
		return m, m.moveFocus(-1)
	}
	if len(m.inputs) == 0 {
		return m, nil
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	f := m.fields[m.focus]
	m.dispatch(browse.EditFieldChanged{Field: f.field, Index: f.index, Value: m.inputs[m.focus].Value()})
	return m, cmd
}

// requestPage ignores pages outside the browser's range.
func (m browseModel) requestPage(page int) (tea.Model, tea.Cmd) {
	if page < 1 || page > m.state.TotalPages {
		return m, nil
	}
	m.dispatch(browse.PageRequested{Page: page})
	return m, m.fetchPage(page)
}

func (m browseModel) retry() (tea.Model, tea.Cmd) {
	a, ok := m.state.RetryAction()
	if !ok {
		return m, nil
	}
	m.dispatch(a)
	switch a := a.(type) {
	case browse.PageRequested:
		return m, m.fetchPage(a.Page)
	case browse.EvolutionsRequested:
		return m, m.fetchEvolutions(a.Name)
	}
	return m, nil
}

// nextType cycles "all" followed by the page's types.
func (m browseModel) nextType() string {
	options := append([]string{pokedex.AllTypes}, m.state.Types...)
	for i, t := range options {
		if t == m.state.TypeFilter {
			return options[(i+1)%len(options)]
		}
	}
	return pokedex.AllTypes
}

// =============================================================================
// Edit form
// =============================================================================

func formFields(d *browse.Draft) []formField {
	if d == nil {
		return nil
	}
	fields := []formField{
		{field: browse.FieldName, label: "name", value: d.Name},
		{field: browse.FieldTypes, label: "types", value: d.Types},
		{field: browse.FieldImage, label: "image", value: d.Image},
	}
	for i, e := range d.Evolutions {
		n := i + 1
		fields = append(fields,
			formField{field: browse.FieldEvolutionName, index: i, label: fmt.Sprintf("evolution %d name", n), value: e.Name},
			formField{field: browse.FieldEvolutionType, index: i, label: fmt.Sprintf("evolution %d type", n), value: e.Type},
			formField{field: browse.FieldEvolutionImage, index: i, label: fmt.Sprintf("evolution %d image", n), value: e.Image},
		)
	}
	return fields
}

// buildForm creates one input per draft field, keeping the focus position.
func (m *browseModel) buildForm() tea.Cmd {
	m.fields = formFields(m.state.Draft)
	m.inputs = make([]textinput.Model, len(m.fields))
	for i, f := range m.fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.SetValue(f.value)
		m.inputs[i] = ti
	}
	if len(m.inputs) == 0 {
		return nil
	}
	m.focus = min(m.focus, len(m.inputs)-1)
	return m.inputs[m.focus].Focus()
}

func (m *browseModel) moveFocus(delta int) tea.Cmd {
	if len(m.inputs) == 0 {
		return nil
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	return m.inputs[m.focus].Focus()
}

// =============================================================================
// Views
// =============================================================================

func (m browseModel) View() string {
	var b strings.Builder

	switch m.state.View {
	case browse.ViewDetail:
		m.viewDetail(&b)
	case browse.ViewEdit:
		m.viewEdit(&b)
	default:
		m.viewList(&b)
	}

	if err := m.state.Err; err != nil {
		b.WriteString("\n")
		b.WriteString(StyleError.Render(iconError + " " + perrors.UserMessage(err)))
		if m.state.Failed != browse.FailedNone {
			b.WriteString(listDimStyle.Render("  r retry"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m browseModel) viewList(b *strings.Builder) {
	s := m.state
	b.WriteString(StyleTitle.Render("Pokédex"))
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  page %d/%d · type: %s", s.Page, s.TotalPages, s.TypeFilter)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ←/→ page  t type  ⏎ select  q quit"))
	b.WriteString("\n\n")

	if s.Loading {
		b.WriteString(listDimStyle.Render(fmt.Sprintf("Loading page %d...", s.Page)))
		b.WriteString("\n")
		return
	}
	if len(s.Visible) == 0 {
		b.WriteString(listDimStyle.Render("Nothing to show"))
		b.WriteString("\n")
		return
	}

	rows := make([][]string, len(s.Visible))
	for i, p := range s.Visible {
		cursor := "  "
		if i == s.Cursor {
			cursor = "▸ "
		}
		rows[i] = []string{cursor, fmt.Sprintf("#%03d", p.ID), p.Name, strings.Join(p.Types, ", ")}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Name", "Types").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row == s.Cursor:
				return listSelectedStyle
			default:
				return listNormalStyle
			}
		})

	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", s.Cursor+1, len(s.Visible))))
	b.WriteString("\n")
}

func (m browseModel) viewDetail(b *strings.Builder) {
	s := m.state
	if s.Selected == nil {
		return
	}
	printSummary(b, *s.Selected)
	b.WriteString("\n")
	b.WriteString(StyleTitle.Render("Evolutions"))
	b.WriteString("\n")
	switch {
	case s.EvolutionsLoading:
		b.WriteString(listDimStyle.Render("Loading evolutions..."))
		b.WriteString("\n")
	case s.Failed != browse.FailedEvolutions:
		printEvolutions(b, s.Evolutions)
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("esc back  e edit  q quit"))
	b.WriteString("\n")
}

func (m browseModel) viewEdit(b *strings.Builder) {
	if m.state.Draft == nil || m.state.Selected == nil {
		return
	}
	b.WriteString(StyleTitle.Render("Edit " + m.state.Selected.Name))
	b.WriteString("\n\n")
	for i, f := range m.fields {
		label := formLabelStyle.Render(f.label)
		if i == m.focus {
			label = formLabelStyle.Foreground(colorCyan).Render(f.label)
		}
		b.WriteString(label + " " + m.inputs[i].View() + "\n")
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("tab next field  esc discard"))
	b.WriteString("\n")
}
