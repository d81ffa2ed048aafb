package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// typeColors tints type badges. Unknown types render gray.
var typeColors = map[string]lipgloss.Color{
	"grass":    lipgloss.Color("71"),
	"poison":   lipgloss.Color("134"),
	"fire":     lipgloss.Color("202"),
	"water":    lipgloss.Color("33"),
	"bug":      lipgloss.Color("106"),
	"flying":   lipgloss.Color("111"),
	"electric": lipgloss.Color("220"),
	"normal":   lipgloss.Color("250"),
	"fairy":    lipgloss.Color("218"),
}

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleLink for URLs.
	StyleLink = lipgloss.NewStyle().Foreground(colorBlue).Underline(true)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for inline error text.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Padding(0, 1)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(w io.Writer, key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(w, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Pokémon Output
// =============================================================================

// printPageStats prints "page 2/20 · 10 shown · 3 hidden by filter".
func printPageStats(w io.Writer, page, shown, total int, filter string) {
	parts := []string{
		fmt.Sprintf("page %d/%d", page, pokedex.TotalPages),
		fmt.Sprintf("%d shown", shown),
	}
	if hidden := total - shown; hidden > 0 {
		parts = append(parts, fmt.Sprintf("%d hidden by %s", hidden, filter))
	}
	fmt.Fprintln(w, "  "+StyleDim.Render(strings.Join(parts, " · ")))
}

// typeBadges renders types as colored words separated by spaces.
func typeBadges(types []string) string {
	out := make([]string, len(types))
	for i, t := range types {
		c, ok := typeColors[t]
		if !ok {
			c = colorGray
		}
		out[i] = lipgloss.NewStyle().Foreground(c).Render(t)
	}
	return strings.Join(out, " ")
}

// pokemonTable renders one page of summaries.
func pokemonTable(pokemons []pokedex.Summary) string {
	rows := make([][]string, len(pokemons))
	for i, p := range pokemons {
		rows[i] = []string{fmt.Sprintf("#%03d", p.ID), p.Name, typeBadges(p.Types), strings.Join(p.Abilities, ", ")}
	}
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(StyleDim).
		Headers("ID", "NAME", "TYPES", "ABILITIES").
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			return styleCell
		}).
		String()
}

// printSummary prints the detail block for one Pokémon.
func printSummary(w io.Writer, p pokedex.Summary) {
	fmt.Fprintln(w, StyleTitle.Render(fmt.Sprintf("#%03d %s", p.ID, p.Name)))
	printKeyValue(w, "types", typeBadges(p.Types))
	printKeyValue(w, "abilities", strings.Join(p.Abilities, ", "))
	sprite := p.SpriteURL
	if sprite == "" {
		sprite = StyleDim.Render("(none)")
	}
	printKeyValue(w, "sprite", sprite)
	for _, s := range p.Stats {
		printKeyValue(w, s.Name, StyleNumber.Render(fmt.Sprint(s.Base)))
	}
}

// printEvolutions prints records as "1. bulbasaur  url" lines.
func printEvolutions(w io.Writer, records []pokedex.EvolutionRecord) {
	for i, r := range records {
		image := r.Image
		if image == "" {
			image = StyleDim.Render("(no image)")
		}
		fmt.Fprintf(w, "%s %s  %s\n", StyleNumber.Render(fmt.Sprintf("%d.", i+1)), StyleValue.Render(r.Name), StyleDim.Render(image))
	}
}
