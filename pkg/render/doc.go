// Package render groups the output renderers for pokedex data.
//
// Terminal tables and detail views are drawn by the CLI with lipgloss.
// Everything that produces a standalone document lives below this package:
//
//   - [evotree]: evolution chains as Graphviz DOT and SVG
//
// [evotree]: github.com/matzehuels/pokedex/pkg/render/evotree
package render
