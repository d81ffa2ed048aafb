package evotree

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// Options configures evolution tree rendering.
type Options struct {
	// Detailed adds the stage number to each label.
	Detailed bool
	// Images maps species names to sprite URLs. Species with an entry get
	// a tooltip and link carrying the URL.
	Images map[string]string
}

// ToDOT converts an evolution chain to Graphviz DOT with every branch.
//
// Edges on the first-child path (the stages a walk visits) are solid;
// edges into alternate branches are dashed and their nodes grey.
func ToDOT(root *pokedex.ChainNode, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph evolutions {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")

	if root != nil {
		buf.WriteString("\n")
		w := &dotWriter{buf: &buf, opts: opts}
		w.node(root, 0, true)
		buf.WriteString("\n")
		buf.Write(w.edges.Bytes())
	}

	buf.WriteString("}\n")
	return buf.String()
}

type dotWriter struct {
	buf   *bytes.Buffer
	edges bytes.Buffer
	opts  Options
	next  int
}

// node writes n and its subtree and returns n's DOT id. Ids are positional
// so a species that appears twice still gets two nodes.
func (w *dotWriter) node(n *pokedex.ChainNode, stage int, onPath bool) string {
	id := fmt.Sprintf("n%d", w.next)
	w.next++

	fmt.Fprintf(w.buf, "  %s [%s];\n", id, strings.Join(w.attrs(n, stage, onPath), ", "))

	for i, child := range n.EvolvesTo {
		childOnPath := onPath && i == 0
		cid := w.node(child, stage+1, childOnPath)
		if childOnPath {
			fmt.Fprintf(&w.edges, "  %s -> %s;\n", id, cid)
		} else {
			fmt.Fprintf(&w.edges, "  %s -> %s [style=dashed, color=grey40];\n", id, cid)
		}
	}
	return id
}

func (w *dotWriter) attrs(n *pokedex.ChainNode, stage int, onPath bool) []string {
	label := n.SpeciesName
	if w.opts.Detailed {
		label += fmt.Sprintf("\nstage: %d", stage+1)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if !onPath {
		attrs = append(attrs, "fillcolor=lightgrey")
	}
	if img := w.opts.Images[n.SpeciesName]; img != "" {
		attrs = append(attrs, fmt.Sprintf("tooltip=%q", img), fmt.Sprintf("URL=%q", img))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one that
// scales in a browser.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
