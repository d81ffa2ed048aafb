// Package evotree renders evolution chains as Graphviz diagrams.
//
// A chain walk only follows the first branch at each stage; this package
// draws the whole tree so branching species (eevee, tyrogue, wurmple) show
// every alternative:
//
//	root, err := svc.ResolveEvolutionChain(ctx, "eevee")
//	dot := evotree.ToDOT(root, evotree.Options{})
//	svg, err := evotree.RenderSVG(ctx, dot)
//
// The walked path is drawn solid, alternate branches dashed.
//
// SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; no system install is needed.
package evotree
