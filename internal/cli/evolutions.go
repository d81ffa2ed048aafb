package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/pokedex"
	"github.com/matzehuels/pokedex/pkg/render/evotree"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatDOT  = "dot"
	formatSVG  = "svg"
)

var validFormats = []string{formatText, formatJSON, formatDOT, formatSVG}

type evolutionsOpts struct {
	format   string
	output   string
	detailed bool
}

// evolutionsCommand creates the evolutions command.
func (c *CLI) evolutionsCommand() *cobra.Command {
	opts := evolutionsOpts{format: formatText}

	cmd := &cobra.Command{
		Use:   "evolutions NAME",
		Short: "Print or draw the evolution chain of a Pokémon",
		Long: `Print the evolution chain of a Pokémon.

text and json list the stages from the chain's root along the first branch,
each with its sprite URL. dot and svg draw the whole tree; stages off the
first branch are shown dashed and grey.`,
		Example: `  pokedex evolutions charmander
  pokedex evolutions eevee --format svg -o eevee.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !validFormat(opts.format) {
				return perrors.New(perrors.ErrCodeInvalidInput, "invalid format %q (must be one of %s)", opts.format, strings.Join(validFormats, ", "))
			}
			return c.runEvolutions(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "output format: "+strings.Join(validFormats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "label stages with their position (dot, svg)")

	return cmd
}

func validFormat(f string) bool {
	for _, v := range validFormats {
		if f == v {
			return true
		}
	}
	return false
}

func (c *CLI) runEvolutions(cmd *cobra.Command, name string, opts evolutionsOpts) error {
	if err := perrors.ValidateName(name); err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	svc, closeSvc, err := c.newService(ctx)
	if err != nil {
		return err
	}
	defer closeSvc()

	var (
		root    *pokedex.ChainNode
		records []pokedex.EvolutionRecord
	)
	err = c.withSpinner(ctx, cmd, fmt.Sprintf("Walking evolution chain of %s...", name), func(ctx context.Context) error {
		var err error
		if root, err = svc.ResolveEvolutionChain(ctx, name); err != nil {
			return err
		}
		records, err = svc.Walk(ctx, root)
		return err
	})
	if err != nil {
		return err
	}
	if root.Branches() {
		logger.Debug("chain branches", "first_path", strings.Join(root.FirstPath(), " -> "))
	}

	data, err := renderEvolutions(ctx, root, records, opts)
	if err != nil {
		return err
	}
	logger.Debugf("Generated %s: %d bytes", opts.format, len(data))

	out, err := openOutput(cmd.OutOrStdout(), opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := out.Write(data); err != nil {
		return err
	}
	if opts.output != "" {
		printFile(cmd.ErrOrStderr(), opts.output)
	}
	return nil
}

// renderEvolutions encodes the walk (text, json) or the full tree (dot, svg).
func renderEvolutions(ctx context.Context, root *pokedex.ChainNode, records []pokedex.EvolutionRecord, opts evolutionsOpts) ([]byte, error) {
	switch opts.format {
	case formatJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case formatDOT, formatSVG:
		images := make(map[string]string, len(records))
		for _, r := range records {
			images[r.Name] = r.Image
		}
		dot := evotree.ToDOT(root, evotree.Options{Detailed: opts.detailed, Images: images})
		if opts.format == formatDOT {
			return []byte(dot), nil
		}
		return evotree.RenderSVG(ctx, dot)
	default:
		var buf bytes.Buffer
		printEvolutions(&buf, records)
		return buf.Bytes(), nil
	}
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns w when path is empty, otherwise a new file at path.
func openOutput(w io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{w}, nil
	}
	return os.Create(path)
}
