package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

// showCommand creates the show command, the detail view of one Pokémon.
func (c *CLI) showCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show one Pokémon with its evolution chain",
		Long: `Show types, abilities and base stats of a Pokémon, followed by the
stages of its evolution chain. Branching chains list the first branch only;
"pokedex evolutions --format dot" draws every branch.`,
		Example: `  pokedex show bulbasaur
  pokedex show 25`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShow(cmd, args[0])
		},
	}
}

func (c *CLI) runShow(cmd *cobra.Command, name string) error {
	if err := perrors.ValidateName(name); err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, closeSvc, err := c.newService(ctx)
	if err != nil {
		return err
	}
	defer closeSvc()

	var (
		summary pokedex.Summary
		records []pokedex.EvolutionRecord
		evoErr  error
	)
	err = c.withSpinner(ctx, cmd, fmt.Sprintf("Fetching %s...", name), func(ctx context.Context) error {
		var err error
		if summary, err = svc.FetchSummary(ctx, name); err != nil {
			return err
		}
		records, evoErr = svc.FetchEvolutions(ctx, summary.Name)
		return nil
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printSummary(out, summary)
	fmt.Fprintln(out)
	fmt.Fprintln(out, StyleTitle.Render("Evolutions"))
	if evoErr != nil {
		printError(out, "%s", perrors.UserMessage(evoErr))
		return nil
	}
	printEvolutions(out, records)
	return nil
}
