package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/pokedex/pkg/errors"
	"github.com/matzehuels/pokedex/pkg/pokedex"
)

type listOpts struct {
	page     int
	typeName string
}

// listCommand creates the list command, which prints one page of Pokémon.
func (c *CLI) listCommand() *cobra.Command {
	opts := listOpts{page: 1, typeName: pokedex.AllTypes}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a page of Pokémon",
		Long: fmt.Sprintf(`List one page of %d Pokémon with their types and abilities.

Pages run from 1 to %d. --type keeps only Pokémon of that type; use
"pokedex types" to see which types a page contains.

By default the page number is sent as the list offset, so neighbouring
pages share nine entries. Set paging = "stride" in the config file for
disjoint pages.`, pokedex.PageSize, pokedex.TotalPages),
		Example: `  pokedex list
  pokedex list --page 3 --type water`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.page, "page", "p", opts.page, "page number")
	cmd.Flags().StringVarP(&opts.typeName, "type", "t", opts.typeName, `type filter ("all" for none)`)

	return cmd
}

func (c *CLI) runList(cmd *cobra.Command, opts listOpts) error {
	pokemons, err := c.fetchPage(cmd, opts.page)
	if err != nil {
		return err
	}

	visible := pokedex.FilterByType(pokemons, opts.typeName)
	out := cmd.OutOrStdout()
	if len(visible) == 0 {
		printWarning(out, "No %s Pokémon on page %d", opts.typeName, opts.page)
		printNextStep(out, "See the types on this page", fmt.Sprintf("pokedex types --page %d", opts.page))
		return nil
	}

	fmt.Fprintln(out, pokemonTable(visible))
	printPageStats(out, opts.page, len(visible), len(pokemons), opts.typeName)
	return nil
}

// typesCommand creates the types command.
func (c *CLI) typesCommand() *cobra.Command {
	page := 1

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List the Pokémon types present on a page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pokemons, err := c.fetchPage(cmd, page)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range pokedex.DistinctTypes(pokemons) {
				fmt.Fprintln(out, t)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", page, "page number")
	return cmd
}

// fetchPage validates page and fetches it behind a spinner.
func (c *CLI) fetchPage(cmd *cobra.Command, page int) ([]pokedex.Summary, error) {
	if err := perrors.ValidatePage(page, pokedex.TotalPages); err != nil {
		return nil, err
	}

	ctx := cmd.Context()
	svc, closeSvc, err := c.newService(ctx)
	if err != nil {
		return nil, err
	}
	defer closeSvc()

	prog := newProgress(loggerFromContext(ctx))
	var pokemons []pokedex.Summary
	err = c.withSpinner(ctx, cmd, fmt.Sprintf("Fetching page %d...", page), func(ctx context.Context) error {
		var err error
		pokemons, err = svc.FetchPokemons(ctx, page)
		return err
	})
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Fetched page %d", page))
	return pokemons, nil
}

// withSpinner runs fn while a spinner is drawn on stderr.
func (c *CLI) withSpinner(ctx context.Context, cmd *cobra.Command, msg string, fn func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	spinner := newSpinner(ctx, cmd.ErrOrStderr(), msg)
	spinner.Start()
	err := fn(ctx)
	spinner.Stop()
	return err
}
