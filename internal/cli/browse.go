package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the interactive browser command.
func (c *CLI) browseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse Pokémon interactively",
		Long: `Browse pages of Pokémon in the terminal.

List:    ↑/↓ or j/k move, ←/→ or h/l change page, t cycles the type filter,
         enter opens the detail view.
Detail:  esc goes back, e opens the edit form.
Edit:    tab and shift+tab move between fields, esc discards the form.
Anywhere a fetch failed, r retries it. q quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			svc, closeSvc, err := c.newService(ctx)
			if err != nil {
				return err
			}
			defer closeSvc()

			m := newBrowseModel(ctx, svc, svc.Bus)
			defer m.close()

			p := tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithContext(ctx),
				tea.WithInput(cmd.InOrStdin()),
				tea.WithOutput(cmd.OutOrStdout()),
			)
			_, err = p.Run()
			return err
		},
	}
}
