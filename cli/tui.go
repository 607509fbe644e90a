// ABOUTME: TUI subcommand
// ABOUTME: Opens the full-screen back office over every entity table
package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/tui"
)

func newTUICommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive back office",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bridge := tui.NewBridge()
			deps, err := app.deps(bridge)
			if err != nil {
				return err
			}
			model := tui.NewModel(cmd.Context(), entities.All(deps), bridge)
			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}
