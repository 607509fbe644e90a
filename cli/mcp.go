// ABOUTME: MCP server subcommand
// ABOUTME: Serves the record tools on stdio for desktop assistants
package cli

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/harperreed/freightdesk/handlers"
	"github.com/harperreed/freightdesk/notify"
)

func newMCPCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := app.deps(notify.Discard{})
			if err != nil {
				return err
			}
			app.Logger.Info("starting MCP server")
			server := handlers.NewServer(deps, app.Version)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
