// ABOUTME: Dashboard subcommand
// ABOUTME: Fetches every table in parallel and prints the overview
package cli

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/notify"
	"github.com/harperreed/freightdesk/viz"
)

func newDashboardCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the lead pipeline, record counts, and expiring insurance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Per-table load failures show up as unavailable, not as alerts.
			deps, err := app.deps(notify.Discard{})
			if err != nil {
				return err
			}
			tables := entities.All(deps)

			var mu sync.Mutex
			loaded := map[string]bool{}
			var g errgroup.Group
			for _, t := range tables {
				g.Go(func() error {
					ok := t.Fetch(cmd.Context()) == controller.OutcomeOK
					mu.Lock()
					loaded[t.Name()] = ok
					mu.Unlock()
					return nil
				})
			}
			_ = g.Wait()

			stats := viz.GenerateDashboardStats(tables, loaded, time.Now())
			fmt.Fprint(cmd.OutOrStdout(), viz.RenderDashboard(stats))
			return nil
		},
	}
}
