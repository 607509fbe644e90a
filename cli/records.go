// ABOUTME: Record subcommands over the entity tables
// ABOUTME: Implements list, delete, and export against the REST backend
package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/export"
	"github.com/harperreed/freightdesk/notify"
)

var entityHelp = "one of " + strings.Join(entities.Names, ", ")

// openTable builds and fetches one table. A failed fetch has already
// been reported through n.
func (a *App) openTable(cmd *cobra.Command, name string, n notify.Notifier) (entities.Table, error) {
	deps, err := a.deps(n)
	if err != nil {
		return nil, err
	}
	t, err := entities.New(name, deps)
	if err != nil {
		return nil, err
	}
	if outcome := t.Fetch(cmd.Context()); outcome != controller.OutcomeOK {
		return nil, fmt.Errorf("failed to load %s: %s", t.Name(), outcome)
	}
	return t, nil
}

type viewFlags struct {
	query string
	sort  string
	desc  bool
	page  int
}

func (f *viewFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.query, "query", "q", "", "search text")
	cmd.Flags().StringVar(&f.sort, "sort", "", "field to sort by")
	cmd.Flags().BoolVar(&f.desc, "desc", false, "sort descending")
}

func (f *viewFlags) apply(t entities.Table) {
	t.SetSearch(f.query)
	if f.sort != "" {
		t.HandleSort(f.sort)
		if f.desc {
			t.HandleSort(f.sort)
		}
	}
	if f.page > 0 {
		t.SetPage(f.page)
	}
}

func newListCommand(app *App) *cobra.Command {
	var flags viewFlags
	var all bool
	cmd := &cobra.Command{
		Use:   "list <entity>",
		Short: "List records (" + entityHelp + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.openTable(cmd, args[0], app.stdio(false))
			if err != nil {
				return err
			}
			flags.apply(t)

			rows := t.Rows()
			if all {
				rows = t.All()
			}
			out := cmd.OutOrStdout()
			if len(rows) == 0 {
				fmt.Fprintf(out, "No %s found\n", t.Name())
				return nil
			}
			printRows(out, t.Columns(), rows)

			if all {
				fmt.Fprintf(out, "\nTotal: %d record(s)\n", len(rows))
			} else {
				fmt.Fprintf(out, "\nPage %d of %d (%d record(s))\n", t.Page(), t.TotalPages(), len(t.All()))
			}
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().IntVarP(&flags.page, "page", "p", 1, "page number")
	cmd.Flags().BoolVar(&all, "all", false, "print every matching record")
	return cmd
}

func printRows(out io.Writer, columns []entities.Column, rows []entities.Row) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	header := []string{"ID"}
	rule := []string{"--"}
	for _, c := range columns {
		header = append(header, strings.ToUpper(c.Title))
		rule = append(rule, strings.Repeat("-", len(c.Title)))
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))
	_, _ = fmt.Fprintln(w, strings.Join(rule, "\t"))

	for _, r := range rows {
		cells := []string{strconv.FormatInt(r.ID, 10)}
		for _, c := range columns {
			v := r.Text(c.Key)
			if v == "" {
				v = "-"
			}
			cells = append(cells, v)
		}
		_, _ = fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	_ = w.Flush()
}

func newDeleteCommand(app *App) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete <entity> <id>...",
		Short: "Delete records by id after confirmation",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args)-1)
			for _, arg := range args[1:] {
				id, err := strconv.ParseInt(arg, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid id %q: %w", arg, err)
				}
				ids = append(ids, id)
			}

			t, err := app.openTable(cmd, args[0], app.stdio(yes))
			if err != nil {
				return err
			}
			for _, id := range ids {
				if _, ok := t.Record(id); !ok {
					return fmt.Errorf("%s %d not found", t.Singular(), id)
				}
				t.ToggleSelect(id)
			}

			switch outcome := t.DeleteSelected(cmd.Context()); outcome {
			case controller.OutcomeOK, controller.OutcomeCancelled:
				return nil
			default:
				return fmt.Errorf("delete failed: %s", outcome)
			}
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newExportCommand(app *App) *cobra.Command {
	var flags viewFlags
	var out string
	cmd := &cobra.Command{
		Use:   "export <entity>",
		Short: "Export the filtered, sorted records to an XLSX file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.openTable(cmd, args[0], app.stdio(false))
			if err != nil {
				return err
			}
			flags.apply(t)

			path := out
			if path == "" {
				path = t.Name() + ".xlsx"
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", path, err)
			}
			if err := export.WriteXLSX(f, t); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", len(t.All()), t.Name(), path)
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default <entity>.xlsx)")
	return cmd
}
