// ABOUTME: Root cobra command and shared application wiring
// ABOUTME: Loads config, logger, and token storage before any surface starts
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/charm"
	"github.com/harperreed/freightdesk/config"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/logging"
	"github.com/harperreed/freightdesk/notify"
)

// App holds what every command shares. Fields left nil are filled in from
// the environment when a command runs.
type App struct {
	Version string

	Config *config.Config
	Logger *zap.Logger
	Tokens *charm.TokenStore
	In     io.Reader
	Out    io.Writer

	configPath string
	verbose    bool
}

// NewRootCommand builds the command tree.
func NewRootCommand(app *App) *cobra.Command {
	if app.In == nil {
		app.In = os.Stdin
	}
	if app.Out == nil {
		app.Out = os.Stdout
	}

	root := &cobra.Command{
		Use:           "freight",
		Short:         "Freight brokerage back office",
		Long:          "Browse, search, edit, and delete freight back-office records over the REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup()
		},
	}
	root.SetIn(app.In)
	root.SetOut(app.Out)
	root.SetErr(app.Out)

	root.PersistentFlags().StringVar(&app.configPath, "config", config.DefaultPath(), "config file path")
	root.PersistentFlags().BoolVarP(&app.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newTUICommand(app),
		newListCommand(app),
		newDeleteCommand(app),
		newExportCommand(app),
		newDashboardCommand(app),
		newTokenCommand(app),
		newMCPCommand(app),
		newVersionCommand(app),
	)
	return root
}

func (a *App) setup() error {
	if a.Config == nil {
		cfg, err := config.Load(a.configPath)
		if err != nil {
			return err
		}
		a.Config = cfg
	}
	if a.verbose {
		a.Config.Verbose = true
	}

	if a.Logger == nil {
		logger, err := logging.New(a.Config)
		if err != nil {
			return err
		}
		a.Logger = logger
	}

	if a.Tokens == nil {
		charmCfg, err := charm.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load charm config: %w", err)
		}
		if a.Config.CharmHost != "" {
			charmCfg.Host = a.Config.CharmHost
		}
		client, err := charm.Open(charmCfg)
		if err != nil {
			return err
		}
		a.Tokens = charm.NewTokenStore(client)
	}
	return nil
}

// deps wires the backend. It fails when no API base URL is configured.
func (a *App) deps(n notify.Notifier) (entities.Deps, error) {
	if err := a.Config.Validate(); err != nil {
		return entities.Deps{}, err
	}
	backend := api.New(a.Config.APIBaseURL, a.Tokens, api.WithLogger(a.Logger))
	return entities.Deps{
		Backend:  backend,
		Notifier: n,
		Logger:   a.Logger,
		FileBase: a.Config.FileBaseURL,
	}, nil
}

func (a *App) stdio(assumeYes bool) *notify.Stdio {
	return &notify.Stdio{In: a.In, Out: a.Out, AssumeYes: assumeYes}
}

func newVersionCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "freight version %s\n", app.Version)
		},
	}
}
