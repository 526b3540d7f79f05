// Package cli is the todo command. With no subcommand it opens the TUI.
package cli

import (
	"context"
	"fmt"
	"io"
	"listo/internal/client"
	"listo/internal/mirror"
	"listo/internal/tui"
	"listo/shared/logger"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

type App struct {
	ConfigPath    string
	Server        string
	List          string
	ShowCompleted bool
	NewestFirst   bool

	cfg        Config
	mirror     *mirror.Mirror
	alerts     tui.Alerts
	httpClient *http.Client
	logFile    io.Closer
	alerted    bool
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &App{}
	cmd := NewRootCmd(app)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !app.alerted {
			fmt.Fprintln(cmd.ErrOrStderr(), failStyle.Render("✖ "+err.Error()))
		}

		return 1
	}

	return 0
}

func NewRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Personal to-do lists",
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: strings.TrimSpace(`
  # Open the interactive TUI
  todo

  # Script it
  todo add-list Groceries
  todo add groceries Milk
  todo done groceries 1
`),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return app.setup(cmd)
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return app.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return tui.Run(cmd.Context(), app.mirror, app.alerts, tui.Options{
				List:          app.List,
				ShowCompleted: app.cfg.ShowCompleted,
				Order:         app.cfg.ViewOrder(),
			})
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&app.ConfigPath, "config", DefaultConfigPath(), "config file")
	flags.StringVar(&app.Server, "server", "", "server URL (overrides the config file)")
	flags.BoolVar(&app.ShowCompleted, "show-completed", false, "show completed items")
	flags.BoolVar(&app.NewestFirst, "newest-first", false, "sort items newest first")
	cmd.Flags().StringVar(&app.List, "list", "", "open this list in the TUI")

	cmd.AddCommand(
		newListsCmd(app),
		newItemsCmd(app),
		newAddListCmd(app),
		newAddCmd(app),
		newSetCompletedCmd(app, "done", true),
		newSetCompletedCmd(app, "undone", false),
		newEditCmd(app),
		newMoveCmd(app),
		newRemoveCmd(app),
		newRenameListCmd(app),
		newRemoveListCmd(app),
	)

	return cmd
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(a.ConfigPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("server") {
		cfg.Server = a.Server
	}

	if flags.Changed("show-completed") {
		cfg.ShowCompleted = a.ShowCompleted
	}

	if flags.Changed("newest-first") {
		cfg.Order = orderOldest
		if a.NewestFirst {
			cfg.Order = orderNewest
		}
	}

	a.cfg = cfg

	if err := a.setupLogger(); err != nil {
		return err
	}

	interactive := !cmd.HasParent()
	errOut := cmd.ErrOrStderr()

	alert := func(message string) {
		a.alerted = true
		fmt.Fprintln(errOut, failStyle.Render("✖ "+message))
	}

	if interactive {
		a.alerts = tui.NewAlerts()
		alert = a.alerts.Send
	}

	a.mirror = mirror.New(client.New(cfg.Server, a.httpClient), mirror.WithAlert(alert))

	return nil
}

// setupLogger sends logs to the configured file. Without one they are dropped so
// they never mix with command output or the TUI.
func (a *App) setupLogger() error {
	if a.cfg.LogFile == "" {
		logger.InitLoggerTo(io.Discard)

		return nil
	}

	file, err := os.OpenFile(a.cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}

	a.logFile = file

	logger.InitLoggerTo(file)
	logger.SetLevel(a.cfg.LogLevel)

	return nil
}

func (a *App) close() error {
	if a.logFile == nil {
		return nil
	}

	err := a.logFile.Close()
	a.logFile = nil

	return err
}

// load fetches the lists every subcommand works on.
func (a *App) load(ctx context.Context) error {
	if err := a.mirror.Load(ctx); err != nil {
		return fmt.Errorf("loading lists: %w", err)
	}

	return nil
}
