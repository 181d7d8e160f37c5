// Package cmd provides Cobra CLI commands for dockpop.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpop/internal/cli"
)

var (
	app     *cli.App
	rootCmd = &cobra.Command{
		Use:   "dockpop",
		Short: "Detachable docking panes with pop-out windows",
		Long: `dockpop - pop panes of a docking layout out into their own windows
and back again.

Layouts are trees of rows, columns, stacks and components. Popping out a
pane cuts it from the tree, hands its config to a new window and, on pop-in,
puts it back where it used to live.

Windows are simulated by an in-process host, so every command runs without
a display.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch cmd.Name() {
			case "help", "completion":
				return nil
			}
			if app != nil {
				return nil
			}

			var err error
			app, err = cli.NewApp()
			if err != nil {
				return fmt.Errorf("initialize app: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app != nil {
				_ = app.Close()
			}
		},
	}
)

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// GetApp returns the initialized app (for use by subcommands).
func GetApp() *cli.App {
	return app
}

// SetVersion sets the string printed by --version (called from main.go before Execute).
func SetVersion(v string) {
	rootCmd.Version = v
}
