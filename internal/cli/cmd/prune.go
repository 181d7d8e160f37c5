package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/dockpop/internal/cli/model"
	"github.com/bnema/dockpop/internal/cli/styles"
)

var (
	pruneMaxAge time.Duration
	pruneYes    bool
)

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove stale handoff payloads",
	Long: `Deletes handoff payloads older than storage.payload_max_age_minutes.

A payload is left behind when its popout window never started. --max-age
overrides the configured age for this run. Without --yes the stale payloads
are listed and removed only after confirmation.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		maxAge := a.Config.Storage.PayloadMaxAge()
		if pruneMaxAge > 0 {
			maxAge = pruneMaxAge
		}
		backend := string(a.Config.Storage.Backend)

		if !pruneYes {
			m := model.NewPruneModel(a.Ctx(), a.Theme, a.Transfer, maxAge, backend)
			p := tea.NewProgram(m, tea.WithContext(a.Ctx()), tea.WithOutput(cmd.OutOrStdout()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("prune: %w", err)
			}
			if pm, ok := final.(model.PruneModel); ok {
				return pm.Err()
			}
			return nil
		}

		r := styles.NewConfigRenderer(a.Theme)
		removed, err := a.Transfer.Prune(a.Ctx(), maxAge)
		if err != nil {
			fmt.Fprint(cmd.OutOrStdout(), r.RenderError(err))
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), r.RenderPruned(removed, backend))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pruneCmd)
	pruneCmd.Flags().DurationVar(&pruneMaxAge, "max-age", 0, "remove payloads older than this (default: from config)")
	pruneCmd.Flags().BoolVarP(&pruneYes, "yes", "y", false, "remove without asking for confirmation")
}
