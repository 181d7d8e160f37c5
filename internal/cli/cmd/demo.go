package cmd

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/cli"
	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/infrastructure/headless"
	"github.com/bnema/dockpop/internal/infrastructure/transfer"
	"github.com/bnema/dockpop/internal/logging"
	"github.com/bnema/dockpop/internal/ui/coordinator"
	"github.com/bnema/dockpop/internal/ui/mainloop"
	"github.com/bnema/dockpop/internal/ui/popout"
)

//go:embed sample_layout.json
var sampleLayout []byte

const demoBootDelay = 20 * time.Millisecond

type demoOptions struct {
	LayoutFile  string
	Pane        string
	Block       bool
	Fatal       bool
	CloseWindow bool
	SavePath    string
	Realtime    bool
}

var demoOpts demoOptions

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Pop a pane out of a layout and back in",
	Long: `Runs one pop-out / pop-in round trip against a headless window host and
prints the layout after each step.

Without --layout a built-in sample layout is used. --block simulates a
popup blocker; with --fatal the blocked window is reported as an error.
--close-window closes the popout instead of popping it in, dropping its
content. --realtime drives the timers from a wall-clock main loop.

Examples:
  dockpop demo
  dockpop demo --pane dock.go
  dockpop demo --layout my-layout.json --pane logs --save after.json`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		return runDemo(a.Ctx(), a, demoOpts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().StringVarP(&demoOpts.LayoutFile, "layout", "l", "", "layout JSON file (default: built-in sample)")
	demoCmd.Flags().StringVarP(&demoOpts.Pane, "pane", "p", "terminal", "id of the item to pop out")
	demoCmd.Flags().BoolVar(&demoOpts.Block, "block", false, "refuse to open popout windows")
	demoCmd.Flags().BoolVar(&demoOpts.Fatal, "fatal", false, "treat blocked popouts as an error")
	demoCmd.Flags().BoolVar(&demoOpts.CloseWindow, "close-window", false, "close the popout instead of popping it in")
	demoCmd.Flags().StringVar(&demoOpts.SavePath, "save", "", "write the layout config with the open popout to this file")
	demoCmd.Flags().BoolVar(&demoOpts.Realtime, "realtime", false, "run on a wall-clock main loop instead of virtual time")
}

func loadDemoLayout(path string) (entity.LayoutConfig, error) {
	if path == "" {
		return transfer.DecodeLayout(sampleLayout)
	}
	return transfer.ReadLayoutFile(path)
}

func runDemo(ctx context.Context, a *cli.App, opts demoOptions, w io.Writer) error {
	ctx = logging.WithComponent(ctx, "demo")
	log := logging.FromContext(ctx)

	layout, err := loadDemoLayout(opts.LayoutFile)
	if err != nil {
		return err
	}

	settings := a.PopoutSettings()
	settings.BlockedPopoutsThrowError = settings.BlockedPopoutsThrowError || opts.Fatal

	var clock demoClock
	if opts.Realtime {
		loop := mainloop.NewLoop(0)
		loopCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() {
			if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
				log.Warn().Err(err).Msg("main loop stopped")
			}
		}()
		clock = &loopClock{loop: loop}
	} else {
		clock = &virtualClock{sched: mainloop.NewVirtual()}
	}

	var (
		dock    *coordinator.DockCoordinator
		p       *popout.Popout
		changes int
		stepErr error
		blocked bool
	)
	r := styles.NewLayoutRenderer(a.Theme)
	show := func(withCache bool) {
		fmt.Fprint(w, r.RenderTree(dock.Tree()))
		if withCache {
			fmt.Fprint(w, r.RenderCache(dock.Cache().Entries()))
		}
		fmt.Fprintln(w, styles.RenderPopoutTable(a.Theme, popoutRows(dock.Popouts())))
	}

	err = clock.do(ctx, func() {
		host := headless.NewHost(ctx, clock.scheduler(), a.Transfer, headless.Options{BootDelay: demoBootDelay})
		host.SetBlocked(opts.Block)
		dock = coordinator.NewDockCoordinator(ctx, coordinator.DockCoordinatorConfig{
			Host:                 host,
			Transfer:             a.Transfer,
			Scheduler:            clock.scheduler(),
			Settings:             settings,
			DefaultSize:          a.DefaultPopoutSize(),
			ClosePopoutsOnUnload: a.Config.Popout.ClosePopoutsOnUnload,
		}, layout)
		dock.SetOnChange(func() { changes++ })
		if err := dock.Start(ctx); err != nil {
			fmt.Fprintln(w, r.RenderError(err))
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = clock.do(ctx, func() { dock.Shutdown(ctx) }) }()
	clock.wait(settleTime(settings))

	if err := clock.do(ctx, func() {
		fmt.Fprint(w, r.RenderStep(1, "initial layout"))
		show(false)

		fmt.Fprint(w, r.RenderStep(2, styles.IconPopOut+" pop out "+opts.Pane))
		p, stepErr = dock.PopOut(ctx, opts.Pane, entity.Dimensions{})
		if stepErr != nil {
			fmt.Fprintln(w, r.RenderError(stepErr))
			fmt.Fprint(w, r.RenderTree(dock.Tree()))
			return
		}
		if blocked = p.State() == entity.PopoutBlocked; blocked {
			fmt.Fprintln(w, r.RenderNote(styles.IconBlocked+" window blocked, item docked again"))
			fmt.Fprint(w, r.RenderTree(dock.Tree()))
		}
	}); err != nil {
		return err
	}
	if stepErr != nil {
		return stepErr
	}
	if blocked {
		return nil
	}
	clock.wait(settleTime(settings))

	if err := clock.do(ctx, func() {
		show(true)
		if opts.SavePath != "" {
			if stepErr = saveLayout(opts.SavePath, dock.ToConfig(ctx)); stepErr != nil {
				return
			}
			fmt.Fprintln(w, r.RenderNote("layout saved to "+opts.SavePath))
		}

		if opts.CloseWindow {
			fmt.Fprint(w, r.RenderStep(3, styles.IconX+" close popout window"))
			p.Close()
			return
		}
		fmt.Fprint(w, r.RenderStep(3, styles.IconPopIn+" pop in "+opts.Pane))
		if stepErr = dock.PopIn(ctx, p.ID()); stepErr != nil {
			fmt.Fprintln(w, r.RenderError(stepErr))
		}
	}); err != nil {
		return err
	}
	if stepErr != nil {
		return stepErr
	}
	clock.wait(settleTime(settings))

	return clock.do(ctx, func() {
		show(true)
		log.Debug().Int("changes", changes).Str("state", p.State().String()).Msg("demo finished")
	})
}

// settleTime is long enough for windows to boot, readiness polls to fire
// and unload debounces to elapse.
func settleTime(settings popout.Settings) time.Duration {
	return demoBootDelay + 2*settings.PollInterval + 2*settings.CloseDelay
}

// demoClock runs demo steps on the layout's main loop.
type demoClock interface {
	scheduler() port.Scheduler
	do(ctx context.Context, fn func()) error
	wait(d time.Duration)
}

type virtualClock struct {
	sched *mainloop.Virtual
}

func (c *virtualClock) scheduler() port.Scheduler { return c.sched }

func (c *virtualClock) do(_ context.Context, fn func()) error {
	fn()
	return nil
}

func (c *virtualClock) wait(d time.Duration) { c.sched.Advance(d) }

type loopClock struct {
	loop *mainloop.Loop
}

func (c *loopClock) scheduler() port.Scheduler { return c.loop }

func (c *loopClock) do(ctx context.Context, fn func()) error {
	return c.loop.Invoke(ctx, fn)
}

func (c *loopClock) wait(d time.Duration) { time.Sleep(d) }

func popoutRows(popouts []*popout.Popout) []styles.PopoutRow {
	rows := make([]styles.PopoutRow, 0, len(popouts))
	for _, p := range popouts {
		rows = append(rows, styles.PopoutRow{
			ID:            p.ID(),
			State:         p.State().String(),
			ParentID:      p.ParentID(),
			IndexInParent: p.IndexInParent(),
			Key:           p.Key(),
		})
	}
	return rows
}

func saveLayout(path string, cfg entity.LayoutConfig) error {
	data, err := transfer.EncodeLayout(cfg)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("save layout: %w", err)
	}
	return nil
}
