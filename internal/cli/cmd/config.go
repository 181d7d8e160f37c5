package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/infrastructure/config"
	"github.com/bnema/dockpop/internal/logging"
)

var (
	configForce       bool
	configSchemaWrite bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View the effective configuration, write a default file or watch for changes.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the config file path and effective settings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		path, err := config.GetConfigFile()
		if err != nil {
			return err
		}
		renderConfig(styles.NewConfigRenderer(a.Theme), path, a.Config, cmd.OutOrStdout())
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.GetConfigFile()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Long: `Writes the default settings to the config file.

An existing file is kept unless --force is given.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		path, err := config.GetConfigFile()
		if err != nil {
			return err
		}
		return runConfigInit(styles.NewConfigRenderer(a.Theme), path, configForce, cmd.OutOrStdout())
	},
}

var configWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Print the effective settings every time the config file changes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		if a.Manager == nil {
			return fmt.Errorf("config manager not available")
		}
		ctx, stop := signal.NotifyContext(a.Ctx(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runConfigWatch(ctx, a.Manager, styles.NewConfigRenderer(a.Theme), cmd.OutOrStdout())
	},
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	Long: `Prints a JSON schema describing config.toml, for editor validation.

With --write the schema is saved as config.schema.json next to the config
file instead.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp()
		if a == nil {
			return fmt.Errorf("app not initialized")
		}
		path := ""
		if configSchemaWrite {
			paths, err := config.ResolvePaths()
			if err != nil {
				return err
			}
			path = paths.SchemaFile()
		}
		return runConfigSchema(styles.NewConfigRenderer(a.Theme), path, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd, configWatchCmd, configSchemaCmd)
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing config file")
	configSchemaCmd.Flags().BoolVarP(&configSchemaWrite, "write", "w", false, "write config.schema.json next to the config file")
}

func renderConfig(r *styles.ConfigRenderer, path string, cfg *config.Config, w io.Writer) {
	fmt.Fprint(w, r.RenderConfigInfo(path))
	fmt.Fprint(w, r.RenderValues(configValues(cfg)))
}

func configValues(cfg *config.Config) []styles.ConfigValue {
	p, s, l := cfg.Popout, cfg.Storage, cfg.Logging
	return []styles.ConfigValue{
		{Key: "popout.blocked_popouts_throw_error", Value: strconv.FormatBool(p.BlockedPopoutsThrowError)},
		{Key: "popout.close_popouts_on_unload", Value: strconv.FormatBool(p.ClosePopoutsOnUnload)},
		{Key: "popout.poll_interval", Value: p.PollInterval().String()},
		{Key: "popout.close_delay", Value: p.CloseDelay().String()},
		{Key: "popout.readiness_timeout", Value: p.ReadinessTimeout().String()},
		{Key: "popout.base_url", Value: p.BaseURL},
		{Key: "popout.default_size", Value: fmt.Sprintf("%dx%d", p.DefaultWidth, p.DefaultHeight)},
		{Key: "storage.backend", Value: string(s.Backend)},
		{Key: "storage.path", Value: s.Path},
		{Key: "storage.payload_max_age", Value: s.PayloadMaxAge().String()},
		{Key: "logging.level", Value: l.Level},
		{Key: "logging.format", Value: l.Format},
	}
}

func runConfigInit(r *styles.ConfigRenderer, path string, force bool, w io.Writer) error {
	if _, err := os.Stat(path); err == nil && !force {
		fmt.Fprint(w, r.RenderExists(path))
		return nil
	}
	if err := config.WriteConfigOrdered(config.DefaultConfig(), path); err != nil {
		fmt.Fprint(w, r.RenderError(err))
		return err
	}
	fmt.Fprint(w, r.RenderCreated(path))
	return nil
}

// runConfigSchema prints the schema, or writes it to path when path is set.
func runConfigSchema(r *styles.ConfigRenderer, path string, w io.Writer) error {
	if path == "" {
		data, err := config.MarshalSchema()
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	if err := config.WriteSchemaFile(path); err != nil {
		fmt.Fprint(w, r.RenderError(err))
		return err
	}
	fmt.Fprint(w, r.RenderSchemaWritten(path))
	return nil
}

func runConfigWatch(ctx context.Context, mgr *config.Manager, r *styles.ConfigRenderer, w io.Writer) error {
	log := logging.FromContext(ctx)
	changes := make(chan *config.Config, 1)
	mgr.OnConfigChange(func(cfg *config.Config) {
		select {
		case changes <- cfg:
		default:
		}
	})
	if err := mgr.Watch(); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}

	path := mgr.GetConfigFile()
	log.Info().Str("path", path).Msg("watching config file")
	for {
		select {
		case <-ctx.Done():
			return nil
		case cfg := <-changes:
			renderConfig(r, path, cfg, w)
		}
	}
}
