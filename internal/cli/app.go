// Package cli wires configuration, logging and storage for the dockpop CLI.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/repository"
	"github.com/bnema/dockpop/internal/infrastructure/config"
	"github.com/bnema/dockpop/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dockpop/internal/infrastructure/transfer"
	"github.com/bnema/dockpop/internal/logging"
	"github.com/bnema/dockpop/internal/ui/popout"
)

// App holds CLI dependencies.
type App struct {
	Config   *config.Config
	Manager  *config.Manager
	Theme    *styles.Theme
	Handoffs repository.HandoffRepository
	Transfer *transfer.Channel

	lazyDB *sqlite.LazyDB
	ctx    context.Context
}

// NewApp creates a new CLI application with all dependencies.
func NewApp() (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, fmt.Errorf("create config manager: %w", err)
	}
	if err := mgr.Load(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewAppFromConfig(mgr, mgr.Get())
}

// NewAppFromConfig builds an App around an already loaded config. mgr may be
// nil when the caller never saves or watches the file.
func NewAppFromConfig(mgr *config.Manager, cfg *config.Config) (*App, error) {
	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	app := &App{
		Config:  cfg,
		Manager: mgr,
		Theme:   styles.NewTheme(),
		ctx:     ctx,
	}

	switch cfg.Storage.Backend {
	case config.StorageBackendMemory:
		app.Handoffs = transfer.NewMemoryStore()
	case config.StorageBackendSQLite:
		app.lazyDB = sqlite.NewLazyDB(cfg.Storage.Path)
		app.Handoffs = sqlite.NewLazyHandoffRepository(app.lazyDB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	app.Transfer = transfer.NewChannel(app.Handoffs)

	logger.Debug().
		Str("backend", string(cfg.Storage.Backend)).
		Str("path", cfg.Storage.Path).
		Msg("cli app ready")
	return app, nil
}

// Close releases all resources.
func (a *App) Close() error {
	if a.lazyDB != nil {
		return a.lazyDB.Close()
	}
	return nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// PopoutSettings converts the popout section of the config.
func (a *App) PopoutSettings() popout.Settings {
	p := a.Config.Popout
	return popout.Settings{
		BlockedPopoutsThrowError: p.BlockedPopoutsThrowError,
		PollInterval:             p.PollInterval(),
		CloseDelay:               p.CloseDelay(),
		ReadinessTimeout:         p.ReadinessTimeout(),
		BaseURL:                  p.BaseURL,
	}
}

// DefaultPopoutSize returns the configured size of a new popout window.
func (a *App) DefaultPopoutSize() entity.Dimensions {
	return entity.Dimensions{
		Width:  a.Config.Popout.DefaultWidth,
		Height: a.Config.Popout.DefaultHeight,
	}
}
