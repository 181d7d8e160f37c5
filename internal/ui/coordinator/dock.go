package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/application/usecase"
	"github.com/bnema/dockpop/internal/cache"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/domain/service"
	"github.com/bnema/dockpop/internal/logging"
	"github.com/bnema/dockpop/internal/ui/popout"
)

// DockCoordinator owns the main layout tree, its detached-node cache and the
// popouts opened from it. Main-loop only.
type DockCoordinator struct {
	ctx        context.Context
	tree       *entity.LayoutTree
	cache      *cache.DetachedNodeCache
	detachUC   *usecase.DetachPaneUseCase
	reattachUC *usecase.ReattachPaneUseCase

	host        port.WindowHost
	transfer    port.ConfigTransfer
	scheduler   port.Scheduler
	settings    popout.Settings
	defaultSize entity.Dimensions
	idGenerator usecase.IDGenerator
	layoutFlags entity.LayoutSettings

	pending  []entity.PopoutConfig
	popouts  []*popout.Popout
	onChange func()
}

// DockCoordinatorConfig holds configuration for DockCoordinator.
type DockCoordinatorConfig struct {
	Host      port.WindowHost
	Transfer  port.ConfigTransfer
	Scheduler port.Scheduler
	Settings  popout.Settings
	// DefaultSize is used when a pop-out request carries no size.
	DefaultSize entity.Dimensions
	// ClosePopoutsOnUnload closes every popout on Shutdown.
	ClosePopoutsOnUnload bool
	// IDGenerator defaults to UUIDs.
	IDGenerator usecase.IDGenerator
}

var _ popout.Reattacher = (*DockCoordinator)(nil)

// NewDockCoordinator loads layout into a fresh tree. Popouts recorded in the
// layout are reopened by Start.
func NewDockCoordinator(ctx context.Context, cfg DockCoordinatorConfig, layout entity.LayoutConfig) *DockCoordinator {
	log := logging.FromContext(ctx)
	log.Debug().
		Int("items", len(layout.Content)).
		Int("open_popouts", len(layout.OpenPopouts)).
		Msg("creating dock coordinator")

	gen := cfg.IDGenerator
	if gen == nil {
		gen = usecase.UUIDGenerator()
	}
	layout = layout.Clone()

	settings := cfg.Settings
	settings.BlockedPopoutsThrowError = settings.BlockedPopoutsThrowError || layout.Settings.BlockedPopoutsThrowError

	return &DockCoordinator{
		ctx:         logging.WithComponent(ctx, "dock"),
		tree:        entity.Load(layout),
		cache:       cache.NewDetachedNodeCache(),
		detachUC:    usecase.NewDetachPaneUseCase(gen),
		reattachUC:  usecase.NewReattachPaneUseCase(),
		host:        cfg.Host,
		transfer:    cfg.Transfer,
		scheduler:   cfg.Scheduler,
		settings:    settings,
		defaultSize: cfg.DefaultSize,
		idGenerator: gen,
		layoutFlags: entity.LayoutSettings{
			BlockedPopoutsThrowError: settings.BlockedPopoutsThrowError,
			ClosePopoutsOnUnload:     cfg.ClosePopoutsOnUnload || layout.Settings.ClosePopoutsOnUnload,
		},
		pending: layout.OpenPopouts,
	}
}

// SetOnChange sets the callback run after the main tree changed.
func (c *DockCoordinator) SetOnChange(fn func()) {
	c.onChange = fn
}

// Tree returns the main layout tree.
func (c *DockCoordinator) Tree() *entity.LayoutTree { return c.tree }

// Cache returns the detached-node cache of the main tree.
func (c *DockCoordinator) Cache() *cache.DetachedNodeCache { return c.cache }

// Popouts returns the popouts that have not closed yet.
func (c *DockCoordinator) Popouts() []*popout.Popout {
	return append([]*popout.Popout(nil), c.popouts...)
}

// Start reopens the popouts recorded in the loaded layout. Every popout is
// attempted; the failures are joined.
func (c *DockCoordinator) Start(ctx context.Context) error {
	pending := c.pending
	c.pending = nil

	var errs []error
	for i, cfg := range pending {
		if _, err := c.openPopout(ctx, cfg); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Int("index", i).Msg("failed to reopen popout")
			errs = append(errs, fmt.Errorf("reopen popout %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// PopOut detaches the item with itemID and opens it in a new window. A zero
// width or height takes the default size. When the window cannot be opened
// the item is docked again; a tolerated block returns the Blocked popout with
// a nil error.
func (c *DockCoordinator) PopOut(ctx context.Context, itemID string, dims entity.Dimensions) (*popout.Popout, error) {
	log := logging.FromContext(ctx)

	res := service.FindByID(c.tree, c.tree.Root(), itemID)
	if !res.Found {
		return nil, fmt.Errorf("pop out %q: %w", itemID, entity.ErrNodeNotFound)
	}

	out, err := c.detachUC.Execute(ctx, usecase.DetachPaneInput{
		Tree:  c.tree,
		Cache: c.cache,
		Node:  res.Node,
	})
	if err != nil {
		return nil, fmt.Errorf("pop out %q: %w", itemID, err)
	}
	c.changed()

	if dims.Width <= 0 || dims.Height <= 0 {
		dims.Width, dims.Height = c.defaultSize.Width, c.defaultSize.Height
	}
	cfg := entity.PopoutConfig{
		Dimensions:    dims,
		Content:       []entity.ItemConfig{out.Config},
		ParentID:      out.ParentID,
		IndexInParent: out.IndexInParent,
	}

	p, err := c.openPopout(ctx, cfg)
	if err != nil {
		c.redock(ctx, cfg)
		return nil, fmt.Errorf("pop out %q: %w", itemID, err)
	}
	if p.State() == entity.PopoutBlocked {
		log.Info().Str("item_id", itemID).Msg("popout blocked, docking item again")
		c.redock(ctx, cfg)
	}
	return p, nil
}

func (c *DockCoordinator) redock(ctx context.Context, cfg entity.PopoutConfig) {
	err := c.Reattach(ctx, popout.ReattachRequest{
		ParentID:      cfg.ParentID,
		IndexInParent: cfg.IndexInParent,
		Content:       cfg.Content,
	})
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Msg("failed to dock item again, content lost")
	}
}

func (c *DockCoordinator) openPopout(ctx context.Context, cfg entity.PopoutConfig) (*popout.Popout, error) {
	p := popout.New(cfg, c.settings, popout.Deps{
		Host:        c.host,
		Transfer:    c.transfer,
		Scheduler:   c.scheduler,
		Reattacher:  c,
		IDGenerator: c.idGenerator,
	})
	if err := p.Open(ctx); err != nil {
		return nil, err
	}
	if p.State() == entity.PopoutBlocked {
		return p, nil
	}

	c.popouts = append(c.popouts, p)
	p.On(popout.EventClosed, func() { c.forget(p) })
	logging.FromContext(ctx).Debug().
		Str("popout_id", p.ID()).
		Str("parent_id", cfg.ParentID).
		Int("count", len(c.popouts)).
		Msg("popout tracked")
	return p, nil
}

func (c *DockCoordinator) forget(p *popout.Popout) {
	for i, other := range c.popouts {
		if other == p {
			c.popouts = append(c.popouts[:i], c.popouts[i+1:]...)
			logging.FromContext(c.ctx).Debug().Str("popout_id", p.ID()).Msg("popout forgotten")
			return
		}
	}
}

// Reattach implements popout.Reattacher.
func (c *DockCoordinator) Reattach(ctx context.Context, req popout.ReattachRequest) error {
	out, err := c.reattachUC.Execute(ctx, usecase.ReattachPaneInput{
		Tree:          c.tree,
		Cache:         c.cache,
		ParentID:      req.ParentID,
		IndexInParent: req.IndexInParent,
		Content:       req.Content,
	})
	if err != nil {
		return err
	}
	if out.Path == usecase.ReattachDiscarded {
		logging.FromContext(ctx).Warn().Str("parent_id", req.ParentID).Msg("popped-in content discarded")
		return nil
	}
	c.changed()
	return nil
}

// PopIn returns the popout with popoutID to the main layout.
func (c *DockCoordinator) PopIn(ctx context.Context, popoutID string) error {
	for _, p := range c.popouts {
		if p.ID() == popoutID {
			return p.PopIn(ctx)
		}
	}
	return fmt.Errorf("pop in %q: unknown popout", popoutID)
}

// ToConfig serialises the main tree and every ready popout.
func (c *DockCoordinator) ToConfig(ctx context.Context) entity.LayoutConfig {
	cfg := c.tree.ToConfig()
	cfg.Settings = c.layoutFlags
	for _, p := range c.popouts {
		pc, err := p.ToConfig()
		if err != nil {
			logging.FromContext(ctx).Debug().Err(err).Str("popout_id", p.ID()).Msg("skipping popout in layout config")
			continue
		}
		cfg.OpenPopouts = append(cfg.OpenPopouts, pc)
	}
	return cfg
}

// CloseAll closes every popout window. Their content is not docked again.
func (c *DockCoordinator) CloseAll() {
	for _, p := range c.Popouts() {
		p.Close()
	}
}

// Shutdown is called when the main layout goes away.
func (c *DockCoordinator) Shutdown(ctx context.Context) {
	if !c.layoutFlags.ClosePopoutsOnUnload {
		logging.FromContext(ctx).Debug().Int("popouts", len(c.popouts)).Msg("leaving popouts open")
		return
	}
	c.CloseAll()
}

func (c *DockCoordinator) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
