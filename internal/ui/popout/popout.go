// Package popout drives one detached pane living in its own top-level
// window: handoff, readiness polling, positioning, close and pop-in.
package popout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/logging"
)

// StorageKeyPrefix prefixes every handoff payload key.
const StorageKeyPrefix = "gl-window-config-"

// Settings tune the popout lifecycle.
type Settings struct {
	// BlockedPopoutsThrowError makes a refused window an error for Open.
	BlockedPopoutsThrowError bool
	// PollInterval is the readiness check period.
	PollInterval time.Duration
	// CloseDelay debounces the unload signal before reporting closed.
	CloseDelay time.Duration
	// ReadinessTimeout bounds the readiness poll. Zero polls forever.
	ReadinessTimeout time.Duration
	// BaseURL is the document the popout window loads.
	BaseURL string
}

// DefaultSettings returns the standard timings.
func DefaultSettings() Settings {
	return Settings{
		PollInterval:     10 * time.Millisecond,
		CloseDelay:       50 * time.Millisecond,
		ReadinessTimeout: 30 * time.Second,
		BaseURL:          "http://localhost/",
	}
}

// ReattachRequest carries a popout's content back to the main layout.
type ReattachRequest struct {
	ParentID      string
	IndexInParent int
	Content       []entity.ItemConfig
}

// Reattacher splices popped-in content into the main layout.
type Reattacher interface {
	Reattach(ctx context.Context, req ReattachRequest) error
}

// Deps are the collaborators of a Popout.
type Deps struct {
	Host        port.WindowHost
	Transfer    port.ConfigTransfer
	Scheduler   port.Scheduler
	Reattacher  Reattacher
	IDGenerator func() string
	// Title overrides the random window name; used by tests.
	Title func() string
}

// Popout is the handle of one popout window. Main-loop only.
type Popout struct {
	ctx      context.Context
	id       string
	settings Settings
	deps     Deps

	content       []entity.ItemConfig
	dims          entity.Dimensions
	parentID      string
	indexInParent int

	state       entity.PopoutState
	key         string
	url         string
	window      port.PopoutWindow
	child       port.ChildLayout
	initialised bool

	pollTimer      port.Timer
	timeoutTimer   port.Timer
	closeRequested bool
	closeScheduled bool
	poppedIn       bool

	events *emitter
}

// New creates a popout handle in the Created state. The configuration is
// copied; later changes by the caller do not reach the popout.
func New(cfg entity.PopoutConfig, settings Settings, deps Deps) *Popout {
	if deps.IDGenerator == nil {
		panic("popout.New: IDGenerator cannot be nil")
	}
	if deps.Title == nil {
		deps.Title = randomTitle
	}
	own := cfg.Clone()
	return &Popout{
		ctx:           context.Background(),
		id:            deps.IDGenerator(),
		settings:      settings,
		deps:          deps,
		content:       own.Content,
		dims:          own.Dimensions,
		parentID:      own.ParentID,
		indexInParent: own.IndexInParent,
		state:         entity.PopoutCreated,
		events:        newEmitter(),
	}
}

// ID returns the popout's identifier.
func (p *Popout) ID() string { return p.id }

// State returns the lifecycle state.
func (p *Popout) State() entity.PopoutState { return p.state }

// IsInitialised reports whether the child layout was confirmed ready.
func (p *Popout) IsInitialised() bool { return p.initialised }

// ParentID returns the original parent id.
func (p *Popout) ParentID() string { return p.parentID }

// IndexInParent returns the original index in the parent.
func (p *Popout) IndexInParent() int { return p.indexInParent }

// Key returns the handoff payload key, empty before Open.
func (p *Popout) Key() string { return p.key }

// URL returns the handoff URL, empty before Open.
func (p *Popout) URL() string { return p.url }

// Window returns the platform window, if one was opened.
func (p *Popout) Window() (port.PopoutWindow, bool) {
	return p.window, p.window != nil
}

// On subscribes fn to event and returns the unsubscribe function.
func (p *Popout) On(event Event, fn func()) func() {
	return p.events.on(event, fn)
}

// Open persists the handoff payload and asks the host for a window.
// Storage failures and fatal blocks are returned; a tolerated block leaves
// the popout in the Blocked state and returns nil.
func (p *Popout) Open(ctx context.Context) error {
	if p.state != entity.PopoutCreated {
		return fmt.Errorf("open popout %s: already %s", p.id, p.state)
	}
	if p.deps.Host == nil || p.deps.Transfer == nil || p.deps.Scheduler == nil {
		return errors.New("open popout: host, transfer and scheduler are required")
	}
	p.ctx = logging.WithPopoutID(logging.WithComponent(ctx, "popout"), p.id)
	log := logging.FromContext(p.ctx)

	key := StorageKeyPrefix + p.deps.IDGenerator()
	payload := entity.LayoutConfig{Content: entity.CloneItems(p.content)}
	if err := p.deps.Transfer.Persist(ctx, key, payload); err != nil {
		var storageErr *entity.StorageError
		if !errors.As(err, &storageErr) {
			err = &entity.StorageError{Key: key, Err: err}
		}
		log.Error().Err(err).Str("key", key).Msg("failed to persist handoff payload")
		return err
	}

	url, err := p.deps.Transfer.BuildHandoffURL(p.settings.BaseURL, key)
	if err != nil {
		return fmt.Errorf("build handoff url: %w", err)
	}
	p.key = key
	p.url = url

	window, ok := p.deps.Host.Open(url, p.deps.Title(), windowOptions(p.dims))
	if !ok || window == nil {
		if p.settings.BlockedPopoutsThrowError {
			log.Warn().Str("url", url).Msg("popout blocked")
			return entity.ErrPopoutBlocked
		}
		p.state = entity.PopoutBlocked
		log.Info().Str("url", url).Msg("popout blocked, continuing without window")
		return nil
	}

	p.window = window
	p.state = entity.PopoutOpened
	window.OnLoad(p.positionWindow)
	window.OnUnload(p.onUnload)

	p.pollTimer = p.deps.Scheduler.Every(p.settings.PollInterval, p.checkReady)
	if p.settings.ReadinessTimeout > 0 {
		p.timeoutTimer = p.deps.Scheduler.After(p.settings.ReadinessTimeout, p.onReadinessTimeout)
	}

	log.Debug().
		Str("url", url).
		Int("width", p.dims.Width).
		Int("height", p.dims.Height).
		Msg("popout window opened")
	return nil
}

func (p *Popout) checkReady() {
	if p.state != entity.PopoutOpened || p.window == nil {
		return
	}
	child, ok := p.window.LayoutInstance()
	if !ok || child == nil || !child.IsInitialised() {
		return
	}
	p.onInitialised(child)
}

func (p *Popout) onInitialised(child port.ChildLayout) {
	p.stopPolling()
	p.child = child
	p.initialised = true
	p.state = entity.PopoutInitialized

	p.positionWindow()
	p.window.Focus()
	child.OnPopIn(func() {
		if err := p.PopIn(p.ctx); err != nil {
			logging.FromContext(p.ctx).Warn().Err(err).Msg("pop-in requested by window failed")
		}
	})

	logging.FromContext(p.ctx).Debug().Msg("popout initialised")
	p.events.emit(EventInitialised)
}

func (p *Popout) positionWindow() {
	if p.window == nil {
		return
	}
	p.window.MoveTo(p.dims.Left, p.dims.Top)
}

func (p *Popout) onReadinessTimeout() {
	p.timeoutTimer = nil
	if p.state != entity.PopoutOpened {
		return
	}
	logging.FromContext(p.ctx).Warn().
		Dur("timeout", p.settings.ReadinessTimeout).
		Msg("popout never became ready, closing window")
	p.Close()
}

// stopPolling cancels the readiness timers. The poll timer is stopped at
// most once.
func (p *Popout) stopPolling() {
	if p.pollTimer != nil {
		p.pollTimer.Stop()
		p.pollTimer = nil
	}
	if p.timeoutTimer != nil {
		p.timeoutTimer.Stop()
		p.timeoutTimer = nil
	}
}

func (p *Popout) onUnload() {
	if p.closeScheduled {
		return
	}
	p.closeScheduled = true
	p.stopPolling()
	p.deps.Scheduler.After(p.settings.CloseDelay, func() {
		if p.state == entity.PopoutClosed {
			return
		}
		p.state = entity.PopoutClosed
		logging.FromContext(p.ctx).Debug().Msg("popout closed")
		p.events.emit(EventClosed)
	})
}

// ToConfig snapshots the popout for persistence. Fails with
// entity.ErrNotInitialised until the child layout is ready.
func (p *Popout) ToConfig() (entity.PopoutConfig, error) {
	if !p.initialised {
		return entity.PopoutConfig{}, entity.ErrNotInitialised
	}
	left := p.window.ScreenX()
	if left == 0 {
		left = p.window.ScreenLeft()
	}
	top := p.window.ScreenY()
	if top == 0 {
		top = p.window.ScreenTop()
	}
	childCfg := p.child.ToConfig()
	return entity.PopoutConfig{
		Dimensions: entity.Dimensions{
			Width:  p.child.Width(),
			Height: p.child.Height(),
			Left:   left,
			Top:    top,
		},
		Content:       entity.CloneItems(childCfg.Content),
		ParentID:      p.parentID,
		IndexInParent: p.indexInParent,
	}, nil
}

// Close asks the window to go away. Failures are swallowed and repeated
// calls do nothing.
func (p *Popout) Close() {
	if p.closeRequested {
		return
	}
	p.closeRequested = true
	p.stopPolling()

	if p.initialised && p.child != nil {
		p.child.CloseWindow()
		return
	}
	if p.window == nil {
		return
	}
	if err := p.window.Close(); err != nil {
		logging.FromContext(p.ctx).Debug().Err(err).Msg("ignoring window close failure")
	}
}

// PopIn returns the popout's content to the main layout, then closes the
// window. Calls after a successful pop-in are no-ops.
func (p *Popout) PopIn(ctx context.Context) error {
	if p.poppedIn {
		return nil
	}
	cfg, err := p.ToConfig()
	if err != nil {
		return err
	}
	if p.deps.Reattacher == nil {
		return errors.New("pop-in: no reattacher configured")
	}
	err = p.deps.Reattacher.Reattach(ctx, ReattachRequest{
		ParentID:      cfg.ParentID,
		IndexInParent: cfg.IndexInParent,
		Content:       cfg.Content,
	})
	if err != nil {
		return fmt.Errorf("pop-in %s: %w", p.id, err)
	}
	p.poppedIn = true
	p.Close()
	return nil
}
