// Package headless is an in-process window host. Popout windows boot a
// layout tree from their handoff payload without any display, which makes
// the full popout lifecycle runnable from the CLI and from tests.
package headless

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/infrastructure/transfer"
	"github.com/bnema/dockpop/internal/logging"
)

// ErrWindowClosed is returned when closing a window twice.
var ErrWindowClosed = errors.New("window already closed")

// PayloadLoader reads and consumes handoff payloads. *transfer.Channel
// implements it.
type PayloadLoader interface {
	Load(ctx context.Context, key string) (entity.LayoutConfig, error)
	Discard(ctx context.Context, key string) error
}

// Options tune a Host.
type Options struct {
	// BootDelay is how long a new window takes to load and construct its
	// layout.
	BootDelay time.Duration
	// LegacyPosition makes windows report only ScreenLeft/ScreenTop.
	LegacyPosition bool
}

// Host implements port.WindowHost. Main-loop only.
type Host struct {
	ctx     context.Context
	sched   port.Scheduler
	loader  PayloadLoader
	opts    Options
	blocked bool
	windows []*Window
}

var _ port.WindowHost = (*Host)(nil)

// NewHost creates a host scheduling window boots on sched.
func NewHost(ctx context.Context, sched port.Scheduler, loader PayloadLoader, opts Options) *Host {
	return &Host{
		ctx:    logging.WithComponent(ctx, "headless-host"),
		sched:  sched,
		loader: loader,
		opts:   opts,
	}
}

// SetBlocked makes later Open calls fail like a popup blocker.
func (h *Host) SetBlocked(blocked bool) {
	h.blocked = blocked
}

// Windows returns every window opened so far.
func (h *Host) Windows() []*Window {
	return append([]*Window(nil), h.windows...)
}

// Open implements port.WindowHost.
func (h *Host) Open(url, title, options string) (port.PopoutWindow, bool) {
	log := logging.FromContext(h.ctx)
	if h.blocked {
		log.Debug().Str("url", url).Msg("window blocked")
		return nil, false
	}

	features := parseOptions(options)
	w := &Window{
		host:    h,
		url:     url,
		title:   title,
		options: features,
		width:   atoiOr(features["width"], 0),
		height:  atoiOr(features["height"], 0),
	}
	h.windows = append(h.windows, w)
	h.sched.After(h.opts.BootDelay, w.boot)

	log.Debug().Str("url", url).Str("title", title).Msg("window opened")
	return w, true
}

// Window is one headless top-level window.
type Window struct {
	host    *Host
	url     string
	title   string
	options map[string]string
	width   int
	height  int
	x, y    int

	layout   *Layout
	closed   bool
	focused  int
	onLoad   []func()
	onUnload []func()
	bootErr  error
}

var _ port.PopoutWindow = (*Window)(nil)

func (w *Window) boot() {
	if w.closed {
		return
	}
	log := logging.FromContext(w.host.ctx)
	for _, fn := range w.onLoad {
		fn()
	}

	key, ok := transfer.KeyFromURL(w.url)
	if !ok {
		w.bootErr = errors.New("url carries no handoff key")
		log.Warn().Str("url", w.url).Msg("window has nothing to load")
		return
	}
	cfg, err := w.host.loader.Load(w.host.ctx, key)
	if err != nil {
		w.bootErr = err
		log.Warn().Err(err).Str("key", key).Msg("window failed to load its layout")
		return
	}
	// The payload is read once; a reload starts from the window's own state.
	if err := w.host.loader.Discard(w.host.ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to discard handoff payload")
	}
	w.layout = &Layout{
		window:      w,
		tree:        entity.Load(cfg),
		initialised: true,
	}
	log.Debug().Str("key", key).Int("items", len(cfg.Content)).Msg("window layout initialised")
}

// URL returns the URL the window was opened with.
func (w *Window) URL() string { return w.url }

// Title returns the window name.
func (w *Window) Title() string { return w.title }

// Option returns one window feature from the open request.
func (w *Window) Option(name string) string { return w.options[name] }

// IsClosed reports whether the window went away.
func (w *Window) IsClosed() bool { return w.closed }

// FocusCount returns how often the window was focused.
func (w *Window) FocusCount() int { return w.focused }

// BootError returns why the window has no layout, if it failed.
func (w *Window) BootError() error { return w.bootErr }

// Layout returns the window's layout once booted.
func (w *Window) Layout() (*Layout, bool) {
	return w.layout, w.layout != nil
}

func (w *Window) ScreenX() int {
	if w.host.opts.LegacyPosition {
		return 0
	}
	return w.x
}

func (w *Window) ScreenLeft() int { return w.x }

func (w *Window) ScreenY() int {
	if w.host.opts.LegacyPosition {
		return 0
	}
	return w.y
}

func (w *Window) ScreenTop() int { return w.y }

func (w *Window) MoveTo(x, y int) {
	w.x, w.y = x, y
}

func (w *Window) Focus() {
	w.focused++
}

// Close tears the window down and fires its unload handlers.
func (w *Window) Close() error {
	if w.closed {
		return ErrWindowClosed
	}
	w.closed = true
	if w.layout != nil {
		w.layout.initialised = false
	}
	for _, fn := range w.onUnload {
		fn()
	}
	return nil
}

func (w *Window) OnLoad(fn func())   { w.onLoad = append(w.onLoad, fn) }
func (w *Window) OnUnload(fn func()) { w.onUnload = append(w.onUnload, fn) }

func (w *Window) LayoutInstance() (port.ChildLayout, bool) {
	if w.layout == nil {
		return nil, false
	}
	return w.layout, true
}

// Layout is the layout instance inside a headless window.
type Layout struct {
	window      *Window
	tree        *entity.LayoutTree
	initialised bool
	popIn       []func()
}

var _ port.ChildLayout = (*Layout)(nil)

// Tree exposes the child tree so callers can edit the popout's content.
func (l *Layout) Tree() *entity.LayoutTree { return l.tree }

func (l *Layout) IsInitialised() bool { return l.initialised }

func (l *Layout) Width() int { return l.window.width }

func (l *Layout) Height() int { return l.window.height }

func (l *Layout) ToConfig() entity.LayoutConfig { return l.tree.ToConfig() }

func (l *Layout) CloseWindow() {
	_ = l.window.Close()
}

func (l *Layout) OnPopIn(fn func()) { l.popIn = append(l.popIn, fn) }

// RequestPopIn acts like the user pressing the pop-in button inside the
// window.
func (l *Layout) RequestPopIn() {
	for _, fn := range append([]func(){}, l.popIn...) {
		fn()
	}
}

func parseOptions(options string) map[string]string {
	out := make(map[string]string)
	for _, part := range strings.Split(options, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			continue
		}
		out[k] = strings.TrimSpace(v)
	}
	return out
}

func atoiOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}
