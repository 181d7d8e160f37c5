package popout_test

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/dockpop/internal/application/port"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/logging"
	"github.com/bnema/dockpop/internal/ui/mainloop"
	"github.com/bnema/dockpop/internal/ui/popout"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

type fakeChild struct {
	initialised  bool
	width        int
	height       int
	config       entity.LayoutConfig
	closeCalls   int
	popInHandler func()
	window       *fakeWindow
}

func (c *fakeChild) IsInitialised() bool           { return c.initialised }
func (c *fakeChild) Width() int                    { return c.width }
func (c *fakeChild) Height() int                   { return c.height }
func (c *fakeChild) ToConfig() entity.LayoutConfig { return c.config.Clone() }
func (c *fakeChild) OnPopIn(fn func())             { c.popInHandler = fn }

func (c *fakeChild) CloseWindow() {
	c.closeCalls++
	if c.window != nil {
		c.window.fireUnload()
	}
}

type fakeWindow struct {
	screenX, screenLeft int
	screenY, screenTop  int
	movedTo             [][2]int
	focusCalls          int
	closeCalls          int
	closeErr            error
	onLoad              []func()
	onUnload            []func()
	child               *fakeChild
}

func (w *fakeWindow) ScreenX() int    { return w.screenX }
func (w *fakeWindow) ScreenLeft() int { return w.screenLeft }
func (w *fakeWindow) ScreenY() int    { return w.screenY }
func (w *fakeWindow) ScreenTop() int  { return w.screenTop }
func (w *fakeWindow) Focus()          { w.focusCalls++ }
func (w *fakeWindow) OnLoad(fn func()) {
	w.onLoad = append(w.onLoad, fn)
}
func (w *fakeWindow) OnUnload(fn func()) {
	w.onUnload = append(w.onUnload, fn)
}

func (w *fakeWindow) MoveTo(x, y int) {
	w.movedTo = append(w.movedTo, [2]int{x, y})
	w.screenX, w.screenY = x, y
}

func (w *fakeWindow) Close() error {
	w.closeCalls++
	return w.closeErr
}

func (w *fakeWindow) LayoutInstance() (port.ChildLayout, bool) {
	if w.child == nil {
		return nil, false
	}
	return w.child, true
}

func (w *fakeWindow) fireUnload() {
	for _, fn := range w.onUnload {
		fn()
	}
}

func newFakeWindow() *fakeWindow {
	w := &fakeWindow{}
	w.child = &fakeChild{
		width:  800,
		height: 600,
		config: entity.LayoutConfig{Content: []entity.ItemConfig{
			{Type: entity.ItemTypeComponent, ID: "editor", Title: "Editor", ComponentName: "editor"},
		}},
		window: w,
	}
	return w
}

// countingScheduler records how often timers are stopped.
type countingScheduler struct {
	*mainloop.Virtual
	everyStops int
	everyCount int
}

type countedTimer struct {
	port.Timer
	onStop func()
}

func (t countedTimer) Stop() bool {
	t.onStop()
	return t.Timer.Stop()
}

func (s *countingScheduler) Every(interval time.Duration, fn func()) port.Timer {
	s.everyCount++
	return countedTimer{Timer: s.Virtual.Every(interval, fn), onStop: func() { s.everyStops++ }}
}

type recordingReattacher struct {
	requests []popout.ReattachRequest
	err      error
}

func (r *recordingReattacher) Reattach(_ context.Context, req popout.ReattachRequest) error {
	if r.err != nil {
		return r.err
	}
	r.requests = append(r.requests, req)
	return nil
}

var errDiskFull = errors.New("disk full")
