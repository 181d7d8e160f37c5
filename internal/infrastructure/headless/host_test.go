package headless_test

import (
	"context"
	"testing"
	"time"

	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/infrastructure/headless"
	"github.com/bnema/dockpop/internal/infrastructure/transfer"
	"github.com/bnema/dockpop/internal/logging"
	"github.com/bnema/dockpop/internal/ui/mainloop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

func setup(t *testing.T, opts headless.Options) (*headless.Host, *mainloop.Virtual, *transfer.Channel) {
	t.Helper()
	ctx := testContext()
	sched := mainloop.NewVirtual()
	ch := transfer.NewChannel(transfer.NewMemoryStore())
	require.NoError(t, ch.Persist(ctx, "gl-window-config-1", entity.LayoutConfig{Content: []entity.ItemConfig{
		{Type: entity.ItemTypeComponent, ID: "editor", Title: "Editor"},
	}}))
	return headless.NewHost(ctx, sched, ch, opts), sched, ch
}

func TestHost_WindowBootsFromHandoffPayload(t *testing.T) {
	host, sched, _ := setup(t, headless.Options{BootDelay: 30 * time.Millisecond})

	pw, ok := host.Open("http://localhost/?gl-window=gl-window-config-1", "x1", "width=640,height=480,menubar=no")
	require.True(t, ok)
	w := host.Windows()[0]
	assert.Equal(t, "640", w.Option("width"))
	assert.Equal(t, "x1", w.Title())

	loaded := 0
	pw.OnLoad(func() { loaded++ })

	_, ready := pw.LayoutInstance()
	assert.False(t, ready)

	sched.Advance(30 * time.Millisecond)
	child, ready := pw.LayoutInstance()
	require.True(t, ready)
	assert.Equal(t, 1, loaded)
	assert.True(t, child.IsInitialised())
	assert.Equal(t, 640, child.Width())
	assert.Equal(t, 480, child.Height())

	cfg := child.ToConfig()
	require.Len(t, cfg.Content, 1)
	assert.Equal(t, "editor", cfg.Content[0].ID)
}

func TestWindow_BootConsumesHandoffPayload(t *testing.T) {
	host, sched, ch := setup(t, headless.Options{})
	ctx := testContext()

	pw, ok := host.Open("http://localhost/?gl-window=gl-window-config-1", "x", "")
	require.True(t, ok)
	sched.Advance(0)

	_, ready := pw.LayoutInstance()
	require.True(t, ready)
	_, err := ch.Load(ctx, "gl-window-config-1")
	assert.ErrorIs(t, err, transfer.ErrPayloadNotFound)
}

func TestWindow_FailedBootKeepsOtherPayloads(t *testing.T) {
	host, sched, ch := setup(t, headless.Options{})

	_, ok := host.Open("http://localhost/?gl-window=unknown", "x", "")
	require.True(t, ok)
	sched.Advance(0)

	_, err := ch.Load(testContext(), "gl-window-config-1")
	assert.NoError(t, err)
}

func TestHost_Blocked(t *testing.T) {
	host, _, _ := setup(t, headless.Options{})
	host.SetBlocked(true)

	w, ok := host.Open("http://localhost/?gl-window=gl-window-config-1", "x", "")
	assert.False(t, ok)
	assert.Nil(t, w)
	assert.Empty(t, host.Windows())
}

func TestHost_MissingPayload(t *testing.T) {
	host, sched, _ := setup(t, headless.Options{})

	pw, ok := host.Open("http://localhost/?gl-window=unknown", "x", "")
	require.True(t, ok)
	sched.Advance(time.Millisecond)

	_, ready := pw.LayoutInstance()
	assert.False(t, ready)
	assert.ErrorIs(t, host.Windows()[0].BootError(), transfer.ErrPayloadNotFound)
}

func TestWindow_CloseFiresUnloadOnce(t *testing.T) {
	host, sched, _ := setup(t, headless.Options{})
	pw, _ := host.Open("http://localhost/?gl-window=gl-window-config-1", "x", "")
	sched.Advance(0)

	unloads := 0
	pw.OnUnload(func() { unloads++ })

	require.NoError(t, pw.Close())
	assert.ErrorIs(t, pw.Close(), headless.ErrWindowClosed)
	assert.Equal(t, 1, unloads)
	assert.True(t, host.Windows()[0].IsClosed())
}

func TestWindow_ClosedBeforeBootNeverLoads(t *testing.T) {
	host, sched, _ := setup(t, headless.Options{BootDelay: 10 * time.Millisecond})
	pw, _ := host.Open("http://localhost/?gl-window=gl-window-config-1", "x", "")
	require.NoError(t, pw.Close())

	sched.Advance(time.Second)
	_, ready := pw.LayoutInstance()
	assert.False(t, ready)
}

func TestWindow_LegacyPositionFields(t *testing.T) {
	host, _, _ := setup(t, headless.Options{LegacyPosition: true})
	pw, _ := host.Open("http://localhost/?gl-window=gl-window-config-1", "x", "")

	pw.MoveTo(10, 20)
	assert.Zero(t, pw.ScreenX())
	assert.Zero(t, pw.ScreenY())
	assert.Equal(t, 10, pw.ScreenLeft())
	assert.Equal(t, 20, pw.ScreenTop())
}

func TestLayout_RequestPopInAndCloseWindow(t *testing.T) {
	host, sched, _ := setup(t, headless.Options{})
	pw, _ := host.Open("http://localhost/?gl-window=gl-window-config-1", "x", "")
	sched.Advance(0)
	w := host.Windows()[0]
	layout, ok := w.Layout()
	require.True(t, ok)

	requests := 0
	layout.OnPopIn(func() { requests++ })
	layout.RequestPopIn()
	assert.Equal(t, 1, requests)

	unloads := 0
	pw.OnUnload(func() { unloads++ })
	layout.CloseWindow()
	assert.Equal(t, 1, unloads)
	assert.False(t, layout.IsInitialised())
}
