package popout_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/bnema/dockpop/internal/application/port/mocks"
	"github.com/bnema/dockpop/internal/domain/entity"
	"github.com/bnema/dockpop/internal/ui/mainloop"
	"github.com/bnema/dockpop/internal/ui/popout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const handoffURL = "http://localhost/?gl-window=gl-window-config-id-2"

type harness struct {
	popout     *popout.Popout
	host       *mocks.MockWindowHost
	transfer   *mocks.MockConfigTransfer
	sched      *countingScheduler
	reattacher *recordingReattacher
	window     *fakeWindow
}

func popoutConfig() entity.PopoutConfig {
	return entity.PopoutConfig{
		Dimensions: entity.Dimensions{Width: 640, Height: 480, Left: 100, Top: 50},
		Content: []entity.ItemConfig{
			{Type: entity.ItemTypeComponent, ID: "editor", Title: "Editor", ComponentName: "editor"},
		},
		ParentID:      "main-stack",
		IndexInParent: 2,
	}
}

func newHarness(t *testing.T, settings popout.Settings) *harness {
	t.Helper()
	h := &harness{
		host:       mocks.NewMockWindowHost(t),
		transfer:   mocks.NewMockConfigTransfer(t),
		sched:      &countingScheduler{Virtual: mainloop.NewVirtual()},
		reattacher: &recordingReattacher{},
		window:     newFakeWindow(),
	}
	h.popout = popout.New(popoutConfig(), settings, popout.Deps{
		Host:        h.host,
		Transfer:    h.transfer,
		Scheduler:   h.sched,
		Reattacher:  h.reattacher,
		IDGenerator: seqIDs(),
		Title:       func() string { return "abc12" },
	})
	return h
}

func (h *harness) expectHandoff() {
	h.transfer.EXPECT().Persist(mock.Anything, "gl-window-config-id-2", mock.Anything).Return(nil).Once()
	h.transfer.EXPECT().BuildHandoffURL("http://localhost/", "gl-window-config-id-2").Return(handoffURL, nil).Once()
}

func (h *harness) openReady(t *testing.T) {
	t.Helper()
	h.expectHandoff()
	h.host.EXPECT().Open(handoffURL, "abc12", mock.Anything).Return(h.window, true).Once()
	require.NoError(t, h.popout.Open(testContext()))
	h.window.child.initialised = true
	h.sched.Advance(10 * time.Millisecond)
	require.Equal(t, entity.PopoutInitialized, h.popout.State())
}

func TestPopout_Open_ReachesInitializedOnce(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.transfer.EXPECT().Persist(mock.Anything, "gl-window-config-id-2", mock.Anything).
		Run(func(_ context.Context, _ string, cfg entity.LayoutConfig) {
			require.Len(t, cfg.Content, 1)
			assert.Equal(t, "editor", cfg.Content[0].ID)
		}).
		Return(nil).Once()
	h.transfer.EXPECT().BuildHandoffURL("http://localhost/", "gl-window-config-id-2").Return(handoffURL, nil).Once()
	h.host.EXPECT().Open(handoffURL, "abc12",
		"width=640,height=480,innerWidth=640,innerHeight=480,menubar=no,toolbar=no,location=no,personalbar=no,resizable=yes,scrollbars=no,status=no").
		Return(h.window, true).Once()

	initialised := 0
	h.popout.On(popout.EventInitialised, func() { initialised++ })

	require.NoError(t, h.popout.Open(testContext()))
	assert.Equal(t, entity.PopoutOpened, h.popout.State())
	assert.Equal(t, "id-1", h.popout.ID())
	assert.Equal(t, "gl-window-config-id-2", h.popout.Key())
	assert.Equal(t, handoffURL, h.popout.URL())

	h.sched.Advance(50 * time.Millisecond)
	assert.Equal(t, entity.PopoutOpened, h.popout.State(), "child not ready yet")
	assert.Zero(t, initialised)

	h.window.child.initialised = true
	h.sched.Advance(10 * time.Millisecond)

	assert.Equal(t, entity.PopoutInitialized, h.popout.State())
	assert.True(t, h.popout.IsInitialised())
	assert.Equal(t, 1, initialised)
	assert.Equal(t, 1, h.sched.everyCount)
	assert.Equal(t, 1, h.sched.everyStops, "poll stopped exactly once")
	assert.Equal(t, [][2]int{{100, 50}}, h.window.movedTo)
	assert.Equal(t, 1, h.window.focusCalls)

	h.sched.Advance(time.Second)
	assert.Equal(t, 1, initialised)
	assert.Equal(t, 1, h.sched.everyStops)
	assert.Zero(t, h.sched.Pending())
}

func TestPopout_Open_PositionsOnLoad(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.expectHandoff()
	h.host.EXPECT().Open(handoffURL, "abc12", mock.Anything).Return(h.window, true).Once()
	require.NoError(t, h.popout.Open(testContext()))

	require.Len(t, h.window.onLoad, 1)
	h.window.onLoad[0]()
	assert.Equal(t, [][2]int{{100, 50}}, h.window.movedTo)
}

func TestPopout_Open_StorageFailureAbortsBeforeWindow(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.transfer.EXPECT().Persist(mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, popout.StorageKeyPrefix)
	}), mock.Anything).Return(errDiskFull).Once()

	err := h.popout.Open(testContext())

	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrStorage)
	assert.ErrorIs(t, err, errDiskFull)
	var storageErr *entity.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "gl-window-config-id-2", storageErr.Key)
	assert.Equal(t, entity.PopoutCreated, h.popout.State())
	h.host.AssertNotCalled(t, "Open", mock.Anything, mock.Anything, mock.Anything)
}

func TestPopout_Open_BlockedFatal(t *testing.T) {
	settings := popout.DefaultSettings()
	settings.BlockedPopoutsThrowError = true
	h := newHarness(t, settings)
	h.expectHandoff()
	h.host.EXPECT().Open(handoffURL, "abc12", mock.Anything).Return(nil, false).Once()

	err := h.popout.Open(testContext())

	assert.ErrorIs(t, err, entity.ErrPopoutBlocked)
	assert.Equal(t, entity.PopoutCreated, h.popout.State())
}

func TestPopout_Open_BlockedTolerated(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.expectHandoff()
	h.host.EXPECT().Open(handoffURL, "abc12", mock.Anything).Return(nil, false).Once()

	initialised := 0
	h.popout.On(popout.EventInitialised, func() { initialised++ })

	require.NoError(t, h.popout.Open(testContext()))
	assert.Equal(t, entity.PopoutBlocked, h.popout.State())
	assert.True(t, h.popout.State().IsTerminal())
	assert.Zero(t, h.sched.Pending(), "no poll for a blocked popout")

	h.sched.Advance(time.Minute)
	assert.Zero(t, initialised)
	_, err := h.popout.ToConfig()
	assert.ErrorIs(t, err, entity.ErrNotInitialised)

	h.popout.Close()
	_, ok := h.popout.Window()
	assert.False(t, ok)
}

func TestPopout_Open_Twice(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.openReady(t)

	assert.Error(t, h.popout.Open(testContext()))
}

func TestPopout_ToConfig(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())

	_, err := h.popout.ToConfig()
	require.ErrorIs(t, err, entity.ErrNotInitialised)

	h.openReady(t)
	// The platform only reports one field of each pair.
	h.window.screenX, h.window.screenLeft = 0, 120
	h.window.screenY, h.window.screenTop = 70, 0

	cfg, err := h.popout.ToConfig()
	require.NoError(t, err)

	assert.Equal(t, entity.Dimensions{Width: 800, Height: 600, Left: 120, Top: 70}, cfg.Dimensions)
	assert.Equal(t, "main-stack", cfg.ParentID)
	assert.Equal(t, 2, cfg.IndexInParent)
	require.Len(t, cfg.Content, 1)
	assert.Equal(t, "editor", cfg.Content[0].ID)

	// The snapshot does not alias the child's configuration.
	cfg.Content[0].Title = "mutated"
	again, err := h.popout.ToConfig()
	require.NoError(t, err)
	assert.Equal(t, "Editor", again.Content[0].Title)
}

func TestPopout_UnloadEmitsClosedAfterDelay(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.openReady(t)

	closed := 0
	h.popout.On(popout.EventClosed, func() { closed++ })

	h.window.fireUnload()
	h.window.fireUnload()
	h.sched.Advance(49 * time.Millisecond)
	assert.Zero(t, closed)
	assert.Equal(t, entity.PopoutInitialized, h.popout.State())

	h.sched.Advance(time.Millisecond)
	assert.Equal(t, 1, closed)
	assert.Equal(t, entity.PopoutClosed, h.popout.State())

	h.sched.Advance(time.Second)
	assert.Equal(t, 1, closed)
}

func TestPopout_CloseBeforeInitialised(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.expectHandoff()
	h.host.EXPECT().Open(handoffURL, "abc12", mock.Anything).Return(h.window, true).Once()
	require.NoError(t, h.popout.Open(testContext()))

	h.window.closeErr = assert.AnError
	h.popout.Close()
	h.popout.Close()

	assert.Equal(t, 1, h.window.closeCalls)
	assert.Zero(t, h.window.child.closeCalls)
	assert.Equal(t, 1, h.sched.everyStops)

	h.window.child.initialised = true
	h.sched.Advance(time.Second)
	assert.Equal(t, entity.PopoutOpened, h.popout.State(), "poll no longer runs")
}

func TestPopout_CloseAfterInitialisedDelegatesToChild(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.openReady(t)

	closed := 0
	h.popout.On(popout.EventClosed, func() { closed++ })

	h.popout.Close()
	assert.Equal(t, 1, h.window.child.closeCalls)
	assert.Zero(t, h.window.closeCalls)

	h.sched.Advance(50 * time.Millisecond)
	assert.Equal(t, 1, closed)
}

func TestPopout_PopIn(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())

	require.ErrorIs(t, h.popout.PopIn(testContext()), entity.ErrNotInitialised)

	h.openReady(t)
	require.NoError(t, h.popout.PopIn(testContext()))
	require.NoError(t, h.popout.PopIn(testContext()))

	require.Len(t, h.reattacher.requests, 1)
	req := h.reattacher.requests[0]
	assert.Equal(t, "main-stack", req.ParentID)
	assert.Equal(t, 2, req.IndexInParent)
	require.Len(t, req.Content, 1)
	assert.Equal(t, "editor", req.Content[0].ID)
	assert.Equal(t, 1, h.window.child.closeCalls)

	h.sched.Advance(50 * time.Millisecond)
	assert.Equal(t, entity.PopoutClosed, h.popout.State())
}

func TestPopout_PopInRequestedByChild(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.openReady(t)

	require.NotNil(t, h.window.child.popInHandler)
	h.window.child.popInHandler()

	assert.Len(t, h.reattacher.requests, 1)
	assert.Equal(t, 1, h.window.child.closeCalls)
}

func TestPopout_PopInFailureKeepsWindow(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	h.openReady(t)
	h.reattacher.err = assert.AnError

	err := h.popout.PopIn(testContext())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Zero(t, h.window.child.closeCalls)
}

func TestPopout_ReadinessTimeout(t *testing.T) {
	settings := popout.DefaultSettings()
	settings.ReadinessTimeout = 100 * time.Millisecond
	h := newHarness(t, settings)
	h.expectHandoff()
	h.host.EXPECT().Open(handoffURL, "abc12", mock.Anything).Return(h.window, true).Once()
	require.NoError(t, h.popout.Open(testContext()))

	initialised := 0
	h.popout.On(popout.EventInitialised, func() { initialised++ })

	h.sched.Advance(100 * time.Millisecond)

	assert.Equal(t, 1, h.window.closeCalls)
	assert.Equal(t, 1, h.sched.everyStops)
	h.window.child.initialised = true
	h.sched.Advance(time.Second)
	assert.Zero(t, initialised)
	assert.Equal(t, entity.PopoutOpened, h.popout.State())
}

func TestPopout_OnUnsubscribe(t *testing.T) {
	h := newHarness(t, popout.DefaultSettings())
	calls := 0
	off := h.popout.On(popout.EventInitialised, func() { calls++ })
	off()

	h.openReady(t)
	assert.Zero(t, calls)
}

func TestPopout_ConfigIsCopied(t *testing.T) {
	cfg := popoutConfig()
	p := popout.New(cfg, popout.DefaultSettings(), popout.Deps{IDGenerator: seqIDs()})
	cfg.ParentID = "changed"

	assert.Equal(t, "main-stack", p.ParentID())
	assert.Equal(t, 2, p.IndexInParent())
	assert.Equal(t, entity.PopoutCreated, p.State())
}
