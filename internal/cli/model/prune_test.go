package model

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/domain/entity"
)

type fakePruner struct {
	stale     []*entity.HandoffPayload
	listErr   error
	failKeys  map[string]bool
	discarded []string
	gotMaxAge time.Duration
}

func (f *fakePruner) Stale(_ context.Context, maxAge time.Duration) ([]*entity.HandoffPayload, error) {
	f.gotMaxAge = maxAge
	return f.stale, f.listErr
}

func (f *fakePruner) Discard(_ context.Context, key string) error {
	if f.failKeys[key] {
		return errors.New("locked")
	}
	f.discarded = append(f.discarded, key)
	return nil
}

var pruneNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestPruneModel(p *fakePruner) PruneModel {
	m := NewPruneModel(context.Background(), styles.NewTheme(), p, time.Hour, "sqlite")
	m.now = func() time.Time { return pruneNow }
	return m
}

func stalePayloads(keys ...string) []*entity.HandoffPayload {
	out := make([]*entity.HandoffPayload, 0, len(keys))
	for i, k := range keys {
		out = append(out, &entity.HandoffPayload{
			Key:       k,
			CreatedAt: pruneNow.Add(-time.Duration(2+i) * time.Hour),
		})
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// step feeds msg to m and returns the updated model and command.
func step(t *testing.T, m tea.Model, msg tea.Msg) (PruneModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	pm, ok := next.(PruneModel)
	require.True(t, ok)
	return pm, cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPruneModel_ConfirmAndRemove(t *testing.T) {
	p := &fakePruner{stale: stalePayloads("popout-a", "popout-b")}
	m := newTestPruneModel(p)

	require.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Looking for stale handoff payloads")

	m, cmd := step(t, m, m.loadStale()())
	assert.Nil(t, cmd)
	assert.Equal(t, time.Hour, p.gotMaxAge)
	assert.Equal(t, pruneConfirm, m.state)

	view := m.View()
	assert.Contains(t, view, "popout-a")
	assert.Contains(t, view, "popout-b")
	assert.Contains(t, view, "2h0m0s old")
	assert.Contains(t, view, "Remove 2 payloads older than 1h0m0s? [y/N]")

	m, cmd = step(t, m, runes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, pruneRunning, m.state)
	assert.Contains(t, m.View(), "Removing 2 payloads")

	m, cmd = step(t, m, cmd())
	assert.Nil(t, cmd)
	assert.Equal(t, pruneDone, m.state)
	assert.Equal(t, []string{"popout-a", "popout-b"}, p.discarded)
	assert.EqualValues(t, 2, m.Removed())
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "Removed 2 stale handoff payloads")
	assert.Contains(t, m.View(), "sqlite")

	_, cmd = step(t, m, runes("x"))
	assert.True(t, isQuit(t, cmd))
}

func TestPruneModel_DeclineRemovesNothing(t *testing.T) {
	for _, key := range []tea.KeyMsg{runes("n"), {Type: tea.KeyEsc}, {Type: tea.KeyEnter}} {
		t.Run(key.String(), func(t *testing.T) {
			p := &fakePruner{stale: stalePayloads("popout-a")}
			m := newTestPruneModel(p)

			m, _ = step(t, m, m.loadStale()())
			m, cmd := step(t, m, key)

			assert.True(t, isQuit(t, cmd))
			assert.Empty(t, p.discarded)
			assert.EqualValues(t, 0, m.Removed())
			assert.Contains(t, m.View(), "Nothing removed")
		})
	}
}

func TestPruneModel_NothingStale(t *testing.T) {
	m := newTestPruneModel(&fakePruner{})

	m, _ = step(t, m, m.loadStale()())

	assert.Equal(t, pruneDone, m.state)
	assert.NoError(t, m.Err())
	assert.Contains(t, m.View(), "No handoff payloads older than 1h0m0s")
}

func TestPruneModel_ListError(t *testing.T) {
	m := newTestPruneModel(&fakePruner{listErr: errors.New("database is locked")})

	m, _ = step(t, m, m.loadStale()())

	assert.Equal(t, pruneDone, m.state)
	assert.EqualError(t, m.Err(), "database is locked")
	assert.Contains(t, m.View(), "Error: database is locked")
}

func TestPruneModel_ReportsFailedKeys(t *testing.T) {
	p := &fakePruner{
		stale:    stalePayloads("popout-a", "popout-b", "popout-c"),
		failKeys: map[string]bool{"popout-b": true},
	}
	m := newTestPruneModel(p)

	m, _ = step(t, m, m.loadStale()())
	m, cmd := step(t, m, runes("Y"))
	m, _ = step(t, m, cmd())

	assert.Equal(t, []string{"popout-a", "popout-c"}, p.discarded)
	assert.EqualValues(t, 2, m.Removed())
	assert.EqualError(t, m.Err(), "1 payloads could not be removed")
	view := m.View()
	assert.Contains(t, view, "Removed 2 stale handoff payloads")
	assert.Contains(t, view, "popout-b: locked")
}

func TestPruneModel_CtrlCCancels(t *testing.T) {
	p := &fakePruner{stale: stalePayloads("popout-a")}
	m := newTestPruneModel(p)

	m, _ = step(t, m, m.loadStale()())
	m, cmd := step(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})

	assert.True(t, isQuit(t, cmd))
	assert.Empty(t, p.discarded)
	assert.Contains(t, m.View(), "Canceled")
}

func TestPruneModel_IgnoresOtherKeysWhileConfirming(t *testing.T) {
	p := &fakePruner{stale: stalePayloads("popout-a")}
	m := newTestPruneModel(p)

	m, _ = step(t, m, m.loadStale()())
	m, cmd := step(t, m, runes("x"))

	assert.Nil(t, cmd)
	assert.Equal(t, pruneConfirm, m.state)
}
