// Package model holds the bubbletea models behind interactive CLI commands.
package model

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/dockpop/internal/cli/styles"
	"github.com/bnema/dockpop/internal/domain/entity"
)

// PayloadPruner finds and removes stale handoff payloads.
// *transfer.Channel implements it.
type PayloadPruner interface {
	Stale(ctx context.Context, maxAge time.Duration) ([]*entity.HandoffPayload, error)
	Discard(ctx context.Context, key string) error
}

type pruneState int

const (
	pruneLoading pruneState = iota
	pruneConfirm
	pruneRunning
	pruneDone
)

// PruneModel lists stale handoff payloads and removes them once confirmed.
type PruneModel struct {
	ctx     context.Context
	theme   *styles.Theme
	pruner  PayloadPruner
	maxAge  time.Duration
	backend string
	now     func() time.Time

	state    pruneState
	loading  styles.LoadingModel
	stale    []*entity.HandoffPayload
	removed  int64
	failures []pruneFailure
	info     string
	err      error
}

type pruneFailure struct {
	Key string
	Err error
}

// NewPruneModel creates a prune model for payloads older than maxAge.
// backend is only shown to the user.
func NewPruneModel(ctx context.Context, theme *styles.Theme, pruner PayloadPruner, maxAge time.Duration, backend string) PruneModel {
	return PruneModel{
		ctx:     ctx,
		theme:   theme,
		pruner:  pruner,
		maxAge:  maxAge,
		backend: backend,
		now:     time.Now,
		state:   pruneLoading,
		loading: styles.NewLoading(theme, "Looking for stale handoff payloads..."),
	}
}

type staleLoadedMsg struct {
	payloads []*entity.HandoffPayload
	err      error
}

type pruneCompleteMsg struct {
	removed  int64
	failures []pruneFailure
}

// Init implements tea.Model.
func (m PruneModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Spinner.Tick, m.loadStale())
}

func (m PruneModel) loadStale() tea.Cmd {
	return func() tea.Msg {
		payloads, err := m.pruner.Stale(m.ctx, m.maxAge)
		return staleLoadedMsg{payloads: payloads, err: err}
	}
}

func (m PruneModel) discard(payloads []*entity.HandoffPayload) tea.Cmd {
	return func() tea.Msg {
		var done pruneCompleteMsg
		for _, p := range payloads {
			if err := m.pruner.Discard(m.ctx, p.Key); err != nil {
				done.failures = append(done.failures, pruneFailure{Key: p.Key, Err: err})
				continue
			}
			done.removed++
		}
		return done
	}
}

// Update implements tea.Model.
func (m PruneModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case staleLoadedMsg:
		return m.handleStaleLoaded(msg), nil
	case pruneCompleteMsg:
		m.state = pruneDone
		m.removed = msg.removed
		m.failures = msg.failures
		if len(msg.failures) > 0 {
			m.err = fmt.Errorf("%d payloads could not be removed", len(msg.failures))
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.loading.Spinner, cmd = m.loading.Spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m PruneModel) handleStaleLoaded(msg staleLoadedMsg) PruneModel {
	switch {
	case msg.err != nil:
		m.state = pruneDone
		m.err = msg.err
	case len(msg.payloads) == 0:
		m.state = pruneDone
		m.info = fmt.Sprintf("No handoff payloads older than %s", m.maxAge)
	default:
		m.state = pruneConfirm
		m.stale = msg.payloads
	}
	return m
}

func (m PruneModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		if m.state != pruneDone {
			m.state = pruneDone
			m.info = "Canceled"
		}
		return m, tea.Quit
	}

	switch m.state {
	case pruneConfirm:
		switch msg.String() {
		case "y", "Y":
			m.state = pruneRunning
			m.loading.Message = fmt.Sprintf("Removing %d payloads...", len(m.stale))
			return m, m.discard(m.stale)
		case "n", "N", "q", "esc", "enter":
			m.state = pruneDone
			m.info = "Nothing removed"
			return m, tea.Quit
		}
	case pruneDone:
		return m, tea.Quit
	}
	return m, nil
}

// Removed returns how many payloads were deleted.
func (m PruneModel) Removed() int64 { return m.removed }

// Err returns the listing error or a summary of failed deletions.
func (m PruneModel) Err() error { return m.err }

// View implements tea.Model.
func (m PruneModel) View() string {
	t := m.theme

	switch m.state {
	case pruneLoading, pruneRunning:
		return t.Box.Render(m.loading.View())
	case pruneConfirm:
		return t.Box.Render(m.renderConfirm())
	}

	if m.info != "" {
		return t.Box.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			t.Subtle.Render(m.info),
			"",
			t.Subtle.Render("Press any key to exit"),
		))
	}
	if m.err != nil && m.removed == 0 && len(m.failures) == 0 {
		return t.Box.Render(lipgloss.JoinVertical(
			lipgloss.Left,
			t.ErrorStyle.Render("Error: "+m.err.Error()),
			"",
			t.Subtle.Render("Press any key to exit"),
		))
	}
	return t.Box.Render(m.renderResults())
}

func (m PruneModel) renderConfirm() string {
	t := m.theme
	lines := []string{t.Title.Render("Stale handoff payloads"), ""}
	for _, p := range m.stale {
		age := m.now().Sub(p.CreatedAt).Round(time.Minute)
		lines = append(lines, fmt.Sprintf("%s %s %s",
			t.Subtle.Render(styles.IconTrash),
			t.Normal.Render(p.Key),
			t.Subtle.Render(age.String()+" old"),
		))
	}
	lines = append(lines, "", t.Highlight.Render(
		fmt.Sprintf("Remove %d payloads older than %s? [y/N]", len(m.stale), m.maxAge),
	))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m PruneModel) renderResults() string {
	t := m.theme
	lines := []string{fmt.Sprintf("%s Removed %s stale handoff payloads (%s)",
		t.SuccessStyle.Render(styles.IconCheck),
		t.Highlight.Render(fmt.Sprintf("%d", m.removed)),
		t.Subtle.Render(m.backend),
	)}
	for _, f := range m.failures {
		lines = append(lines, fmt.Sprintf("%s %s: %v", t.ErrorStyle.Render(styles.IconX), f.Key, f.Err))
	}
	lines = append(lines, "", t.Subtle.Render("Press any key to exit"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}
