package styles

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

// NewStyledTable creates a themed table model.
func NewStyledTable(theme *Theme, columns []table.Column, rows []table.Row, width, height int) table.Model {
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(height),
		table.WithWidth(width),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Cell.
		Foreground(theme.Text)
	s.Cell = s.Cell.
		Foreground(theme.Text)

	t.SetStyles(s)
	return t
}

// PopoutRow is one line of the popout table.
type PopoutRow struct {
	ID            string
	State         string
	ParentID      string
	IndexInParent int
	Key           string
}

// PopoutTableColumns returns columns for the popout table.
func PopoutTableColumns() []table.Column {
	return []table.Column{
		{Title: "Popout", Width: 12},
		{Title: "State", Width: 12},
		{Title: "Parent", Width: 14},
		{Title: "Index", Width: 6},
		{Title: "Handoff", Width: 24},
	}
}

// RenderPopoutTable renders popouts as a static table.
func RenderPopoutTable(theme *Theme, popouts []PopoutRow) string {
	if len(popouts) == 0 {
		return theme.Subtle.Render("  no open popouts")
	}
	rows := make([]table.Row, 0, len(popouts))
	for _, p := range popouts {
		rows = append(rows, table.Row{
			shorten(p.ID, 12),
			p.State,
			p.ParentID,
			strconv.Itoa(p.IndexInParent),
			shorten(p.Key, 24),
		})
	}
	t := NewStyledTable(theme, PopoutTableColumns(), rows, 78, len(rows)+2)
	return t.View()
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}
