package styles

import (
	"fmt"
	"strings"

	"github.com/bnema/dockpop/internal/cache"
	"github.com/bnema/dockpop/internal/domain/entity"
)

// LayoutRenderer draws layout trees and the detached-node cache.
type LayoutRenderer struct {
	theme *Theme
}

// NewLayoutRenderer creates a new layout renderer with the given theme.
func NewLayoutRenderer(theme *Theme) *LayoutRenderer {
	return &LayoutRenderer{theme: theme}
}

// RenderTree draws the live tree below the root, one item per line.
func (r *LayoutRenderer) RenderTree(tree *entity.LayoutTree) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Title.Render(IconTree + " layout"))
	sb.WriteString("\n")

	children := tree.Node(tree.Root()).Children
	if len(children) == 0 {
		sb.WriteString("  " + r.theme.Subtle.Render("(empty)") + "\n")
		return sb.String()
	}
	for i, child := range children {
		r.renderNode(&sb, tree, child, "  ", i == len(children)-1)
	}
	return sb.String()
}

func (r *LayoutRenderer) renderNode(sb *strings.Builder, tree *entity.LayoutTree, ref entity.NodeRef, prefix string, last bool) {
	n := tree.Node(ref)
	branch, indent := "├─ ", "│  "
	if last {
		branch, indent = "└─ ", "   "
	}

	sb.WriteString(r.theme.Subtle.Render(prefix + branch))
	sb.WriteString(r.label(n))
	if parent := tree.Node(n.Parent); parent != nil && parent.Header != nil {
		if tab, ok := parent.Header.ActiveTab(); ok && tab.Item == ref && len(parent.Children) > 1 {
			sb.WriteString(" " + r.theme.Badge.Render("active"))
		}
	}
	sb.WriteString("\n")

	for i, child := range n.Children {
		r.renderNode(sb, tree, child, prefix+indent, i == len(n.Children)-1)
	}
}

func (r *LayoutRenderer) label(n *entity.ContentItem) string {
	icon := IconPane
	switch n.Type() {
	case entity.ItemTypeStack:
		icon = IconStack
	case entity.ItemTypeComponent:
		icon = IconWindow
	}
	name := string(n.Type())
	if n.ID() != "" {
		name += "#" + n.ID()
	}
	out := r.theme.Highlight.Render(icon + " " + name)
	if n.Config.Title != "" && n.Config.Title != n.ID() {
		out += " " + r.theme.Subtle.Render(fmt.Sprintf("%q", n.Config.Title))
	}
	return out
}

// RenderCache lists the detached-node cache entries, oldest first.
func (r *LayoutRenderer) RenderCache(entries []cache.DetachedEntry) string {
	var sb strings.Builder
	sb.WriteString(r.theme.Title.Render(fmt.Sprintf("%s detached cache (%d)", IconCache, len(entries))))
	sb.WriteString("\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("  %s %s %s %s\n",
			r.theme.Subtle.Render(IconCursor),
			r.theme.Highlight.Render(e.NodeID),
			r.theme.Subtle.Render("anchored at"),
			r.theme.Normal.Render(e.ChildID),
		))
	}
	return sb.String()
}

// RenderStep renders a numbered demo step header.
func (r *LayoutRenderer) RenderStep(n int, text string) string {
	return fmt.Sprintf("\n%s %s\n", r.theme.BadgeMuted.Render(fmt.Sprintf("%d", n)), r.theme.Title.Render(text))
}

// RenderError renders an error line.
func (r *LayoutRenderer) RenderError(err error) string {
	return fmt.Sprintf("  %s %s", r.theme.ErrorStyle.Render(IconX), r.theme.ErrorStyle.Render(err.Error()))
}

// RenderNote renders an informational line.
func (r *LayoutRenderer) RenderNote(text string) string {
	return fmt.Sprintf("  %s %s", r.theme.Subtle.Render(IconInfo), r.theme.Normal.Render(text))
}
