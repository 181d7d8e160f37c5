// Package entity contains domain entities representing core layout concepts.
// These entities are pure Go types with no infrastructure dependencies.
package entity

// NodeRef addresses a content item inside a LayoutTree arena.
// Refs are never reused, so a stale ref simply stops resolving.
type NodeRef int

// NoRef is the null NodeRef (no parent, not found).
const NoRef NodeRef = -1

// Tab is one header tab of a stack. It refers to the child it represents.
type Tab struct {
	Item  NodeRef
	Title string
}

// Header holds the tabs of a stack. Tab order follows child order by
// convention only.
type Header struct {
	Tabs        []Tab
	ActiveIndex int
}

// ActiveTab returns the active tab, if any.
func (h *Header) ActiveTab() (Tab, bool) {
	if h == nil || h.ActiveIndex < 0 || h.ActiveIndex >= len(h.Tabs) {
		return Tab{}, false
	}
	return h.Tabs[h.ActiveIndex], true
}

// TabIndex returns the index of the tab pointing at item, or -1.
func (h *Header) TabIndex(item NodeRef) int {
	if h == nil {
		return -1
	}
	for i, t := range h.Tabs {
		if t.Item == item {
			return i
		}
	}
	return -1
}

// ContentItem is a node of the docking tree.
//   - Component: a leaf pane hosting content
//   - Row / Column: split containers
//   - Stack: tabbed container, one child visible at a time
//   - Root: the permanent synthetic root of a LayoutTree
type ContentItem struct {
	Ref      NodeRef
	Config   ItemConfig // Content is always empty; children are structural
	Parent   NodeRef
	Children []NodeRef
	Header   *Header // Non-nil for stacks
	Element  *Element
}

// ID returns the item's config id.
func (c *ContentItem) ID() string {
	return c.Config.ID
}

// Type returns the item's type.
func (c *ContentItem) Type() ItemType {
	return c.Config.Type
}

// IsStack returns true if this item hosts a tabbed header.
func (c *ContentItem) IsStack() bool {
	return c.Config.Type == ItemTypeStack
}

// IsRoot returns true for the synthetic tree root.
func (c *ContentItem) IsRoot() bool {
	return c.Config.Type == ItemTypeRoot
}

// IsContainer returns true if the item can hold children.
func (c *ContentItem) IsContainer() bool {
	return c.Config.Type.IsContainer()
}

// IndexOf returns the position of child among the item's children, or -1.
func (c *ContentItem) IndexOf(child NodeRef) int {
	for i, ref := range c.Children {
		if ref == child {
			return i
		}
	}
	return -1
}
