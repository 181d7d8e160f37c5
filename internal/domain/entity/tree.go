package entity

import (
	"fmt"
	"strings"
)

// LayoutTree is an arena of content items rooted at a permanent synthetic
// root item. Parent/child links are NodeRefs into the arena, so detached
// subtrees stay addressable without being reachable from the root.
type LayoutTree struct {
	nodes map[NodeRef]*ContentItem
	next  NodeRef
	root  NodeRef
}

// NewLayoutTree creates a tree that only holds its root item.
func NewLayoutTree() *LayoutTree {
	t := &LayoutTree{nodes: make(map[NodeRef]*ContentItem)}
	t.root = t.newNode(ItemConfig{Type: ItemTypeRoot, ID: "root"})
	return t
}

// Load builds a tree from a layout config. Content items become children of
// the root in order.
func Load(cfg LayoutConfig) *LayoutTree {
	t := NewLayoutTree()
	for _, item := range cfg.Content {
		ref := t.CreateItem(item)
		t.InsertChild(t.root, ref, -1)
	}
	return t
}

func (t *LayoutTree) newNode(cfg ItemConfig) NodeRef {
	ref := t.next
	t.next++
	own := cfg
	own.Content = nil
	own = own.Clone()
	name := string(cfg.Type)
	if cfg.ID != "" {
		name += "#" + cfg.ID
	}
	item := &ContentItem{
		Ref:     ref,
		Config:  own,
		Parent:  NoRef,
		Element: NewElement(name),
	}
	if cfg.Type == ItemTypeStack {
		item.Header = &Header{}
	}
	t.nodes[ref] = item
	return ref
}

// Root returns the ref of the synthetic root.
func (t *LayoutTree) Root() NodeRef {
	return t.root
}

// Node resolves a ref. Returns nil for unknown or destroyed refs.
func (t *LayoutTree) Node(ref NodeRef) *ContentItem {
	return t.nodes[ref]
}

// Len returns the number of items in the arena, live or detached.
func (t *LayoutTree) Len() int {
	return len(t.nodes)
}

// IsLive reports whether ref is reachable from the root.
func (t *LayoutTree) IsLive(ref NodeRef) bool {
	for cur := ref; cur != NoRef; {
		n := t.nodes[cur]
		if n == nil {
			return false
		}
		if cur == t.root {
			return true
		}
		cur = n.Parent
	}
	return false
}

// TopLevel returns the outermost item below the root, if any.
func (t *LayoutTree) TopLevel() (NodeRef, bool) {
	root := t.nodes[t.root]
	if len(root.Children) == 0 {
		return NoRef, false
	}
	return root.Children[0], true
}

// EnsureTopLevelContainer returns a top-level item that can hold children.
// An empty tree gets a new stack; a top-level component is wrapped into one.
func (t *LayoutTree) EnsureTopLevelContainer() NodeRef {
	top, ok := t.TopLevel()
	if !ok {
		ref := t.CreateItem(ItemConfig{Type: ItemTypeStack})
		t.InsertChild(t.root, ref, 0)
		return ref
	}
	if t.nodes[top].IsContainer() {
		return top
	}
	wrapper := t.CreateItem(ItemConfig{Type: ItemTypeStack})
	t.RemoveChild(t.root, top)
	t.InsertChild(t.root, wrapper, 0)
	t.InsertChild(wrapper, top, 0)
	return wrapper
}

// CreateItem builds a detached subtree from cfg and returns its root ref.
func (t *LayoutTree) CreateItem(cfg ItemConfig) NodeRef {
	ref := t.newNode(cfg)
	for _, childCfg := range cfg.Content {
		child := t.CreateItem(childCfg)
		t.InsertChild(ref, child, -1)
	}
	if n := t.nodes[ref]; n.Header != nil && len(n.Header.Tabs) > 0 {
		idx := cfg.ActiveItemIndex
		if idx < 0 || idx >= len(n.Header.Tabs) {
			idx = 0
		}
		n.Header.ActiveIndex = idx
	}
	return ref
}

// AddChild creates an item from cfg and inserts it at index (clamped).
func (t *LayoutTree) AddChild(parent NodeRef, cfg ItemConfig, index int) (NodeRef, error) {
	p := t.nodes[parent]
	if p == nil {
		return NoRef, ErrNodeNotFound
	}
	if !p.IsContainer() {
		return NoRef, fmt.Errorf("add %q to %q: %w", cfg.ID, p.ID(), ErrNotContainer)
	}
	ref := t.CreateItem(cfg)
	t.InsertChild(parent, ref, index)
	return ref, nil
}

// InsertChild attaches a detached item at index of parent's children.
// Out-of-range or negative indices append. The child's element moves with it
// and stacks get a tab that becomes active. Returns the index used.
func (t *LayoutTree) InsertChild(parent, child NodeRef, index int) int {
	p, c := t.nodes[parent], t.nodes[child]
	if p == nil || c == nil || t.isAncestorOrSelf(child, parent) {
		return -1
	}
	if c.Parent != NoRef {
		t.RemoveChild(c.Parent, child)
	}
	if index < 0 || index > len(p.Children) {
		index = len(p.Children)
	}
	p.Children = append(p.Children, NoRef)
	copy(p.Children[index+1:], p.Children[index:])
	p.Children[index] = child
	c.Parent = parent
	p.Element.InsertChild(index, c.Element)

	if p.Header != nil {
		tab := Tab{Item: child, Title: c.Config.Title}
		tabIdx := index
		if tabIdx > len(p.Header.Tabs) {
			tabIdx = len(p.Header.Tabs)
		}
		p.Header.Tabs = append(p.Header.Tabs, Tab{})
		copy(p.Header.Tabs[tabIdx+1:], p.Header.Tabs[tabIdx:])
		p.Header.Tabs[tabIdx] = tab
		p.Header.ActiveIndex = tabIdx
	}
	return index
}

func (t *LayoutTree) isAncestorOrSelf(ancestor, ref NodeRef) bool {
	for cur := ref; cur != NoRef; {
		if cur == ancestor {
			return true
		}
		n := t.nodes[cur]
		if n == nil {
			return false
		}
		cur = n.Parent
	}
	return false
}

// RemoveChild detaches child from parent, its element and its tab.
// Returns the index the child occupied.
func (t *LayoutTree) RemoveChild(parent, child NodeRef) (int, error) {
	p, c := t.nodes[parent], t.nodes[child]
	if p == nil || c == nil {
		return -1, ErrNodeNotFound
	}
	idx := p.IndexOf(child)
	if idx < 0 {
		return -1, fmt.Errorf("%q is not a child of %q: %w", c.ID(), p.ID(), ErrNodeNotFound)
	}
	p.Children = append(p.Children[:idx], p.Children[idx+1:]...)
	c.Parent = NoRef
	p.Element.RemoveChild(c.Element)

	if p.Header != nil {
		if ti := p.Header.TabIndex(child); ti >= 0 {
			p.Header.Tabs = append(p.Header.Tabs[:ti], p.Header.Tabs[ti+1:]...)
			switch {
			case len(p.Header.Tabs) == 0:
				p.Header.ActiveIndex = 0
			case p.Header.ActiveIndex > ti || p.Header.ActiveIndex >= len(p.Header.Tabs):
				p.Header.ActiveIndex--
			}
			if p.Header.ActiveIndex < 0 {
				p.Header.ActiveIndex = 0
			}
		}
	}
	return idx, nil
}

// ReplaceChild puts replacement in old's slot of parent's children and
// repoints old's tab. Only logical links change; elements are left alone.
func (t *LayoutTree) ReplaceChild(parent, old, replacement NodeRef) (int, error) {
	p, o, r := t.nodes[parent], t.nodes[old], t.nodes[replacement]
	if p == nil || o == nil || r == nil {
		return -1, ErrNodeNotFound
	}
	idx := p.IndexOf(old)
	if idx < 0 {
		return -1, fmt.Errorf("%q is not a child of %q: %w", o.ID(), p.ID(), ErrNodeNotFound)
	}
	p.Children[idx] = replacement
	r.Parent = parent
	o.Parent = NoRef
	if p.Header != nil {
		if ti := p.Header.TabIndex(old); ti >= 0 {
			p.Header.Tabs[ti] = Tab{Item: replacement, Title: r.Config.Title}
		}
	}
	return idx, nil
}

// Destroy drops ref and its descendants from the arena. The item must
// already be detached from its parent.
func (t *LayoutTree) Destroy(ref NodeRef) {
	n := t.nodes[ref]
	if n == nil || ref == t.root {
		return
	}
	for _, child := range n.Children {
		t.Destroy(child)
	}
	delete(t.nodes, ref)
}

// Walk visits start and its descendants in pre-order. Returning false from
// fn skips the visited item's children.
func (t *LayoutTree) Walk(start NodeRef, fn func(*ContentItem) bool) {
	n := t.nodes[start]
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		t.Walk(child, fn)
	}
}

// ItemConfig rebuilds the full configuration of ref and its descendants.
func (t *LayoutTree) ItemConfig(ref NodeRef) ItemConfig {
	n := t.nodes[ref]
	if n == nil {
		return ItemConfig{}
	}
	cfg := n.Config.Clone()
	cfg.Content = nil
	for _, child := range n.Children {
		cfg.Content = append(cfg.Content, t.ItemConfig(child))
	}
	if n.Header != nil {
		cfg.ActiveItemIndex = n.Header.ActiveIndex
	}
	return cfg
}

// ToConfig serialises the live tree below the root.
func (t *LayoutTree) ToConfig() LayoutConfig {
	root := t.nodes[t.root]
	cfg := LayoutConfig{Content: make([]ItemConfig, 0, len(root.Children))}
	for _, child := range root.Children {
		cfg.Content = append(cfg.Content, t.ItemConfig(child))
	}
	return cfg
}

// Validate checks the ownership invariants of the live tree: each child's
// parent ref points back exactly once, elements mirror the logical tree and
// stack tabs only refer to children.
func (t *LayoutTree) Validate() error {
	var problems []string
	t.Walk(t.root, func(n *ContentItem) bool {
		if !n.IsContainer() && len(n.Children) > 0 {
			problems = append(problems, fmt.Sprintf("component %q has children", n.ID()))
		}
		for _, ref := range n.Children {
			c := t.nodes[ref]
			if c == nil {
				problems = append(problems, fmt.Sprintf("%q holds dangling child ref %d", n.ID(), ref))
				continue
			}
			if c.Parent != n.Ref {
				problems = append(problems, fmt.Sprintf("%q parent is %d, expected %d", c.ID(), c.Parent, n.Ref))
			}
			count := 0
			for _, other := range n.Children {
				if other == ref {
					count++
				}
			}
			if count != 1 {
				problems = append(problems, fmt.Sprintf("%q appears %d times in %q", c.ID(), count, n.ID()))
			}
			if c.Element.Parent() != n.Element {
				problems = append(problems, fmt.Sprintf("element of %q is not under element of %q", c.ID(), n.ID()))
			}
		}
		if n.Header != nil {
			for _, tab := range n.Header.Tabs {
				if n.IndexOf(tab.Item) < 0 {
					problems = append(problems, fmt.Sprintf("stack %q has a tab for non-child %d", n.ID(), tab.Item))
				}
			}
		}
		return true
	})
	if len(problems) > 0 {
		return fmt.Errorf("layout tree invalid:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}
