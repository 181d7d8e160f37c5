package entity

// Element is a node of the structural (DOM-equivalent) hierarchy that
// mirrors the content item tree. Identity is pointer identity.
type Element struct {
	Name     string
	parent   *Element
	children []*Element
}

// NewElement creates a detached element.
func NewElement(name string) *Element {
	return &Element{Name: name}
}

// Parent returns the element's parent, or nil when detached.
func (e *Element) Parent() *Element {
	if e == nil {
		return nil
	}
	return e.parent
}

// Children returns a copy of the ordered child list.
func (e *Element) Children() []*Element {
	if e == nil || len(e.children) == 0 {
		return nil
	}
	out := make([]*Element, len(e.children))
	copy(out, e.children)
	return out
}

// ChildCount returns the number of direct children.
func (e *Element) ChildCount() int {
	if e == nil {
		return 0
	}
	return len(e.children)
}

// IndexOf returns the position of child, or -1.
func (e *Element) IndexOf(child *Element) int {
	if e == nil {
		return -1
	}
	for i, c := range e.children {
		if c == child {
			return i
		}
	}
	return -1
}

// AppendChild moves child to the end of e's children.
func (e *Element) AppendChild(child *Element) {
	e.InsertChild(len(e.children), child)
}

// InsertChild moves child to position index (clamped) of e's children.
func (e *Element) InsertChild(index int, child *Element) {
	if e == nil || child == nil || child.Contains(e) {
		return
	}
	child.detach()
	if index < 0 || index > len(e.children) {
		index = len(e.children)
	}
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
	child.parent = e
}

// RemoveChild detaches child from e. Returns false if child is not a child of e.
func (e *Element) RemoveChild(child *Element) bool {
	if e == nil || child == nil || child.parent != e {
		return false
	}
	child.detach()
	return true
}

// ReplaceChild puts newChild in oldChild's slot. newChild is first removed
// from wherever it currently lives; oldChild ends up detached.
func (e *Element) ReplaceChild(newChild, oldChild *Element) bool {
	if e == nil || newChild == nil || oldChild == nil || oldChild.parent != e {
		return false
	}
	if newChild == oldChild {
		return true
	}
	if newChild.Contains(e) {
		return false
	}
	newChild.detach()
	idx := e.IndexOf(oldChild)
	e.children[idx] = newChild
	newChild.parent = e
	oldChild.parent = nil
	return true
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for cur := other; cur != nil; cur = cur.parent {
		if cur == e {
			return true
		}
	}
	return false
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	idx := p.IndexOf(e)
	if idx >= 0 {
		p.children = append(p.children[:idx], p.children[idx+1:]...)
	}
	e.parent = nil
}
