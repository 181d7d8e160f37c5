package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(els []*Element) []string {
	out := make([]string, 0, len(els))
	for _, e := range els {
		out = append(out, e.Name)
	}
	return out
}

func TestElement_InsertMovesChild(t *testing.T) {
	p1, p2 := NewElement("p1"), NewElement("p2")
	a, b, c := NewElement("a"), NewElement("b"), NewElement("c")

	p1.AppendChild(a)
	p1.AppendChild(b)
	p1.InsertChild(0, c)
	assert.Equal(t, []string{"c", "a", "b"}, names(p1.Children()))

	p2.InsertChild(99, a)
	assert.Equal(t, []string{"c", "b"}, names(p1.Children()))
	assert.Equal(t, p2, a.Parent())
	assert.Equal(t, 1, p2.ChildCount())
}

func TestElement_InsertRejectsAncestor(t *testing.T) {
	root, child := NewElement("root"), NewElement("child")
	root.AppendChild(child)

	child.AppendChild(root)
	assert.Nil(t, root.Parent())
	assert.Equal(t, 0, child.ChildCount())
}

func TestElement_RemoveChild(t *testing.T) {
	p, a, stranger := NewElement("p"), NewElement("a"), NewElement("x")
	p.AppendChild(a)

	assert.False(t, p.RemoveChild(stranger))
	assert.True(t, p.RemoveChild(a))
	assert.Nil(t, a.Parent())
	assert.Equal(t, -1, p.IndexOf(a))
}

func TestElement_ReplaceChild(t *testing.T) {
	gp, m, keep, other := NewElement("gp"), NewElement("m"), NewElement("keep"), NewElement("other")
	gp.AppendChild(other)
	gp.AppendChild(m)
	m.AppendChild(keep)

	assert.True(t, gp.ReplaceChild(keep, m))
	assert.Equal(t, []string{"other", "keep"}, names(gp.Children()))
	assert.Nil(t, m.Parent())
	assert.Equal(t, 0, m.ChildCount())
	assert.Equal(t, gp, keep.Parent())

	assert.False(t, gp.ReplaceChild(NewElement("n"), m))
	assert.True(t, gp.ReplaceChild(keep, keep))
}

func TestElement_NilSafety(t *testing.T) {
	var e *Element
	assert.Nil(t, e.Parent())
	assert.Nil(t, e.Children())
	assert.Equal(t, 0, e.ChildCount())
	assert.Equal(t, -1, e.IndexOf(NewElement("x")))
	assert.False(t, e.RemoveChild(NewElement("x")))
}

func TestElement_Contains(t *testing.T) {
	root, mid, leaf := NewElement("root"), NewElement("mid"), NewElement("leaf")
	root.AppendChild(mid)
	mid.AppendChild(leaf)

	assert.True(t, root.Contains(leaf))
	assert.True(t, root.Contains(root))
	assert.False(t, leaf.Contains(root))
}
