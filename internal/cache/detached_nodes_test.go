package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dockpop/internal/domain/entity"
)

func entry(node, child string) DetachedEntry {
	return DetachedEntry{NodeID: node, ChildID: child, Element: entity.NewElement(child)}
}

func TestDetachedNodeCache_AddAndEntries(t *testing.T) {
	c := NewDetachedNodeCache()
	assert.Equal(t, 0, c.Len())

	c.Add(entry("row-1", "a"))
	c.Add(entry("col-1", "row-2"))

	require.Equal(t, 2, c.Len())
	got := c.Entries()
	assert.Equal(t, "row-1", got[0].NodeID)
	assert.Equal(t, "col-1", got[1].NodeID)

	got[0].NodeID = "mutated"
	assert.Equal(t, "row-1", c.Entries()[0].NodeID)
}

func TestDetachedNodeCache_TakeLatest(t *testing.T) {
	c := NewDetachedNodeCache()
	_, ok := c.TakeLatest()
	assert.False(t, ok)

	c.Add(entry("first", "a"))
	c.Add(entry("second", "b"))

	e, ok := c.TakeLatest()
	require.True(t, ok)
	assert.Equal(t, "second", e.NodeID)
	assert.Equal(t, 1, c.Len())

	e, ok = c.TakeLatest()
	require.True(t, ok)
	assert.Equal(t, "first", e.NodeID)
	assert.Equal(t, 0, c.Len())
}

func TestDetachedNodeCache_RemoveAt(t *testing.T) {
	tests := []struct {
		name    string
		index   int
		wantErr bool
		want    []string
	}{
		{name: "first", index: 0, want: []string{"b", "c"}},
		{name: "middle", index: 1, want: []string{"a", "c"}},
		{name: "last", index: 2, want: []string{"a", "b"}},
		{name: "negative", index: -1, wantErr: true, want: []string{"a", "b", "c"}},
		{name: "past end", index: 3, wantErr: true, want: []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewDetachedNodeCache()
			for _, id := range []string{"a", "b", "c"} {
				c.Add(entry(id, id+"-child"))
			}

			err := c.RemoveAt(tt.index)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrIndexOutOfRange)
			} else {
				assert.NoError(t, err)
			}

			var ids []string
			for _, e := range c.Entries() {
				ids = append(ids, e.NodeID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestDetachedNodeCache_FindLatest(t *testing.T) {
	c := NewDetachedNodeCache()
	c.Add(entry("p", "x"))
	c.Add(entry("q", "y"))
	c.Add(entry("p", "z"))

	i, e, ok := c.FindLatest(func(e DetachedEntry) bool { return e.NodeID == "p" })
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "z", e.ChildID)

	i, _, ok = c.FindLatest(func(e DetachedEntry) bool { return e.NodeID == "missing" })
	assert.False(t, ok)
	assert.Equal(t, -1, i)
}
