package mainloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoalescer_MergesBurstIntoSingleFlush(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	value := 0
	scheduled := 0
	for i := 1; i <= 5; i++ {
		v := i
		if c.Post("readiness-poll", func() { value = v }) {
			scheduled++
		}
	}

	require.Len(t, queue, 1)
	assert.Equal(t, 1, scheduled)
	assert.Equal(t, 1, c.Pending())

	queue[0]()
	assert.Equal(t, 5, value, "latest callback wins")
	assert.Zero(t, c.Pending())

	assert.True(t, c.Post("readiness-poll", func() {}), "key can be posted again after a flush")
}

func TestCoalescer_KeysAreIndependent(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	c.Post("a", func() {})
	c.Post("b", func() {})
	assert.Len(t, queue, 2)
	assert.Equal(t, 2, c.Pending())
}

func TestCoalescer_DropsWorkAfterDestroy(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	ran := false
	c.Post("unload", func() { ran = true })
	c.Destroy()

	require.Len(t, queue, 1)
	queue[0]()
	assert.False(t, ran)

	assert.False(t, c.Post("unload", func() { ran = true }))
	assert.Len(t, queue, 1)
}

func TestCoalescer_IgnoresEmptyPosts(t *testing.T) {
	var queue []func()
	c := NewCoalescer(func(fn func()) { queue = append(queue, fn) })

	assert.False(t, c.Post("", func() {}))
	assert.False(t, c.Post("k", nil))
	assert.Empty(t, queue)
}

func TestNewCoalescer_PanicsOnNilPost(t *testing.T) {
	assert.Panics(t, func() { _ = NewCoalescer(nil) })
}
