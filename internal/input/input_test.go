package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestLatchFiresOncePerPress(t *testing.T) {
	var l Latch

	assert.True(t, l.Edge(true), "first frame of a press fires")
	for i := 0; i < 10; i++ {
		assert.False(t, l.Edge(true), "held key must not fire again")
	}
	assert.False(t, l.Edge(false))
	assert.True(t, l.Edge(true), "a new press after release fires")
}

func TestLatchRejectedPressDoesNotConsume(t *testing.T) {
	var l Latch

	assert.False(t, l.Fire(true, false))
	assert.False(t, l.Held())
	assert.True(t, l.Fire(true, true), "condition became true while held")
	assert.False(t, l.Fire(true, true))
}

func TestLatchInstancesAreIndependent(t *testing.T) {
	var a, b Latch

	assert.True(t, a.Edge(true))
	assert.True(t, b.Edge(true), "one latch firing must not block another")
}

func TestKeys(t *testing.T) {
	keys := Keys{}
	assert.Equal(t, glfw.Release, keys.GetKey(glfw.KeySpace))

	keys.Press(glfw.KeySpace, glfw.KeyK)
	assert.True(t, Down(keys, glfw.KeySpace))
	assert.True(t, Down(keys, glfw.KeyK))

	keys.Release(glfw.KeySpace)
	assert.False(t, Down(keys, glfw.KeySpace))
	assert.True(t, Down(keys, glfw.KeyK))
}
