package input

import "github.com/go-gl/glfw/v3.3/glfw"

// Keys is an in-memory KeyState. Anything not set reads as released.
type Keys map[glfw.Key]bool

func (k Keys) GetKey(key glfw.Key) glfw.Action {
	if k[key] {
		return glfw.Press
	}
	return glfw.Release
}

func (k Keys) Press(keys ...glfw.Key) {
	for _, key := range keys {
		k[key] = true
	}
}

func (k Keys) Release(keys ...glfw.Key) {
	for _, key := range keys {
		delete(k, key)
	}
}
