package input

import "github.com/go-gl/glfw/v3.3/glfw"

// KeyState reports the current action of a key. *glfw.Window satisfies it.
type KeyState interface {
	GetKey(key glfw.Key) glfw.Action
}

// Down reports whether key is currently held.
func Down(ks KeyState, key glfw.Key) bool {
	return ks.GetKey(key) == glfw.Press
}

// Latch fires at most once per physical key press. It re-arms only when the
// key is released, so holding a key across frames produces a single transition.
// The zero value is armed.
type Latch struct {
	spent bool
}

// Fire reports whether a transition should happen this frame. A press only
// consumes the latch when allowed is true, so a press that was rejected
// (out of range, missing key) can still fire once the condition holds.
func (l *Latch) Fire(down, allowed bool) bool {
	if !down {
		l.spent = false
		return false
	}
	if l.spent || !allowed {
		return false
	}
	l.spent = true
	return true
}

// Edge is Fire with no extra condition.
func (l *Latch) Edge(down bool) bool {
	return l.Fire(down, true)
}

// Held reports whether the latch has fired and is waiting for a release.
func (l *Latch) Held() bool {
	return l.spent
}
