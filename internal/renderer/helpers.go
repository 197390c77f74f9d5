package renderer

// Unwind is a stack of cleanups run in reverse order of registration, used to
// release a partially built set of GL resources.
type Unwind []func()

func (u *Unwind) Add(cleanup func()) {
	*u = append(*u, cleanup)
}

// Unwind runs every cleanup, newest first, and empties the stack.
func (u *Unwind) Unwind() {
	for i := len(*u) - 1; i >= 0; i-- {
		(*u)[i]()
	}
	*u = nil
}

// Discard forgets the cleanups without running them.
func (u *Unwind) Discard() {
	*u = nil
}
