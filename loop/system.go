package loop

// System is a unit of per-frame work. Systems run in registration order and
// may keep their own state between frames.
type System interface {
	Execute(frame *Frame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *Frame)

func (f SystemFunc) Execute(frame *Frame) { f(frame) }
