package entity

// InputKind identifies a backend input event
type InputKind int

const (
	InputQuit InputKind = iota
	InputKeyDown
	InputKeyUp
	InputButtonDown
	InputButtonUp
	InputMotion
)

// String returns the string representation of the input kind
func (k InputKind) String() string {
	switch k {
	case InputQuit:
		return "Quit"
	case InputKeyDown:
		return "KeyDown"
	case InputKeyUp:
		return "KeyUp"
	case InputButtonDown:
		return "ButtonDown"
	case InputButtonUp:
		return "ButtonUp"
	case InputMotion:
		return "Motion"
	default:
		return "Unknown"
	}
}

// InputEvent is one input event drained from the backend
type InputEvent struct {
	Kind   InputKind
	Key    string // Key identifier for key events
	Button string // Button identifier for button events
	X, Y   int    // Pointer position for button and motion events
}

// HasPosition reports whether the event carries a pointer position
func (e InputEvent) HasPosition() bool {
	switch e.Kind {
	case InputButtonDown, InputButtonUp, InputMotion:
		return true
	}
	return false
}
