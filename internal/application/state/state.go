package state

// LoopState represents the lifecycle of the render loop
type LoopState int

const (
	StateWaiting  LoopState = iota // No snapshot applied yet
	StateLive                      // A live scene exists
	StateQuitting                  // Window closed or transport drained
)

// String returns the string representation of the loop state
func (s LoopState) String() string {
	switch s {
	case StateWaiting:
		return "Waiting"
	case StateLive:
		return "Live"
	case StateQuitting:
		return "Quitting"
	default:
		return "Unknown"
	}
}

// Done reports whether the loop should stop after the current tick
func (s LoopState) Done() bool {
	return s == StateQuitting
}
