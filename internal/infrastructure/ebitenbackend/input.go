package ebitenbackend

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/younwookim/puppet/internal/domain/entity"
)

var mouseButtons = []ebiten.MouseButton{
	ebiten.MouseButtonLeft,
	ebiten.MouseButtonRight,
	ebiten.MouseButtonMiddle,
	ebiten.MouseButton3,
	ebiten.MouseButton4,
}

// Input turns ebiten's per-tick input state into discrete input events
type Input struct {
	keys      []ebiten.Key
	cursorX   int
	cursorY   int
	hasCursor bool
	quitSent  bool
}

// NewInput creates a new input poller
func NewInput() *Input {
	return &Input{}
}

// PollEvents returns the events since the previous tick: pointer motion,
// button transitions, key transitions, then a window close request.
func (in *Input) PollEvents() []entity.InputEvent {
	var events []entity.InputEvent

	mx, my := ebiten.CursorPosition()
	if !in.hasCursor || mx != in.cursorX || my != in.cursorY {
		in.cursorX, in.cursorY = mx, my
		in.hasCursor = true
		events = append(events, entity.InputEvent{Kind: entity.InputMotion, X: mx, Y: my})
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b) {
			events = append(events, entity.InputEvent{Kind: entity.InputButtonDown, Button: ButtonName(b), X: mx, Y: my})
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			events = append(events, entity.InputEvent{Kind: entity.InputButtonUp, Button: ButtonName(b), X: mx, Y: my})
		}
	}

	in.keys = inpututil.AppendJustPressedKeys(in.keys[:0])
	for _, k := range in.keys {
		events = append(events, entity.InputEvent{Kind: entity.InputKeyDown, Key: KeyName(k)})
	}
	in.keys = inpututil.AppendJustReleasedKeys(in.keys[:0])
	for _, k := range in.keys {
		events = append(events, entity.InputEvent{Kind: entity.InputKeyUp, Key: KeyName(k)})
	}

	if !in.quitSent && ebiten.IsWindowBeingClosed() {
		in.quitSent = true
		events = append(events, entity.InputEvent{Kind: entity.InputQuit})
	}
	return events
}

// KeyName returns the key identifier sent to the controller
func KeyName(k ebiten.Key) string {
	return k.String()
}

// ButtonName returns the button identifier sent to the controller
func ButtonName(b ebiten.MouseButton) string {
	switch b {
	case ebiten.MouseButtonLeft:
		return "Left"
	case ebiten.MouseButtonRight:
		return "Right"
	case ebiten.MouseButtonMiddle:
		return "Middle"
	case ebiten.MouseButton3:
		return "X1"
	case ebiten.MouseButton4:
		return "X2"
	default:
		return "Unknown"
	}
}
